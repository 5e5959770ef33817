package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/clover4media/razl/pkg/domain/model"
	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type todoRepository struct {
	mu     sync.Mutex
	nextID types.ItemID
	items  []*model.TodoItem
}

func newTodoRepository() *todoRepository {
	return &todoRepository{
		nextID: 1,
	}
}

func copyTodoItem(x *model.TodoItem) *model.TodoItem {
	copied := *x
	return &copied
}

func (r *todoRepository) Add(ctx context.Context, item *model.TodoItem) (*model.TodoItem, error) {
	if err := item.Validate(); err != nil {
		return nil, goerr.Wrap(err, "rejecting todo item")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyTodoItem(item)
	created.ID = r.nextID
	created.Text = strings.TrimSpace(item.Text)
	created.CreatedAt = time.Now()
	r.nextID++

	r.items = append(r.items, created)
	return copyTodoItem(created), nil
}

// List returns the backlog in insertion order
func (r *todoRepository) List(ctx context.Context) ([]*model.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*model.TodoItem, 0, len(r.items))
	for _, it := range r.items {
		result = append(result, copyTodoItem(it))
	}
	return result, nil
}
