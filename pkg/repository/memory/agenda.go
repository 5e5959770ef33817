package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clover4media/razl/pkg/domain/model"
	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type agendaRepository struct {
	mu     sync.Mutex
	nextID types.ItemID
	items  []*model.AgendaItem
}

func newAgendaRepository() *agendaRepository {
	return &agendaRepository{
		nextID: 1,
	}
}

func copyAgendaItem(x *model.AgendaItem) *model.AgendaItem {
	copied := *x
	return &copied
}

// Insert appends a new item under the lock so no partial item is ever visible
// to a concurrently listing event. IDs come from a counter owned by the
// repository; two insertions within the same clock tick cannot collide.
func (r *agendaRepository) Insert(ctx context.Context, item *model.AgendaItem) (*model.AgendaItem, error) {
	if err := item.Validate(); err != nil {
		return nil, goerr.Wrap(err, "rejecting agenda item")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAgendaItem(item)
	created.ID = r.nextID
	created.Title = strings.TrimSpace(item.Title)
	created.CreatedAt = time.Now()
	r.nextID++

	r.items = append(r.items, created)
	return copyAgendaItem(created), nil
}

// List filters by the scope window anchored at local midnight of asOf and
// sorts ascending by due instant. The sort is stable, so items sharing a due
// instant keep their insertion order.
func (r *agendaRepository) List(ctx context.Context, scope types.Scope, asOf time.Time) ([]*model.AgendaItem, error) {
	if !scope.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidScope, "cannot list agenda", goerr.V("scope", scope))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	var end time.Time
	switch scope {
	case types.ScopeToday:
		end = start.Add(24 * time.Hour)
	case types.ScopeWeek:
		end = start.Add(7 * 24 * time.Hour)
	}

	result := make([]*model.AgendaItem, 0, len(r.items))
	for _, it := range r.items {
		if scope != types.ScopeAll {
			if it.DueAt.Before(start) || !it.DueAt.Before(end) {
				continue
			}
		}
		result = append(result, copyAgendaItem(it))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueAt.Before(result[j].DueAt)
	})

	return result, nil
}
