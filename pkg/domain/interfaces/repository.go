package interfaces

import (
	"context"
	"time"

	"github.com/clover4media/razl/pkg/domain/model"
	"github.com/clover4media/razl/pkg/domain/types"
)

// Repository provides access to all data repositories
type Repository interface {
	Agenda() AgendaRepository
	Todo() TodoRepository
	Close() error
}

// AgendaRepository owns all agenda items. Items are append-only: there is no
// update or delete, and overdue items fall out of the today/week views only
// through the recomputed time windows.
type AgendaRepository interface {
	// Insert stores a new item and returns it with its assigned ID. The
	// item's title must be non-empty after trimming; the due instant is
	// assumed valid because it only exists if ParseDue accepted it.
	Insert(ctx context.Context, item *model.AgendaItem) (*model.AgendaItem, error)

	// List returns items in the scope's window relative to asOf, sorted
	// ascending by due instant with insertion order breaking ties. An
	// empty store yields an empty slice, not an error.
	List(ctx context.Context, scope types.Scope, asOf time.Time) ([]*model.AgendaItem, error)
}

// TodoRepository owns the text-only backlog
type TodoRepository interface {
	Add(ctx context.Context, item *model.TodoItem) (*model.TodoItem, error)
	List(ctx context.Context) ([]*model.TodoItem, error)
}
