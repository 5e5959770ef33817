package model

import (
	"strings"
	"time"

	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// AgendaItem is a titled task with an absolute due instant. Items are created
// by the command surface, by shorthand capture, or by AI suggestion lines, and
// are never updated or deleted afterwards.
type AgendaItem struct {
	ID        types.ItemID
	Title     string
	DueAt     time.Time
	ChannelID types.ChannelID
	CreatedBy types.UserID // empty when the item came from an AI suggestion
	CreatedAt time.Time
}

// Validate checks the invariants enforced before insertion. Due time validity
// is the caller's responsibility via ParseDue; an item only reaches the
// repository with an instant that already parsed.
func (x *AgendaItem) Validate() error {
	if strings.TrimSpace(x.Title) == "" {
		return goerr.Wrap(ErrEmptyTitle, "invalid agenda item")
	}
	return nil
}

// TodoItem is a text-only backlog entry with no time semantics.
type TodoItem struct {
	ID        types.ItemID
	Text      string
	ChannelID types.ChannelID
	CreatedBy types.UserID
	CreatedAt time.Time
}

// Validate checks the invariants enforced before insertion
func (x *TodoItem) Validate() error {
	if strings.TrimSpace(x.Text) == "" {
		return goerr.Wrap(ErrEmptyText, "invalid todo item")
	}
	return nil
}
