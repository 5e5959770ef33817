package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clover4media/razl/pkg/domain/model"
	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// AddAgendaItem parses the raw due string and inserts a new item. The due
// string must satisfy the fixed grammar; a ParseDue failure propagates so the
// caller can report the format error without any item being stored.
func (uc *UseCases) AddAgendaItem(ctx context.Context, title, dueRaw string, channelID types.ChannelID, createdBy types.UserID) (*model.AgendaItem, error) {
	dueAt, err := model.ParseDue(dueRaw)
	if err != nil {
		return nil, goerr.Wrap(err, "cannot add agenda item", goerr.V("title", title))
	}

	item, err := uc.repo.Agenda().Insert(ctx, &model.AgendaItem{
		Title:     title,
		DueAt:     dueAt,
		ChannelID: channelID,
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert agenda item")
	}

	return item, nil
}

// ListAgenda returns items in the scope window relative to asOf
func (uc *UseCases) ListAgenda(ctx context.Context, scope types.Scope, asOf time.Time) ([]*model.AgendaItem, error) {
	items, err := uc.repo.Agenda().List(ctx, scope, asOf)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list agenda")
	}
	return items, nil
}

// AddTodoItem appends a text-only backlog entry
func (uc *UseCases) AddTodoItem(ctx context.Context, text string, channelID types.ChannelID, createdBy types.UserID) (*model.TodoItem, error) {
	item, err := uc.repo.Todo().Add(ctx, &model.TodoItem{
		Text:      text,
		ChannelID: channelID,
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add todo item")
	}
	return item, nil
}

// ListTodo returns the backlog in insertion order
func (uc *UseCases) ListTodo(ctx context.Context) ([]*model.TodoItem, error) {
	items, err := uc.repo.Todo().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list todo backlog")
	}
	return items, nil
}

func agendaBullet(item *model.AgendaItem) string {
	return fmt.Sprintf("• *%s* — %s", item.Title, model.FormatDue(item.DueAt))
}

// formatAgendaList renders a listing reply, one bullet per item, or the
// scope-named placeholder line when nothing falls in the window. The status
// command carries its own placeholder wording.
func formatAgendaList(items []*model.AgendaItem, scope types.Scope) string {
	if len(items) == 0 {
		return fmt.Sprintf("No items for *%s*.", scope)
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, agendaBullet(it))
	}
	return strings.Join(lines, "\n")
}

func formatTodoList(items []*model.TodoItem) string {
	if len(items) == 0 {
		return "The backlog is empty."
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s", it.Text))
	}
	return strings.Join(lines, "\n")
}

func formatAdded(item *model.AgendaItem) string {
	return fmt.Sprintf("✅ Added *%s* — due *%s*", item.Title, model.FormatDue(item.DueAt))
}
