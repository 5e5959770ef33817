package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/clover4media/razl/pkg/utils/errutil"
)

// Command is an inbound structured command from the slash-command surface
type Command struct {
	Text      string
	ChannelID types.ChannelID
	UserID    types.UserID
	UserName  string
}

// Reply is the dispatcher's answer to a structured command. InChannel
// controls whether the reply is visible to the whole channel or only to the
// requester.
type Reply struct {
	Text      string
	InChannel bool
}

const (
	dueFormatHint = "Use `YYYY-MM-DD HH:mm` (24h)."

	commandUsage = "Commands: `ping`, `hello`, `status`, `agenda add title:\"...\" due:\"YYYY-MM-DD HH:mm\"`, `agenda list [scope:today|week|all]`, `todo add text:\"...\"`, `todo list`"
)

// key:value options, values either quoted or a single bare word
var optionPattern = regexp.MustCompile(`(\w+):(?:"([^"]*)"|(\S+))`)

func parseOptions(text string) map[string]string {
	opts := make(map[string]string)
	for _, m := range optionPattern.FindAllStringSubmatch(text, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		opts[strings.ToLower(m[1])] = value
	}
	return opts
}

// HandleCommand routes a structured command and always produces a reply.
// Every failure inside one command converts to reply text here; nothing
// escapes to crash the surface.
func (uc *UseCases) HandleCommand(ctx context.Context, cmd *Command) *Reply {
	fields := strings.Fields(cmd.Text)
	if len(fields) == 0 {
		return &Reply{Text: commandUsage}
	}

	switch strings.ToLower(fields[0]) {
	case "ping":
		return &Reply{Text: "Pong! 🧠", InChannel: true}

	case "hello":
		name := cmd.UserName
		if name == "" {
			name = cmd.UserID.String()
		}
		return &Reply{Text: fmt.Sprintf("Hello, %s. Ready to coordinate.", name), InChannel: true}

	case "status":
		return uc.handleStatus(ctx)

	case "agenda":
		if len(fields) < 2 {
			return &Reply{Text: commandUsage}
		}
		switch strings.ToLower(fields[1]) {
		case "add":
			return uc.handleAgendaAdd(ctx, cmd)
		case "list":
			return uc.handleAgendaList(ctx, cmd)
		}
		return &Reply{Text: commandUsage}

	case "todo":
		if len(fields) < 2 {
			return &Reply{Text: commandUsage}
		}
		switch strings.ToLower(fields[1]) {
		case "add":
			return uc.handleTodoAdd(ctx, cmd)
		case "list":
			return uc.handleTodoList(ctx)
		}
		return &Reply{Text: commandUsage}
	}

	return &Reply{Text: commandUsage}
}

func (uc *UseCases) handleStatus(ctx context.Context) *Reply {
	items, err := uc.ListAgenda(ctx, types.ScopeToday, uc.now())
	if err != nil {
		errutil.Handle(ctx, err, "status command failed")
		return &Reply{Text: "Something went wrong while reading the agenda."}
	}
	body := "No items today."
	if len(items) > 0 {
		body = formatAgendaList(items, types.ScopeToday)
	}
	return &Reply{
		Text:      "*Today's agenda*\n" + body,
		InChannel: true,
	}
}

func (uc *UseCases) handleAgendaAdd(ctx context.Context, cmd *Command) *Reply {
	opts := parseOptions(cmd.Text)
	title, ok := opts["title"]
	if !ok || strings.TrimSpace(title) == "" {
		return &Reply{Text: "`title` is required. Example: `agenda add title:\"Deliver cut\" due:\"2025-11-01 09:00\"`"}
	}
	dueRaw, ok := opts["due"]
	if !ok {
		return &Reply{Text: "`due` is required. " + dueFormatHint}
	}

	item, err := uc.AddAgendaItem(ctx, title, dueRaw, cmd.ChannelID, cmd.UserID)
	if err != nil {
		errutil.Handle(ctx, err, "agenda add command failed")
		return &Reply{Text: dueFormatHint}
	}

	return &Reply{Text: formatAdded(item), InChannel: true}
}

func (uc *UseCases) handleAgendaList(ctx context.Context, cmd *Command) *Reply {
	opts := parseOptions(cmd.Text)
	scope := types.ScopeToday
	if raw, ok := opts["scope"]; ok {
		scope = types.Scope(strings.ToLower(raw))
		if !scope.IsValid() {
			return &Reply{Text: "`scope` must be one of `today`, `week`, `all`."}
		}
	}

	items, err := uc.ListAgenda(ctx, scope, uc.now())
	if err != nil {
		errutil.Handle(ctx, err, "agenda list command failed")
		return &Reply{Text: "Something went wrong while reading the agenda."}
	}

	return &Reply{Text: formatAgendaList(items, scope), InChannel: true}
}

func (uc *UseCases) handleTodoAdd(ctx context.Context, cmd *Command) *Reply {
	opts := parseOptions(cmd.Text)
	text, ok := opts["text"]
	if !ok || strings.TrimSpace(text) == "" {
		return &Reply{Text: "`text` is required. Example: `todo add text:\"Order gaffer tape\"`"}
	}

	item, err := uc.AddTodoItem(ctx, text, cmd.ChannelID, cmd.UserID)
	if err != nil {
		errutil.Handle(ctx, err, "todo add command failed")
		return &Reply{Text: "Couldn't add that to the backlog."}
	}

	return &Reply{Text: fmt.Sprintf("✅ Noted: %s", item.Text), InChannel: true}
}

func (uc *UseCases) handleTodoList(ctx context.Context) *Reply {
	items, err := uc.ListTodo(ctx)
	if err != nil {
		errutil.Handle(ctx, err, "todo list command failed")
		return &Reply{Text: "Something went wrong while reading the backlog."}
	}
	return &Reply{Text: formatTodoList(items), InChannel: true}
}
