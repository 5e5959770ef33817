package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clover4media/razl/pkg/repository/memory"
	"github.com/clover4media/razl/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	gt.NoError(t, err).Required()
	return func() time.Time { return parsed }
}

func newCommandUC(t *testing.T, clock func() time.Time) *usecase.UseCases {
	t.Helper()
	return usecase.New(memory.New(), usecase.WithClock(clock))
}

func runCommand(ctx context.Context, uc *usecase.UseCases, text string) *usecase.Reply {
	return uc.HandleCommand(ctx, &usecase.Command{
		Text:      text,
		ChannelID: "C001",
		UserID:    "U001",
		UserName:  "ada",
	})
}

func TestCommandPing(t *testing.T) {
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))
	reply := runCommand(context.Background(), uc, "ping")
	gt.Value(t, reply.Text).Equal("Pong! 🧠")
}

func TestCommandHello(t *testing.T) {
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))
	reply := runCommand(context.Background(), uc, "hello")
	gt.String(t, reply.Text).Contains("Hello, ada")
}

func TestCommandAgendaAddAndList(t *testing.T) {
	ctx := context.Background()
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))

	reply := runCommand(ctx, uc, `agenda add title:"Deliver cut" due:"2025-11-01 09:00"`)
	gt.String(t, reply.Text).Contains("Deliver cut")
	gt.String(t, reply.Text).Contains("2025-11-01 09:00")
	gt.String(t, reply.Text).Contains("✅")

	reply = runCommand(ctx, uc, "agenda list scope:today")
	gt.String(t, reply.Text).Contains("Deliver cut")
	gt.String(t, reply.Text).Contains("2025-11-01 09:00")
}

func TestCommandAgendaListNextDayIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	uc := usecase.New(repo, usecase.WithClock(fixedClock(t, "2025-11-01 08:00")))
	runCommand(ctx, uc, `agenda add title:"Deliver cut" due:"2025-11-01 09:00"`)

	// Same store, one day later
	later := usecase.New(repo, usecase.WithClock(fixedClock(t, "2025-11-02 08:00")))
	reply := runCommand(ctx, later, "agenda list scope:today")
	gt.Value(t, reply.Text).Equal("No items for *today*.")
}

func TestCommandAgendaListScopes(t *testing.T) {
	ctx := context.Background()
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))

	runCommand(ctx, uc, `agenda add title:"Today" due:"2025-11-01 10:00"`)
	runCommand(ctx, uc, `agenda add title:"Midweek" due:"2025-11-04 10:00"`)
	runCommand(ctx, uc, `agenda add title:"Far out" due:"2025-12-01 10:00"`)

	t.Run("default scope is today", func(t *testing.T) {
		reply := runCommand(ctx, uc, "agenda list")
		gt.String(t, reply.Text).Contains("Today")
		gt.Bool(t, strings.Contains(reply.Text, "Midweek")).False()
	})

	t.Run("week", func(t *testing.T) {
		reply := runCommand(ctx, uc, "agenda list scope:week")
		gt.String(t, reply.Text).Contains("Today")
		gt.String(t, reply.Text).Contains("Midweek")
		gt.Bool(t, strings.Contains(reply.Text, "Far out")).False()
	})

	t.Run("all", func(t *testing.T) {
		reply := runCommand(ctx, uc, "agenda list scope:all")
		gt.String(t, reply.Text).Contains("Far out")
	})

	t.Run("invalid scope", func(t *testing.T) {
		reply := runCommand(ctx, uc, "agenda list scope:month")
		gt.String(t, reply.Text).Contains("scope")
	})
}

func TestCommandAgendaAddErrors(t *testing.T) {
	ctx := context.Background()
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))

	t.Run("missing title", func(t *testing.T) {
		reply := runCommand(ctx, uc, `agenda add due:"2025-11-01 09:00"`)
		gt.String(t, reply.Text).Contains("title")
	})

	t.Run("missing due", func(t *testing.T) {
		reply := runCommand(ctx, uc, `agenda add title:"Deliver cut"`)
		gt.String(t, reply.Text).Contains("due")
	})

	t.Run("malformed due", func(t *testing.T) {
		reply := runCommand(ctx, uc, `agenda add title:"Deliver cut" due:"next friday"`)
		gt.String(t, reply.Text).Contains("YYYY-MM-DD HH:mm")
	})

	t.Run("nothing was stored", func(t *testing.T) {
		reply := runCommand(ctx, uc, "agenda list scope:all")
		gt.Value(t, reply.Text).Equal("No items for *all*.")
	})
}

func TestCommandStatus(t *testing.T) {
	ctx := context.Background()
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))

	t.Run("empty agenda", func(t *testing.T) {
		reply := runCommand(ctx, uc, "status")
		gt.String(t, reply.Text).Contains("Today's agenda")
		gt.String(t, reply.Text).Contains("No items today.")
	})

	t.Run("with items", func(t *testing.T) {
		runCommand(ctx, uc, `agenda add title:"Deliver cut" due:"2025-11-01 09:00"`)
		reply := runCommand(ctx, uc, "status")
		gt.String(t, reply.Text).Contains("Deliver cut")
	})
}

func TestCommandTodo(t *testing.T) {
	ctx := context.Background()
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))

	t.Run("empty backlog", func(t *testing.T) {
		reply := runCommand(ctx, uc, "todo list")
		gt.String(t, reply.Text).Contains("empty")
	})

	t.Run("add and list", func(t *testing.T) {
		reply := runCommand(ctx, uc, `todo add text:"Order gaffer tape"`)
		gt.String(t, reply.Text).Contains("Order gaffer tape")

		reply = runCommand(ctx, uc, "todo list")
		gt.String(t, reply.Text).Contains("Order gaffer tape")
	})

	t.Run("missing text", func(t *testing.T) {
		reply := runCommand(ctx, uc, "todo add")
		gt.String(t, reply.Text).Contains("text")
	})
}

func TestCommandUnknown(t *testing.T) {
	ctx := context.Background()
	uc := newCommandUC(t, fixedClock(t, "2025-11-01 08:00"))

	for _, text := range []string{"", "banana", "agenda", "agenda remove", "todo"} {
		reply := runCommand(ctx, uc, text)
		gt.String(t, reply.Text).Contains("Commands:")
	}
}
