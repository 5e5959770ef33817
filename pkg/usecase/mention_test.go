package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clover4media/razl/pkg/domain/model"
	slackmodel "github.com/clover4media/razl/pkg/domain/model/slack"
	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/clover4media/razl/pkg/repository/memory"
	"github.com/clover4media/razl/pkg/service/completion"
	"github.com/clover4media/razl/pkg/usecase"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack/slackevents"
)

const testBotUserID = "UBOT001"

type postedReply struct {
	channelID string
	threadTS  string
	text      string
}

type mockSlackService struct {
	getBotUserIDFn func(ctx context.Context) (string, error)
	posted         []postedReply
}

func (m *mockSlackService) GetBotUserID(ctx context.Context) (string, error) {
	if m.getBotUserIDFn != nil {
		return m.getBotUserIDFn(ctx)
	}
	return testBotUserID, nil
}

func (m *mockSlackService) PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error) {
	m.posted = append(m.posted, postedReply{channelID: channelID, threadTS: threadTS, text: text})
	return "1700000000.000200", nil
}

type mockCompletionService struct {
	completeFn func(ctx context.Context, prompt string) *completion.Result
	calls      int
	lastPrompt string
}

func (m *mockCompletionService) Complete(ctx context.Context, prompt string) *completion.Result {
	m.calls++
	m.lastPrompt = prompt
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt)
	}
	return &completion.Result{Kind: completion.ResultText, Body: "Sounds good."}
}

type mentionFixture struct {
	uc    *usecase.UseCases
	repo  *memory.Memory
	slack *mockSlackService
	comp  *mockCompletionService
}

func newMentionFixture(t *testing.T, opts ...usecase.Option) *mentionFixture {
	t.Helper()
	f := &mentionFixture{
		repo:  memory.New(),
		slack: &mockSlackService{},
		comp:  &mockCompletionService{},
	}
	base := []usecase.Option{
		usecase.WithSlackService(f.slack),
		usecase.WithCompletion(f.comp),
		usecase.WithClock(func() time.Time {
			return time.Date(2025, 11, 1, 8, 0, 0, 0, time.Local)
		}),
	}
	f.uc = usecase.New(f.repo, append(base, opts...)...)
	return f
}

func mention(text string) *slackmodel.Message {
	return slackmodel.NewMessageFromFields("C123", "", "U456", text, "1699999999.000001", true)
}

func channelMessage(text string) *slackmodel.Message {
	return slackmodel.NewMessageFromFields("C123", "", "U456", text, "1699999999.000001", false)
}

func TestMentionIgnoresUnaddressedMessage(t *testing.T) {
	f := newMentionFixture(t)
	err := f.uc.HandleMention(context.Background(), channelMessage("shipping the cut tomorrow"))
	gt.NoError(t, err)
	gt.Array(t, f.slack.posted).Length(0)
	gt.Value(t, f.comp.calls).Equal(0)
}

func TestMentionIgnoresOwnMessage(t *testing.T) {
	f := newMentionFixture(t)
	msg := slackmodel.NewMessageFromFields("C123", "", testBotUserID, "<@"+testBotUserID+"> hi", "1699999999.000001", true)
	err := f.uc.HandleMention(context.Background(), msg)
	gt.NoError(t, err)
	gt.Array(t, f.slack.posted).Length(0)
}

func TestMentionBarePromptsForInput(t *testing.T) {
	f := newMentionFixture(t)
	err := f.uc.HandleMention(context.Background(), mention("<@"+testBotUserID+">"))
	gt.NoError(t, err)
	gt.Array(t, f.slack.posted).Length(1)
	gt.String(t, f.slack.posted[0].text).Contains("I'm listening")
	gt.Value(t, f.comp.calls).Equal(0)
}

func TestMentionRepliesInThread(t *testing.T) {
	f := newMentionFixture(t)

	t.Run("falls back to event timestamp", func(t *testing.T) {
		err := f.uc.HandleMention(context.Background(), mention("<@"+testBotUserID+">"))
		gt.NoError(t, err)
		gt.Value(t, f.slack.posted[len(f.slack.posted)-1].threadTS).Equal("1699999999.000001")
	})

	t.Run("keeps existing thread", func(t *testing.T) {
		msg := slackmodel.NewMessageFromFields("C123", "1699999000.000500", "U456", "<@"+testBotUserID+">", "1699999999.000002", true)
		err := f.uc.HandleMention(context.Background(), msg)
		gt.NoError(t, err)
		gt.Value(t, f.slack.posted[len(f.slack.posted)-1].threadTS).Equal("1699999000.000500")
	})
}

func TestMentionShorthandCapture(t *testing.T) {
	ctx := context.Background()
	f := newMentionFixture(t)

	err := f.uc.HandleMention(ctx, mention("<@"+testBotUserID+"> add agenda: Deliver cut due: 2025-11-01 09:00"))
	gt.NoError(t, err)

	gt.Array(t, f.slack.posted).Length(1)
	gt.String(t, f.slack.posted[0].text).Contains("✅ Added *Deliver cut*")
	gt.String(t, f.slack.posted[0].text).Contains("2025-11-01 09:00")

	// The completion path is skipped entirely on a shorthand hit
	gt.Value(t, f.comp.calls).Equal(0)

	items, err := f.repo.Agenda().List(ctx, types.ScopeAll, time.Now())
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].Title).Equal("Deliver cut")
	gt.Value(t, items[0].CreatedBy).Equal(types.UserID("U456"))
}

func TestMentionShorthandWithoutDueFallsThrough(t *testing.T) {
	f := newMentionFixture(t)

	err := f.uc.HandleMention(context.Background(), mention("<@"+testBotUserID+"> add agenda: Lighting v1"))
	gt.NoError(t, err)

	// No due clause means no deterministic capture; the completion path runs
	gt.Value(t, f.comp.calls).Equal(1)
	gt.Array(t, f.slack.posted).Length(1)

	items, err := f.repo.Agenda().List(context.Background(), types.ScopeAll, time.Now())
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(0)
}

func TestMentionShorthandBadDate(t *testing.T) {
	f := newMentionFixture(t)

	err := f.uc.HandleMention(context.Background(), mention("<@"+testBotUserID+"> add agenda: Deliver cut due: 2025-13-40 09:00"))
	gt.NoError(t, err)

	gt.Array(t, f.slack.posted).Length(1)
	gt.String(t, f.slack.posted[0].text).Contains("Couldn't parse the date")
	gt.String(t, f.slack.posted[0].text).Contains("YYYY-MM-DD HH:mm")
	gt.Value(t, f.comp.calls).Equal(0)

	items, err := f.repo.Agenda().List(context.Background(), types.ScopeAll, time.Now())
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(0)
}

func TestMentionSuggestionCapture(t *testing.T) {
	ctx := context.Background()
	f := newMentionFixture(t)
	f.comp.completeFn = func(ctx context.Context, prompt string) *completion.Result {
		return &completion.Result{
			Kind: completion.ResultText,
			Body: strings.Join([]string{
				"Here's the plan for the week.",
				"[agenda] Lock music | 2025-11-03 18:00",
				"[agenda] Ghost item | 2025-13-40 26:00",
				"[agenda] Color pass | 2025-11-04 12:00",
			}, "\n"),
		}
	}

	err := f.uc.HandleMention(ctx, mention("<@"+testBotUserID+"> plan the post schedule"))
	gt.NoError(t, err)

	gt.Value(t, f.comp.calls).Equal(1)
	gt.String(t, f.comp.lastPrompt).Contains("plan the post schedule")

	gt.Array(t, f.slack.posted).Length(1)
	text := f.slack.posted[0].text
	gt.String(t, text).Contains("Here's the plan for the week.")

	// The malformed line is echoed as part of the model text but must not
	// show up in the added-items tail
	_, tail, found := strings.Cut(text, "🗓️ I added:")
	gt.Bool(t, found).True()
	gt.String(t, tail).Contains("Lock music")
	gt.String(t, tail).Contains("Color pass")
	gt.Bool(t, strings.Contains(tail, "Ghost item")).False()

	items, err := f.repo.Agenda().List(ctx, types.ScopeAll, time.Now())
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(2)
	for _, item := range items {
		gt.Value(t, item.CreatedBy).Equal(types.UserID(""))
		gt.Value(t, item.ChannelID).Equal(types.ChannelID("C123"))
	}
}

func TestMentionReplyWithoutSuggestions(t *testing.T) {
	f := newMentionFixture(t)
	f.comp.completeFn = func(ctx context.Context, prompt string) *completion.Result {
		return &completion.Result{Kind: completion.ResultText, Body: "Start with the rough cut review."}
	}

	err := f.uc.HandleMention(context.Background(), mention("<@"+testBotUserID+"> where do we start?"))
	gt.NoError(t, err)

	gt.Array(t, f.slack.posted).Length(1)
	gt.Value(t, f.slack.posted[0].text).Equal("Start with the rough cut review.")
}

func TestMentionDegradedCompletion(t *testing.T) {
	t.Run("no completion service configured", func(t *testing.T) {
		repo := memory.New()
		slackSvc := &mockSlackService{}
		uc := usecase.New(repo, usecase.WithSlackService(slackSvc))

		err := uc.HandleMention(context.Background(), mention("<@"+testBotUserID+"> what's the plan?"))
		gt.NoError(t, err)
		gt.Array(t, slackSvc.posted).Length(1)
		gt.String(t, slackSvc.posted[0].text).Contains("credential")
	})

	t.Run("network failure still answers", func(t *testing.T) {
		f := newMentionFixture(t)
		f.comp.completeFn = func(ctx context.Context, prompt string) *completion.Result {
			return &completion.Result{Kind: completion.ResultNetworkFailure}
		}

		err := f.uc.HandleMention(context.Background(), mention("<@"+testBotUserID+"> what's the plan?"))
		gt.NoError(t, err)
		gt.Array(t, f.slack.posted).Length(1)
		gt.String(t, f.slack.posted[0].text).Contains("Network error")
	})
}

func TestMentionDualSubscriptionDelivery(t *testing.T) {
	ctx := context.Background()
	f := newMentionFixture(t)
	text := "<@" + testBotUserID + "> add agenda: Deliver cut due: 2025-11-01 09:00"

	// Slack delivers a canonical mention on both subscriptions when the app
	// listens for app_mention and message events
	err := f.uc.HandleSlackEvent(ctx, &slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "app_mention",
			Data: &slackevents.AppMentionEvent{
				Channel:        "C123",
				User:           "U456",
				Text:           text,
				EventTimeStamp: "1699999999.000001",
			},
		},
	})
	gt.NoError(t, err)

	err = f.uc.HandleSlackEvent(ctx, &slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "message",
			Data: &slackevents.MessageEvent{
				Channel:        "C123",
				User:           "U456",
				Text:           text,
				TimeStamp:      "1699999999.000001",
				EventTimeStamp: "1699999999.000001",
			},
		},
	})
	gt.NoError(t, err)

	gt.Array(t, f.slack.posted).Length(1)

	items, err := f.repo.Agenda().List(ctx, types.ScopeAll, time.Now())
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].Title).Equal("Deliver cut")
}

func TestMentionFoldedNameAddressing(t *testing.T) {
	// U+0130 lowercases to a shorter byte sequence; prefix handling must not
	// slice t by the folded form's byte length
	persona := &model.Persona{Name: "İzmir"}
	gt.NoError(t, persona.Validate()).Required()

	f := newMentionFixture(t, usecase.WithPersona(persona))

	err := f.uc.HandleMention(context.Background(), channelMessage("İzmir: plan the shoot"))
	gt.NoError(t, err)
	gt.Array(t, f.slack.posted).Length(1)
	gt.Value(t, f.comp.calls).Equal(1)
	gt.String(t, f.comp.lastPrompt).Contains("plan the shoot")
}

func TestMentionNicknameAddressing(t *testing.T) {
	type testCase struct {
		text      string
		addressed bool
	}

	cases := map[string]testCase{
		"name with colon":       {text: "Raziel: plan the shoot", addressed: true},
		"lowercase nickname":    {text: "raziel plan the shoot", addressed: true},
		"name alone":            {text: "Raziel", addressed: true},
		"name inside a word":    {text: "razielish plans are fine", addressed: false},
		"name not at the start": {text: "ask raziel about it", addressed: false},
		"unrelated message":     {text: "plan the shoot yourselves", addressed: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newMentionFixture(t)
			err := f.uc.HandleMention(context.Background(), channelMessage(tc.text))
			gt.NoError(t, err)
			if tc.addressed {
				gt.Array(t, f.slack.posted).Length(1)
			} else {
				gt.Array(t, f.slack.posted).Length(0)
			}
		})
	}
}
