package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clover4media/razl/pkg/domain/model"
	slackmodel "github.com/clover4media/razl/pkg/domain/model/slack"
	"github.com/clover4media/razl/pkg/domain/types"
	"github.com/clover4media/razl/pkg/service/completion"
	"github.com/clover4media/razl/pkg/service/extract"
	"github.com/clover4media/razl/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"
)

const listeningPrompt = "I'm listening. Share your goals/agenda and I'll draft a plan."

// HandleSlackEvent processes a Slack Events API callback event
func (uc *UseCases) HandleSlackEvent(ctx context.Context, ev *slackevents.EventsAPIEvent) error {
	msg := slackmodel.NewMessage(ev)
	if msg == nil {
		logging.From(ctx).Debug("ignoring slack event without free text",
			"type", ev.Type,
			"inner_type", ev.InnerEvent.Type,
		)
		return nil
	}

	return uc.HandleMention(ctx, msg)
}

// HandleMention runs the free-text pipeline for one message: mention check,
// shorthand capture, and finally the completion path with suggestion-line
// capture. The whole event is handled to completion, including the network
// exchange, before the reply is posted.
func (uc *UseCases) HandleMention(ctx context.Context, msg *slackmodel.Message) error {
	if uc.slackSvc == nil {
		return goerr.New("slack service is not configured")
	}

	botUserID, err := uc.slackSvc.GetBotUserID(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to get bot user ID")
	}

	// Never answer our own messages
	if msg.UserID() == botUserID {
		return nil
	}

	// A canonically mentioned message is delivered on both the app_mention
	// and the message subscription; only the app_mention copy is processed.
	if !msg.IsAppMention() && strings.HasPrefix(strings.TrimSpace(msg.Text()), "<@"+botUserID+">") {
		return nil
	}

	payload, addressed := stripMention(msg.Text(), botUserID, uc.persona)
	if !addressed {
		return nil
	}

	logger := logging.From(ctx).With("session_id", uuid.Must(uuid.NewV7()).String())
	ctx = logging.With(ctx, logger)

	threadTS := msg.ThreadTS()
	if threadTS == "" {
		threadTS = msg.EventTS()
	}

	reply := func(text string) error {
		if _, err := uc.slackSvc.PostThreadReply(ctx, msg.ChannelID(), threadTS, text); err != nil {
			return goerr.Wrap(err, "failed to post reply")
		}
		return nil
	}

	if payload == "" {
		return reply(listeningPrompt)
	}

	// Deterministic shorthand capture first; when it hits, the completion
	// call is skipped entirely.
	if c := extract.MatchShorthand(payload); c != nil {
		item, err := uc.AddAgendaItem(ctx, c.Title, c.DueRaw, types.ChannelID(msg.ChannelID()), types.UserID(msg.UserID()))
		if err != nil {
			if errors.Is(err, model.ErrInvalidDueFormat) {
				return reply("Couldn't parse the date. " + dueFormatHint)
			}
			logger.Error("shorthand capture failed", "error", err.Error())
			return reply("Couldn't add that agenda item.")
		}
		logger.Info("captured agenda item from shorthand", "item_id", item.ID, "title", item.Title)
		return reply(formatAdded(item))
	}

	result := uc.complete(ctx, msg, payload)
	body := result.Render()

	if result.Kind == completion.ResultText {
		if tail := uc.captureSuggestions(ctx, result.Body, types.ChannelID(msg.ChannelID())); tail != "" {
			body += tail
		}
	}

	return reply(body)
}

func (uc *UseCases) complete(ctx context.Context, msg *slackmodel.Message, payload string) *completion.Result {
	if uc.completion == nil {
		return &completion.Result{Kind: completion.ResultUnavailable}
	}

	prompt := fmt.Sprintf("Channel: %s\nUser: %s\nMessage:\n%s\n\n"+
		"Respond with a short plan. If you propose agenda items, also include lines like:\n"+
		"[agenda] Task title | YYYY-MM-DD HH:mm",
		msg.ChannelID(), msg.UserID(), payload)

	return uc.completion.Complete(ctx, prompt)
}

// captureSuggestions inserts every well-formed suggestion line from the model
// reply, top to bottom, and renders the summary tail. Lines whose due string
// fails to parse are dropped without user-visible notice; the surrounding
// reply is still useful to the reader.
func (uc *UseCases) captureSuggestions(ctx context.Context, body string, channelID types.ChannelID) string {
	logger := logging.From(ctx)

	var added []string
	for _, c := range extract.SuggestionCandidates(body) {
		item, err := uc.AddAgendaItem(ctx, c.Title, c.DueRaw, channelID, "")
		if err != nil {
			logger.Debug("dropping malformed agenda suggestion",
				"title", c.Title,
				"due_raw", c.DueRaw,
				"error", err.Error(),
			)
			continue
		}
		added = append(added, fmt.Sprintf("%s (added)", agendaBullet(item)))
	}

	if len(added) == 0 {
		return ""
	}

	return "\n\n🗓️ I added:\n" + strings.Join(added, "\n") + "\n(Use `/razl agenda list` to view.)"
}

// stripMention checks that the message explicitly addresses the assistant at
// its start, either by the canonical <@UID> form or by one of the persona's
// nickname forms, and returns the remaining payload. Messages that do not
// open with a mention are not for us.
func stripMention(text, botUserID string, persona *model.Persona) (string, bool) {
	t := strings.TrimSpace(text)

	canonical := "<@" + botUserID + ">"
	if strings.HasPrefix(t, canonical) {
		return strings.TrimSpace(strings.TrimLeft(strings.TrimPrefix(t, canonical), ":, ")), true
	}

	if persona == nil {
		return "", false
	}

	for _, form := range persona.MentionForms() {
		rest, ok := stripNameForm(t, form)
		if !ok {
			continue
		}
		// The name must stand alone: end of message or a separator
		if rest != "" && !strings.ContainsAny(rest[:1], " \t:,") {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(rest, ":, \t")), true
	}

	return "", false
}

// stripNameForm returns the remainder of t after a leading case-folded match
// of form. The comparison is rune by rune; byte offsets of the lowercased
// form do not line up with t when folding changes rune widths.
func stripNameForm(t, form string) (string, bool) {
	rest := t
	for _, want := range form {
		got, size := utf8.DecodeRuneInString(rest)
		if size == 0 || unicode.ToLower(got) != want {
			return "", false
		}
		rest = rest[size:]
	}
	return rest, true
}
