package slack

import (
	"time"

	"github.com/slack-go/slack/slackevents"
)

// Message is the inbound free-text event the dispatcher consumes
type Message struct {
	channelID  string
	threadTS   string
	userID     string
	text       string
	eventTS    string
	appMention bool
	createdAt  time.Time
}

// NewMessage creates a Message from a Slack Events API callback event.
// Only app_mention and message events carry free text; anything else
// yields nil and is skipped by the caller.
func NewMessage(ev *slackevents.EventsAPIEvent) *Message {
	if ev.Type != slackevents.CallbackEvent {
		return nil
	}

	now := time.Now()

	switch evt := ev.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		return &Message{
			channelID:  evt.Channel,
			threadTS:   evt.ThreadTimeStamp,
			userID:     evt.User,
			text:       evt.Text,
			eventTS:    evt.EventTimeStamp,
			appMention: true,
			createdAt:  now,
		}
	case *slackevents.MessageEvent:
		// Bot messages and edits never trigger the assistant
		if evt.BotID != "" || evt.SubType != "" {
			return nil
		}
		threadTS := ""
		if evt.ThreadTimeStamp != "" && evt.ThreadTimeStamp != evt.TimeStamp {
			threadTS = evt.ThreadTimeStamp
		}
		return &Message{
			channelID: evt.Channel,
			threadTS:  threadTS,
			userID:    evt.User,
			text:      evt.Text,
			eventTS:   evt.EventTimeStamp,
			createdAt: now,
		}
	default:
		return nil
	}
}

// NewMessageFromFields creates a Message from raw fields (for tests)
func NewMessageFromFields(channelID, threadTS, userID, text, eventTS string, appMention bool) *Message {
	return &Message{
		channelID:  channelID,
		threadTS:   threadTS,
		userID:     userID,
		text:       text,
		eventTS:    eventTS,
		appMention: appMention,
		createdAt:  time.Now(),
	}
}

func (m *Message) ChannelID() string {
	return m.channelID
}

func (m *Message) ThreadTS() string {
	return m.threadTS
}

func (m *Message) UserID() string {
	return m.userID
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) EventTS() string {
	return m.eventTS
}

// IsAppMention reports whether the event arrived on the app_mention
// subscription rather than as a plain channel message
func (m *Message) IsAppMention() bool {
	return m.appMention
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}
