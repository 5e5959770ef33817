package slack

import "context"

// Service provides Slack Web API operations used by the dispatcher
type Service interface {
	// GetBotUserID returns the bot's own user ID, used to recognize the
	// canonical mention form and to skip the bot's own messages
	GetBotUserID(ctx context.Context) (string, error)

	// PostThreadReply posts a reply into an existing thread and returns
	// its timestamp
	PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error)
}
