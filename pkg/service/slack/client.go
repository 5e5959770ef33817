package slack

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api *slack.Client

	mu        sync.Mutex
	botUserID string
}

// New creates a new Slack service with the provided bot token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &client{
		api: slack.New(token),
	}, nil
}

// GetBotUserID returns the bot's own user ID, resolved once via auth.test
// and cached for the process lifetime.
func (c *client) GetBotUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.botUserID != "" {
		return c.botUserID, nil
	}

	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call auth.test")
	}

	c.botUserID = resp.UserID
	return c.botUserID, nil
}

// PostThreadReply posts a reply into an existing thread
func (c *client) PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post thread reply",
			goerr.V("channel_id", channelID),
			goerr.V("thread_ts", threadTS),
		)
	}
	return ts, nil
}
