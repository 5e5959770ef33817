package config

import (
	"log/slog"

	slacksvc "github.com/clover4media/razl/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration for the Slack surface
type Slack struct {
	botToken      string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (required)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("RAZL_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("RAZL_SLACK_SIGNING_SECRET"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
	)
}

// SigningSecret returns the webhook signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// IsWebhookConfigured reports whether inbound Slack endpoints can be enabled
func (x *Slack) IsWebhookConfigured() bool {
	return x.signingSecret != ""
}

// Configure creates the Slack service. The bot token is the one credential
// the process cannot run without; a missing token aborts startup.
func (x *Slack) Configure() (slacksvc.Service, error) {
	if x.botToken == "" {
		return nil, goerr.New("slack-bot-token is required")
	}

	svc, err := slacksvc.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}

	return svc, nil
}
