package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// OpenAI holds configuration for the completion service client
type OpenAI struct {
	apiKey string
	model  string
}

// Flags returns CLI flags for OpenAI configuration
func (x *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key (completion features degrade when unset)",
			Category:    "Completion",
			Sources:     cli.EnvVars("RAZL_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &x.apiKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI model for completions",
			Category:    "Completion",
			Value:       "gpt-4o-mini",
			Sources:     cli.EnvVars("RAZL_OPENAI_MODEL"),
			Destination: &x.model,
		},
	}
}

func (x OpenAI) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api-key.len", len(x.apiKey)),
		slog.String("model", x.model),
	)
}

// Configure creates the completion LLM client from the configured flags.
// Returns nil when no API key is configured; the completion path then
// degrades to a fixed apology instead of aborting startup.
func (x *OpenAI) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if x.apiKey == "" {
		return nil, nil
	}

	client, err := openai.New(ctx, x.apiKey, openai.WithModel(x.model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client")
	}

	return client, nil
}
