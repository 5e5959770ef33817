package completion

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/clover4media/razl/pkg/domain/model"
	"github.com/clover4media/razl/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/system.md
var systemPromptTmpl string

var systemPrompt = template.Must(template.New("system").Parse(systemPromptTmpl))

// Service sends a conversational context to the completion service and
// returns its best-effort reply as one of the closed Result variants.
type Service interface {
	Complete(ctx context.Context, prompt string) *Result
}

// Client is the gollem-backed implementation. A nil LLM client is a valid
// configuration meaning no credential was provided; every call then yields
// ResultUnavailable instead of an error.
type Client struct {
	llm    gollem.LLMClient
	system string
}

var _ Service = &Client{}

// New creates a completion client for the given persona. The system prompt
// instructs the remote model to emit agenda suggestions in the
// "[agenda] Title | YYYY-MM-DD HH:mm" convention; whether the model complies
// is checked downstream by the extraction grammar, not here.
func New(llm gollem.LLMClient, persona *model.Persona) (*Client, error) {
	if persona == nil {
		persona = model.DefaultPersona()
	}

	var buf bytes.Buffer
	if err := systemPrompt.Execute(&buf, persona); err != nil {
		return nil, goerr.Wrap(err, "failed to render completion system prompt")
	}

	return &Client{
		llm:    llm,
		system: buf.String(),
	}, nil
}

// Complete performs exactly one request/response exchange. There is no retry
// and no explicit timeout beyond the caller's context; a failure surfaces
// once as a degraded Result, never as an error.
func (c *Client) Complete(ctx context.Context, prompt string) *Result {
	if c.llm == nil {
		return &Result{Kind: ResultUnavailable}
	}

	ssn, err := c.llm.NewSession(ctx, gollem.WithSessionSystemPrompt(c.system))
	if err != nil {
		logging.From(ctx).Warn("failed to open completion session", "error", err.Error())
		return &Result{Kind: ResultNetworkFailure}
	}

	resp, err := ssn.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		logging.From(ctx).Warn("completion request failed", "error", err.Error())
		return &Result{Kind: ResultNetworkFailure}
	}

	body := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if body == "" {
		return &Result{Kind: ResultEmptyResponse}
	}

	return &Result{Kind: ResultText, Body: body}
}
