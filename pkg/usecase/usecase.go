package usecase

import (
	"time"

	"github.com/clover4media/razl/pkg/domain/interfaces"
	"github.com/clover4media/razl/pkg/domain/model"
	"github.com/clover4media/razl/pkg/service/completion"
	"github.com/clover4media/razl/pkg/service/slack"
)

// UseCases routes inbound commands and mention events to the agenda store,
// the extraction grammars, and the completion service. It holds no state of
// its own beyond the injected repository handle.
type UseCases struct {
	repo       interfaces.Repository
	slackSvc   slack.Service
	completion completion.Service
	persona    *model.Persona
	now        func() time.Time
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithSlackService sets the Slack service for posting replies
func WithSlackService(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slackSvc = svc
	}
}

// WithCompletion sets the completion service
func WithCompletion(svc completion.Service) Option {
	return func(uc *UseCases) {
		uc.completion = svc
	}
}

// WithPersona sets the assistant persona
func WithPersona(p *model.Persona) Option {
	return func(uc *UseCases) {
		uc.persona = p
	}
}

// WithClock overrides the wall clock (for tests)
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// New creates a new UseCases instance
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		persona: model.DefaultPersona(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
