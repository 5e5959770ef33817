package http

import (
	"net/http"
	"time"

	"github.com/clover4media/razl/pkg/utils/logging"
	"github.com/clover4media/razl/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router             *chi.Mux
	webhookHandler     *SlackWebhookHandler
	commandHandler     *SlackCommandHandler
	slackSigningSecret string
}

type Options func(*Server)

// WithSlackWebhook enables the Events API endpoint
func WithSlackWebhook(handler *SlackWebhookHandler, signingSecret string) Options {
	return func(s *Server) {
		s.webhookHandler = handler
		s.slackSigningSecret = signingSecret
	}
}

// WithSlackCommand enables the slash-command endpoint
func WithSlackCommand(handler *SlackCommandHandler) Options {
	return func(s *Server) {
		s.commandHandler = handler
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("ok"))
	})

	// Slack endpoints use signature verification, no other auth
	if s.webhookHandler != nil || s.commandHandler != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))

			if s.webhookHandler != nil {
				r.Post("/event", s.webhookHandler.ServeHTTP)
			}
			if s.commandHandler != nil {
				r.Post("/command", s.commandHandler.ServeHTTP)
			}
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
