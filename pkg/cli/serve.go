package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/clover4media/razl/pkg/cli/config"
	httpctrl "github.com/clover4media/razl/pkg/controller/http"
	"github.com/clover4media/razl/pkg/repository/memory"
	"github.com/clover4media/razl/pkg/service/completion"
	"github.com/clover4media/razl/pkg/usecase"
	"github.com/clover4media/razl/pkg/utils/logging"
	"github.com/clover4media/razl/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var slackCfg config.Slack
	var openaiCfg config.OpenAI
	var personaCfg config.Persona

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RAZL_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)
	flags = append(flags, personaCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the assistant HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			persona, err := personaCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load persona")
			}

			// The platform credential is the only fatal configuration
			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack")
			}
			logging.Default().Info("Slack service enabled", "slack", slackCfg)

			llmClient, err := openaiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure OpenAI client")
			}
			if llmClient == nil {
				logging.Default().Warn("OpenAI API key not configured, completion replies will degrade", "openai", openaiCfg)
			} else {
				logging.Default().Info("Completion service enabled", "openai", openaiCfg)
			}

			completionSvc, err := completion.New(llmClient, persona)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize completion service")
			}

			// All agenda state lives in this one store for the process lifetime
			repo := memory.New()
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo,
				usecase.WithSlackService(slackSvc),
				usecase.WithCompletion(completionSvc),
				usecase.WithPersona(persona),
			)

			var httpOpts []httpctrl.Options
			if slackCfg.IsWebhookConfigured() {
				httpOpts = append(httpOpts,
					httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(uc), slackCfg.SigningSecret()),
					httpctrl.WithSlackCommand(httpctrl.NewSlackCommandHandler(uc)),
				)
				logging.Default().Info("Slack webhook and command endpoints enabled")
			} else {
				// Registration failure is not fatal; the process stays up
				// even though no inbound Slack traffic can be verified
				logging.Default().Error("Slack signing secret not configured, inbound Slack endpoints disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
