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

	"github.com/arkade-store/stockroom/pkg/cli/config"
	httpctrl "github.com/arkade-store/stockroom/pkg/controller/http"
	"github.com/arkade-store/stockroom/pkg/service/notifier"
	"github.com/arkade-store/stockroom/pkg/service/push"
	"github.com/arkade-store/stockroom/pkg/service/worker"
	"github.com/arkade-store/stockroom/pkg/usecase"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var secret string
	var configPath string
	var campaignInterval time.Duration
	var campaignMaxAttempts int
	var repoCfg config.Repository
	var mailCfg config.Mail
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("STOCKROOM_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "api-secret",
			Usage:       "Shared secret required on action requests (empty disables the check)",
			Sources:     cli.EnvVars("STOCKROOM_API_SECRET"),
			Destination: &secret,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML application config (item categories)",
			Sources:     cli.EnvVars("STOCKROOM_CONFIG"),
			Destination: &configPath,
		},
		&cli.DurationFlag{
			Name:        "campaign-interval",
			Usage:       "Retry cadence for task notification campaigns",
			Value:       notifier.DefaultInterval,
			Sources:     cli.EnvVars("STOCKROOM_CAMPAIGN_INTERVAL"),
			Destination: &campaignInterval,
		},
		&cli.IntFlag{
			Name:        "campaign-max-attempts",
			Usage:       "Attempt budget for task notification campaigns",
			Value:       notifier.DefaultMaxAttempts,
			Sources:     cli.EnvVars("STOCKROOM_CAMPAIGN_MAX_ATTEMPTS"),
			Destination: &campaignMaxAttempts,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, mailCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sentryCloser, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure error reporting")
			}
			defer sentryCloser()

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithCampaign(campaignInterval, campaignMaxAttempts),
			}

			// Item categories from the TOML config file
			if configPath != "" {
				appCfg, err := config.LoadAppConfiguration(configPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load application config")
				}
				ucOpts = append(ucOpts, usecase.WithCategories(appCfg.CategoryNames()))
				logging.Default().Info("Item categories restricted",
					"categories", appCfg.CategoryNames())
			}

			mailSvc, err := mailCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure mail service")
			}
			if mailSvc != nil {
				ucOpts = append(ucOpts, usecase.WithMail(mailSvc))
				logging.Default().Info("Mail service enabled")
			} else {
				logging.Default().Info("SMTP not configured, alert and notice emails are disabled")
			}

			pushSvc := push.New()
			notifierSvc := notifier.New(repo, pushSvc)
			ucOpts = append(ucOpts,
				usecase.WithPush(pushSvc),
				usecase.WithNotifier(notifierSvc),
			)

			uc := usecase.New(repo, ucOpts...)

			// Campaign ticks are driven by a single worker so re-notification
			// keeps running regardless of request traffic
			campaignWorker := worker.NewCampaignTickWorker(notifierSvc, campaignInterval)
			if err := campaignWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start campaign tick worker")
			}

			var httpOpts []httpctrl.Options
			if secret != "" {
				httpOpts = append(httpOpts, httpctrl.WithSecret(secret))
			} else {
				logging.Default().Warn("api-secret not set, action requests are unauthenticated")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				campaignWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				campaignWorker.Stop()

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
