package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dimiro1/banner"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/0xPuncker/taskboard/internal/api"
	"github.com/0xPuncker/taskboard/internal/config"
	"github.com/0xPuncker/taskboard/internal/cron"
	"github.com/0xPuncker/taskboard/internal/notifications"
)

const bannerText = `
{{ .Title "Taskboard" "" 0 }}
{{ .AnsiBackground.BrightBlue }}{{ .AnsiColor.White }}
{{ .AnsiReset }}
`

const regenerateJob = "regenerate-board"

func newServeCmd(flags *rootFlags) *cobra.Command {
	var noServer bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Regenerate the board on a schedule and serve a local preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			banner.Init(colorable.NewColorableStdout(), true, true, strings.NewReader(bannerText))

			logger := newLogger(flags.logLevel)

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			gen, err := newGenerator(cfg, logger)
			if err != nil {
				return err
			}

			var notifier *notifications.NotificationService
			if cfg.Notifications.SlackWebhookURL != "" {
				slack, err := notifications.NewSlackService(logger, cfg.Notifications.SlackWebhookURL)
				if err != nil {
					return err
				}
				notifier = notifications.NewNotificationService(slack)
			}

			scheduler := cron.NewScheduler(logger)
			err = scheduler.AddJob(regenerateJob, cfg.Schedule.Expr, func(ctx context.Context) error {
				start := time.Now()
				res, err := gen.Run(ctx)
				if notifier != nil {
					report := notifications.NewRunReport(regenerateJob, res, err, time.Since(start))
					if _, nerr := notifier.NotifyRun(ctx, report); nerr != nil {
						logger.Errorf("Failed to send Slack notification: %v", nerr)
					}
				}
				return err
			})
			if err != nil {
				return err
			}

			if err := scheduler.Trigger(regenerateJob); err != nil {
				return err
			}
			if err := scheduler.Start(); err != nil {
				return err
			}
			defer scheduler.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if noServer {
				logger.Infof("Regenerating on %q - Press Ctrl+C to stop.", cfg.Schedule.Expr)
				<-ctx.Done()
				logger.Info("Shutting down...")
				return nil
			}

			handler := api.NewHandler(logger, gen, scheduler, outputDir(cfg))
			err = api.Serve(ctx, handler, api.ServerOptions{
				Port:         cfg.Server.Port,
				ReadTimeout:  config.Duration(cfg.Server.ReadTimeout, 0),
				WriteTimeout: config.Duration(cfg.Server.WriteTimeout, 0),
			})
			logger.Info("Server stopped")
			return err
		},
	}

	cmd.Flags().BoolVar(&noServer, "no-server", false, "only regenerate, do not start the preview server")
	return cmd
}
