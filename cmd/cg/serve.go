package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/checkgate/internal/config"
	"github.com/zulandar/checkgate/internal/digest"
	"github.com/zulandar/checkgate/internal/issues"
	"github.com/zulandar/checkgate/internal/notify"
	"github.com/zulandar/checkgate/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Checkgate API server",
		Long:  "Serves the JSON API, announces phase transitions to configured chat channels, and sends the daily digest on schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().IntVar(&port, "port", 0, "override the configured port")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}
	if notifier.Len() > 0 {
		fmt.Fprintf(out, "Notifications enabled on %d platform(s)\n", notifier.Len())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reporter *issues.Reporter
	if cfg.GitHub.Token != "" {
		reporter, err = issues.NewReporter(ctx, issues.ReporterOpts{
			Token: cfg.GitHub.Token,
			Owner: cfg.GitHub.Owner,
			Repo:  cfg.GitHub.Repo,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Filing failed validations to %s/%s\n", cfg.GitHub.Owner, cfg.GitHub.Repo)
	}

	if cfg.Server.DigestCron != "" {
		if !digest.ValidCron(cfg.Server.DigestCron) {
			return fmt.Errorf("server.digest_cron %q is not a valid 5-field cron expression", cfg.Server.DigestCron)
		}
		go digest.NewScheduler(gormDB, notifier, cfg.Server.DigestCron).Run(ctx)
		fmt.Fprintf(out, "Daily digest scheduled: %s\n", cfg.Server.DigestCron)
	}

	return server.Start(ctx, server.StartOpts{
		DB:       gormDB,
		Port:     port,
		Out:      out,
		Notifier: notifier,
		Reporter: reporter,
	})
}

// buildNotifier assembles the fanout from whichever platforms are configured.
func buildNotifier(cfg *config.Config) (*notify.Fanout, error) {
	var notifiers []notify.Notifier

	if cfg.Notify.Slack.BotToken != "" {
		s, err := notify.NewSlack(notify.SlackOpts{
			BotToken: cfg.Notify.Slack.BotToken,
			Channel:  cfg.Notify.Slack.Channel,
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, s)
	}

	if cfg.Notify.Discord.BotToken != "" {
		d, err := notify.NewDiscord(notify.DiscordOpts{
			BotToken:  cfg.Notify.Discord.BotToken,
			ChannelID: cfg.Notify.Discord.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, d)
	}

	return notify.NewFanout(notifiers...), nil
}
