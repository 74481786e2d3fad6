package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/djzager/assisted-installer-deployment/pkg/collector"
	"github.com/djzager/assisted-installer-deployment/pkg/config"
	"github.com/djzager/assisted-installer-deployment/pkg/credentials"
	"github.com/djzager/assisted-installer-deployment/pkg/jira"
	"github.com/djzager/assisted-installer-deployment/pkg/logger"
	"github.com/djzager/assisted-installer-deployment/pkg/report"
	"github.com/djzager/assisted-installer-deployment/pkg/slackbot"
	"github.com/djzager/assisted-installer-deployment/pkg/trace"
	"github.com/djzager/assisted-installer-deployment/pkg/triage"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg := config.New()

	rootCmd := &cobra.Command{
		Use:          "triage-ticket-bot",
		Short:        "Create Jira triage tickets for failed cluster installations",
		Long:         "triage-ticket-bot lists failure bundles from the assisted-logs-collector,\nfiles a Jira triage ticket for every unhandled failure, and optionally\ncloses tickets matching known failure-signature rules.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.NetrcFile, "netrc", cfg.NetrcFile, "netrc file with jira credentials")
	flags.StringVarP(&cfg.UserPassword, "user-password", "u", "", "jira credentials in user:pass format")
	flags.BoolVarP(&cfg.All, "all", "a", false, fmt.Sprintf("create triage tickets for all failures, not just the past %d days", config.DefaultDaysToHandle))
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "output verbose logging")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "log what would be created without touching jira")
	flags.StringVar(&cfg.FiltersJSON, "filters-json", cfg.FiltersJSON, "json rules file ({signature_type: {root_issue: message}}) used to close matching tickets at the end of the run; empty disables closing")
	rootCmd.MarkFlagsMutuallyExclusive("netrc", "user-password")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var log *logger.Logger
	var err error
	if cfg.Verbose {
		log, err = logger.NewDevelopment()
	} else {
		log, err = logger.New()
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	shutdown, err := trace.Initialize(ctx, "triage-ticket-bot")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// Credentials are resolved before any network call; a malformed
	// user:pass or missing netrc entry halts the run here.
	var creds credentials.Credentials
	if cfg.UserPassword != "" {
		creds, err = credentials.FromUserPassword(cfg.UserPassword)
	} else {
		var host string
		host, err = cfg.JiraHost()
		if err == nil {
			creds, err = credentials.FromNetrc(cfg.NetrcFile, host)
		}
	}
	if err != nil {
		return err
	}
	log.Info("log-in with username", zap.String("username", creds.Username))

	jc := jira.NewClient(cfg.JiraURL, creds.Username, creds.Password, jira.WithLogger(log.Logger))
	coll := collector.NewClient(cfg.CollectorURL, collector.WithLogger(log.Logger))

	notifier := slackbot.NewNoopNotifier()
	if cfg.SlackEnabled() {
		notifier = slackbot.NewNotifier(cfg.SlackBotToken, cfg.SlackChannel, log.Logger)
	}

	runner := triage.NewRunner(cfg, jc, coll, notifier, creds.Username, log)
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	chartPath := ""
	if len(result.FailureDates) > 0 {
		p := filepath.Join(cfg.TmpDir, "triage-failures.png")
		switch err := report.Render(p, result.FailureDates); {
		case errors.Is(err, report.ErrNotEnoughData):
			log.Debug("skipping run chart", zap.Error(err))
		case err != nil:
			log.Warn("failed to render run chart", zap.Error(err))
		default:
			chartPath = p
		}
	}
	if err := notifier.RunSummary(ctx, len(result.Created), result.SkippedExisting, chartPath); err != nil {
		log.Warn("slack run summary failed", zap.Error(err))
	}

	log.Info("triage run complete",
		zap.Int("created", len(result.Created)),
		zap.Int("alreadyTicketed", result.SkippedExisting),
		zap.Int("failuresInWindow", len(result.FailureDates)),
	)
	return nil
}
