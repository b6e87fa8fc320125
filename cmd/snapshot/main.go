// Command snapshot fetches both webhooks once and prints the dashboard as a
// plain-text report.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/okian/govdash/internal/app"
	"github.com/okian/govdash/internal/config"
	"github.com/okian/govdash/internal/snapshot"
	"github.com/okian/govdash/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		sections   []string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the government tracking dashboard as plain text",
		Long: "snapshot fetches the executive order and congressional summary webhooks once,\n" +
			"assembles the dashboard and writes it to stdout. Logs go to stderr.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected, err := snapshot.ParseSections(sections)
			if err != nil {
				return err
			}
			if configPath == "" {
				configPath = os.Getenv(config.EnvConfigPath)
			}
			cfg, err := config.LoadFile(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return run(cmd.Context(), cfg, selected, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (default $"+config.EnvConfigPath+")")
	cmd.Flags().StringSliceVarP(&sections, "section", "s", nil,
		"sections to print: metrics, charts, eo, congress or all (repeatable, default all)")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, sections []string, stdout, stderr io.Writer) error {
	if err := logger.InitWith(stderr, cfg.LogFormat); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Named("snapshot")

	svc := app.New(
		app.WithLogger(log),
		app.WithTitle(cfg.Title),
		app.WithEOSummariesURL(cfg.EOSummariesURL),
		app.WithCongressSummariesURL(cfg.CongressSummariesURL),
		app.WithCacheTTL(cfg.CacheTTL()),
		app.WithCacheCleanupInterval(cfg.CacheCleanupInterval()),
		app.WithFetchTimeout(cfg.FetchTimeout()),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	d, err := svc.Dashboard(ctx)
	if err != nil {
		log.Error(ctx, "snapshot failed", logger.Error(err))
		return err
	}
	log.Debug(ctx, "snapshot assembled", logger.Int("sections", len(sections)))
	return snapshot.Write(stdout, d, sections)
}
