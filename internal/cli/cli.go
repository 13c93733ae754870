package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/eventsync/internal/config"
	"github.com/pfrederiksen/eventsync/internal/crm"
	"github.com/pfrederiksen/eventsync/internal/extract"
	"github.com/pfrederiksen/eventsync/internal/fetch"
	"github.com/pfrederiksen/eventsync/internal/pipeline"
	"github.com/pfrederiksen/eventsync/internal/source"
	"github.com/pfrederiksen/eventsync/internal/storage"
	"github.com/pfrederiksen/eventsync/internal/syncer"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitSyncFailed = 2
)

var (
	flagLocation string
	flagMonth    string
	flagYear     int
	flagConfig   string
	flagFormat   string
	flagDryRun   bool
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventsync",
		Short: "Aggregate event listings for a location and sync them to a CRM",
		Long: `Aggregates event listings for a location and month from multiple web
sources, consolidates them into a canonical deduplicated set, and
synchronizes that set into the configured external record system.`,
		SilenceUsage: true,
		RunE:         runSync,
	}

	cmd.Flags().StringVar(&flagLocation, "location", "", "Location name, e.g. 'Austin' (required)")
	cmd.Flags().StringVar(&flagMonth, "month", "", "Month name, e.g. 'January' (required)")
	cmd.Flags().IntVar(&flagYear, "year", 0, "4-digit year (required)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Log intended CRM writes without performing them")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.MarkFlagRequired("location")
	cmd.MarkFlagRequired("month")
	cmd.MarkFlagRequired("year")

	return cmd
}

// runSync is the main command logic
func runSync(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel, flagVerbose)

	if cfg.AI.APIToken == "" {
		return fmt.Errorf("extraction engine requires OPENROUTER_API_KEY")
	}

	var crmClient crm.Client
	if flagDryRun {
		crmClient = crm.NewDryRunClient(logger)
	} else {
		if cfg.CRM.BaseURL == "" || cfg.CRM.APIToken == "" {
			return fmt.Errorf("CRM sync requires CRM_BASE_URL and CRM_API_TOKEN (or --dry-run)")
		}
		crmClient = crm.NewRESTClient(cfg.CRM.BaseURL, cfg.CRM.APIToken, cfg.CRM.Timeout())
	}

	deps := source.Deps{
		Fetcher: fetch.NewHTTPFetcher(cfg.Sources.Timeout()),
		Engine:  extract.NewOpenRouterEngine(logger, cfg.AI.APIToken, cfg.AI.Model),
		Timeout: cfg.Sources.Timeout(),
	}

	runner := source.NewRunner(logger, source.Options{
		Delay:      cfg.Sources.Delay(),
		Concurrent: cfg.Sources.Concurrent,
	})

	p := pipeline.New(logger, runner, source.DefaultAdapters(deps), syncer.New(logger, crmClient, cfg.Sync.MaxRetries))

	report := p.Run(context.Background(), flagLocation, flagMonth, flagYear)

	if cfg.DataDir != "" {
		store, err := storage.New(cfg.DataDir)
		if err != nil {
			logger.Warn("report persistence unavailable", slog.String("error", err.Error()))
		} else if err := store.SaveReport(report); err != nil {
			logger.Warn("saving report failed", slog.String("error", err.Error()))
		}
	}

	if err := WriteReport(os.Stdout, report, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !report.Success {
		os.Exit(ExitSyncFailed)
	}
	os.Exit(ExitSuccess)

	return nil
}

// newLogger builds the JSON logger all components share.
func newLogger(level string, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
