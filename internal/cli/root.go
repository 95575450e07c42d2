// Package cli provides the stormreport command-line interface.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
)

// app bundles the dependencies every subcommand starts from.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	runID   string
}

// NewRootCmd creates the stormreport root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stormreport",
		Short: "Storm Events health and economic impact report",
		Long: `stormreport is a one-shot analysis of the NOAA Storm Events database.
It downloads the compressed archive when missing, cleans and categorizes
every record, and reports per-category health and economic impact. A parsed
snapshot is cached in SQLite so repeat runs skip the parse.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "path to config file (default: ./stormreport.yaml if present)")
	pf.String("data-dir", "", "directory for the raw archive and snapshot cache")
	pf.String("source-url", "", "archive download URL")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: json or text")

	root.AddCommand(newReportCmd(), newFetchCmd(), newExportCmd())
	return root
}

// newApp loads config (flags included) and builds the shared dependencies.
func newApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Root().PersistentFlags()
	cfgFile, _ := flags.GetString("config")

	cfg, err := config.Load(cfgFile, flags)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	runID := uuid.NewString()
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat).With("run_id", runID)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: observability.NewMetrics(),
		runID:   runID,
	}, nil
}

// pushMetrics ships run metrics to the configured Pushgateway, if any.
// Failures are logged, never fatal.
func (a *app) pushMetrics() {
	if err := a.metrics.Push(a.cfg.PushgatewayURL, a.runID); err != nil {
		a.logger.Warn("metrics push failed", "error", err)
	}
}
