package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"benlabs/caliper/pkg/cli"
	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/lint/rules"
	"benlabs/caliper/pkg/server"
	"benlabs/caliper/pkg/telemetry/health"
	"benlabs/caliper/pkg/telemetry/metrics"
	"benlabs/caliper/pkg/telemetry/tracing"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo server",
	Long: `Start the demo server.

The server exposes the linter over HTTP (POST /api/lint), the rule
catalog (GET /api/rules) and a WebSocket oscilloscope stream
(/api/oscilloscope/stream), plus health, readiness and Prometheus
metrics endpoints.

Examples:
  # Start with default config
  caliper serve

  # Start with custom config
  caliper serve --config /etc/caliper/config.yaml

  # Override listen address
  caliper serve --listen 0.0.0.0:8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	tracer, err := tracing.New(tracing.Config{
		Enabled:     cfg.Telemetry.Tracing.Enabled,
		Endpoint:    cfg.Telemetry.Tracing.Endpoint,
		SampleRatio: cfg.Telemetry.Tracing.SampleRatio,
		Version:     Version,
	})
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("initializing tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Error("tracer shutdown", "error", err)
		}
	}()

	collector := metrics.NewCollector(metrics.Config{
		Enabled:   cfg.Telemetry.Metrics.Enabled,
		Namespace: cfg.Telemetry.Metrics.Namespace,
	})

	registry := rules.DefaultRegistry()
	opts, err := cfg.LintOptions()
	if err != nil {
		return cli.NewConfigError("lint", err.Error())
	}
	runner := lint.NewRunner(registry, opts,
		lint.WithLogger(logger),
		lint.WithRecorder(collector),
	)

	checker := health.New(5 * time.Second)
	checker.Register("rule_catalog", func(ctx context.Context) error {
		if len(registry.Rules()) == 0 {
			return fmt.Errorf("no rules registered")
		}
		return nil
	})

	srv, err := server.New(cfg.Server, server.Deps{
		Logger:      logger,
		Metrics:     collector,
		Checker:     checker,
		Runner:      runner,
		Registry:    registry,
		MetricsPath: cfg.Telemetry.Metrics.Path,
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	ctx := cli.SetupSignalHandler()
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}
