package main

import (
	"fmt"
	"log/slog"
	"os"

	"benlabs/caliper/pkg/cli"
	"benlabs/caliper/pkg/config"
	"benlabs/caliper/pkg/telemetry/logging"
)

// loadConfig loads and validates configuration from the --config flag,
// falling back to .caliper.yaml and then built-in defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg, nil
}

// newLogger builds the structured logger from config. The --verbose
// flag lowers the level to debug. CLI logs go to stderr so stdout
// stays clean for reports.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logCfg := logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	return logging.New(logCfg)
}
