// Package cli provides the process start-up helpers shared by the ledger
// command: logging, environment and configuration, and signal handling.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"ledger/internal/config"
	applog "ledger/internal/log"
)

// SetupLogger initializes structured logging at the given level and installs
// it as the default logger. An unknown level falls back to warn and is
// reported once the logger exists.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	lvl, ok := applog.ParseLevel(level)
	cfg.Level = lvl

	logger := applog.New(cfg)
	applog.SetDefault(logger)
	if !ok && level != "" {
		logger.Warn("Unknown log level, using warn", "level", level)
	}
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
