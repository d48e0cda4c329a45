package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ledger/internal/backend"
	"ledger/internal/cli"
	"ledger/internal/config"
	"ledger/internal/console"
	applog "ledger/internal/log"
	"ledger/internal/ports"
	"ledger/internal/report"
	"ledger/internal/services"
	gsheet "ledger/internal/sheets/google"
)

func main() {
	loadPath := flag.String("load", "", "CSV file to load before showing the menu")
	sheetsExport := flag.Bool("sheets-export", false, "mirror the ledger to Google Sheets after each CSV export")
	flag.Parse()

	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(logLevel(cfg))
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext()
	defer stop()
	ctx = applog.WithContext(ctx, logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", "error", err)
		}
	}()

	var exporter ports.LedgerExporter
	if *sheetsExport {
		exporter = newSheetsExporter(ctx, cfg, logger)
	}

	var charts report.ChartSink
	if cfg.Charts {
		charts = report.NewTerminalSink(os.Stdout)
	}

	svc := services.NewLedgerService(res.Store, res.Publisher, exporter, report.NewRenderer(os.Stdout, charts))

	if err := preload(ctx, svc, *loadPath); err != nil {
		logger.Error("Failed to load startup file", "error", err, "path", *loadPath)
		res.Cleanup()
		os.Exit(1)
	}

	logger.Info("Starting ledger console", "backend", cfg.Backend, "sheets_export", exporter != nil)
	if err := console.New(svc, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Console stopped", "error", err)
		os.Exit(1)
	}
}

type csvLoader interface {
	LoadCSV(ctx context.Context, path string) error
}

// preload loads the -load file before the menu starts. An empty path is a
// no-op.
func preload(ctx context.Context, l csvLoader, path string) error {
	if path == "" {
		return nil
	}
	if err := l.LoadCSV(ctx, path); err != nil {
		return fmt.Errorf("preload %s: %w", path, err)
	}
	return nil
}

func logLevel(cfg *config.Config) string {
	if cfg == nil {
		return os.Getenv("LOG_LEVEL")
	}
	return cfg.LogLevel
}

// newSheetsExporter returns nil when the spreadsheet is not configured or
// the client cannot be built, so CSV export keeps working on its own.
func newSheetsExporter(ctx context.Context, cfg *config.Config, logger *applog.Logger) ports.LedgerExporter {
	if !cfg.SheetsEnabled() {
		logger.Warn("Sheets export requested but GOOGLE_SPREADSHEET_ID is not set")
		return nil
	}
	client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, gsheet.Credentials{
		JSON: cfg.GoogleServiceAccountJSON,
		File: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		logger.Warn("Failed to initialize Google Sheets client, export stays local", "error", err)
		return nil
	}
	return client
}
