package main

import (
	"context"
	"errors"
	"os"

	"ledger/internal/amqp"
	"ledger/internal/cli"
	gsheet "ledger/internal/sheets/google"
	"ledger/internal/storage"
	"ledger/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	logLevel := os.Getenv("LOG_LEVEL")
	if cfg != nil {
		logLevel = cfg.LogLevel
	}
	logger := cli.SetupLogger(logLevel)
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting ledger-worker")

	if cfg.Backend != "sqlite" {
		logger.Error("ledger-worker requires the sqlite backend", "backend", cfg.Backend)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" || !cfg.SheetsEnabled() {
		logger.Error("ledger-worker requires AMQP_URL and GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	sheetsClient, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, gsheet.Credentials{
		JSON: cfg.GoogleServiceAccountJSON,
		File: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.PublishTimeout)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, sheetsClient)

	// Catch up with changes made while the worker was down.
	if err := syncWorker.Sync(ctx); err != nil {
		logger.Error("Failed startup sync", "error", err)
	}

	if err := amqpClient.ConsumeEvents(ctx, syncWorker.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}
	lastSync, lastRef := syncWorker.LastSync()
	logger.Info("Worker stopped gracefully", "last_sync", lastSync, "last_ref", lastRef)
}
