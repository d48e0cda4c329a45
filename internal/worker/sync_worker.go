package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledger/internal/amqp"
	"ledger/internal/ports"
)

// SyncWorker mirrors the stored ledger to an exporter whenever a ledger
// event arrives. Every sync exports the full ledger, so lost or duplicated
// events only delay the mirror until the next one.
type SyncWorker struct {
	store    ports.TransactionStore
	exporter ports.LedgerExporter

	lastSync time.Time
	lastRef  string
}

func NewSyncWorker(store ports.TransactionStore, exporter ports.LedgerExporter) *SyncWorker {
	return &SyncWorker{
		store:    store,
		exporter: exporter,
	}
}

// HandleEvent processes a single ledger event from AMQP
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	switch event.Event {
	case amqp.EventTransactionRecorded, amqp.EventLedgerReplaced:
	default:
		slog.WarnContext(ctx, "Ignoring unknown ledger event", "event", event.Event)
		return nil
	}

	slog.InfoContext(ctx, "Processing ledger event",
		"event", event.Event,
		"timestamp", event.Timestamp)

	return w.Sync(ctx)
}

// Sync exports the current ledger. It is also run on startup to catch up
// with events published while the worker was down.
func (w *SyncWorker) Sync(ctx context.Context) error {
	ts, err := w.store.All(ctx)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	ref, err := w.exporter.Export(ctx, ts)
	if err != nil {
		return fmt.Errorf("export ledger: %w", err)
	}

	w.lastSync = time.Now()
	w.lastRef = ref
	slog.InfoContext(ctx, "Ledger synced", "ref", ref, "count", len(ts))
	return nil
}

// LastSync returns when the last successful sync finished and the reference
// the exporter reported for it.
func (w *SyncWorker) LastSync() (time.Time, string) {
	return w.lastSync, w.lastRef
}
