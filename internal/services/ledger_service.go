package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledger/internal/core"
	"ledger/internal/csvio"
	applog "ledger/internal/log"
	"ledger/internal/ports"
	"ledger/internal/report"
)

// LedgerService runs the user-facing ledger operations against an injected
// store. Every method reports its outcome on the renderer and returns the
// error for callers that need it.
type LedgerService struct {
	store     ports.TransactionStore
	publisher ports.EventPublisher
	exporter  ports.LedgerExporter
	out       *report.Renderer
}

// NewLedgerService wires the service. publisher and exporter are optional.
func NewLedgerService(store ports.TransactionStore, publisher ports.EventPublisher, exporter ports.LedgerExporter, out *report.Renderer) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
		exporter:  exporter,
		out:       out,
	}
}

// LoadCSV replaces the ledger with the contents of the file at path. On any
// failure the current ledger is left untouched.
func (s *LedgerService) LoadCSV(ctx context.Context, path string) error {
	ts, err := csvio.Load(path)
	if err != nil {
		s.out.Message("Error loading file: %v", err)
		applog.LogError(ctx, "Failed to load ledger file", err, applog.ComponentLedger, applog.OpLoad,
			applog.NewFields().WithPath(path))
		return err
	}

	if err := s.store.Replace(ctx, ts); err != nil {
		s.out.Message("Error loading file: %v", err)
		return fmt.Errorf("replace ledger: %w", err)
	}

	slog.InfoContext(ctx, "Ledger loaded", "path", path, "count", len(ts))
	s.out.Message("Data loaded successfully from %s", path)

	if s.publisher != nil {
		if err := s.publisher.PublishReplaced(ctx, len(ts)); err != nil {
			applog.LogError(ctx, "Failed to publish ledger replaced event", err, applog.ComponentAMQP, applog.OpPublish,
				applog.NewFields().WithCount(len(ts)))
		}
	}
	return nil
}

// AddIncome records an income transaction.
func (s *LedgerService) AddIncome(ctx context.Context, amount float64, category, description string) error {
	return s.add(ctx, core.NewIncome(amount, category, description))
}

// AddExpense records an expense transaction.
func (s *LedgerService) AddExpense(ctx context.Context, amount float64, category, description string) error {
	return s.add(ctx, core.NewExpense(amount, category, description))
}

func (s *LedgerService) add(ctx context.Context, t core.Transaction) error {
	if err := s.store.Append(ctx, t); err != nil {
		s.out.Message("Error adding %s: %v", t.Kind, err)
		applog.LogError(ctx, "Failed to record transaction", err, applog.ComponentLedger, applog.OpAppend,
			applog.NewFields().WithTransaction(t.Kind.String(), t.Amount, t.Category, t.Description))
		return fmt.Errorf("append %s: %w", t.Kind, err)
	}

	slog.DebugContext(ctx, "Transaction recorded",
		applog.NewFields().WithTransaction(t.Kind.String(), t.Amount, t.Category, t.Description).ToSlice()...)

	if s.publisher != nil {
		// The transaction is already stored, a lost event is not a user error.
		if err := s.publisher.PublishRecorded(ctx, t); err != nil {
			applog.LogError(ctx, "Failed to publish transaction recorded event", err, applog.ComponentAMQP, applog.OpPublish, nil)
		}
	}
	return nil
}

// ViewSummary prints and returns the ledger totals.
func (s *LedgerService) ViewSummary(ctx context.Context) (core.Summary, error) {
	ts, err := s.store.All(ctx)
	if err != nil {
		s.out.Message("Error reading ledger: %v", err)
		applog.LogError(ctx, "Failed to read ledger", err, applog.ComponentLedger, applog.OpSummary, nil)
		return core.Summary{}, fmt.Errorf("read ledger: %w", err)
	}
	summary := core.Summarize(ts)
	s.out.Summary(summary)
	return summary, nil
}

// ExportCSV writes the ledger to path, overwriting it, and mirrors it to the
// configured exporter if any.
func (s *LedgerService) ExportCSV(ctx context.Context, path string) error {
	ts, err := s.store.All(ctx)
	if err != nil {
		s.out.Message("Error reading ledger: %v", err)
		return fmt.Errorf("read ledger: %w", err)
	}

	if err := csvio.Export(path, ts); err != nil {
		s.out.Message("Error exporting file: %v", err)
		applog.LogError(ctx, "Failed to export ledger file", err, applog.ComponentLedger, applog.OpExport,
			applog.NewFields().WithPath(path).WithCount(len(ts)))
		return err
	}
	s.out.Message("Data exported to %s", path)

	if s.exporter != nil {
		ref, err := s.exporter.Export(ctx, ts)
		if err != nil {
			s.out.Message("Error mirroring ledger to spreadsheet: %v", err)
			applog.LogError(ctx, "Failed to mirror ledger", err, applog.ComponentSheets, applog.OpExport, nil)
			return fmt.Errorf("mirror ledger: %w", err)
		}
		slog.InfoContext(ctx, "Ledger mirrored", applog.FieldSheetsRef, ref)
		s.out.Message("Data mirrored to %s", ref)
	}
	return nil
}

// Analyze prints the category analysis, charts and tips. An empty ledger is
// reported and returns core.ErrNoTransactions without rendering anything else.
func (s *LedgerService) Analyze(ctx context.Context) (core.Analysis, error) {
	ts, err := s.store.All(ctx)
	if err != nil {
		s.out.Message("Error reading ledger: %v", err)
		applog.LogError(ctx, "Failed to read ledger", err, applog.ComponentLedger, applog.OpAnalyze, nil)
		return core.Analysis{}, fmt.Errorf("read ledger: %w", err)
	}

	a, err := core.Analyze(ts)
	if errors.Is(err, core.ErrNoTransactions) {
		s.out.NoTransactions()
		return a, err
	}
	if err != nil {
		return a, err
	}
	s.out.Analysis(ctx, a)
	return a, nil
}
