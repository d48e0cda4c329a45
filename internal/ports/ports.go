package ports

import (
	"context"

	"ledger/internal/core"
)

// Ports for the ledger's outbound adapters.
type (
	// TransactionStore owns the ordered transaction sequence.
	TransactionStore interface {
		// Append adds t at the end of the sequence.
		Append(ctx context.Context, t core.Transaction) error
		// All returns a copy of the sequence in insertion order.
		All(ctx context.Context) ([]core.Transaction, error)
		// Replace swaps the whole sequence. Either every transaction is
		// stored or the previous contents are kept.
		Replace(ctx context.Context, ts []core.Transaction) error
	}

	// EventPublisher announces ledger changes to other systems.
	EventPublisher interface {
		PublishRecorded(ctx context.Context, t core.Transaction) error
		PublishReplaced(ctx context.Context, count int) error
	}

	// LedgerExporter mirrors the ledger somewhere outside the local file system.
	LedgerExporter interface {
		Export(ctx context.Context, ts []core.Transaction) (ref string, err error)
	}
)
