package memory

import (
	"context"
	"fmt"
	"sync"

	"ledger/internal/core"
	"ledger/internal/ports"
)

var _ ports.TransactionStore = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Append validates and stores the transaction.
func (s *Store) Append(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, t)
	return nil
}

// All returns a copy of the stored transactions.
func (s *Store) All(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

// Replace swaps the contents when every transaction is valid.
func (s *Store) Replace(_ context.Context, ts []core.Transaction) error {
	for i, t := range ts {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}
	items := append([]core.Transaction(nil), ts...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return nil
}
