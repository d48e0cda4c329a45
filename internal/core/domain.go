package core

import (
	"errors"
	"fmt"
	"math"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

type (
	// Kind tells whether a transaction brings money in or takes it out.
	Kind string

	// Transaction is a single recorded income or expense event.
	// Transactions are values and are never mutated after creation.
	Transaction struct {
		Kind        Kind
		Amount      float64
		Category    string
		Description string
	}
)

var (
	ErrInvalidKind    = errors.New("invalid transaction type")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNoTransactions = errors.New("no transactions to analyze")
)

// ParseKind maps the canonical labels "Income" and "Expense" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Income, Expense:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidKind, string(k))
}

// NewIncome builds an income transaction.
func NewIncome(amount float64, category, description string) Transaction {
	return Transaction{Kind: Income, Amount: amount, Category: category, Description: description}
}

// NewExpense builds an expense transaction.
func NewExpense(amount float64, category, description string) Transaction {
	return Transaction{Kind: Expense, Amount: amount, Category: category, Description: description}
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return ValidateAmount(t.Amount)
}

// ValidateAmount rejects negative and non-finite amounts.
func ValidateAmount(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
		return ErrInvalidAmount
	}
	return nil
}
