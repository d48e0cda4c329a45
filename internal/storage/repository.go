package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ledger/internal/core"
	"ledger/internal/ports"

	_ "modernc.org/sqlite"
)

var _ ports.TransactionStore = (*SQLiteRepository)(nil)

const (
	insertTransactionSQL = `INSERT INTO transactions (kind, amount, category, description) VALUES (?, ?, ?, ?)`
	listTransactionsSQL  = `SELECT kind, amount, category, description FROM transactions ORDER BY id`
	deleteAllSQL         = `DELETE FROM transactions`
	countSQL             = `SELECT COUNT(*) FROM transactions`
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time keeps sqlite from reporting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ports.TransactionStore
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, insertTransactionSQL, string(t.Kind), t.Amount, t.Category, t.Description)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	id, _ := res.LastInsertId()

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"kind", t.Kind,
		"amount", t.Amount,
		"category", t.Category)
	return nil
}

// All implements ports.TransactionStore
func (r *SQLiteRepository) All(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listTransactionsSQL)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			kind string
			t    core.Transaction
		)
		if err := rows.Scan(&kind, &t.Amount, &t.Category, &t.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Kind, err = core.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Replace implements ports.TransactionStore. The delete and every insert
// run in one SQL transaction.
func (r *SQLiteRepository) Replace(ctx context.Context, ts []core.Transaction) error {
	for i, t := range ts {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteAllSQL); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertTransactionSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range ts {
		if _, err := stmt.ExecContext(ctx, string(t.Kind), t.Amount, t.Category, t.Description); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	slog.InfoContext(ctx, "Ledger replaced in SQLite", "count", len(ts))
	return nil
}

// Count returns the number of stored transactions.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
