// Package sqlite keeps a session's transactions in a private in-memory
// SQLite database. Nothing is written to disk.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"finboard/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// New opens a fresh in-memory database and installs the schema.
func New(ctx context.Context) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Every connection to ":memory:" is its own database; pin exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (day, kind, category, amount) VALUES (?, ?, ?, ?)`,
		t.Date.String(), string(t.Kind), string(t.Category), t.Amount)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	seq, _ := res.LastInsertId()
	slog.DebugContext(ctx, "Transaction stored in SQLite",
		"seq", seq,
		"kind", t.Kind,
		"category", t.Category,
		"amount", t.Amount)
	return nil
}

func (s *Store) All(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, kind, category, amount FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var day, kind, category string
		var amount int64
		if err := rows.Scan(&day, &kind, &category, &amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := core.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("decode day %q: %w", day, err)
		}
		out = append(out, core.Transaction{
			Date:     d,
			Kind:     core.Kind(kind),
			Category: core.Category(category),
			Amount:   amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
