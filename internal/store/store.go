// Package store is the SQL persistence layer. All writes beyond a single
// record go through ApplyBatch or ReplaceAll, which run inside one
// database transaction each.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// executor is satisfied by both *sql.DB and *sql.Tx so the per-entity SQL
// helpers work inside and outside batch transactions.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullUUID maps uuid.Nil to SQL NULL for optional reference columns.
func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

// nullDate maps the zero time to SQL NULL.
func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// LoadAll reads every table into a snapshot, in dependency order.
func (s *Store) LoadAll(ctx context.Context) (cache.Snapshot, error) {
	var (
		snap cache.Snapshot
		err  error
	)

	if snap.Icons, err = listIcons(ctx, s.db); err != nil {
		return snap, err
	}

	if snap.Categories, err = listCategories(ctx, s.db); err != nil {
		return snap, err
	}

	if snap.Currencies, err = listCurrencies(ctx, s.db); err != nil {
		return snap, err
	}

	if snap.Contacts, err = listContacts(ctx, s.db); err != nil {
		return snap, err
	}

	if snap.Accounts, err = listAccounts(ctx, s.db); err != nil {
		return snap, err
	}

	if snap.Transactions, err = listTransactions(ctx, s.db); err != nil {
		return snap, err
	}

	return snap, nil
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	return nil
}
