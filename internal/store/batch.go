package store

import (
	"context"
	"fmt"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/importer"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

// ApplyBatch writes an import batch in a single transaction. Kinds are
// applied in dependency order so that foreign keys are satisfied:
// icons, categories, currencies, contacts, accounts, transactions.
// Parent transactions go in before their details.
func (s *Store) ApplyBatch(ctx context.Context, b importer.Batch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := applyKind(ctx, tx, b.InsertIcons, b.UpdateIcons, insertIcon, updateIcon); err != nil {
		return fmt.Errorf("applying icons: %w", err)
	}

	if err := applyKind(ctx, tx, b.InsertCategories, b.UpdateCategories, insertCategory, updateCategory); err != nil {
		return fmt.Errorf("applying categories: %w", err)
	}

	if err := applyKind(ctx, tx, b.InsertCurrencies, b.UpdateCurrencies, insertCurrency, updateCurrency); err != nil {
		return fmt.Errorf("applying currencies: %w", err)
	}

	if err := applyKind(ctx, tx, b.InsertContacts, b.UpdateContacts, insertContact, updateContact); err != nil {
		return fmt.Errorf("applying contacts: %w", err)
	}

	if err := applyKind(ctx, tx, b.InsertAccounts, b.UpdateAccounts, insertAccount, updateAccount); err != nil {
		return fmt.Errorf("applying accounts: %w", err)
	}

	if err := insertTransactions(ctx, tx, b.InsertTransactions); err != nil {
		return fmt.Errorf("applying transactions: %w", err)
	}

	for _, t := range b.UpdateTransactions {
		if err := updateTransaction(ctx, tx, t); err != nil {
			return fmt.Errorf("applying transactions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch transaction: %w", err)
	}

	return nil
}

type writeFunc[T any] func(ctx context.Context, ex executor, rec T) error

func applyKind[T any](ctx context.Context, ex executor, inserts, updates []T, insert, update writeFunc[T]) error {
	for _, rec := range inserts {
		if err := insert(ctx, ex, rec); err != nil {
			return err
		}
	}

	for _, rec := range updates {
		if err := update(ctx, ex, rec); err != nil {
			return err
		}
	}

	return nil
}

// insertTransactions inserts parents before details so the parent_uuid
// foreign key holds regardless of input order.
func insertTransactions(ctx context.Context, ex executor, transactions []model.Transaction) error {
	for _, t := range transactions {
		if t.IsDetail() {
			continue
		}

		if err := insertTransaction(ctx, ex, t); err != nil {
			return err
		}
	}

	for _, t := range transactions {
		if !t.IsDetail() {
			continue
		}

		if err := insertTransaction(ctx, ex, t); err != nil {
			return err
		}
	}

	return nil
}

// ReplaceAll replaces the entire database contents with the snapshot,
// in a single transaction. Tables are emptied in reverse dependency
// order, then refilled in dependency order.
func (s *Store) ReplaceAll(ctx context.Context, snap cache.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"transaction", "account", "contact", "currency", "category", "icon"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("emptying %s: %w", table, err)
		}
	}

	for _, rec := range snap.Icons {
		if err := insertIcon(ctx, tx, rec); err != nil {
			return fmt.Errorf("refilling icons: %w", err)
		}
	}

	for _, rec := range snap.Categories {
		if err := insertCategory(ctx, tx, rec); err != nil {
			return fmt.Errorf("refilling categories: %w", err)
		}
	}

	for _, rec := range snap.Currencies {
		if err := insertCurrency(ctx, tx, rec); err != nil {
			return fmt.Errorf("refilling currencies: %w", err)
		}
	}

	for _, rec := range snap.Contacts {
		if err := insertContact(ctx, tx, rec); err != nil {
			return fmt.Errorf("refilling contacts: %w", err)
		}
	}

	for _, rec := range snap.Accounts {
		if err := insertAccount(ctx, tx, rec); err != nil {
			return fmt.Errorf("refilling accounts: %w", err)
		}
	}

	if err := insertTransactions(ctx, tx, snap.Transactions); err != nil {
		return fmt.Errorf("refilling transactions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing replace transaction: %w", err)
	}

	return nil
}
