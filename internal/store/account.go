package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

const accountColumns = `uuid, name, comment, account_number,
	opening_balance, account_limit, type, category_uuid, currency_uuid,
	icon_uuid, enabled, total, created, modified`

func scanAccount(s scanner) (model.Account, error) {
	var (
		a    model.Account
		icon uuid.NullUUID
	)

	err := s.Scan(
		&a.UUID, &a.Name, &a.Comment, &a.AccountNumber,
		&a.OpeningBalance, &a.AccountLimit, &a.Type, &a.CategoryUUID, &a.CurrencyUUID,
		&icon, &a.Enabled, &a.Total, &a.Created, &a.Modified,
	)
	if err != nil {
		return model.Account{}, err
	}

	a.IconUUID = icon.UUID

	return a, nil
}

func insertAccount(ctx context.Context, ex executor, a model.Account) error {
	query := `
		INSERT INTO account (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if _, err := ex.ExecContext(ctx, query,
		a.UUID, a.Name, a.Comment, a.AccountNumber,
		a.OpeningBalance, a.AccountLimit, a.Type, a.CategoryUUID, a.CurrencyUUID,
		nullUUID(a.IconUUID), a.Enabled, a.Total, a.Created, a.Modified,
	); err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}

	return nil
}

func updateAccount(ctx context.Context, ex executor, a model.Account) error {
	query := `
		UPDATE account
		SET name = $1, comment = $2, account_number = $3, opening_balance = $4,
			account_limit = $5, type = $6, category_uuid = $7, currency_uuid = $8,
			icon_uuid = $9, enabled = $10, total = $11, created = $12, modified = $13
		WHERE uuid = $14
	`

	if _, err := ex.ExecContext(ctx, query,
		a.Name, a.Comment, a.AccountNumber, a.OpeningBalance,
		a.AccountLimit, a.Type, a.CategoryUUID, a.CurrencyUUID,
		nullUUID(a.IconUUID), a.Enabled, a.Total, a.Created, a.Modified, a.UUID,
	); err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func listAccounts(ctx context.Context, ex executor) ([]model.Account, error) {
	rows, err := ex.QueryContext(ctx, `SELECT `+accountColumns+` FROM account ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (s *Store) CreateAccount(ctx context.Context, a model.Account) error {
	return insertAccount(ctx, s.db, a)
}

func (s *Store) UpdateAccount(ctx context.Context, a model.Account) error {
	return updateAccount(ctx, s.db, a)
}

// DeleteAccount removes an account. The database rejects the delete while
// any transaction still references it.
func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM account WHERE uuid = $1`, id); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}
