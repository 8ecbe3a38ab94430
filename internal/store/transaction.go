package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

const transactionColumns = `uuid, amount, date,
	acc_debited_uuid, acc_credited_uuid, acc_debited_type, acc_credited_type,
	acc_debited_category_uuid, acc_credited_category_uuid, contact_uuid,
	rate, rate_direction, invoice_number, checked, parent_uuid, detailed,
	statement_date, created, modified`

func scanTransaction(s scanner) (model.Transaction, error) {
	var (
		t                model.Transaction
		debitedCategory  uuid.NullUUID
		creditedCategory uuid.NullUUID
		contact          uuid.NullUUID
		parent           uuid.NullUUID
		statementDate    sql.NullTime
	)

	err := s.Scan(
		&t.UUID, &t.Amount, &t.Date,
		&t.AccountDebitedUUID, &t.AccountCreditedUUID, &t.AccountDebitedType, &t.AccountCreditedType,
		&debitedCategory, &creditedCategory, &contact,
		&t.Rate, &t.RateDirection, &t.InvoiceNumber, &t.Checked, &parent, &t.Detailed,
		&statementDate, &t.Created, &t.Modified,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	t.AccountDebitedCategoryUUID = debitedCategory.UUID
	t.AccountCreditedCategoryUUID = creditedCategory.UUID
	t.ContactUUID = contact.UUID
	t.ParentUUID = parent.UUID
	t.StatementDate = statementDate.Time

	return t, nil
}

func insertTransaction(ctx context.Context, ex executor, t model.Transaction) error {
	query := `
		INSERT INTO transaction (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	if _, err := ex.ExecContext(ctx, query,
		t.UUID, t.Amount, t.Date,
		t.AccountDebitedUUID, t.AccountCreditedUUID, t.AccountDebitedType, t.AccountCreditedType,
		nullUUID(t.AccountDebitedCategoryUUID), nullUUID(t.AccountCreditedCategoryUUID), nullUUID(t.ContactUUID),
		t.Rate, t.RateDirection, t.InvoiceNumber, t.Checked, nullUUID(t.ParentUUID), t.Detailed,
		nullDate(t.StatementDate), t.Created, t.Modified,
	); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func updateTransaction(ctx context.Context, ex executor, t model.Transaction) error {
	query := `
		UPDATE transaction
		SET amount = $1, date = $2, acc_debited_uuid = $3, acc_credited_uuid = $4,
			acc_debited_type = $5, acc_credited_type = $6,
			acc_debited_category_uuid = $7, acc_credited_category_uuid = $8,
			contact_uuid = $9, rate = $10, rate_direction = $11, invoice_number = $12,
			checked = $13, parent_uuid = $14, detailed = $15, statement_date = $16,
			created = $17, modified = $18
		WHERE uuid = $19
	`

	if _, err := ex.ExecContext(ctx, query,
		t.Amount, t.Date, t.AccountDebitedUUID, t.AccountCreditedUUID,
		t.AccountDebitedType, t.AccountCreditedType,
		nullUUID(t.AccountDebitedCategoryUUID), nullUUID(t.AccountCreditedCategoryUUID),
		nullUUID(t.ContactUUID), t.Rate, t.RateDirection, t.InvoiceNumber,
		t.Checked, nullUUID(t.ParentUUID), t.Detailed, nullDate(t.StatementDate),
		t.Created, t.Modified, t.UUID,
	); err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func listTransactions(ctx context.Context, ex executor) ([]model.Transaction, error) {
	rows, err := ex.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transaction ORDER BY date, created`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	return txs, rows.Err()
}

func (s *Store) CreateTransaction(ctx context.Context, t model.Transaction) error {
	return insertTransaction(ctx, s.db, t)
}

func (s *Store) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	return updateTransaction(ctx, s.db, t)
}

// DeleteTransaction removes a transaction and, via ON DELETE CASCADE, any
// detail lines split out of it.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transaction WHERE uuid = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}
