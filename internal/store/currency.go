package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

func scanCurrency(s scanner) (model.Currency, error) {
	var c model.Currency

	err := s.Scan(
		&c.UUID, &c.Symbol, &c.Description, &c.FormatSymbol,
		&c.SymbolBefore, &c.ShowSymbol, &c.ThousandSep, &c.Default,
		&c.Rate, &c.Direction, &c.Created, &c.Modified,
	)
	if err != nil {
		return model.Currency{}, err
	}

	return c, nil
}

const currencyColumns = `uuid, symbol, description, format_symbol,
	symbol_before, show_symbol, thousand_sep, is_default,
	rate, direction, created, modified`

func insertCurrency(ctx context.Context, ex executor, c model.Currency) error {
	query := `
		INSERT INTO currency (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	if _, err := ex.ExecContext(ctx, query,
		c.UUID, c.Symbol, c.Description, c.FormatSymbol,
		c.SymbolBefore, c.ShowSymbol, c.ThousandSep, c.Default,
		c.Rate, c.Direction, c.Created, c.Modified,
	); err != nil {
		return fmt.Errorf("inserting currency: %w", err)
	}

	return nil
}

func updateCurrency(ctx context.Context, ex executor, c model.Currency) error {
	query := `
		UPDATE currency
		SET symbol = $1, description = $2, format_symbol = $3, symbol_before = $4,
			show_symbol = $5, thousand_sep = $6, is_default = $7, rate = $8,
			direction = $9, created = $10, modified = $11
		WHERE uuid = $12
	`

	if _, err := ex.ExecContext(ctx, query,
		c.Symbol, c.Description, c.FormatSymbol, c.SymbolBefore,
		c.ShowSymbol, c.ThousandSep, c.Default, c.Rate,
		c.Direction, c.Created, c.Modified, c.UUID,
	); err != nil {
		return fmt.Errorf("updating currency: %w", err)
	}

	return nil
}

func listCurrencies(ctx context.Context, ex executor) ([]model.Currency, error) {
	rows, err := ex.QueryContext(ctx, `SELECT `+currencyColumns+` FROM currency ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("listing currencies: %w", err)
	}
	defer rows.Close()

	var currencies []model.Currency

	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning currency: %w", err)
		}

		currencies = append(currencies, c)
	}

	return currencies, rows.Err()
}

func (s *Store) CreateCurrency(ctx context.Context, c model.Currency) error {
	return insertCurrency(ctx, s.db, c)
}

func (s *Store) UpdateCurrency(ctx context.Context, c model.Currency) error {
	return updateCurrency(ctx, s.db, c)
}

// DeleteCurrency removes a currency. The database rejects the delete while
// any account still references it.
func (s *Store) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM currency WHERE uuid = $1`, id); err != nil {
		return fmt.Errorf("deleting currency: %w", err)
	}

	return nil
}
