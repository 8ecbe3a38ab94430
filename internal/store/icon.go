package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

func insertIcon(ctx context.Context, ex executor, i model.Icon) error {
	query := `
		INSERT INTO icon (uuid, name, bytes, created, modified)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := ex.ExecContext(ctx, query, i.UUID, i.Name, i.Bytes, i.Created, i.Modified); err != nil {
		return fmt.Errorf("inserting icon: %w", err)
	}

	return nil
}

func updateIcon(ctx context.Context, ex executor, i model.Icon) error {
	query := `
		UPDATE icon
		SET name = $1, bytes = $2, created = $3, modified = $4
		WHERE uuid = $5
	`

	if _, err := ex.ExecContext(ctx, query, i.Name, i.Bytes, i.Created, i.Modified, i.UUID); err != nil {
		return fmt.Errorf("updating icon: %w", err)
	}

	return nil
}

func listIcons(ctx context.Context, ex executor) ([]model.Icon, error) {
	rows, err := ex.QueryContext(ctx, `SELECT uuid, name, bytes, created, modified FROM icon ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("listing icons: %w", err)
	}
	defer rows.Close()

	var icons []model.Icon

	for rows.Next() {
		var i model.Icon
		if err := rows.Scan(&i.UUID, &i.Name, &i.Bytes, &i.Created, &i.Modified); err != nil {
			return nil, fmt.Errorf("scanning icon: %w", err)
		}

		icons = append(icons, i)
	}

	return icons, rows.Err()
}

// CreateIcon persists a new icon.
func (s *Store) CreateIcon(ctx context.Context, i model.Icon) error {
	return insertIcon(ctx, s.db, i)
}

// UpdateIcon replaces a stored icon.
func (s *Store) UpdateIcon(ctx context.Context, i model.Icon) error {
	return updateIcon(ctx, s.db, i)
}

// DeleteIcon removes an icon; referencing records fall back to no icon via
// ON DELETE SET NULL.
func (s *Store) DeleteIcon(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM icon WHERE uuid = $1`, id); err != nil {
		return fmt.Errorf("deleting icon: %w", err)
	}

	return nil
}
