package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

func scanCategory(s scanner) (model.Category, error) {
	var (
		c    model.Category
		icon uuid.NullUUID
	)

	if err := s.Scan(&c.UUID, &c.Name, &c.Comment, &c.Type, &icon, &c.Created, &c.Modified); err != nil {
		return model.Category{}, err
	}

	c.IconUUID = icon.UUID

	return c, nil
}

func insertCategory(ctx context.Context, ex executor, c model.Category) error {
	query := `
		INSERT INTO category (uuid, name, comment, type, icon_uuid, created, modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := ex.ExecContext(ctx, query,
		c.UUID, c.Name, c.Comment, c.Type, nullUUID(c.IconUUID), c.Created, c.Modified,
	); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

func updateCategory(ctx context.Context, ex executor, c model.Category) error {
	query := `
		UPDATE category
		SET name = $1, comment = $2, type = $3, icon_uuid = $4, created = $5, modified = $6
		WHERE uuid = $7
	`

	if _, err := ex.ExecContext(ctx, query,
		c.Name, c.Comment, c.Type, nullUUID(c.IconUUID), c.Created, c.Modified, c.UUID,
	); err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func listCategories(ctx context.Context, ex executor) ([]model.Category, error) {
	query := `SELECT uuid, name, comment, type, icon_uuid, created, modified FROM category ORDER BY created`

	rows, err := ex.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, c model.Category) error {
	return insertCategory(ctx, s.db, c)
}

func (s *Store) UpdateCategory(ctx context.Context, c model.Category) error {
	return updateCategory(ctx, s.db, c)
}

// DeleteCategory removes a category. The database rejects the delete while
// any account still references it.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM category WHERE uuid = $1`, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}
