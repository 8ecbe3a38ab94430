package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

const contactColumns = `uuid, name, type, phone, mobile, email, web,
	comment, street, city, country, zip, icon_uuid, created, modified`

func scanContact(s scanner) (model.Contact, error) {
	var (
		c    model.Contact
		icon uuid.NullUUID
	)

	err := s.Scan(
		&c.UUID, &c.Name, &c.Type, &c.Phone, &c.Mobile, &c.Email, &c.Web,
		&c.Comment, &c.Street, &c.City, &c.Country, &c.Zip, &icon,
		&c.Created, &c.Modified,
	)
	if err != nil {
		return model.Contact{}, err
	}

	c.IconUUID = icon.UUID

	return c, nil
}

func insertContact(ctx context.Context, ex executor, c model.Contact) error {
	query := `
		INSERT INTO contact (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	if _, err := ex.ExecContext(ctx, query,
		c.UUID, c.Name, c.Type, c.Phone, c.Mobile, c.Email, c.Web,
		c.Comment, c.Street, c.City, c.Country, c.Zip, nullUUID(c.IconUUID),
		c.Created, c.Modified,
	); err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}

	return nil
}

func updateContact(ctx context.Context, ex executor, c model.Contact) error {
	query := `
		UPDATE contact
		SET name = $1, type = $2, phone = $3, mobile = $4, email = $5, web = $6,
			comment = $7, street = $8, city = $9, country = $10, zip = $11,
			icon_uuid = $12, created = $13, modified = $14
		WHERE uuid = $15
	`

	if _, err := ex.ExecContext(ctx, query,
		c.Name, c.Type, c.Phone, c.Mobile, c.Email, c.Web,
		c.Comment, c.Street, c.City, c.Country, c.Zip,
		nullUUID(c.IconUUID), c.Created, c.Modified, c.UUID,
	); err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	return nil
}

func listContacts(ctx context.Context, ex executor) ([]model.Contact, error) {
	rows, err := ex.QueryContext(ctx, `SELECT `+contactColumns+` FROM contact ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact

	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (s *Store) CreateContact(ctx context.Context, c model.Contact) error {
	return insertContact(ctx, s.db, c)
}

func (s *Store) UpdateContact(ctx context.Context, c model.Contact) error {
	return updateContact(ctx, s.db, c)
}

func (s *Store) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contact WHERE uuid = $1`, id); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}
