package model

import "github.com/google/uuid"

// Contact is a counterparty a transaction may reference.
type Contact struct {
	UUID     uuid.UUID
	Name     string
	Type     ContactType
	Phone    string
	Mobile   string
	Email    string
	Web      string
	Comment  string
	Street   string
	City     string
	Country  string
	Zip      string
	IconUUID uuid.UUID // uuid.Nil when no icon is assigned
	Created  int64
	Modified int64
}

// NewContact stamps identity and timestamps left unset on c.
func NewContact(c Contact) Contact {
	stamp(&c.UUID, &c.Created, &c.Modified)
	return c
}

func (c Contact) RecordID() uuid.UUID { return c.UUID }
func (c Contact) LastModified() int64 { return c.Modified }
