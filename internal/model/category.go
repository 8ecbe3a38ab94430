package model

import "github.com/google/uuid"

// Category is the semantic bucket accounts live in. Its Type fixes the type
// of every account belonging to it.
type Category struct {
	UUID     uuid.UUID
	Name     string
	Comment  string
	Type     CategoryType
	IconUUID uuid.UUID // uuid.Nil when no icon is assigned
	Created  int64
	Modified int64
}

// NewCategory stamps identity and timestamps left unset on c.
func NewCategory(c Category) Category {
	stamp(&c.UUID, &c.Created, &c.Modified)
	return c
}

func (c Category) RecordID() uuid.UUID { return c.UUID }
func (c Category) LastModified() int64 { return c.Modified }
