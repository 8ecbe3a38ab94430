package model

import "github.com/google/uuid"

// Icon is a small image attachable to categories, accounts and contacts.
type Icon struct {
	UUID     uuid.UUID
	Name     string
	Bytes    []byte
	Created  int64
	Modified int64
}

// NewIcon stamps identity and timestamps left unset on i.
func NewIcon(i Icon) Icon {
	stamp(&i.UUID, &i.Created, &i.Modified)
	return i
}

func (i Icon) RecordID() uuid.UUID { return i.UUID }
func (i Icon) LastModified() int64 { return i.Modified }
