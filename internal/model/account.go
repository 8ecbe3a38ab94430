package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a single account. Its Type always mirrors the type of
// the category it belongs to. Total is a denormalized cache of the computed
// balance and is never treated as ground truth.
type Account struct {
	UUID           uuid.UUID
	Name           string
	Comment        string
	AccountNumber  string
	OpeningBalance decimal.Decimal
	AccountLimit   decimal.Decimal
	Type           CategoryType
	CategoryUUID   uuid.UUID
	CurrencyUUID   uuid.UUID
	IconUUID       uuid.UUID // uuid.Nil when no icon is assigned
	Enabled        bool
	Total          decimal.Decimal
	Created        int64
	Modified       int64
}

// NewAccount stamps identity and timestamps left unset on a.
func NewAccount(a Account) Account {
	stamp(&a.UUID, &a.Created, &a.Modified)
	return a
}

func (a Account) RecordID() uuid.UUID { return a.UUID }
func (a Account) LastModified() int64 { return a.Modified }

// WithTotal returns a copy of a holding the recalculated cached total.
func (a Account) WithTotal(total decimal.Decimal) Account {
	a.Total = total
	a.Modified = nowMillis()

	return a
}

// WithEnabled returns a copy of a with the enabled flag set.
func (a Account) WithEnabled(enabled bool) Account {
	a.Enabled = enabled
	a.Modified = nowMillis()

	return a
}
