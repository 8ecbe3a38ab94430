package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency describes a monetary unit and its conversion rate against the
// reference currency. Exactly one currency in a record set may carry the
// Default flag.
type Currency struct {
	UUID         uuid.UUID
	Symbol       string
	Description  string
	FormatSymbol string
	SymbolBefore bool // render the format symbol before the amount
	ShowSymbol   bool
	ThousandSep  bool
	Default      bool
	Rate         decimal.Decimal
	Direction    RateDirection
	Created      int64
	Modified     int64
}

// NewCurrency stamps identity and timestamps left unset on c.
func NewCurrency(c Currency) Currency {
	stamp(&c.UUID, &c.Created, &c.Modified)
	return c
}

func (c Currency) RecordID() uuid.UUID { return c.UUID }
func (c Currency) LastModified() int64 { return c.Modified }
