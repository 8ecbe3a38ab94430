// Package statement holds parsed bank statements and the flat-file parsers
// producing them. Statement records are ephemeral: they are matched against
// stored transactions but never persisted themselves.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one line of a bank statement. Actual is the date the operation
// happened; Execution is the date the bank posted it, which may lag by a
// few days.
type Record struct {
	Actual       time.Time
	Execution    time.Time
	Description  string
	Counterparty string
	Place        string
	Country      string
	Amount       decimal.Decimal
}

// Statement is a fully parsed statement file: an account-number hint taken
// from the file header, the closing balance the bank reports, and the
// ordered list of records.
type Statement struct {
	AccountNumber string
	Balance       decimal.Decimal
	Records       []Record
}
