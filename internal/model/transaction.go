package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one double-entry move between two accounts. Amount is
// always non-negative; the direction is carried by the debited/credited leg
// references. Both legs snapshot their account's category at creation time
// so historical rows survive later recategorization.
//
// A transaction with a non-nil ParentUUID is a detail line of a split
// transaction and never participates directly in balance folds.
type Transaction struct {
	UUID                        uuid.UUID
	Amount                      decimal.Decimal
	Date                        time.Time
	AccountDebitedUUID          uuid.UUID
	AccountCreditedUUID         uuid.UUID
	AccountDebitedType          CategoryType
	AccountCreditedType         CategoryType
	AccountDebitedCategoryUUID  uuid.UUID
	AccountCreditedCategoryUUID uuid.UUID
	ContactUUID                 uuid.UUID // uuid.Nil when no contact is attached
	Rate                        decimal.Decimal
	RateDirection               RateDirection
	InvoiceNumber               string
	Checked                     bool
	ParentUUID                  uuid.UUID // uuid.Nil for top-level transactions
	Detailed                    bool
	StatementDate               time.Time // zero until reconciled against a statement
	Created                     int64
	Modified                    int64
}

// NewTransaction stamps identity and timestamps left unset on t.
func NewTransaction(t Transaction) Transaction {
	stamp(&t.UUID, &t.Created, &t.Modified)
	return t
}

func (t Transaction) RecordID() uuid.UUID { return t.UUID }
func (t Transaction) LastModified() int64 { return t.Modified }

// IsDetail reports whether t is a detail line of a split transaction.
func (t Transaction) IsDetail() bool {
	return t.ParentUUID != uuid.Nil
}

// References reports whether either leg of t touches the given account.
func (t Transaction) References(account uuid.UUID) bool {
	return t.AccountDebitedUUID == account || t.AccountCreditedUUID == account
}

// ConvertedAmount applies the stored currency conversion rate. A zero rate
// means the legs share a currency and no conversion happens.
func (t Transaction) ConvertedAmount() decimal.Decimal {
	if t.Rate.IsZero() || t.Rate.Equal(decimal.NewFromInt(1)) {
		return t.Amount
	}

	if t.RateDirection == RateDivide {
		return t.Amount.Div(t.Rate)
	}

	return t.Amount.Mul(t.Rate)
}

// AmountFor returns the signed contribution of t to the given account:
// the converted amount when the account is the credited leg, the negated
// raw amount when it is the debited leg, zero otherwise.
func (t Transaction) AmountFor(account uuid.UUID) decimal.Decimal {
	switch account {
	case t.AccountCreditedUUID:
		return t.ConvertedAmount()
	case t.AccountDebitedUUID:
		return t.Amount.Neg()
	}

	return decimal.Zero
}

// WithChecked returns a copy of t with the reconciled flag set.
func (t Transaction) WithChecked(checked bool) Transaction {
	t.Checked = checked
	t.Modified = nowMillis()

	return t
}

// WithStatementDate returns a copy of t carrying the statement date it was
// reconciled against.
func (t Transaction) WithStatementDate(date time.Time) Transaction {
	t.StatementDate = date
	t.Modified = nowMillis()

	return t
}

// WithContact returns a copy of t attached to the given contact.
func (t Transaction) WithContact(contact uuid.UUID) Transaction {
	t.ContactUUID = contact
	t.Modified = nowMillis()

	return t
}
