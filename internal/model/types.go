package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType classifies a category and every account inside it.
type CategoryType string

const (
	CategoryBanksAndCash CategoryType = "banks_and_cash"
	CategoryIncomes      CategoryType = "incomes"
	CategoryExpenses     CategoryType = "expenses"
	CategoryDebts        CategoryType = "debts"
	CategoryPortfolio    CategoryType = "portfolio"
	CategoryAssets       CategoryType = "assets"
	CategoryStartup      CategoryType = "startup"
)

// ContactType classifies a contact.
type ContactType string

const (
	ContactPersonal ContactType = "personal"
	ContactClient   ContactType = "client"
	ContactSupplier ContactType = "supplier"
	ContactEmployee ContactType = "employee"
	ContactEmployer ContactType = "employer"
	ContactBank     ContactType = "bank"
)

// RateDirection tells whether a stored conversion rate multiplies or
// divides the amount it applies to.
type RateDirection int

const (
	RateMultiply RateDirection = 0
	RateDivide   RateDirection = 1
)

// Record is implemented by every persisted entity and is what the merge
// resolver keys its last-writer-wins comparison on.
type Record interface {
	RecordID() uuid.UUID
	LastModified() int64
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// stamp fills identity and timestamps that were left unset.
func stamp(id *uuid.UUID, created, modified *int64) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}

	now := nowMillis()

	if *created == 0 {
		*created = now
	}

	if *modified == 0 {
		*modified = now
	}
}
