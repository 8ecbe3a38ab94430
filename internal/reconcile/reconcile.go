// Package reconcile matches imported bank-statement records against stored
// transactions by signed amount and date window.
package reconcile

import (
	"time"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
	"github.com/petr-panteleyev/money-manager-sub002/internal/statement"
)

// amountScale is the decimal precision statement amounts are compared at.
const amountScale = 2

// Matches builds the predicate selecting transactions that correspond to
// the given statement record on the given account. A transaction matches
// when it references the account as either leg, its signed amount equals
// the record's amount to two decimals, and its date equals the record's
// actual date. Unless ignoreExecutionDate is set, the execution date is
// accepted as a fallback for bank posting delays.
func Matches(account model.Account, rec statement.Record, ignoreExecutionDate bool) func(model.Transaction) bool {
	amount := rec.Amount.Round(amountScale)

	return func(t model.Transaction) bool {
		if !t.References(account.UUID) {
			return false
		}

		if !t.AmountFor(account.UUID).Round(amountScale).Equal(amount) {
			return false
		}

		if sameDay(t.Date, rec.Actual) {
			return true
		}

		return !ignoreExecutionDate && sameDay(t.Date, rec.Execution)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// Match pairs one statement record with every transaction matching it.
// Ambiguity is preserved: several postings with the same amount and date
// all come back, and resolution is left to the user.
type Match struct {
	Record       statement.Record
	Transactions []model.Transaction
}

// Service recomputes statement matches over the record store. It is a
// read-only consumer of the store.
type Service struct {
	store *cache.Store
}

func NewService(store *cache.Store) *Service {
	return &Service{store: store}
}

// MatchStatement evaluates every record of the statement against the
// store's transactions for the given account.
func (s *Service) MatchStatement(account model.Account, stmt *statement.Statement, ignoreExecutionDate bool) []Match {
	matches := make([]Match, 0, len(stmt.Records))

	for _, rec := range stmt.Records {
		pred := Matches(account, rec, ignoreExecutionDate)
		matches = append(matches, Match{
			Record:       rec,
			Transactions: s.store.TransactionsWhere(pred),
		})
	}

	return matches
}
