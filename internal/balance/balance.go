// Package balance computes account balances by folding the record store's
// transactions. All arithmetic is exact decimal; rounding happens only at
// display time.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

// Filter narrows which transactions participate in a fold.
type Filter func(model.Transaction) bool

// Any admits every transaction.
func Any(model.Transaction) bool { return true }

// UncheckedOnly admits transactions not yet reconciled.
func UncheckedOnly(t model.Transaction) bool { return !t.Checked }

// CheckedOnly admits reconciled transactions.
func CheckedOnly(t model.Transaction) bool { return t.Checked }

// Calculator is a read-only consumer of the record store. It never mutates
// the store and is safe to call from any goroutine.
type Calculator struct {
	store *cache.Store
}

func New(store *cache.Store) *Calculator {
	return &Calculator{store: store}
}

// Calculate folds the account's top-level transactions. When
// includeOpening is set the fold is seeded with opening balance plus
// credit limit, otherwise with zero. Detail lines of split transactions
// are excluded so split amounts are not double-counted.
func (c *Calculator) Calculate(account model.Account, includeOpening bool, filter Filter) decimal.Decimal {
	seed := decimal.Zero
	if includeOpening {
		seed = account.OpeningBalance.Add(account.AccountLimit)
	}

	txs := c.store.TransactionsWhere(func(t model.Transaction) bool {
		return !t.IsDetail() && t.References(account.UUID) && filter(t)
	})

	total := seed
	for _, t := range txs {
		total = total.Add(t.AmountFor(account.UUID))
	}

	return total
}

// Total is the value cached on Account.Total: the full balance including
// the opening seed, over all transactions.
func (c *Calculator) Total(account model.Account) decimal.Decimal {
	return c.Calculate(account, true, Any)
}
