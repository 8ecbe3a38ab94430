package balance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/petr-panteleyev/money-manager-sub002/internal/balance"
	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestCalculator_Calculate(t *testing.T) {
	store := cache.New()
	calc := balance.New(store)

	account := model.NewAccount(model.Account{
		Name:           "checking",
		OpeningBalance: dec("100.00"),
		AccountLimit:   dec("50.00"),
	})
	other := model.NewAccount(model.Account{Name: "groceries"})

	store.PutAccount(account)
	store.PutAccount(other)

	// Spent 30, received 20, plus one reconciled incoming 5.
	store.PutTransaction(model.NewTransaction(model.Transaction{
		Amount:              dec("30.00"),
		AccountDebitedUUID:  account.UUID,
		AccountCreditedUUID: other.UUID,
	}))
	store.PutTransaction(model.NewTransaction(model.Transaction{
		Amount:              dec("20.00"),
		AccountDebitedUUID:  other.UUID,
		AccountCreditedUUID: account.UUID,
	}))
	store.PutTransaction(model.NewTransaction(model.Transaction{
		Amount:              dec("5.00"),
		AccountDebitedUUID:  other.UUID,
		AccountCreditedUUID: account.UUID,
		Checked:             true,
	}))

	tests := []struct {
		name           string
		includeOpening bool
		filter         balance.Filter
		want           string
	}{
		{
			name:           "TotalWithOpening",
			includeOpening: true,
			filter:         balance.Any,
			want:           "145.00", // 100 + 50 - 30 + 20 + 5
		},
		{
			name:           "TurnoverOnly",
			includeOpening: false,
			filter:         balance.Any,
			want:           "-5.00",
		},
		{
			name:           "UncheckedOnly",
			includeOpening: false,
			filter:         balance.UncheckedOnly,
			want:           "-10.00",
		},
		{
			name:           "CheckedOnly",
			includeOpening: false,
			filter:         balance.CheckedOnly,
			want:           "5.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Calculate(account, tt.includeOpening, tt.filter)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestCalculator_ExcludesDetailLines(t *testing.T) {
	store := cache.New()
	calc := balance.New(store)

	account := model.NewAccount(model.Account{Name: "checking"})
	expenses := model.NewAccount(model.Account{Name: "expenses"})
	store.PutAccount(account)
	store.PutAccount(expenses)

	parent := model.NewTransaction(model.Transaction{
		Amount:              dec("100.00"),
		AccountDebitedUUID:  account.UUID,
		AccountCreditedUUID: expenses.UUID,
		Detailed:            true,
	})
	store.PutTransaction(parent)

	// Split lines referencing the same account must not double-count.
	for _, part := range []string{"60.00", "40.00"} {
		store.PutTransaction(model.NewTransaction(model.Transaction{
			Amount:              dec(part),
			AccountDebitedUUID:  account.UUID,
			AccountCreditedUUID: expenses.UUID,
			ParentUUID:          parent.UUID,
		}))
	}

	got := calc.Calculate(account, false, balance.Any)
	assert.True(t, dec("-100.00").Equal(got), "got %s", got)
}

func TestCalculator_ConvertsCreditedLeg(t *testing.T) {
	store := cache.New()
	calc := balance.New(store)

	eur := model.NewAccount(model.Account{Name: "eur"})
	usd := model.NewAccount(model.Account{Name: "usd"})
	store.PutAccount(eur)
	store.PutAccount(usd)

	// 100 EUR debited, credited as 110 USD.
	store.PutTransaction(model.NewTransaction(model.Transaction{
		Amount:              dec("100.00"),
		AccountDebitedUUID:  eur.UUID,
		AccountCreditedUUID: usd.UUID,
		Rate:                dec("1.1"),
		RateDirection:       model.RateMultiply,
	}))

	assert.True(t, dec("-100.00").Equal(calc.Calculate(eur, false, balance.Any)))
	assert.True(t, dec("110.00").Equal(calc.Calculate(usd, false, balance.Any)))
}

func TestCalculator_Total(t *testing.T) {
	store := cache.New()
	calc := balance.New(store)

	account := model.NewAccount(model.Account{
		Name:           "savings",
		OpeningBalance: dec("10.00"),
	})
	store.PutAccount(account)

	assert.True(t, dec("10.00").Equal(calc.Total(account)))
}
