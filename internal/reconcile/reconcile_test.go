package reconcile_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
	"github.com/petr-panteleyev/money-manager-sub002/internal/reconcile"
	"github.com/petr-panteleyev/money-manager-sub002/internal/statement"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestMatches(t *testing.T) {
	account := model.NewAccount(model.Account{Name: "card"})
	other := model.NewAccount(model.Account{Name: "shop"})

	outgoing := model.NewTransaction(model.Transaction{
		Amount:              dec("25.50"),
		Date:                day(10),
		AccountDebitedUUID:  account.UUID,
		AccountCreditedUUID: other.UUID,
	})

	tests := []struct {
		name                string
		rec                 statement.Record
		ignoreExecutionDate bool
		want                bool
	}{
		{
			name: "SignedAmountAndActualDate",
			rec: statement.Record{
				Actual: day(10),
				Amount: dec("-25.50"),
			},
			want: true,
		},
		{
			name: "AmountRoundedToTwoDecimals",
			rec: statement.Record{
				Actual: day(10),
				Amount: dec("-25.504"),
			},
			want: true,
		},
		{
			name: "WrongSignDoesNotMatch",
			rec: statement.Record{
				Actual: day(10),
				Amount: dec("25.50"),
			},
			want: false,
		},
		{
			name: "ExecutionDateFallback",
			rec: statement.Record{
				Actual:    day(12),
				Execution: day(10),
				Amount:    dec("-25.50"),
			},
			want: true,
		},
		{
			name: "ExecutionDateIgnoredWhenRequested",
			rec: statement.Record{
				Actual:    day(12),
				Execution: day(10),
				Amount:    dec("-25.50"),
			},
			ignoreExecutionDate: true,
			want:                false,
		},
		{
			name: "DifferentDateDoesNotMatch",
			rec: statement.Record{
				Actual: day(11),
				Amount: dec("-25.50"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := reconcile.Matches(account, tt.rec, tt.ignoreExecutionDate)
			assert.Equal(t, tt.want, pred(outgoing))
		})
	}
}

func TestMatches_OtherAccount(t *testing.T) {
	account := model.NewAccount(model.Account{Name: "card"})
	stranger := model.NewAccount(model.Account{Name: "unrelated"})

	tx := model.NewTransaction(model.Transaction{
		Amount:              dec("10.00"),
		Date:                day(1),
		AccountDebitedUUID:  stranger.UUID,
		AccountCreditedUUID: model.NewAccount(model.Account{}).UUID,
	})

	pred := reconcile.Matches(account, statement.Record{
		Actual: day(1),
		Amount: dec("-10.00"),
	}, false)

	assert.False(t, pred(tx))
}

func TestService_MatchStatement(t *testing.T) {
	store := cache.New()
	svc := reconcile.NewService(store)

	account := model.NewAccount(model.Account{Name: "card"})
	shop := model.NewAccount(model.Account{Name: "shop"})
	store.PutAccount(account)
	store.PutAccount(shop)

	// Two identical postings on the same day: ambiguity must be preserved.
	for range 2 {
		store.PutTransaction(model.NewTransaction(model.Transaction{
			Amount:              dec("9.99"),
			Date:                day(5),
			AccountDebitedUUID:  account.UUID,
			AccountCreditedUUID: shop.UUID,
		}))
	}

	stmt := &statement.Statement{
		Records: []statement.Record{
			{Actual: day(5), Amount: dec("-9.99")},
			{Actual: day(6), Amount: dec("-1.00")},
		},
	}

	matches := svc.MatchStatement(account, stmt, false)
	require.Len(t, matches, 2)

	assert.Len(t, matches[0].Transactions, 2)
	assert.Empty(t, matches[1].Transactions)
}
