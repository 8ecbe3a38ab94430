package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestTransaction_ConvertedAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		rate      string
		direction model.RateDirection
		want      string
	}{
		{
			name:   "ZeroRateMeansNoConversion",
			amount: "100.00",
			rate:   "0",
			want:   "100.00",
		},
		{
			name:   "RateOfOneMeansNoConversion",
			amount: "100.00",
			rate:   "1",
			want:   "100.00",
		},
		{
			name:      "Multiply",
			amount:    "100.00",
			rate:      "1.1",
			direction: model.RateMultiply,
			want:      "110.00",
		},
		{
			name:      "Divide",
			amount:    "100.00",
			rate:      "4",
			direction: model.RateDivide,
			want:      "25",
		},
		{
			name:      "DivideKeepsExactThirds",
			amount:    "1",
			rate:      "3",
			direction: model.RateDivide,
			want:      "0.3333333333333333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := model.Transaction{
				Amount:        dec(tt.amount),
				Rate:          dec(tt.rate),
				RateDirection: tt.direction,
			}

			assert.True(t, dec(tt.want).Equal(tx.ConvertedAmount()),
				"got %s", tx.ConvertedAmount())
		})
	}
}

func TestTransaction_AmountFor(t *testing.T) {
	debited := uuid.New()
	credited := uuid.New()
	other := uuid.New()

	tx := model.Transaction{
		Amount:              dec("50.00"),
		AccountDebitedUUID:  debited,
		AccountCreditedUUID: credited,
		Rate:                dec("2"),
		RateDirection:       model.RateMultiply,
	}

	// The credited leg receives the converted amount, the debited leg
	// gives up the raw amount.
	assert.True(t, dec("100.00").Equal(tx.AmountFor(credited)))
	assert.True(t, dec("-50.00").Equal(tx.AmountFor(debited)))
	assert.True(t, tx.AmountFor(other).IsZero())
}

func TestTransaction_IsDetail(t *testing.T) {
	assert.False(t, model.Transaction{}.IsDetail())
	assert.True(t, model.Transaction{ParentUUID: uuid.New()}.IsDetail())
}

func TestNewTransaction_Stamps(t *testing.T) {
	tx := model.NewTransaction(model.Transaction{Amount: dec("1")})

	require.NotEqual(t, uuid.Nil, tx.UUID)
	assert.NotZero(t, tx.Created)
	assert.Equal(t, tx.Created, tx.Modified)
}

func TestNewTransaction_KeepsExistingStamps(t *testing.T) {
	id := uuid.New()

	tx := model.NewTransaction(model.Transaction{
		UUID:     id,
		Created:  100,
		Modified: 200,
	})

	assert.Equal(t, id, tx.UUID)
	assert.Equal(t, int64(100), tx.Created)
	assert.Equal(t, int64(200), tx.Modified)
}

func TestTransaction_WithChecked(t *testing.T) {
	tx := model.NewTransaction(model.Transaction{Modified: 1})
	checked := tx.WithChecked(true)

	assert.True(t, checked.Checked)
	assert.Greater(t, checked.Modified, tx.Modified)

	// Value semantics: the original is untouched.
	assert.False(t, tx.Checked)
}

func TestTransaction_WithStatementDate(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tx := model.Transaction{}.WithStatementDate(date)

	assert.Equal(t, date, tx.StatementDate)
	assert.NotZero(t, tx.Modified)
}
