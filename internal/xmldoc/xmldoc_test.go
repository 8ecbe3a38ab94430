package xmldoc_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
	"github.com/petr-panteleyev/money-manager-sub002/internal/xmldoc"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

// fixture builds a small but fully linked record set: one transaction
// splitting into one detail line, plus the accounts, category, currency,
// contact and icon it references.
func fixture() cache.Snapshot {
	icon := model.NewIcon(model.Icon{Name: "wallet", Bytes: []byte{1, 2, 3}})

	category := model.NewCategory(model.Category{
		Name:     "Cash",
		Type:     model.CategoryBanksAndCash,
		IconUUID: icon.UUID,
	})

	currency := model.NewCurrency(model.Currency{
		Symbol:  "EUR",
		Default: true,
		Rate:    dec("1"),
	})

	contact := model.NewContact(model.Contact{
		Name: "Grocer",
		Type: model.ContactSupplier,
	})

	wallet := model.NewAccount(model.Account{
		Name:           "Wallet",
		OpeningBalance: dec("100"),
		AccountLimit:   dec("0"),
		Type:           model.CategoryBanksAndCash,
		CategoryUUID:   category.UUID,
		CurrencyUUID:   currency.UUID,
		Enabled:        true,
		Total:          dec("100"),
	})

	spending := model.NewAccount(model.Account{
		Name:           "Groceries",
		OpeningBalance: dec("0"),
		AccountLimit:   dec("0"),
		Type:           model.CategoryExpenses,
		CategoryUUID:   category.UUID,
		CurrencyUUID:   currency.UUID,
		Enabled:        true,
		Total:          dec("0"),
	})

	parent := model.NewTransaction(model.Transaction{
		Amount:              dec("42.5"),
		Date:                time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  wallet.UUID,
		AccountCreditedUUID: spending.UUID,
		AccountDebitedType:  wallet.Type,
		AccountCreditedType: spending.Type,
		ContactUUID:         contact.UUID,
		Rate:                dec("0"),
		Detailed:            true,
	})

	detail := model.NewTransaction(model.Transaction{
		Amount:              dec("42.5"),
		Date:                parent.Date,
		AccountDebitedUUID:  wallet.UUID,
		AccountCreditedUUID: spending.UUID,
		AccountDebitedType:  wallet.Type,
		AccountCreditedType: spending.Type,
		Rate:                dec("0"),
		ParentUUID:          parent.UUID,
	})

	return cache.Snapshot{
		Icons:        []model.Icon{icon},
		Categories:   []model.Category{category},
		Currencies:   []model.Currency{currency},
		Contacts:     []model.Contact{contact},
		Accounts:     []model.Account{wallet, spending},
		Transactions: []model.Transaction{parent, detail},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	snap := fixture()

	var buf bytes.Buffer
	require.NoError(t, xmldoc.Write(&buf, xmldoc.FromSnapshot(snap)))

	doc, err := xmldoc.Read(&buf)
	require.NoError(t, err)

	got, err := doc.ToSnapshot()
	require.NoError(t, err)

	assert.Equal(t, snap.Icons, got.Icons)
	assert.Equal(t, snap.Categories, got.Categories)
	assert.Equal(t, snap.Contacts, got.Contacts)
	assert.Equal(t, snap.Accounts, got.Accounts)
	assert.Equal(t, snap.Transactions, got.Transactions)

	require.Len(t, got.Currencies, 1)
	assert.True(t, got.Currencies[0].Rate.Equal(snap.Currencies[0].Rate))
}

func TestWrite_EmptyGroupsArePresent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xmldoc.Write(&buf, xmldoc.Document{}))

	out := buf.String()
	for _, group := range []string{"Icons", "Categories", "Currencies", "Contacts", "Accounts", "Transactions"} {
		assert.Contains(t, out, group)
	}
}

func TestRead_MissingGroup(t *testing.T) {
	// No Transactions element at all.
	in := `<?xml version="1.0" encoding="UTF-8"?>
<MoneyRecords>
  <Icons></Icons>
  <Categories></Categories>
  <Currencies></Currencies>
  <Contacts></Contacts>
  <Accounts></Accounts>
</MoneyRecords>`

	_, err := xmldoc.Read(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing record group Transactions")
}

func TestRead_EmptyGroupIsNotMissing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xmldoc.Write(&buf, xmldoc.Document{}))

	_, err := xmldoc.Read(&buf)
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	id := uuid.New().String()

	tests := []struct {
		name    string
		doc     xmldoc.Document
		wantErr string
	}{
		{
			name: "DuplicateUUIDWithinGroup",
			doc: xmldoc.Document{
				Contacts: xmldoc.Contacts{Contacts: []xmldoc.Contact{
					{UUID: id, Name: "a", Type: "personal"},
					{UUID: id, Name: "b", Type: "personal"},
				}},
			},
			wantErr: "duplicate uuid",
		},
		{
			name: "SameUUIDAcrossGroupsIsFine",
			doc: xmldoc.Document{
				Contacts: xmldoc.Contacts{Contacts: []xmldoc.Contact{
					{UUID: id, Name: "a", Type: "personal"},
				}},
				Icons: xmldoc.Icons{Icons: []xmldoc.Icon{
					{UUID: id, Name: "wallet"},
				}},
			},
		},
		{
			name: "MissingUUID",
			doc: xmldoc.Document{
				Icons: xmldoc.Icons{Icons: []xmldoc.Icon{{Name: "wallet"}}},
			},
			wantErr: "without uuid",
		},
		{
			name: "CategoryWithoutType",
			doc: xmldoc.Document{
				Categories: xmldoc.Categories{Categories: []xmldoc.Category{
					{UUID: id, Name: "Cash"},
				}},
			},
			wantErr: "without type",
		},
		{
			name: "AccountWithoutCurrency",
			doc: xmldoc.Document{
				Accounts: xmldoc.Accounts{Accounts: []xmldoc.Account{
					{UUID: id, Name: "Wallet", CategoryUUID: uuid.New().String()},
				}},
			},
			wantErr: "without currency",
		},
		{
			name: "TransactionWithoutCreditedLeg",
			doc: xmldoc.Document{
				Transactions: xmldoc.Transactions{Transactions: []xmldoc.Transaction{
					{UUID: id, AccountDebitedUUID: uuid.New().String()},
				}},
			},
			wantErr: "without both account legs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := xmldoc.Validate(tt.doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToSnapshot_NegativeAmount(t *testing.T) {
	doc := xmldoc.FromSnapshot(fixture())
	doc.Transactions.Transactions[0].Amount = "-10.00"

	_, err := doc.ToSnapshot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is negative")
}

func TestWithTransactions(t *testing.T) {
	snap := fixture()
	parent := snap.Transactions[0]

	got := xmldoc.WithTransactions(snap, []uuid.UUID{parent.UUID})

	// Detail lines of a selected split come along.
	assert.Len(t, got.Transactions, 2)
	assert.Len(t, got.Accounts, 2)
	assert.Len(t, got.Categories, 1)
	assert.Len(t, got.Currencies, 1)
	assert.Len(t, got.Contacts, 1)
	assert.Len(t, got.Icons, 1)
}

func TestWithTransactions_NoSelection(t *testing.T) {
	got := xmldoc.WithTransactions(fixture(), nil)

	assert.Empty(t, got.Transactions)
	assert.Empty(t, got.Accounts)
	assert.Empty(t, got.Contacts)
}

func TestWithAccounts(t *testing.T) {
	snap := fixture()
	wallet := snap.Accounts[0]

	got := xmldoc.WithAccounts(snap, []uuid.UUID{wallet.UUID})

	require.Len(t, got.Accounts, 1)
	assert.Equal(t, wallet.UUID, got.Accounts[0].UUID)
	assert.Len(t, got.Categories, 1)
	assert.Len(t, got.Currencies, 1)
	assert.Len(t, got.Icons, 1)
	assert.Empty(t, got.Transactions)
	assert.Empty(t, got.Contacts)
}
