package cache_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

func TestStore_PutPreservesPosition(t *testing.T) {
	s := cache.New()

	first := model.NewAccount(model.Account{Name: "first"})
	second := model.NewAccount(model.Account{Name: "second"})
	third := model.NewAccount(model.Account{Name: "third"})

	s.PutAccount(first)
	s.PutAccount(second)
	s.PutAccount(third)

	// Updating the middle element must not move it.
	updated := second
	updated.Name = "renamed"
	s.PutAccount(updated)

	accounts := s.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, "first", accounts[0].Name)
	assert.Equal(t, "renamed", accounts[1].Name)
	assert.Equal(t, "third", accounts[2].Name)
}

func TestStore_GetAndRemove(t *testing.T) {
	s := cache.New()

	a := model.NewAccount(model.Account{Name: "checking"})
	s.PutAccount(a)

	got, ok := s.Account(a.UUID)
	require.True(t, ok)
	assert.Equal(t, "checking", got.Name)

	s.RemoveAccount(a.UUID)

	_, ok = s.Account(a.UUID)
	assert.False(t, ok)
}

func TestStore_Replace(t *testing.T) {
	s := cache.New()
	s.PutAccount(model.NewAccount(model.Account{Name: "stale"}))

	fresh := model.NewAccount(model.Account{Name: "fresh"})

	s.Replace(cache.Snapshot{Accounts: []model.Account{fresh}})

	accounts := s.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "fresh", accounts[0].Name)
}

func TestStore_ContactByName(t *testing.T) {
	s := cache.New()
	s.PutContact(model.NewContact(model.Contact{Name: "Alice", Type: model.ContactPersonal}))

	_, ok := s.ContactByName("Bob")
	assert.False(t, ok)

	c, ok := s.ContactByName("Alice")
	require.True(t, ok)
	assert.Equal(t, model.ContactPersonal, c.Type)
}

func TestStore_DefaultCurrency(t *testing.T) {
	s := cache.New()

	_, ok := s.DefaultCurrency()
	assert.False(t, ok)

	s.PutCurrency(model.NewCurrency(model.Currency{Symbol: "USD"}))
	s.PutCurrency(model.NewCurrency(model.Currency{Symbol: "EUR", Default: true}))

	c, ok := s.DefaultCurrency()
	require.True(t, ok)
	assert.Equal(t, "EUR", c.Symbol)
}

func TestStore_AccountCategoryName(t *testing.T) {
	s := cache.New()

	category := model.NewCategory(model.Category{Name: "Cash", Type: model.CategoryBanksAndCash})
	s.PutCategory(category)

	known := model.Account{CategoryUUID: category.UUID}
	assert.Equal(t, "Cash", s.AccountCategoryName(known))

	// A dangling category reference falls back to empty rather than failing.
	unknown := model.Account{CategoryUUID: uuid.New()}
	assert.Equal(t, "", s.AccountCategoryName(unknown))
}

func TestStore_TransactionDetails(t *testing.T) {
	s := cache.New()

	parent := model.NewTransaction(model.Transaction{Amount: decimal.NewFromInt(100), Detailed: true})
	detailA := model.NewTransaction(model.Transaction{Amount: decimal.NewFromInt(60), ParentUUID: parent.UUID})
	detailB := model.NewTransaction(model.Transaction{Amount: decimal.NewFromInt(40), ParentUUID: parent.UUID})
	unrelated := model.NewTransaction(model.Transaction{Amount: decimal.NewFromInt(5)})

	s.PutTransaction(parent)
	s.PutTransaction(detailA)
	s.PutTransaction(detailB)
	s.PutTransaction(unrelated)

	details := s.TransactionDetails(parent.UUID)
	require.Len(t, details, 2)
}

func TestStore_TransactionsByDateRange(t *testing.T) {
	s := cache.New()

	day := func(d int) time.Time {
		return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
	}

	for _, d := range []int{1, 10, 20, 31} {
		s.PutTransaction(model.NewTransaction(model.Transaction{Date: day(d)}))
	}

	got := s.TransactionsByDateRange(day(10), day(20))
	assert.Len(t, got, 2)
}

func TestStore_AccountsByType(t *testing.T) {
	s := cache.New()

	s.PutAccount(model.NewAccount(model.Account{Name: "checking", Type: model.CategoryBanksAndCash}))
	s.PutAccount(model.NewAccount(model.Account{Name: "salary", Type: model.CategoryIncomes}))

	got := s.AccountsByType(model.CategoryBanksAndCash)
	require.Len(t, got, 1)
	assert.Equal(t, "checking", got[0].Name)
}
