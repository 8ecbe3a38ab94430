package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/ledger"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

type fixture struct {
	repo   *ledger.MockRepository
	store  *cache.Store
	svc    *ledger.Service
	wallet model.Account
	food   model.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	store := cache.New()

	cash := model.NewCategory(model.Category{Name: "Cash", Type: model.CategoryBanksAndCash})
	expenses := model.NewCategory(model.Category{Name: "Expenses", Type: model.CategoryExpenses})
	store.PutCategory(cash)
	store.PutCategory(expenses)

	wallet := model.NewAccount(model.Account{
		Name:           "Wallet",
		OpeningBalance: dec("100"),
		Type:           model.CategoryBanksAndCash,
		CategoryUUID:   cash.UUID,
		Enabled:        true,
	})

	food := model.NewAccount(model.Account{
		Name:         "Food",
		Type:         model.CategoryExpenses,
		CategoryUUID: expenses.UUID,
		Enabled:      true,
	})

	store.PutAccount(wallet)
	store.PutAccount(food)

	return &fixture{
		repo:   repo,
		store:  store,
		svc:    ledger.NewService(repo, store),
		wallet: wallet,
		food:   food,
	}
}

func (f *fixture) params(amount string) ledger.TransactionParams {
	return ledger.TransactionParams{
		Amount:          dec(amount),
		Date:            time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		AccountDebited:  f.wallet.UUID,
		AccountCredited: f.food.UUID,
	}
}

func TestService_Post(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(2)

	tx, err := f.svc.Post(ctx, f.params("25"))
	require.NoError(t, err)

	// Leg types and categories are denormalized from the accounts.
	assert.Equal(t, model.CategoryBanksAndCash, tx.AccountDebitedType)
	assert.Equal(t, model.CategoryExpenses, tx.AccountCreditedType)
	assert.Equal(t, f.wallet.CategoryUUID, tx.AccountDebitedCategoryUUID)
	assert.Equal(t, f.food.CategoryUUID, tx.AccountCreditedCategoryUUID)
	assert.NotEqual(t, uuid.Nil, tx.UUID)

	_, ok := f.store.Transaction(tx.UUID)
	assert.True(t, ok)

	wallet, _ := f.store.Account(f.wallet.UUID)
	food, _ := f.store.Account(f.food.UUID)
	assert.True(t, dec("75").Equal(wallet.Total), "wallet total %s", wallet.Total)
	assert.True(t, dec("25").Equal(food.Total), "food total %s", food.Total)
}

func TestService_Post_UnknownAccount(t *testing.T) {
	f := newFixture(t)

	params := f.params("25")
	params.AccountDebited = uuid.New()

	_, err := f.svc.Post(context.Background(), params)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestService_Post_ContactSynthesis(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var created model.Contact

	f.repo.EXPECT().
		CreateContact(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c model.Contact) error {
			created = c
			return nil
		})
	f.repo.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(2)

	params := f.params("10")
	params.ContactName = "New Grocer"

	tx, err := f.svc.Post(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, "New Grocer", created.Name)
	assert.Equal(t, model.ContactPersonal, created.Type)
	assert.Equal(t, created.UUID, tx.ContactUUID)

	_, ok := f.store.Contact(created.UUID)
	assert.True(t, ok)
}

func TestService_Post_ContactByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := model.NewContact(model.Contact{Name: "Grocer", Type: model.ContactSupplier})
	f.store.PutContact(existing)

	// No CreateContact expectation: the existing contact is reused.
	f.repo.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(2)

	params := f.params("10")
	params.ContactName = "Grocer"

	tx, err := f.svc.Post(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, existing.UUID, tx.ContactUUID)
}

func TestService_Edit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	savings := model.NewAccount(model.Account{
		Name:         "Savings",
		Type:         model.CategoryExpenses,
		CategoryUUID: f.food.CategoryUUID,
		Enabled:      true,
	})
	f.store.PutAccount(savings)

	f.repo.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(2)

	tx, err := f.svc.Post(ctx, f.params("25"))
	require.NoError(t, err)

	// Rerouting the credited leg refreshes all three accounts.
	f.repo.EXPECT().UpdateTransaction(ctx, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(3)

	params := f.params("40")
	params.AccountCredited = savings.UUID

	edited, err := f.svc.Edit(ctx, tx.UUID, params)
	require.NoError(t, err)
	assert.Equal(t, tx.UUID, edited.UUID)

	wallet, _ := f.store.Account(f.wallet.UUID)
	food, _ := f.store.Account(f.food.UUID)
	got, _ := f.store.Account(savings.UUID)
	assert.True(t, dec("60").Equal(wallet.Total), "wallet total %s", wallet.Total)
	assert.True(t, dec("0").Equal(food.Total), "food total %s", food.Total)
	assert.True(t, dec("40").Equal(got.Total), "savings total %s", got.Total)
}

func TestService_Edit_BumpsModified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx := model.Transaction{
		UUID:                uuid.New(),
		Amount:              dec("25"),
		Date:                time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  f.wallet.UUID,
		AccountCreditedUUID: f.food.UUID,
		Created:             100,
		Modified:            100,
	}
	f.store.PutTransaction(tx)

	f.repo.EXPECT().UpdateTransaction(ctx, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(2)

	edited, err := f.svc.Edit(ctx, tx.UUID, f.params("30"))
	require.NoError(t, err)

	// A replica holding the pre-edit copy must see the edit as newer.
	assert.Greater(t, edited.Modified, tx.Modified)
	assert.Equal(t, tx.Created, edited.Created)
}

func TestService_SaveAccount_UpdateKeepsCreated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stored := f.wallet
	stored.Created = 100
	stored.Modified = 100
	f.store.PutAccount(stored)

	// One update for the record itself, one from the totals refresh.
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(2)

	incoming := stored
	incoming.Name = "Wallet renamed"
	incoming.Created = 0
	incoming.Modified = 0

	saved, err := f.svc.SaveAccount(ctx, incoming)
	require.NoError(t, err)

	assert.Equal(t, int64(100), saved.Created)
	assert.Greater(t, saved.Modified, int64(100))
	assert.Equal(t, "Wallet renamed", saved.Name)
}

func TestService_SaveContact_UpdateKeepsCreated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stored := model.NewContact(model.Contact{Name: "Grocer", Type: model.ContactSupplier})
	stored.Created = 100
	stored.Modified = 100
	f.store.PutContact(stored)

	f.repo.EXPECT().UpdateContact(ctx, gomock.Any()).Return(nil)

	incoming := stored
	incoming.Name = "Grocer renamed"
	incoming.Created = 0
	incoming.Modified = 0

	saved, err := f.svc.SaveContact(ctx, incoming)
	require.NoError(t, err)

	assert.Equal(t, int64(100), saved.Created)
	assert.Greater(t, saved.Modified, int64(100))
}

func TestService_Edit_Unknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Edit(context.Background(), uuid.New(), f.params("10"))
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := model.NewTransaction(model.Transaction{
		Amount:              dec("50"),
		Date:                time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  f.wallet.UUID,
		AccountCreditedUUID: f.food.UUID,
		Detailed:            true,
	})

	detail := model.NewTransaction(model.Transaction{
		Amount:              dec("50"),
		Date:                parent.Date,
		AccountDebitedUUID:  f.wallet.UUID,
		AccountCreditedUUID: f.food.UUID,
		ParentUUID:          parent.UUID,
	})

	f.store.PutTransaction(parent)
	f.store.PutTransaction(detail)

	f.repo.EXPECT().DeleteTransaction(ctx, parent.UUID).Return(nil)
	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil).Times(2)

	require.NoError(t, f.svc.Delete(ctx, parent.UUID))

	// Detail lines go with the parent.
	_, ok := f.store.Transaction(detail.UUID)
	assert.False(t, ok)

	wallet, _ := f.store.Account(f.wallet.UUID)
	assert.True(t, dec("100").Equal(wallet.Total), "wallet total %s", wallet.Total)
}

func TestService_SetChecked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx := model.NewTransaction(model.Transaction{
		Amount:              dec("10"),
		Date:                time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  f.wallet.UUID,
		AccountCreditedUUID: f.food.UUID,
	})
	f.store.PutTransaction(tx)

	f.repo.EXPECT().UpdateTransaction(ctx, gomock.Any()).Return(nil)

	statementDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.SetChecked(ctx, []uuid.UUID{tx.UUID}, true, statementDate))

	got, _ := f.store.Transaction(tx.UUID)
	assert.True(t, got.Checked)
	assert.Equal(t, statementDate, got.StatementDate)
}

func TestService_DeleteAccount_InUse(t *testing.T) {
	f := newFixture(t)

	f.store.PutTransaction(model.NewTransaction(model.Transaction{
		Amount:              dec("10"),
		Date:                time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  f.wallet.UUID,
		AccountCreditedUUID: f.food.UUID,
	}))

	err := f.svc.DeleteAccount(context.Background(), f.wallet.UUID)
	assert.ErrorIs(t, err, ledger.ErrAccountInUse)
}

func TestService_DeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().DeleteAccount(ctx, f.food.UUID).Return(nil)

	require.NoError(t, f.svc.DeleteAccount(ctx, f.food.UUID))

	_, ok := f.store.Account(f.food.UUID)
	assert.False(t, ok)
}

func TestService_DeleteCategory_InUse(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteCategory(context.Background(), f.wallet.CategoryUUID)
	assert.ErrorIs(t, err, ledger.ErrCategoryInUse)
}

func TestService_CloseAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().UpdateAccount(ctx, gomock.Any()).Return(nil)

	closed, err := f.svc.CloseAccount(ctx, f.wallet.UUID)
	require.NoError(t, err)
	assert.False(t, closed.Enabled)

	got, _ := f.store.Account(f.wallet.UUID)
	assert.False(t, got.Enabled)
}

func TestService_DeleteIcon_ClearsReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	icon := model.NewIcon(model.Icon{Name: "wallet", Bytes: []byte{1}})
	f.store.PutIcon(icon)

	marked := f.wallet
	marked.IconUUID = icon.UUID
	f.store.PutAccount(marked)

	f.repo.EXPECT().DeleteIcon(ctx, icon.UUID).Return(nil)

	require.NoError(t, f.svc.DeleteIcon(ctx, icon.UUID))

	got, _ := f.store.Account(f.wallet.UUID)
	assert.Equal(t, uuid.Nil, got.IconUUID)
}
