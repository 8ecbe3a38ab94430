// Package ledger implements the write path of the record set: posting
// and deleting transactions, keeping account totals current, and the
// account lifecycle. Every write goes to the database first and to the
// in-memory store only after it succeeded.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/balance"
	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAccountInUse        = errors.New("account has transactions")
	ErrCategoryInUse       = errors.New("category has accounts")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, t model.Transaction) error
	UpdateTransaction(ctx context.Context, t model.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	CreateAccount(ctx context.Context, a model.Account) error
	UpdateAccount(ctx context.Context, a model.Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, c model.Category) error
	UpdateCategory(ctx context.Context, c model.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateContact(ctx context.Context, c model.Contact) error
	UpdateContact(ctx context.Context, c model.Contact) error

	CreateCurrency(ctx context.Context, c model.Currency) error
	UpdateCurrency(ctx context.Context, c model.Currency) error

	CreateIcon(ctx context.Context, i model.Icon) error
	DeleteIcon(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo  Repository
	store *cache.Store
	calc  *balance.Calculator
}

func NewService(repo Repository, store *cache.Store) *Service {
	return &Service{
		repo:  repo,
		store: store,
		calc:  balance.New(store),
	}
}

// TransactionParams carries the user-editable fields of a transaction.
// ContactName, when set and ContactUUID is not, is resolved against
// existing contacts by exact name and a new personal contact is created
// when none matches.
type TransactionParams struct {
	Amount          decimal.Decimal
	Date            time.Time
	AccountDebited  uuid.UUID
	AccountCredited uuid.UUID
	ContactUUID     uuid.UUID
	ContactName     string
	Rate            decimal.Decimal
	RateDirection   model.RateDirection
	InvoiceNumber   string
	Checked         bool
	ParentUUID      uuid.UUID
	Detailed        bool
	StatementDate   time.Time
}

// Post creates a new transaction. Account types and categories are
// denormalized from the current accounts, and both account totals are
// recomputed afterwards.
func (s *Service) Post(ctx context.Context, params TransactionParams) (model.Transaction, error) {
	t, err := s.build(ctx, model.Transaction{}, params)
	if err != nil {
		return model.Transaction{}, err
	}

	t = model.NewTransaction(t)

	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return model.Transaction{}, fmt.Errorf("creating transaction: %w", err)
	}

	s.store.PutTransaction(t)

	if err := s.refreshTotals(ctx, t.AccountDebitedUUID, t.AccountCreditedUUID); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// Edit replaces an existing transaction. Totals are recomputed for the
// old and the new accounts, which may differ after the edit.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, params TransactionParams) (model.Transaction, error) {
	old, ok := s.store.Transaction(id)
	if !ok {
		return model.Transaction{}, ErrTransactionNotFound
	}

	t, err := s.build(ctx, old, params)
	if err != nil {
		return model.Transaction{}, err
	}

	t = model.NewTransaction(t)
	// build carries the old timestamps over; an edit is a newer value.
	t.Modified = time.Now().UnixMilli()

	if err := s.repo.UpdateTransaction(ctx, t); err != nil {
		return model.Transaction{}, fmt.Errorf("updating transaction: %w", err)
	}

	s.store.PutTransaction(t)

	err = s.refreshTotals(ctx,
		old.AccountDebitedUUID, old.AccountCreditedUUID,
		t.AccountDebitedUUID, t.AccountCreditedUUID)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// Delete removes a transaction and its details, then recomputes the
// totals of the accounts it touched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	t, ok := s.store.Transaction(id)
	if !ok {
		return ErrTransactionNotFound
	}

	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	// Details go with the parent, mirroring the cascade in the database.
	for _, d := range s.store.TransactionDetails(id) {
		s.store.RemoveTransaction(d.UUID)
	}

	s.store.RemoveTransaction(id)

	return s.refreshTotals(ctx, t.AccountDebitedUUID, t.AccountCreditedUUID)
}

// SetChecked marks transactions as reconciled (or not) against a
// statement, stamping the statement date when one is given.
func (s *Service) SetChecked(ctx context.Context, ids []uuid.UUID, checked bool, statementDate time.Time) error {
	for _, id := range ids {
		t, ok := s.store.Transaction(id)
		if !ok {
			return ErrTransactionNotFound
		}

		t = t.WithChecked(checked)
		if !statementDate.IsZero() {
			t = t.WithStatementDate(statementDate)
		}

		if err := s.repo.UpdateTransaction(ctx, t); err != nil {
			return fmt.Errorf("updating transaction: %w", err)
		}

		s.store.PutTransaction(t)
	}

	return nil
}

// build assembles a transaction from params on top of base, resolving
// accounts and the contact.
func (s *Service) build(ctx context.Context, base model.Transaction, params TransactionParams) (model.Transaction, error) {
	debited, ok := s.store.Account(params.AccountDebited)
	if !ok {
		return model.Transaction{}, fmt.Errorf("debited %w", ErrAccountNotFound)
	}

	credited, ok := s.store.Account(params.AccountCredited)
	if !ok {
		return model.Transaction{}, fmt.Errorf("credited %w", ErrAccountNotFound)
	}

	contact, err := s.resolveContact(ctx, params.ContactUUID, params.ContactName)
	if err != nil {
		return model.Transaction{}, err
	}

	t := base
	t.Amount = params.Amount
	t.Date = params.Date
	t.AccountDebitedUUID = debited.UUID
	t.AccountCreditedUUID = credited.UUID
	t.AccountDebitedType = debited.Type
	t.AccountCreditedType = credited.Type
	t.AccountDebitedCategoryUUID = debited.CategoryUUID
	t.AccountCreditedCategoryUUID = credited.CategoryUUID
	t.ContactUUID = contact
	t.Rate = params.Rate
	t.RateDirection = params.RateDirection
	t.InvoiceNumber = params.InvoiceNumber
	t.Checked = params.Checked
	t.ParentUUID = params.ParentUUID
	t.Detailed = params.Detailed
	t.StatementDate = params.StatementDate

	return t, nil
}

func (s *Service) resolveContact(ctx context.Context, id uuid.UUID, name string) (uuid.UUID, error) {
	if id != uuid.Nil {
		return id, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, nil
	}

	if existing, ok := s.store.ContactByName(name); ok {
		return existing.UUID, nil
	}

	contact := model.NewContact(model.Contact{
		Name: name,
		Type: model.ContactPersonal,
	})

	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return uuid.Nil, fmt.Errorf("creating contact: %w", err)
	}

	s.store.PutContact(contact)

	return contact.UUID, nil
}

// refreshTotals recomputes and persists the running total of each given
// account. Duplicates are fine, the second pass is a no-op.
func (s *Service) refreshTotals(ctx context.Context, accounts ...uuid.UUID) error {
	done := make(map[uuid.UUID]bool, len(accounts))

	for _, id := range accounts {
		if id == uuid.Nil || done[id] {
			continue
		}

		done[id] = true

		a, ok := s.store.Account(id)
		if !ok {
			continue
		}

		updated := a.WithTotal(s.calc.Total(a))

		if err := s.repo.UpdateAccount(ctx, updated); err != nil {
			return fmt.Errorf("updating account total: %w", err)
		}

		s.store.PutAccount(updated)
	}

	return nil
}
