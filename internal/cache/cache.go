// Package cache holds the in-memory record store: the single source of
// truth consulted by the balance calculator, the statement matcher and all
// user-facing views. It is loaded from the database at startup and replaced
// wholesale after a successful import.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

// Store is a typed, mutex-guarded mapping from identity to entity, one
// collection per entity kind. Updates replace entries in place so list
// ordering observed by views stays stable.
type Store struct {
	mu sync.RWMutex

	icons        []model.Icon
	categories   []model.Category
	currencies   []model.Currency
	contacts     []model.Contact
	accounts     []model.Account
	transactions []model.Transaction
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Snapshot is a full copy of every collection, used to seed the store and
// to hand record sets to the exporter.
type Snapshot struct {
	Icons        []model.Icon
	Categories   []model.Category
	Currencies   []model.Currency
	Contacts     []model.Contact
	Accounts     []model.Account
	Transactions []model.Transaction
}

// Replace swaps in a complete record set, discarding the previous contents.
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.icons = append([]model.Icon(nil), snap.Icons...)
	s.categories = append([]model.Category(nil), snap.Categories...)
	s.currencies = append([]model.Currency(nil), snap.Currencies...)
	s.contacts = append([]model.Contact(nil), snap.Contacts...)
	s.accounts = append([]model.Account(nil), snap.Accounts...)
	s.transactions = append([]model.Transaction(nil), snap.Transactions...)
}

// Contents returns a copy of everything currently in the store.
func (s *Store) Contents() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Icons:        append([]model.Icon(nil), s.icons...),
		Categories:   append([]model.Category(nil), s.categories...),
		Currencies:   append([]model.Currency(nil), s.currencies...),
		Contacts:     append([]model.Contact(nil), s.contacts...),
		Accounts:     append([]model.Account(nil), s.accounts...),
		Transactions: append([]model.Transaction(nil), s.transactions...),
	}
}

// put replaces the entry with the same identity in place, or appends when
// the identity is new. In-place replacement keeps collection positions
// stable for any ordering a view has built on top.
func put[T model.Record](list []T, item T) []T {
	for i := range list {
		if list[i].RecordID() == item.RecordID() {
			list[i] = item
			return list
		}
	}

	return append(list, item)
}

func remove[T model.Record](list []T, id uuid.UUID) []T {
	for i := range list {
		if list[i].RecordID() == id {
			return append(list[:i], list[i+1:]...)
		}
	}

	return list
}

func get[T model.Record](list []T, id uuid.UUID) (T, bool) {
	for i := range list {
		if list[i].RecordID() == id {
			return list[i], true
		}
	}

	var zero T

	return zero, false
}

// Icons

func (s *Store) Icons() []model.Icon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Icon(nil), s.icons...)
}

func (s *Store) Icon(id uuid.UUID) (model.Icon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.icons, id)
}

func (s *Store) PutIcon(i model.Icon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.icons = put(s.icons, i)
}

func (s *Store) RemoveIcon(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.icons = remove(s.icons, id)
}

// Categories

func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Category(nil), s.categories...)
}

func (s *Store) Category(id uuid.UUID) (model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.categories, id)
}

func (s *Store) CategoriesByType(t model.CategoryType) []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Category

	for _, c := range s.categories {
		if c.Type == t {
			out = append(out, c)
		}
	}

	return out
}

func (s *Store) PutCategory(c model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = put(s.categories, c)
}

func (s *Store) RemoveCategory(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = remove(s.categories, id)
}

// Currencies

func (s *Store) Currencies() []model.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Currency(nil), s.currencies...)
}

func (s *Store) Currency(id uuid.UUID) (model.Currency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.currencies, id)
}

// DefaultCurrency returns the currency flagged as default, if any.
func (s *Store) DefaultCurrency() (model.Currency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.currencies {
		if c.Default {
			return c, true
		}
	}

	return model.Currency{}, false
}

func (s *Store) PutCurrency(c model.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currencies = put(s.currencies, c)
}

func (s *Store) RemoveCurrency(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currencies = remove(s.currencies, id)
}

// Contacts

func (s *Store) Contacts() []model.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Contact(nil), s.contacts...)
}

func (s *Store) Contact(id uuid.UUID) (model.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.contacts, id)
}

// ContactByName finds a contact by exact display name.
func (s *Store) ContactByName(name string) (model.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contacts {
		if c.Name == name {
			return c, true
		}
	}

	return model.Contact{}, false
}

func (s *Store) PutContact(c model.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = put(s.contacts, c)
}

func (s *Store) RemoveContact(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = remove(s.contacts, id)
}

// Accounts

func (s *Store) Accounts() []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Account(nil), s.accounts...)
}

func (s *Store) Account(id uuid.UUID) (model.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.accounts, id)
}

func (s *Store) AccountsByCategory(category uuid.UUID) []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Account

	for _, a := range s.accounts {
		if a.CategoryUUID == category {
			out = append(out, a)
		}
	}

	return out
}

func (s *Store) AccountsByType(t model.CategoryType) []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Account

	for _, a := range s.accounts {
		if a.Type == t {
			out = append(out, a)
		}
	}

	return out
}

// AccountCategoryName resolves the category name for an account, falling
// back to an empty string when the reference cannot be resolved.
func (s *Store) AccountCategoryName(a model.Account) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := get(s.categories, a.CategoryUUID); ok {
		return c.Name
	}

	return ""
}

func (s *Store) PutAccount(a model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = put(s.accounts, a)
}

func (s *Store) RemoveAccount(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = remove(s.accounts, id)
}

// Transactions

func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Transaction(nil), s.transactions...)
}

func (s *Store) Transaction(id uuid.UUID) (model.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.transactions, id)
}

// TransactionsByAccount returns every transaction referencing the account
// as either leg, detail lines included.
func (s *Store) TransactionsByAccount(account uuid.UUID) []model.Transaction {
	return s.TransactionsWhere(func(t model.Transaction) bool {
		return t.References(account)
	})
}

// TransactionDetails returns the detail lines of a split transaction.
func (s *Store) TransactionDetails(parent uuid.UUID) []model.Transaction {
	return s.TransactionsWhere(func(t model.Transaction) bool {
		return t.ParentUUID == parent
	})
}

// TransactionsByDateRange returns top-level transactions dated within
// [from, to] inclusive.
func (s *Store) TransactionsByDateRange(from, to time.Time) []model.Transaction {
	return s.TransactionsWhere(func(t model.Transaction) bool {
		return !t.IsDetail() && !t.Date.Before(from) && !t.Date.After(to)
	})
}

// TransactionsWhere returns every transaction satisfying the predicate.
func (s *Store) TransactionsWhere(pred func(model.Transaction) bool) []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Transaction

	for _, t := range s.transactions {
		if pred(t) {
			out = append(out, t)
		}
	}

	return out
}

func (s *Store) PutTransaction(t model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = put(s.transactions, t)
}

func (s *Store) RemoveTransaction(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = remove(s.transactions, id)
}
