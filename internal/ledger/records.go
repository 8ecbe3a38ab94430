package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

// SaveAccount creates or updates an account. The stored total is kept
// as-is on create and recomputed on update in case the opening balance
// or limit changed.
func (s *Service) SaveAccount(ctx context.Context, a model.Account) (model.Account, error) {
	stored, exists := s.store.Account(a.UUID)

	a = model.NewAccount(a)

	if exists {
		// Incoming values usually arrive without timestamps; the original
		// creation time survives the update.
		a.Created = stored.Created
		a.Modified = time.Now().UnixMilli()

		if err := s.repo.UpdateAccount(ctx, a); err != nil {
			return model.Account{}, fmt.Errorf("updating account: %w", err)
		}

		s.store.PutAccount(a)

		if err := s.refreshTotals(ctx, a.UUID); err != nil {
			return model.Account{}, err
		}

		updated, _ := s.store.Account(a.UUID)

		return updated, nil
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return model.Account{}, fmt.Errorf("creating account: %w", err)
	}

	s.store.PutAccount(a)

	return a, nil
}

// CloseAccount disables an account without touching its history.
func (s *Service) CloseAccount(ctx context.Context, id uuid.UUID) (model.Account, error) {
	a, ok := s.store.Account(id)
	if !ok {
		return model.Account{}, ErrAccountNotFound
	}

	a = a.WithEnabled(false)

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return model.Account{}, fmt.Errorf("updating account: %w", err)
	}

	s.store.PutAccount(a)

	return a, nil
}

// DeleteAccount removes an account that has no transactions.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.store.Account(id); !ok {
		return ErrAccountNotFound
	}

	if len(s.store.TransactionsByAccount(id)) > 0 {
		return ErrAccountInUse
	}

	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	s.store.RemoveAccount(id)

	return nil
}

// SaveCategory creates or updates a category.
func (s *Service) SaveCategory(ctx context.Context, c model.Category) (model.Category, error) {
	stored, exists := s.store.Category(c.UUID)

	c = model.NewCategory(c)

	var err error
	if exists {
		c.Created = stored.Created
		c.Modified = time.Now().UnixMilli()
		err = s.repo.UpdateCategory(ctx, c)
	} else {
		err = s.repo.CreateCategory(ctx, c)
	}

	if err != nil {
		return model.Category{}, fmt.Errorf("saving category: %w", err)
	}

	s.store.PutCategory(c)

	return c, nil
}

// DeleteCategory removes a category no account refers to.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if len(s.store.AccountsByCategory(id)) > 0 {
		return ErrCategoryInUse
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	s.store.RemoveCategory(id)

	return nil
}

// SaveContact creates or updates a contact.
func (s *Service) SaveContact(ctx context.Context, c model.Contact) (model.Contact, error) {
	stored, exists := s.store.Contact(c.UUID)

	c = model.NewContact(c)

	var err error
	if exists {
		c.Created = stored.Created
		c.Modified = time.Now().UnixMilli()
		err = s.repo.UpdateContact(ctx, c)
	} else {
		err = s.repo.CreateContact(ctx, c)
	}

	if err != nil {
		return model.Contact{}, fmt.Errorf("saving contact: %w", err)
	}

	s.store.PutContact(c)

	return c, nil
}

// SaveCurrency creates or updates a currency.
func (s *Service) SaveCurrency(ctx context.Context, c model.Currency) (model.Currency, error) {
	stored, exists := s.store.Currency(c.UUID)

	c = model.NewCurrency(c)

	var err error
	if exists {
		c.Created = stored.Created
		c.Modified = time.Now().UnixMilli()
		err = s.repo.UpdateCurrency(ctx, c)
	} else {
		err = s.repo.CreateCurrency(ctx, c)
	}

	if err != nil {
		return model.Currency{}, fmt.Errorf("saving currency: %w", err)
	}

	s.store.PutCurrency(c)

	return c, nil
}

// SaveIcon stores a new icon.
func (s *Service) SaveIcon(ctx context.Context, i model.Icon) (model.Icon, error) {
	i = model.NewIcon(i)

	if err := s.repo.CreateIcon(ctx, i); err != nil {
		return model.Icon{}, fmt.Errorf("saving icon: %w", err)
	}

	s.store.PutIcon(i)

	return i, nil
}

// DeleteIcon removes an icon; records referencing it keep working with
// no icon.
func (s *Service) DeleteIcon(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteIcon(ctx, id); err != nil {
		return fmt.Errorf("deleting icon: %w", err)
	}

	s.store.RemoveIcon(id)

	// The database clears references via ON DELETE SET NULL; mirror that
	// in memory.
	for _, c := range s.store.Categories() {
		if c.IconUUID == id {
			c.IconUUID = uuid.Nil
			s.store.PutCategory(c)
		}
	}

	for _, c := range s.store.Contacts() {
		if c.IconUUID == id {
			c.IconUUID = uuid.Nil
			s.store.PutContact(c)
		}
	}

	for _, a := range s.store.Accounts() {
		if a.IconUUID == id {
			a.IconUUID = uuid.Nil
			s.store.PutAccount(a)
		}
	}

	return nil
}
