package xmldoc

import (
	"fmt"
)

// Validate enforces the schema rules: UUIDs unique within each group, and
// mandatory fields present on every record. It runs before any store
// mutation.
func Validate(doc Document) error {
	seen := make(map[string]map[string]bool)

	unique := func(group, id string) error {
		if id == "" {
			return fmt.Errorf("%s record without uuid", group)
		}

		if seen[group] == nil {
			seen[group] = make(map[string]bool)
		}

		if seen[group][id] {
			return fmt.Errorf("duplicate uuid %s in %s", id, group)
		}

		seen[group][id] = true

		return nil
	}

	for _, r := range doc.Icons.Icons {
		if err := unique("Icons", r.UUID); err != nil {
			return err
		}
	}

	for _, r := range doc.Categories.Categories {
		if err := unique("Categories", r.UUID); err != nil {
			return err
		}

		if r.Name == "" {
			return fmt.Errorf("category %s without name", r.UUID)
		}

		if r.Type == "" {
			return fmt.Errorf("category %s without type", r.UUID)
		}
	}

	for _, r := range doc.Currencies.Currencies {
		if err := unique("Currencies", r.UUID); err != nil {
			return err
		}

		if r.Symbol == "" {
			return fmt.Errorf("currency %s without symbol", r.UUID)
		}
	}

	for _, r := range doc.Contacts.Contacts {
		if err := unique("Contacts", r.UUID); err != nil {
			return err
		}

		if r.Name == "" {
			return fmt.Errorf("contact %s without name", r.UUID)
		}
	}

	for _, r := range doc.Accounts.Accounts {
		if err := unique("Accounts", r.UUID); err != nil {
			return err
		}

		if r.CategoryUUID == "" {
			return fmt.Errorf("account %s without category", r.UUID)
		}

		if r.CurrencyUUID == "" {
			return fmt.Errorf("account %s without currency", r.UUID)
		}
	}

	for _, r := range doc.Transactions.Transactions {
		if err := unique("Transactions", r.UUID); err != nil {
			return err
		}

		if r.AccountDebitedUUID == "" || r.AccountCreditedUUID == "" {
			return fmt.Errorf("transaction %s without both account legs", r.UUID)
		}
	}

	return nil
}
