package xmldoc

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

const dateLayout = "2006-01-02"

// FromSnapshot builds an export document from a full record set.
func FromSnapshot(snap cache.Snapshot) Document {
	doc := Document{}

	for _, r := range snap.Icons {
		doc.Icons.Icons = append(doc.Icons.Icons, Icon{
			UUID:     r.UUID.String(),
			Name:     r.Name,
			Bytes:    base64.StdEncoding.EncodeToString(r.Bytes),
			Created:  r.Created,
			Modified: r.Modified,
		})
	}

	for _, r := range snap.Categories {
		doc.Categories.Categories = append(doc.Categories.Categories, Category{
			UUID:     r.UUID.String(),
			Name:     r.Name,
			Comment:  r.Comment,
			Type:     string(r.Type),
			IconUUID: optionalUUID(r.IconUUID),
			Created:  r.Created,
			Modified: r.Modified,
		})
	}

	for _, r := range snap.Currencies {
		doc.Currencies.Currencies = append(doc.Currencies.Currencies, Currency{
			UUID:         r.UUID.String(),
			Symbol:       r.Symbol,
			Description:  r.Description,
			FormatSymbol: r.FormatSymbol,
			SymbolBefore: r.SymbolBefore,
			ShowSymbol:   r.ShowSymbol,
			ThousandSep:  r.ThousandSep,
			Default:      r.Default,
			Rate:         r.Rate.String(),
			Direction:    int(r.Direction),
			Created:      r.Created,
			Modified:     r.Modified,
		})
	}

	for _, r := range snap.Contacts {
		doc.Contacts.Contacts = append(doc.Contacts.Contacts, Contact{
			UUID:     r.UUID.String(),
			Name:     r.Name,
			Type:     string(r.Type),
			Phone:    r.Phone,
			Mobile:   r.Mobile,
			Email:    r.Email,
			Web:      r.Web,
			Comment:  r.Comment,
			Street:   r.Street,
			City:     r.City,
			Country:  r.Country,
			Zip:      r.Zip,
			IconUUID: optionalUUID(r.IconUUID),
			Created:  r.Created,
			Modified: r.Modified,
		})
	}

	for _, r := range snap.Accounts {
		doc.Accounts.Accounts = append(doc.Accounts.Accounts, Account{
			UUID:           r.UUID.String(),
			Name:           r.Name,
			Comment:        r.Comment,
			AccountNumber:  r.AccountNumber,
			OpeningBalance: r.OpeningBalance.String(),
			AccountLimit:   r.AccountLimit.String(),
			Type:           string(r.Type),
			CategoryUUID:   r.CategoryUUID.String(),
			CurrencyUUID:   r.CurrencyUUID.String(),
			IconUUID:       optionalUUID(r.IconUUID),
			Enabled:        r.Enabled,
			Total:          r.Total.String(),
			Created:        r.Created,
			Modified:       r.Modified,
		})
	}

	for _, r := range snap.Transactions {
		doc.Transactions.Transactions = append(doc.Transactions.Transactions, Transaction{
			UUID:                        r.UUID.String(),
			Amount:                      r.Amount.String(),
			Date:                        r.Date.Format(dateLayout),
			AccountDebitedUUID:          r.AccountDebitedUUID.String(),
			AccountCreditedUUID:         r.AccountCreditedUUID.String(),
			AccountDebitedType:          string(r.AccountDebitedType),
			AccountCreditedType:         string(r.AccountCreditedType),
			AccountDebitedCategoryUUID:  optionalUUID(r.AccountDebitedCategoryUUID),
			AccountCreditedCategoryUUID: optionalUUID(r.AccountCreditedCategoryUUID),
			ContactUUID:                 optionalUUID(r.ContactUUID),
			Rate:                        r.Rate.String(),
			RateDirection:               int(r.RateDirection),
			InvoiceNumber:               r.InvoiceNumber,
			Checked:                     r.Checked,
			ParentUUID:                  optionalUUID(r.ParentUUID),
			Detailed:                    r.Detailed,
			StatementDate:               optionalDate(r.StatementDate),
			Created:                     r.Created,
			Modified:                    r.Modified,
		})
	}

	return doc
}

// ToSnapshot reconstructs model records from a parsed document. The
// document must have been validated first; field-level parse failures are
// still reported as errors.
func (d Document) ToSnapshot() (cache.Snapshot, error) {
	var snap cache.Snapshot

	for _, r := range d.Icons.Icons {
		id, err := uuid.Parse(r.UUID)
		if err != nil {
			return snap, fmt.Errorf("icon uuid %q: %w", r.UUID, err)
		}

		raw, err := base64.StdEncoding.DecodeString(r.Bytes)
		if err != nil {
			return snap, fmt.Errorf("icon %s bytes: %w", r.UUID, err)
		}

		snap.Icons = append(snap.Icons, model.Icon{
			UUID:     id,
			Name:     r.Name,
			Bytes:    raw,
			Created:  r.Created,
			Modified: r.Modified,
		})
	}

	for _, r := range d.Categories.Categories {
		id, err := uuid.Parse(r.UUID)
		if err != nil {
			return snap, fmt.Errorf("category uuid %q: %w", r.UUID, err)
		}

		icon, err := parseOptionalUUID(r.IconUUID)
		if err != nil {
			return snap, fmt.Errorf("category %s icon: %w", r.UUID, err)
		}

		snap.Categories = append(snap.Categories, model.Category{
			UUID:     id,
			Name:     r.Name,
			Comment:  r.Comment,
			Type:     model.CategoryType(r.Type),
			IconUUID: icon,
			Created:  r.Created,
			Modified: r.Modified,
		})
	}

	for _, r := range d.Currencies.Currencies {
		id, err := uuid.Parse(r.UUID)
		if err != nil {
			return snap, fmt.Errorf("currency uuid %q: %w", r.UUID, err)
		}

		rate, err := decimal.NewFromString(r.Rate)
		if err != nil {
			return snap, fmt.Errorf("currency %s rate: %w", r.UUID, err)
		}

		snap.Currencies = append(snap.Currencies, model.Currency{
			UUID:         id,
			Symbol:       r.Symbol,
			Description:  r.Description,
			FormatSymbol: r.FormatSymbol,
			SymbolBefore: r.SymbolBefore,
			ShowSymbol:   r.ShowSymbol,
			ThousandSep:  r.ThousandSep,
			Default:      r.Default,
			Rate:         rate,
			Direction:    model.RateDirection(r.Direction),
			Created:      r.Created,
			Modified:     r.Modified,
		})
	}

	for _, r := range d.Contacts.Contacts {
		id, err := uuid.Parse(r.UUID)
		if err != nil {
			return snap, fmt.Errorf("contact uuid %q: %w", r.UUID, err)
		}

		icon, err := parseOptionalUUID(r.IconUUID)
		if err != nil {
			return snap, fmt.Errorf("contact %s icon: %w", r.UUID, err)
		}

		snap.Contacts = append(snap.Contacts, model.Contact{
			UUID:     id,
			Name:     r.Name,
			Type:     model.ContactType(r.Type),
			Phone:    r.Phone,
			Mobile:   r.Mobile,
			Email:    r.Email,
			Web:      r.Web,
			Comment:  r.Comment,
			Street:   r.Street,
			City:     r.City,
			Country:  r.Country,
			Zip:      r.Zip,
			IconUUID: icon,
			Created:  r.Created,
			Modified: r.Modified,
		})
	}

	for _, r := range d.Accounts.Accounts {
		acct, err := toAccount(r)
		if err != nil {
			return snap, err
		}

		snap.Accounts = append(snap.Accounts, acct)
	}

	for _, r := range d.Transactions.Transactions {
		tx, err := toTransaction(r)
		if err != nil {
			return snap, err
		}

		snap.Transactions = append(snap.Transactions, tx)
	}

	return snap, nil
}

func toAccount(r Account) (model.Account, error) {
	id, err := uuid.Parse(r.UUID)
	if err != nil {
		return model.Account{}, fmt.Errorf("account uuid %q: %w", r.UUID, err)
	}

	category, err := uuid.Parse(r.CategoryUUID)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s category: %w", r.UUID, err)
	}

	currency, err := uuid.Parse(r.CurrencyUUID)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s currency: %w", r.UUID, err)
	}

	icon, err := parseOptionalUUID(r.IconUUID)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s icon: %w", r.UUID, err)
	}

	opening, err := decimal.NewFromString(r.OpeningBalance)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s opening balance: %w", r.UUID, err)
	}

	limit, err := decimal.NewFromString(r.AccountLimit)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s limit: %w", r.UUID, err)
	}

	total, err := decimal.NewFromString(r.Total)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s total: %w", r.UUID, err)
	}

	return model.Account{
		UUID:           id,
		Name:           r.Name,
		Comment:        r.Comment,
		AccountNumber:  r.AccountNumber,
		OpeningBalance: opening,
		AccountLimit:   limit,
		Type:           model.CategoryType(r.Type),
		CategoryUUID:   category,
		CurrencyUUID:   currency,
		IconUUID:       icon,
		Enabled:        r.Enabled,
		Total:          total,
		Created:        r.Created,
		Modified:       r.Modified,
	}, nil
}

func toTransaction(r Transaction) (model.Transaction, error) {
	id, err := uuid.Parse(r.UUID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction uuid %q: %w", r.UUID, err)
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s amount: %w", r.UUID, err)
	}

	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("transaction %s amount is negative", r.UUID)
	}

	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s date: %w", r.UUID, err)
	}

	debited, err := uuid.Parse(r.AccountDebitedUUID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s debited account: %w", r.UUID, err)
	}

	credited, err := uuid.Parse(r.AccountCreditedUUID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s credited account: %w", r.UUID, err)
	}

	debitedCategory, err := parseOptionalUUID(r.AccountDebitedCategoryUUID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s debited category: %w", r.UUID, err)
	}

	creditedCategory, err := parseOptionalUUID(r.AccountCreditedCategoryUUID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s credited category: %w", r.UUID, err)
	}

	contact, err := parseOptionalUUID(r.ContactUUID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s contact: %w", r.UUID, err)
	}

	parent, err := parseOptionalUUID(r.ParentUUID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s parent: %w", r.UUID, err)
	}

	rate, err := decimal.NewFromString(r.Rate)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s rate: %w", r.UUID, err)
	}

	var statementDate time.Time
	if r.StatementDate != "" {
		statementDate, err = time.Parse(dateLayout, r.StatementDate)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("transaction %s statement date: %w", r.UUID, err)
		}
	}

	return model.Transaction{
		UUID:                        id,
		Amount:                      amount,
		Date:                        date,
		AccountDebitedUUID:          debited,
		AccountCreditedUUID:         credited,
		AccountDebitedType:          model.CategoryType(r.AccountDebitedType),
		AccountCreditedType:         model.CategoryType(r.AccountCreditedType),
		AccountDebitedCategoryUUID:  debitedCategory,
		AccountCreditedCategoryUUID: creditedCategory,
		ContactUUID:                 contact,
		Rate:                        rate,
		RateDirection:               model.RateDirection(r.RateDirection),
		InvoiceNumber:               r.InvoiceNumber,
		Checked:                     r.Checked,
		ParentUUID:                  parent,
		Detailed:                    r.Detailed,
		StatementDate:               statementDate,
		Created:                     r.Created,
		Modified:                    r.Modified,
	}, nil
}

func optionalUUID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}

	return id.String()
}

func optionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(dateLayout)
}

func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	return uuid.Parse(s)
}
