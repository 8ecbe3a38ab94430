package xmldoc

import (
	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
)

// WithTransactions narrows a snapshot to the given transactions plus
// everything they transitively reference: both leg accounts, those
// accounts' categories, currencies and icons, contacts, and detail lines
// of selected split transactions. Nothing else is carried.
func WithTransactions(snap cache.Snapshot, ids []uuid.UUID) cache.Snapshot {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	accounts := make(map[uuid.UUID]bool)
	contacts := make(map[uuid.UUID]bool)

	var txs []model.Transaction

	for _, t := range snap.Transactions {
		if !wanted[t.UUID] && !(t.IsDetail() && wanted[t.ParentUUID]) {
			continue
		}

		txs = append(txs, t)
		accounts[t.AccountDebitedUUID] = true
		accounts[t.AccountCreditedUUID] = true

		if t.ContactUUID != uuid.Nil {
			contacts[t.ContactUUID] = true
		}
	}

	out := narrowAccounts(snap, accounts)
	out.Transactions = txs

	for _, c := range snap.Contacts {
		if contacts[c.UUID] {
			if c.IconUUID != uuid.Nil {
				out.Icons = appendIcon(out.Icons, snap.Icons, c.IconUUID)
			}

			out.Contacts = append(out.Contacts, c)
		}
	}

	return out
}

// WithAccounts narrows a snapshot to the given accounts and their
// referenced categories, currencies and icons. Transactions and contacts
// are not pulled in.
func WithAccounts(snap cache.Snapshot, ids []uuid.UUID) cache.Snapshot {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	return narrowAccounts(snap, wanted)
}

func narrowAccounts(snap cache.Snapshot, wanted map[uuid.UUID]bool) cache.Snapshot {
	var out cache.Snapshot

	categories := make(map[uuid.UUID]bool)
	currencies := make(map[uuid.UUID]bool)
	icons := make(map[uuid.UUID]bool)

	for _, a := range snap.Accounts {
		if !wanted[a.UUID] {
			continue
		}

		out.Accounts = append(out.Accounts, a)
		categories[a.CategoryUUID] = true
		currencies[a.CurrencyUUID] = true

		if a.IconUUID != uuid.Nil {
			icons[a.IconUUID] = true
		}
	}

	for _, c := range snap.Categories {
		if categories[c.UUID] {
			out.Categories = append(out.Categories, c)

			if c.IconUUID != uuid.Nil {
				icons[c.IconUUID] = true
			}
		}
	}

	for _, c := range snap.Currencies {
		if currencies[c.UUID] {
			out.Currencies = append(out.Currencies, c)
		}
	}

	for _, i := range snap.Icons {
		if icons[i.UUID] {
			out.Icons = append(out.Icons, i)
		}
	}

	return out
}

func appendIcon(dst, all []model.Icon, id uuid.UUID) []model.Icon {
	for _, have := range dst {
		if have.UUID == id {
			return dst
		}
	}

	for _, i := range all {
		if i.UUID == id {
			return append(dst, i)
		}
	}

	return dst
}
