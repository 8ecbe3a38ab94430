// Package importer orchestrates XML export and import: parse, validate,
// plan merge actions, apply them in one database transaction, then
// repopulate the in-memory store from the committed state.
package importer

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/merge"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
	"github.com/petr-panteleyev/money-manager-sub002/internal/xmldoc"
)

// Batch holds the records an import batch inserts and updates, split per
// entity kind. The repository applies kinds in dependency order: icons,
// categories, currencies, contacts, accounts, transactions.
type Batch struct {
	InsertIcons, UpdateIcons               []model.Icon
	InsertCategories, UpdateCategories     []model.Category
	InsertCurrencies, UpdateCurrencies     []model.Currency
	InsertContacts, UpdateContacts         []model.Contact
	InsertAccounts, UpdateAccounts         []model.Account
	InsertTransactions, UpdateTransactions []model.Transaction
}

// Empty reports whether the batch plans no writes at all.
func (b Batch) Empty() bool {
	return len(b.InsertIcons)+len(b.UpdateIcons)+
		len(b.InsertCategories)+len(b.UpdateCategories)+
		len(b.InsertCurrencies)+len(b.UpdateCurrencies)+
		len(b.InsertContacts)+len(b.UpdateContacts)+
		len(b.InsertAccounts)+len(b.UpdateAccounts)+
		len(b.InsertTransactions)+len(b.UpdateTransactions) == 0
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=importer
type Repository interface {
	LoadAll(ctx context.Context) (cache.Snapshot, error)
	ApplyBatch(ctx context.Context, b Batch) error
	ReplaceAll(ctx context.Context, snap cache.Snapshot) error
}

type Service struct {
	repo  Repository
	store *cache.Store

	// One import at a time; concurrent imports against the same store
	// have no ordering guarantee and are simply not allowed.
	mu sync.Mutex
}

func NewService(repo Repository, store *cache.Store) *Service {
	return &Service{repo: repo, store: store}
}

// Preload fills the in-memory store from the database.
func (s *Service) Preload(ctx context.Context) error {
	snap, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("preloading records: %w", err)
	}

	s.store.Replace(snap)

	return nil
}

// Summary reports what an incremental import did.
type Summary struct {
	Inserted int
	Updated  int
	Ignored  int
}

// ImportRecords runs an incremental import: every incoming record is
// inserted when unknown, updates the local one when strictly newer, and
// is ignored otherwise. All writes happen in a single database
// transaction; on any failure nothing is applied and the in-memory store
// stays untouched. The store is repopulated from the database only after
// the commit succeeds.
func (s *Service) ImportRecords(ctx context.Context, r io.Reader) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := xmldoc.Read(r)
	if err != nil {
		return Summary{}, fmt.Errorf("reading import file: %w", err)
	}

	incoming, err := doc.ToSnapshot()
	if err != nil {
		return Summary{}, fmt.Errorf("reading import file: %w", err)
	}

	existing := s.store.Contents()

	var (
		batch   Batch
		summary Summary
	)

	batch.InsertIcons, batch.UpdateIcons = planKind(existing.Icons, incoming.Icons, &summary)
	batch.InsertCategories, batch.UpdateCategories = planKind(existing.Categories, incoming.Categories, &summary)
	batch.InsertCurrencies, batch.UpdateCurrencies = planKind(existing.Currencies, incoming.Currencies, &summary)
	batch.InsertContacts, batch.UpdateContacts = planKind(existing.Contacts, incoming.Contacts, &summary)
	batch.InsertAccounts, batch.UpdateAccounts = planKind(existing.Accounts, incoming.Accounts, &summary)
	batch.InsertTransactions, batch.UpdateTransactions = planKind(existing.Transactions, incoming.Transactions, &summary)

	if batch.Empty() {
		return summary, nil
	}

	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return Summary{}, fmt.Errorf("applying import batch: %w", err)
	}

	if err := s.Preload(ctx); err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// planKind plans one entity kind and tallies the outcome.
func planKind[T model.Record](existing, incoming []T, summary *Summary) (inserts, updates []T) {
	plan := merge.PlanActions(existing, incoming)
	inserts, updates = merge.Select(incoming, plan)

	summary.Inserted += len(inserts)
	summary.Updated += len(updates)
	summary.Ignored += len(incoming) - len(inserts) - len(updates)

	return inserts, updates
}

// ImportFullDump wipes the store and replaces it with the file's
// contents, all within one database transaction.
func (s *Service) ImportFullDump(ctx context.Context, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := xmldoc.Read(r)
	if err != nil {
		return fmt.Errorf("reading dump file: %w", err)
	}

	snap, err := doc.ToSnapshot()
	if err != nil {
		return fmt.Errorf("reading dump file: %w", err)
	}

	if err := s.repo.ReplaceAll(ctx, snap); err != nil {
		return fmt.Errorf("applying dump: %w", err)
	}

	return s.Preload(ctx)
}

// Export writes the complete record set.
func (s *Service) Export(w io.Writer) error {
	return xmldoc.Write(w, xmldoc.FromSnapshot(s.store.Contents()))
}

// ExportTransactions writes the given transactions together with exactly
// the records they transitively reference.
func (s *Service) ExportTransactions(w io.Writer, ids []uuid.UUID) error {
	snap := xmldoc.WithTransactions(s.store.Contents(), ids)
	return xmldoc.Write(w, xmldoc.FromSnapshot(snap))
}

// ExportAccounts writes the given accounts together with their referenced
// categories, currencies and icons.
func (s *Service) ExportAccounts(w io.Writer, ids []uuid.UUID) error {
	snap := xmldoc.WithAccounts(s.store.Contents(), ids)
	return xmldoc.Write(w, xmldoc.FromSnapshot(snap))
}
