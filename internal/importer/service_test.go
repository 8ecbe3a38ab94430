package importer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/petr-panteleyev/money-manager-sub002/internal/cache"
	"github.com/petr-panteleyev/money-manager-sub002/internal/importer"
	"github.com/petr-panteleyev/money-manager-sub002/internal/model"
	"github.com/petr-panteleyev/money-manager-sub002/internal/xmldoc"
)

func contact(name string, modified int64) model.Contact {
	return model.NewContact(model.Contact{
		Name:     name,
		Type:     model.ContactPersonal,
		Created:  modified,
		Modified: modified,
	})
}

// encode renders a snapshot the way Export writes it, giving the tests a
// valid import file.
func encode(t *testing.T, snap cache.Snapshot) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, xmldoc.Write(&buf, xmldoc.FromSnapshot(snap)))

	return &buf
}

func TestService_ImportRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := importer.NewMockRepository(ctrl)

	local := contact("alice", 100)
	unchanged := contact("bob", 100)

	store := cache.New()
	store.PutContact(local)
	store.PutContact(unchanged)

	svc := importer.NewService(repo, store)

	newer := local
	newer.Name = "alice renamed"
	newer.Modified = 200

	fresh := contact("carol", 100)

	file := encode(t, cache.Snapshot{
		Contacts: []model.Contact{newer, unchanged, fresh},
	})

	merged := cache.Snapshot{Contacts: []model.Contact{newer, unchanged, fresh}}

	repo.EXPECT().
		ApplyBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b importer.Batch) error {
			require.Len(t, b.InsertContacts, 1)
			assert.Equal(t, fresh.UUID, b.InsertContacts[0].UUID)

			require.Len(t, b.UpdateContacts, 1)
			assert.Equal(t, "alice renamed", b.UpdateContacts[0].Name)

			return nil
		})
	repo.EXPECT().LoadAll(gomock.Any()).Return(merged, nil)

	summary, err := svc.ImportRecords(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, importer.Summary{Inserted: 1, Updated: 1, Ignored: 1}, summary)

	// The store is repopulated from the committed state.
	got, ok := store.Contact(local.UUID)
	require.True(t, ok)
	assert.Equal(t, "alice renamed", got.Name)
}

func TestService_ImportRecords_NothingToApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := importer.NewMockRepository(ctrl)

	local := contact("alice", 100)

	store := cache.New()
	store.PutContact(local)

	svc := importer.NewService(repo, store)

	stale := local
	stale.Name = "older rename"
	stale.Modified = 50

	file := encode(t, cache.Snapshot{Contacts: []model.Contact{stale}})

	summary, err := svc.ImportRecords(context.Background(), file)
	require.NoError(t, err)

	// No repository calls at all: the batch was empty.
	assert.Equal(t, importer.Summary{Ignored: 1}, summary)

	got, ok := store.Contact(local.UUID)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Name)
}

func TestService_ImportRecords_ApplyFailureLeavesStoreUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := importer.NewMockRepository(ctrl)

	store := cache.New()
	svc := importer.NewService(repo, store)

	file := encode(t, cache.Snapshot{Contacts: []model.Contact{contact("alice", 100)}})

	repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	_, err := svc.ImportRecords(context.Background(), file)
	require.Error(t, err)

	assert.Empty(t, store.Contacts())
}

func TestService_ImportRecords_BadFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := importer.NewMockRepository(ctrl)

	svc := importer.NewService(repo, cache.New())

	_, err := svc.ImportRecords(context.Background(), strings.NewReader("<MoneyRecords/>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing record group")
}

func TestService_ImportFullDump(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := importer.NewMockRepository(ctrl)

	store := cache.New()
	store.PutContact(contact("doomed", 100))

	svc := importer.NewService(repo, store)

	incoming := contact("alice", 100)
	file := encode(t, cache.Snapshot{Contacts: []model.Contact{incoming}})

	replaced := cache.Snapshot{Contacts: []model.Contact{incoming}}

	gomock.InOrder(
		repo.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().LoadAll(gomock.Any()).Return(replaced, nil),
	)

	require.NoError(t, svc.ImportFullDump(context.Background(), file))

	contacts := store.Contacts()
	require.Len(t, contacts, 1)
	assert.Equal(t, "alice", contacts[0].Name)
}

func TestService_Export(t *testing.T) {
	store := cache.New()
	store.PutContact(contact("alice", 100))

	svc := importer.NewService(importer.NewMockRepository(gomock.NewController(t)), store)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf))

	doc, err := xmldoc.Read(&buf)
	require.NoError(t, err)
	require.Len(t, doc.Contacts.Contacts, 1)
	assert.Equal(t, "alice", doc.Contacts.Contacts[0].Name)
}
