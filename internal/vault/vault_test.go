package vault

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/lumenvault/lumen-wallet/internal/model"
	"github.com/lumenvault/lumen-wallet/internal/storage"
)

var testPassphrase = []byte("test-passphrase")

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openTestStore(t *testing.T) (*storage.BoltStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.db")
	store, err := storage.OpenBolt(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestOpenFreshStoreIsEmpty(t *testing.T) {
	store, _ := openTestStore(t)

	v, outcome := Open(store, testPassphrase, testLogger())
	require.False(t, outcome.Recovered)
	require.Equal(t, Stats{Count: 0, IsEmpty: true}, v.Stats())
}

func TestAddAccountAndListOrder(t *testing.T) {
	store, _ := openTestStore(t)
	v, _ := Open(store, testPassphrase, testLogger())

	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		record, err := v.AddAccount(name, "S_SEED_"+name)
		require.NoError(t, err)
		require.Equal(t, name, record.Name)
		require.NotEmpty(t, record.ID)
		require.False(t, record.CreatedAt.IsZero())
	}

	infos := v.Accounts()
	require.Len(t, infos, len(names))
	for i, info := range infos {
		require.Equal(t, names[i], info.Name)
	}
}

func TestAddAccountValidation(t *testing.T) {
	store, _ := openTestStore(t)
	v, _ := Open(store, testPassphrase, testLogger())

	_, err := v.AddAccount("", "S_SEED")
	require.True(t, model.IsValidationError(err))

	_, err = v.AddAccount("name", "")
	require.True(t, model.IsValidationError(err))
}

func TestAddAccountDuplicateName(t *testing.T) {
	store, _ := openTestStore(t)
	v, _ := Open(store, testPassphrase, testLogger())

	_, err := v.AddAccount("main", "S_SEED_1")
	require.NoError(t, err)

	_, err = v.AddAccount("main", "S_SEED_2")
	require.True(t, model.IsValidationError(err))

	// Exactly one record for the name, holding the original secret.
	require.Equal(t, 1, v.Stats().Count)
	infos := v.Accounts()
	secret, ok := v.Secret(infos[0].ID)
	require.True(t, ok)
	require.Equal(t, "S_SEED_1", secret)
}

func TestSecretRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.db")

	store, err := storage.OpenBolt(path)
	require.NoError(t, err)
	v, _ := Open(store, testPassphrase, testLogger())
	record, err := v.AddAccount("A", "S_SEED_1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// New process: fresh store handle, fresh vault.
	store, err = storage.OpenBolt(path)
	require.NoError(t, err)
	defer store.Close()

	v2, outcome := Open(store, testPassphrase, testLogger())
	require.False(t, outcome.Recovered)

	secret, ok := v2.Secret(record.ID)
	require.True(t, ok)
	require.Equal(t, "S_SEED_1", secret)
}

func TestIDsAreNotReusedAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.db")

	store, err := storage.OpenBolt(path)
	require.NoError(t, err)
	v, _ := Open(store, testPassphrase, testLogger())
	first, err := v.AddAccount("first", "S1")
	require.NoError(t, err)
	require.NoError(t, v.Remove(first.ID))
	second, err := v.AddAccount("second", "S2")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.NoError(t, store.Close())

	store, err = storage.OpenBolt(path)
	require.NoError(t, err)
	defer store.Close()
	v2, _ := Open(store, testPassphrase, testLogger())
	third, err := v2.AddAccount("third", "S3")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, third.ID)
	require.NotEqual(t, second.ID, third.ID)
}

func TestWrongPassphraseRecoversEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.db")

	store, err := storage.OpenBolt(path)
	require.NoError(t, err)
	v, _ := Open(store, testPassphrase, testLogger())
	_, err = v.AddAccount("A", "S_SEED_1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = storage.OpenBolt(path)
	require.NoError(t, err)
	defer store.Close()

	v2, outcome := Open(store, []byte("different"), testLogger())
	require.True(t, outcome.Recovered)
	require.NotEmpty(t, outcome.Reason)
	require.True(t, v2.Stats().IsEmpty)
}

func TestCorruptBlobRecoversEmpty(t *testing.T) {
	store, _ := openTestStore(t)
	require.NoError(t, store.Put("vault", []byte("garbage, not an envelope")))

	v, outcome := Open(store, testPassphrase, testLogger())
	require.True(t, outcome.Recovered)
	require.True(t, v.Stats().IsEmpty)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, _ := openTestStore(t)
	v, _ := Open(store, testPassphrase, testLogger())

	record, err := v.AddAccount("A", "S_SEED_1")
	require.NoError(t, err)

	require.NoError(t, v.Remove(record.ID))
	_, ok := v.Account(record.ID)
	require.False(t, ok)

	// Second remove of the same id is a no-op, not an error.
	require.NoError(t, v.Remove(record.ID))
	require.NoError(t, v.Remove("never-existed"))
	require.True(t, v.Stats().IsEmpty)
}

func TestClear(t *testing.T) {
	store, _ := openTestStore(t)
	v, _ := Open(store, testPassphrase, testLogger())

	_, err := v.AddAccount("A", "S1")
	require.NoError(t, err)
	_, err = v.AddAccount("B", "S2")
	require.NoError(t, err)

	require.NoError(t, v.Clear())
	require.Equal(t, Stats{Count: 0, IsEmpty: true}, v.Stats())

	// The persisted blob is gone too.
	blobValue, err := store.Get("vault")
	require.NoError(t, err)
	require.Nil(t, blobValue)
}

func TestExportMetadataExcludesSecrets(t *testing.T) {
	store, _ := openTestStore(t)
	v, _ := Open(store, testPassphrase, testLogger())

	_, err := v.AddAccount("savings", "SVERYSECRETSEED")
	require.NoError(t, err)

	data, err := v.ExportMetadata()
	require.NoError(t, err)
	require.Contains(t, string(data), "savings")
	require.NotContains(t, string(data), "SVERYSECRETSEED")
	require.NotContains(t, string(data), "secret")
}

// failingStore wraps an in-memory store and fails writes on demand.
type failingStore struct {
	values  map[string][]byte
	failPut bool
}

func (s *failingStore) Get(key string) ([]byte, error) {
	return s.values[key], nil
}

func (s *failingStore) Put(key string, value []byte) error {
	if s.failPut {
		return errors.New("disk full")
	}
	s.values[key] = value
	return nil
}

func (s *failingStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

func TestAddAccountRollsBackOnPersistFailure(t *testing.T) {
	store := &failingStore{values: map[string][]byte{}}
	v, _ := Open(store, testPassphrase, testLogger())

	_, err := v.AddAccount("ok", "S1")
	require.NoError(t, err)

	store.failPut = true
	_, err = v.AddAccount("doomed", "S2")
	require.Error(t, err)
	require.False(t, model.IsValidationError(err))

	// In-memory state matches the last successful persist.
	require.Equal(t, 1, v.Stats().Count)
	require.Equal(t, "ok", v.Accounts()[0].Name)

	// The failed attempt did not burn the name.
	store.failPut = false
	_, err = v.AddAccount("doomed", "S2")
	require.NoError(t, err)
}
