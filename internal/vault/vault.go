// Package vault implements the encrypted local seed vault: a named
// collection of account secrets persisted as a single sealed blob.
package vault

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumenvault/lumen-wallet/internal/model"
	"github.com/lumenvault/lumen-wallet/internal/storage"
)

// blobKey is the fixed storage key the sealed blob lives under.
const blobKey = "vault"

// AccountRecord is one named identity in the vault. The secret is only ever
// present in plaintext inside process memory; at rest it lives inside the
// sealed blob.
type AccountRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountInfo is the listing projection of a record: everything except the
// secret.
type AccountInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats is a derived read over the collection.
type Stats struct {
	Count   int  `json:"count"`
	IsEmpty bool `json:"isEmpty"`
}

// LoadOutcome reports how Open arrived at its initial state. Recovered
// distinguishes "empty because the store is new" from "empty because the
// stored blob could not be read back".
type LoadOutcome struct {
	Recovered bool
	Reason    string
}

// blob is the plaintext shape of the sealed collection. NextID makes id
// assignment monotonic across restarts so ids are never reused.
type blob struct {
	NextID   uint64          `json:"nextId"`
	Accounts []AccountRecord `json:"accounts"`
}

// Vault owns the persisted blob and its in-memory copy. Every mutation
// re-seals and rewrites the whole collection.
type Vault struct {
	store      storage.Store
	passphrase []byte
	log        *logrus.Logger

	mu       sync.Mutex
	nextID   uint64
	accounts []AccountRecord
}

// Open reads and decrypts the persisted blob and returns a ready vault.
// It never fails: a missing blob yields an empty vault, and an unreadable
// one is logged and treated as empty so a corrupted local store cannot
// take the application down with it.
func Open(store storage.Store, passphrase []byte, log *logrus.Logger) (*Vault, LoadOutcome) {
	v := &Vault{
		store:      store,
		passphrase: append([]byte(nil), passphrase...),
		log:        log,
		nextID:     1,
	}

	sealed, err := store.Get(blobKey)
	if err != nil {
		return v, v.recovered(fmt.Sprintf("read failed: %v", err))
	}
	if sealed == nil {
		return v, LoadOutcome{}
	}

	plaintext, err := open(sealed, v.passphrase)
	if err != nil {
		return v, v.recovered(fmt.Sprintf("decrypt failed: %v", err))
	}
	defer clear(plaintext)

	var b blob
	if err := json.Unmarshal(plaintext, &b); err != nil {
		return v, v.recovered(fmt.Sprintf("unmarshal failed: %v", err))
	}

	v.accounts = b.Accounts
	if b.NextID > 0 {
		v.nextID = b.NextID
	}
	return v, LoadOutcome{}
}

func (v *Vault) recovered(reason string) LoadOutcome {
	v.log.WithField("reason", reason).Warn("vault blob unreadable, starting with an empty vault")
	return LoadOutcome{Recovered: true, Reason: reason}
}

// AddAccount validates, stages and persists a new record, returning it with
// its secret. The in-memory collection is only updated once the persist
// succeeds, so a storage failure leaves the vault exactly as it was.
func (v *Vault) AddAccount(name, secret string) (AccountRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AccountRecord{}, model.NewValidationError("account name must not be empty")
	}
	if secret == "" {
		return AccountRecord{}, model.NewValidationError("account secret must not be empty")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	for _, a := range v.accounts {
		if a.Name == name {
			return AccountRecord{}, model.NewValidationError("account name %q already exists", name)
		}
	}

	record := AccountRecord{
		ID:        strconv.FormatUint(v.nextID, 10),
		Name:      name,
		Secret:    secret,
		CreatedAt: time.Now().UTC(),
	}

	staged := make([]AccountRecord, len(v.accounts), len(v.accounts)+1)
	copy(staged, v.accounts)
	staged = append(staged, record)

	if err := v.persist(staged, v.nextID+1); err != nil {
		return AccountRecord{}, err
	}

	v.accounts = staged
	v.nextID++
	return record, nil
}

// Accounts returns the insertion-ordered listing projection. Secrets are
// never part of it.
func (v *Vault) Accounts() []AccountInfo {
	v.mu.Lock()
	defer v.mu.Unlock()

	infos := make([]AccountInfo, 0, len(v.accounts))
	for _, a := range v.accounts {
		infos = append(infos, AccountInfo{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt})
	}
	return infos
}

// Account looks a record up by id, secret included. The second return is
// false when the id does not exist; absence is not an error.
func (v *Vault) Account(id string) (AccountRecord, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, a := range v.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return AccountRecord{}, false
}

// Secret returns the decrypted secret for signing, or false when the id
// does not exist.
func (v *Vault) Secret(id string) (string, bool) {
	record, ok := v.Account(id)
	if !ok {
		return "", false
	}
	return record.Secret, true
}

// Remove deletes a record by id and persists the shrunken collection.
// Removing an unknown id is a no-op.
func (v *Vault) Remove(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := -1
	for i, a := range v.accounts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	staged := make([]AccountRecord, 0, len(v.accounts)-1)
	staged = append(staged, v.accounts[:idx]...)
	staged = append(staged, v.accounts[idx+1:]...)

	if err := v.persist(staged, v.nextID); err != nil {
		return err
	}

	v.accounts = staged
	return nil
}

// Clear empties the vault and deletes the persisted blob. The id counter is
// not reset; ids are never reused within one vault lifetime.
func (v *Vault) Clear() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.Delete(blobKey); err != nil {
		return fmt.Errorf("failed to clear vault: %w", err)
	}

	v.accounts = nil
	return nil
}

// Stats reports the current size of the collection.
func (v *Vault) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Stats{Count: len(v.accounts), IsEmpty: len(v.accounts) == 0}
}

// exportDocument is the downloadable metadata shape. Secrets are deliberately
// excluded; the export is a backup of names, not of keys.
type exportDocument struct {
	ExportedAt time.Time       `json:"exportedAt"`
	Accounts   []exportAccount `json:"accounts"`
}

type exportAccount struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExportMetadata renders the vault metadata as an indented JSON document.
func (v *Vault) ExportMetadata() ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	doc := exportDocument{
		ExportedAt: time.Now().UTC(),
		Accounts:   make([]exportAccount, 0, len(v.accounts)),
	}
	for _, a := range v.accounts {
		doc.Accounts = append(doc.Accounts, exportAccount{Name: a.Name, CreatedAt: a.CreatedAt})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// persist seals the staged collection and overwrites the blob. Callers hold
// v.mu and commit the staged state only after persist returns nil.
func (v *Vault) persist(accounts []AccountRecord, nextID uint64) error {
	plaintext, err := json.Marshal(blob{NextID: nextID, Accounts: accounts})
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}
	defer clear(plaintext)

	sealed, err := seal(plaintext, v.passphrase)
	if err != nil {
		return fmt.Errorf("failed to seal vault: %w", err)
	}

	if err := v.store.Put(blobKey, sealed); err != nil {
		return fmt.Errorf("failed to persist vault: %w", err)
	}
	return nil
}
