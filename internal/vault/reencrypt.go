package vault

import (
	"errors"
	"fmt"

	"github.com/lumenvault/lumen-wallet/internal/storage"
)

// Reencrypt rewrites the sealed blob under a new passphrase. Unlike Open it
// fails hard: a blob that cannot be decrypted with the old passphrase must
// not be destroyed by a rotation attempt.
func Reencrypt(store storage.Store, oldPassphrase, newPassphrase []byte) error {
	if len(newPassphrase) == 0 {
		return errors.New("new passphrase must not be empty")
	}

	sealed, err := store.Get(blobKey)
	if err != nil {
		return fmt.Errorf("failed to read vault blob: %w", err)
	}
	if sealed == nil {
		return errors.New("no vault blob to re-encrypt")
	}

	plaintext, err := open(sealed, oldPassphrase)
	if err != nil {
		return fmt.Errorf("failed to open vault with old passphrase: %w", err)
	}
	defer clear(plaintext)

	resealed, err := seal(plaintext, newPassphrase)
	if err != nil {
		return fmt.Errorf("failed to re-seal vault: %w", err)
	}

	if err := store.Put(blobKey, resealed); err != nil {
		return fmt.Errorf("failed to persist re-sealed vault: %w", err)
	}
	return nil
}
