package stellar

import (
	"github.com/stellar/go/keypair"

	"github.com/lumenvault/lumen-wallet/internal/model"
)

// Identity is an in-memory signing keypair derived from a secret seed. It
// is never persisted; callers derive one per operation and let it go out of
// scope with the call.
type Identity struct {
	kp *keypair.Full
}

// PublicKey returns the strkey-encoded public key (G...).
func (id Identity) PublicKey() string {
	return id.kp.Address()
}

// Secret returns the strkey-encoded secret seed (S...).
func (id Identity) Secret() string {
	return id.kp.Seed()
}

// CreateIdentity generates a fresh random keypair. No network interaction.
func CreateIdentity() Identity {
	return Identity{kp: keypair.MustRandom()}
}

// DeriveIdentity parses a secret seed into a usable identity. A malformed
// seed yields an InvalidSecretError; the seed itself never appears in the
// error.
func DeriveIdentity(secret string) (Identity, error) {
	kp, err := keypair.ParseFull(secret)
	if err != nil {
		return Identity{}, &model.InvalidSecretError{Cause: err}
	}
	return Identity{kp: kp}, nil
}

// validAddress reports whether address is a well-formed public key.
func validAddress(address string) bool {
	_, err := keypair.ParseAddress(address)
	return err == nil
}
