package vault

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	passphrase := []byte("correct horse")
	plaintext := []byte(`{"accounts":[]}`)

	sealed, err := seal(plaintext, passphrase)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "accounts")

	opened, err := open(sealed, passphrase)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)
}

func TestSealGeneratesFreshSaltAndNonce(t *testing.T) {
	passphrase := []byte("p")
	plaintext := []byte("same plaintext")

	first, err := seal(plaintext, passphrase)
	require.NoError(t, err)
	second, err := seal(plaintext, passphrase)
	require.NoError(t, err)

	var a, b envelope
	require.NoError(t, json.Unmarshal(first, &a))
	require.NoError(t, json.Unmarshal(second, &b))
	require.NotEqual(t, a.Salt, b.Salt)
	require.NotEqual(t, a.Nonce, b.Nonce)
	require.NotEqual(t, a.CipherText, b.CipherText)
}

func TestOpenWrongPassphrase(t *testing.T) {
	sealed, err := seal([]byte("secret data"), []byte("right"))
	require.NoError(t, err)

	_, err = open(sealed, []byte("wrong"))
	require.Error(t, err)
}

func TestOpenRejectsGarbageAndUnknownVersion(t *testing.T) {
	_, err := open([]byte("not json at all"), []byte("p"))
	require.Error(t, err)

	future, err := json.Marshal(envelope{Version: 99, Salt: "AA==", Nonce: "AA==", CipherText: "AA=="})
	require.NoError(t, err)
	_, err = open(future, []byte("p"))
	require.ErrorIs(t, err, errBadEnvelope)
}
