package stellar

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/lumenvault/lumen-wallet/internal/model"
	"github.com/lumenvault/lumen-wallet/internal/network"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memStore is an in-memory stand-in for the bolt store.
type memStore struct {
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}}
}

func (s *memStore) Get(key string) ([]byte, error)     { return s.values[key], nil }
func (s *memStore) Put(key string, value []byte) error { s.values[key] = value; return nil }
func (s *memStore) Delete(key string) error            { delete(s.values, key); return nil }

// recordingTransport records every request target (the URL the wallet
// actually aimed at, network host included) and then redirects the request
// to a local test backend.
type recordingTransport struct {
	backend *url.URL

	mu      sync.Mutex
	targets []string
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.targets = append(rt.targets, req.URL.String())
	rt.mu.Unlock()

	clone := req.Clone(req.Context())
	clone.URL.Scheme = rt.backend.Scheme
	clone.URL.Host = rt.backend.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func (rt *recordingTransport) requests() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.targets...)
}

// newTestWallet wires a wallet whose transport records targets and serves
// them from handler, on a fresh testnet-selected network manager.
func newTestWallet(t *testing.T, handler http.Handler) (*Wallet, *recordingTransport, *network.Manager) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	backend, err := url.Parse(srv.URL)
	require.NoError(t, err)

	rt := &recordingTransport{backend: backend}
	networks, err := network.NewManager(newMemStore(), network.TestnetID, testLogger())
	require.NoError(t, err)

	return New(networks, &http.Client{Transport: rt}, testLogger()), rt, networks
}

func TestCreateIdentityRoundTrip(t *testing.T) {
	identity := CreateIdentity()
	require.True(t, strings.HasPrefix(identity.PublicKey(), "G"))
	require.True(t, strings.HasPrefix(identity.Secret(), "S"))

	derived, err := DeriveIdentity(identity.Secret())
	require.NoError(t, err)
	require.Equal(t, identity.PublicKey(), derived.PublicKey())
}

func TestDeriveIdentityRejectsMalformedSecret(t *testing.T) {
	for _, bad := range []string{"", "not-a-seed", "GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7"} {
		_, err := DeriveIdentity(bad)
		require.True(t, model.IsInvalidSecretError(err), "input %q", bad)
		if bad != "" {
			// The message must not leak the input.
			require.NotContains(t, err.Error(), bad)
		}
	}
}

func TestComputeFee(t *testing.T) {
	fee := ComputeFee(1)
	require.Equal(t, int64(100), fee.TotalStroops)
	require.Equal(t, "0.0000100", fee.TotalXLM)

	fee = ComputeFee(3)
	require.Equal(t, int64(300), fee.TotalStroops)

	// Degenerate counts are clamped to a single operation.
	fee = ComputeFee(0)
	require.Equal(t, int64(100), fee.TotalStroops)
}

func TestLoadAccountStateNewAccountSentinel(t *testing.T) {
	wallet, _, _ := newTestWallet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "Resource Missing", "status": 404}`))
	}))

	identity := CreateIdentity()
	state, err := wallet.LoadAccountState(context.Background(), identity.PublicKey())
	require.NoError(t, err)
	require.True(t, state.IsNewAccount)
	require.Equal(t, "0", state.SequenceNumber)
	require.Empty(t, state.Balances)
	require.NotNil(t, state.Balances)
	require.Contains(t, state.Message, "Stellar Testnet")
}

func TestLoadAccountStateNormalizesBalances(t *testing.T) {
	identity := CreateIdentity()
	wallet, _, _ := newTestWallet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"account_id": "` + identity.PublicKey() + `",
			"sequence": "17",
			"subentry_count": 1,
			"balances": [
				{"balance": "12.0000000", "asset_type": "credit_alphanum4", "asset_code": "USDC", "asset_issuer": "GISSUER"},
				{"balance": "125.5000000", "asset_type": "native"}
			]
		}`))
	}))

	state, err := wallet.LoadAccountState(context.Background(), identity.PublicKey())
	require.NoError(t, err)
	require.False(t, state.IsNewAccount)
	require.Equal(t, "17", state.SequenceNumber)
	require.Len(t, state.Balances, 2)

	require.Equal(t, "USDC", state.Balances[0].Asset)
	require.Equal(t, "GISSUER", state.Balances[0].Issuer)
	require.Equal(t, NativeAssetCode, state.Balances[1].Asset)
	require.Empty(t, state.Balances[1].Issuer)
}

func TestLoadAccountStateMalformedKey(t *testing.T) {
	wallet, rt, _ := newTestWallet(t, http.NotFoundHandler())

	_, err := wallet.LoadAccountState(context.Background(), "not-a-key")
	require.True(t, model.IsValidationError(err))
	require.Empty(t, rt.requests())
}

func TestLoadAccountStateRemoteFailureIsNetworkError(t *testing.T) {
	wallet, _, _ := newTestWallet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := wallet.LoadAccountState(context.Background(), CreateIdentity().PublicKey())
	require.True(t, model.IsNetworkError(err))
}

func TestNetworkSwitchChangesEndpoint(t *testing.T) {
	wallet, rt, networks := newTestWallet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "Resource Missing", "status": 404}`))
	}))
	identity := CreateIdentity()

	_, err := wallet.LoadAccountState(context.Background(), identity.PublicKey())
	require.NoError(t, err)

	require.NoError(t, networks.SwitchTo(network.PublicID))

	_, err = wallet.LoadAccountState(context.Background(), identity.PublicKey())
	require.NoError(t, err)

	targets := rt.requests()
	require.Len(t, targets, 2)
	require.Contains(t, targets[0], "horizon-testnet.stellar.org")
	require.Contains(t, targets[1], "https://horizon.stellar.org")
}

func TestRequestFaucetFunding(t *testing.T) {
	wallet, rt, _ := newTestWallet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hash": "fundhash"}`))
	}))
	identity := CreateIdentity()

	require.NoError(t, wallet.RequestFaucetFunding(context.Background(), identity.PublicKey()))

	targets := rt.requests()
	require.Len(t, targets, 1)
	require.Contains(t, targets[0], "friendbot.stellar.org")
}

func TestRequestFaucetFundingUnsupportedOnProduction(t *testing.T) {
	wallet, rt, networks := newTestWallet(t, http.NotFoundHandler())
	require.NoError(t, networks.SwitchTo(network.PublicID))

	err := wallet.RequestFaucetFunding(context.Background(), CreateIdentity().PublicKey())
	require.True(t, model.IsUnsupportedOperationError(err))
	require.Empty(t, rt.requests())
}

func TestRequestFaucetFundingFailure(t *testing.T) {
	wallet, _, _ := newTestWallet(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title": "already funded"}`))
	}))

	err := wallet.RequestFaucetFunding(context.Background(), CreateIdentity().PublicKey())
	require.True(t, model.IsFundingError(err))
}
