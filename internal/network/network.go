// Package network enumerates the supported ledger networks and tracks which
// one is active for the current process.
package network

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	stellarnet "github.com/stellar/go/network"

	"github.com/lumenvault/lumen-wallet/internal/model"
	"github.com/lumenvault/lumen-wallet/internal/storage"
)

// prefKey is the fixed storage key the plaintext network preference lives
// under.
const prefKey = "network"

// Network identifiers.
const (
	TestnetID = "testnet"
	PublicID  = "public"
)

// Config is one immutable network definition. FriendbotURL is empty for
// networks without a faucet.
type Config struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HorizonURL   string `json:"horizonUrl"`
	Passphrase   string `json:"-"`
	FriendbotURL string `json:"-"`
}

// HasFaucet reports whether the network defines a faucet endpoint.
func (c Config) HasFaucet() bool {
	return c.FriendbotURL != ""
}

var configs = map[string]Config{
	TestnetID: {
		ID:           TestnetID,
		Name:         "Stellar Testnet",
		HorizonURL:   "https://horizon-testnet.stellar.org",
		Passphrase:   stellarnet.TestNetworkPassphrase,
		FriendbotURL: "https://friendbot.stellar.org",
	},
	PublicID: {
		ID:         PublicID,
		Name:       "Stellar Public Network",
		HorizonURL: "https://horizon.stellar.org",
		Passphrase: stellarnet.PublicNetworkPassphrase,
	},
}

// Configs returns the enumerated networks in a stable order.
func Configs() []Config {
	return []Config{configs[TestnetID], configs[PublicID]}
}

// Manager is the single source of truth for the active network. The
// selection is process-wide mutable state; a switch takes effect for every
// subsequent call but never retroactively changes one in flight.
type Manager struct {
	store storage.Store
	log   *logrus.Logger

	mu      sync.RWMutex
	current Config
}

// NewManager restores the persisted preference when present and valid,
// falling back to defaultID otherwise.
func NewManager(store storage.Store, defaultID string, log *logrus.Logger) (*Manager, error) {
	cfg, ok := configs[defaultID]
	if !ok {
		return nil, fmt.Errorf("unknown default network %q", defaultID)
	}

	m := &Manager{store: store, log: log, current: cfg}

	pref, err := store.Get(prefKey)
	if err != nil {
		log.WithError(err).Warn("failed to read network preference, using default")
		return m, nil
	}
	if pref == nil {
		return m, nil
	}

	if saved, ok := configs[string(pref)]; ok {
		m.current = saved
	} else {
		log.WithField("network", string(pref)).Warn("persisted network preference is unknown, using default")
	}
	return m, nil
}

// Current returns the active configuration.
func (m *Manager) Current() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// SwitchTo activates networkID and persists the preference. Unknown ids are
// rejected without touching the current selection.
func (m *Manager) SwitchTo(networkID string) error {
	cfg, ok := configs[networkID]
	if !ok {
		return model.NewValidationError("unknown network %q", networkID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Put(prefKey, []byte(networkID)); err != nil {
		return fmt.Errorf("failed to persist network preference: %w", err)
	}
	m.current = cfg
	return nil
}

// IsTest reports whether the active network is the test network.
func (m *Manager) IsTest() bool {
	return m.Current().ID == TestnetID
}

// IsProduction reports whether the active network is the public network.
func (m *Manager) IsProduction() bool {
	return m.Current().ID == PublicID
}
