// Package stellar is the wallet operations layer: it turns a decrypted
// secret into a signing identity and performs read/write calls against the
// active ledger network.
package stellar

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lumenvault/lumen-wallet/internal/client"
	"github.com/lumenvault/lumen-wallet/internal/network"
)

// Wallet is a stateless façade over the ledger API. Every operation reads
// the network manager's current selection at call time, so a network switch
// between two calls changes which endpoint the second call targets.
type Wallet struct {
	networks   *network.Manager
	httpClient *http.Client
	log        *logrus.Logger
}

// New creates a Wallet. httpClient may be nil for the default transport;
// tests pass a recording client to observe which endpoints get hit.
func New(networks *network.Manager, httpClient *http.Client, log *logrus.Logger) *Wallet {
	return &Wallet{networks: networks, httpClient: httpClient, log: log}
}

// horizon resolves the active network and returns a client bound to its
// endpoint, together with the config the caller may need for passphrase or
// faucet decisions.
func (w *Wallet) horizon() (*client.HorizonClient, network.Config) {
	cfg := w.networks.Current()
	return client.NewHorizonClient(cfg.HorizonURL, w.httpClient), cfg
}
