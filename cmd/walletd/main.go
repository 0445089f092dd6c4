// walletd serves the local demo wallet API: an encrypted seed vault plus
// read/write operations against the active Stellar network.
//
// @title        lumen-wallet API
// @version      1.0
// @description  Local demo wallet for the Stellar network: encrypted seed vault plus ledger operations.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumenvault/lumen-wallet/internal/api"
	"github.com/lumenvault/lumen-wallet/internal/config"
	"github.com/lumenvault/lumen-wallet/internal/network"
	"github.com/lumenvault/lumen-wallet/internal/storage"
	"github.com/lumenvault/lumen-wallet/internal/vault"
	"github.com/lumenvault/lumen-wallet/stellar"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()

	if err := config.Init(); err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(config.GetLogLevel()); err != nil {
		log.WithField("level", config.GetLogLevel()).Warn("unknown log level, using info")
	} else {
		log.SetLevel(level)
	}

	if config.Get().PromptPassphrase {
		if err := config.PromptForPassphrase(); err != nil {
			log.WithError(err).Fatal("failed to read vault passphrase")
		}
	}

	passphrase, err := config.VaultPassphraseBytes()
	if err != nil {
		log.WithError(err).Fatal("failed to resolve vault passphrase")
	}

	store, err := storage.OpenBolt(config.GetDataPath())
	if err != nil {
		log.WithError(err).Fatal("failed to open wallet store")
	}
	defer store.Close()

	v, outcome := vault.Open(store, passphrase, log)
	clear(passphrase)
	if outcome.Recovered {
		log.WithField("reason", outcome.Reason).Warn("vault could not be restored; starting empty")
	}
	log.WithField("accounts", v.Stats().Count).Info("vault ready")

	networks, err := network.NewManager(store, config.GetDefaultNetwork(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize network manager")
	}
	log.WithField("network", networks.Current().ID).Info("active network selected")

	wallet := stellar.New(networks, nil, log)

	srv := &http.Server{
		Addr:    ":" + config.GetPort(),
		Handler: api.SetupRouter(v, wallet, networks, log),
	}

	go func() {
		log.WithField("port", config.GetPort()).Info("wallet API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Graceful shutdown on Ctrl+C
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown did not complete cleanly")
	}
}
