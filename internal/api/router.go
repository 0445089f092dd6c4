package api

import (
	"net/http"

	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/lumenvault/lumen-wallet/docs"
	"github.com/lumenvault/lumen-wallet/internal/handler"
	"github.com/lumenvault/lumen-wallet/internal/network"
	"github.com/lumenvault/lumen-wallet/internal/vault"
	"github.com/lumenvault/lumen-wallet/stellar"
)

// SetupRouter sets up the router with all handlers
func SetupRouter(v *vault.Vault, w *stellar.Wallet, networks *network.Manager, log *logrus.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(v, w, log)
	networkHandler := handler.NewNetworkHandler(networks, log)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Vault endpoints
	mux.HandleFunc("/wallet/accounts/create", walletHandler.CreateAccount)
	mux.HandleFunc("/wallet/accounts/import", walletHandler.ImportAccount)
	mux.HandleFunc("/wallet/accounts", walletHandler.Accounts)
	mux.HandleFunc("/wallet/account", walletHandler.Account)
	mux.HandleFunc("/wallet/stats", walletHandler.Stats)
	mux.HandleFunc("/wallet/export", walletHandler.Export)

	// Ledger endpoints
	mux.HandleFunc("/wallet/balance", walletHandler.Balance)
	mux.HandleFunc("/wallet/fund", walletHandler.Fund)
	mux.HandleFunc("/wallet/pay", walletHandler.Pay)
	mux.HandleFunc("/wallet/transactions", walletHandler.Transactions)

	// Network selection
	mux.HandleFunc("/network", networkHandler.Networks)
	mux.HandleFunc("/network/switch", networkHandler.Switch)

	return mux
}
