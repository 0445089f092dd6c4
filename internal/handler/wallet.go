package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/lumenvault/lumen-wallet/internal/model"
	"github.com/lumenvault/lumen-wallet/internal/vault"
	"github.com/lumenvault/lumen-wallet/stellar"
)

// WalletHandler serves the vault and ledger operations.
type WalletHandler struct {
	vault  *vault.Vault
	wallet *stellar.Wallet
	log    *logrus.Logger
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(v *vault.Vault, w *stellar.Wallet, log *logrus.Logger) *WalletHandler {
	return &WalletHandler{vault: v, wallet: w, log: log}
}

// CreateAccount handles POST /wallet/accounts/create
// @Summary      Create account
// @Description  Generates a fresh keypair and stores it in the vault under the given name. The secret is returned exactly once.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateAccountRequest  true  "Account name"
// @Success      200      {object}  model.AccountCreatedResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/accounts/create [post]
func (h *WalletHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	identity := stellar.CreateIdentity()
	record, err := h.vault.AddAccount(req.Name, identity.Secret())
	if err != nil {
		writeError(w, err)
		return
	}

	qr, err := qrBase64(identity.PublicKey())
	if err != nil {
		h.log.WithError(err).Warn("failed to generate QR code")
	}

	writeJSON(w, http.StatusOK, model.AccountCreatedResponse{
		ID:        record.ID,
		Name:      record.Name,
		PublicKey: identity.PublicKey(),
		Secret:    record.Secret,
		QR:        qr,
		CreatedAt: record.CreatedAt,
	})
}

// ImportAccount handles POST /wallet/accounts/import
// @Summary      Import account
// @Description  Validates a secret seed and stores it in the vault under the given name.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportAccountRequest  true  "Account name and secret seed"
// @Success      200      {object}  model.AccountCreatedResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/accounts/import [post]
func (h *WalletHandler) ImportAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	identity, err := stellar.DeriveIdentity(req.Secret)
	if err != nil {
		writeError(w, err)
		return
	}

	record, err := h.vault.AddAccount(req.Name, identity.Secret())
	if err != nil {
		writeError(w, err)
		return
	}

	qr, err := qrBase64(identity.PublicKey())
	if err != nil {
		h.log.WithError(err).Warn("failed to generate QR code")
	}

	writeJSON(w, http.StatusOK, model.AccountCreatedResponse{
		ID:        record.ID,
		Name:      record.Name,
		PublicKey: identity.PublicKey(),
		Secret:    record.Secret,
		QR:        qr,
		CreatedAt: record.CreatedAt,
	})
}

// Accounts handles GET and DELETE /wallet/accounts
// @Summary      List accounts / clear vault
// @Description  GET lists stored accounts (no secrets). DELETE empties the whole vault.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.AccountListResponse
// @Router       /wallet/accounts [get]
func (h *WalletHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		infos := h.vault.Accounts()
		resp := model.AccountListResponse{Accounts: make([]model.AccountSummary, 0, len(infos))}
		for _, info := range infos {
			resp.Accounts = append(resp.Accounts, model.AccountSummary{
				ID:        info.ID,
				Name:      info.Name,
				CreatedAt: info.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodDelete:
		if err := h.vault.Clear(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "vault cleared"})

	default:
		http.Error(w, "Method not allowed. Should be GET or DELETE", http.StatusMethodNotAllowed)
	}
}

// Account handles GET and DELETE /wallet/account?id=
// @Summary      Get or remove one account
// @Description  GET returns account metadata with the derived public key. DELETE removes the account; removing an unknown id is a no-op.
// @Tags         wallet
// @Produce      json
// @Param        id   query     string  true  "Account id"
// @Success      200  {object}  model.AccountDetailResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/account [get]
func (h *WalletHandler) Account(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "missing id parameter"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, ok := h.vault.Account(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "account not found"})
			return
		}

		resp := model.AccountDetailResponse{
			ID:        record.ID,
			Name:      record.Name,
			CreatedAt: record.CreatedAt,
		}
		if identity, err := stellar.DeriveIdentity(record.Secret); err != nil {
			h.log.WithField("id", record.ID).Warn("stored secret does not parse, omitting public key")
		} else {
			resp.PublicKey = identity.PublicKey()
			if qr, err := qrBase64(resp.PublicKey); err == nil {
				resp.QR = qr
			}
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodDelete:
		if err := h.vault.Remove(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "account removed"})

	default:
		http.Error(w, "Method not allowed. Should be GET or DELETE", http.StatusMethodNotAllowed)
	}
}

// Stats handles GET /wallet/stats
// @Summary      Vault stats
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatsResponse
// @Router       /wallet/stats [get]
func (h *WalletHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	stats := h.vault.Stats()
	writeJSON(w, http.StatusOK, model.StatsResponse{Count: stats.Count, IsEmpty: stats.IsEmpty})
}

// Export handles GET /wallet/export
// @Summary      Export vault metadata
// @Description  Downloads a JSON document of account names and creation times. Secrets are deliberately excluded.
// @Tags         wallet
// @Produce      json
// @Success      200  {string}  string  "JSON export file"
// @Router       /wallet/export [get]
func (h *WalletHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	data, err := h.vault.ExportMetadata()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="wallet-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Balance handles GET /wallet/balance?id= (or ?address=)
// @Summary      Account state on the active network
// @Description  Returns normalized balances, sequence number and subentry count. An address with no ledger presence yet returns the new-account sentinel instead of an error.
// @Tags         ledger
// @Produce      json
// @Param        id       query     string  false  "Vault account id"
// @Param        address  query     string  false  "Public key (alternative to id)"
// @Success      200      {object}  stellar.AccountState
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, ok := h.resolveAddress(w, r)
	if !ok {
		return
	}

	state, err := h.wallet.LoadAccountState(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Fund handles POST /wallet/fund
// @Summary      Request faucet funding
// @Description  Asks the active network's faucet to fund the account. Only valid on networks that define a faucet.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request  body      model.FundRequest  true  "Vault account id or public key"
// @Success      200      {object}  model.StatusResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/fund [post]
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	address := req.PublicKey
	if req.AccountID != "" {
		secret, ok := h.vault.Secret(req.AccountID)
		if !ok {
			writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "account not found"})
			return
		}
		identity, err := stellar.DeriveIdentity(secret)
		if err != nil {
			writeError(w, err)
			return
		}
		address = identity.PublicKey()
	}
	if address == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "accountId or publicKey required"})
		return
	}

	if err := h.wallet.RequestFaucetFunding(r.Context(), address); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "funding requested"})
}

// Pay handles POST /wallet/pay
// @Summary      Submit a payment
// @Description  Signs and submits a single-operation payment from a vault account. Never retried: a failed submission must surface, not be resubmitted blindly.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  stellar.Receipt
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallet/pay [post]
func (h *WalletHandler) Pay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	secret, ok := h.vault.Secret(req.AccountID)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "account not found"})
		return
	}

	identity, err := stellar.DeriveIdentity(secret)
	if err != nil {
		writeError(w, err)
		return
	}

	receipt, err := h.wallet.SubmitPayment(r.Context(), identity, req.Destination, req.Amount,
		stellar.Asset{Code: req.AssetCode, Issuer: req.AssetIssuer})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// Transactions handles GET /wallet/transactions?address=&limit=&operations=
// @Summary      Transaction history
// @Description  Up to limit most recent transactions for the account, newest first. operations=true enriches each with its operations; a per-transaction enrichment failure is tolerated.
// @Tags         ledger
// @Produce      json
// @Param        id          query     string  false  "Vault account id"
// @Param        address     query     string  false  "Public key (alternative to id)"
// @Param        limit       query     int     false  "Max transactions (default 10, max 200)"
// @Param        operations  query     bool    false  "Fetch per-transaction operations"
// @Success      200         {array}   stellar.TransactionSummary
// @Failure      502         {object}  model.ErrorResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, ok := h.resolveAddress(w, r)
	if !ok {
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}
	includeOps := r.URL.Query().Get("operations") == "true"

	summaries, err := h.wallet.ListTransactions(r.Context(), address, limit, includeOps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// resolveAddress turns the id or address query parameter into a public key,
// writing the error response itself when it cannot.
func (h *WalletHandler) resolveAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	if address := r.URL.Query().Get("address"); address != "" {
		return address, true
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "id or address parameter required"})
		return "", false
	}

	secret, ok := h.vault.Secret(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "account not found"})
		return "", false
	}

	identity, err := stellar.DeriveIdentity(secret)
	if err != nil {
		writeError(w, err)
		return "", false
	}
	return identity.PublicKey(), true
}
