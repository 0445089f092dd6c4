package stellar

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenvault/lumen-wallet/internal/client"
	"github.com/lumenvault/lumen-wallet/internal/model"
)

// NativeAssetCode is the canonical symbol used for native-asset balances in
// normalized account state.
const NativeAssetCode = "XLM"

// Balance is one normalized balance entry. Issuer is empty for the native
// asset.
type Balance struct {
	Asset  string `json:"asset"`
	Issuer string `json:"issuer,omitempty"`
	Amount string `json:"amount"`
}

// AccountState is the normalized view of an account on the active network.
// IsNewAccount marks an address with no on-ledger presence yet; that is a
// valid state, not an error.
type AccountState struct {
	PublicKey      string    `json:"publicKey"`
	IsNewAccount   bool      `json:"isNewAccount"`
	SequenceNumber string    `json:"sequenceNumber"`
	SubentryCount  int32     `json:"subentryCount"`
	Balances       []Balance `json:"balances"`
	Message        string    `json:"message,omitempty"`
}

// LoadAccountState queries the active network for the account behind
// publicKey. A ledger 404 yields the new-account sentinel; the message
// names the active network because a wallet pointed at the wrong network is
// the usual way users end up staring at an empty account.
func (w *Wallet) LoadAccountState(ctx context.Context, publicKey string) (*AccountState, error) {
	if !validAddress(publicKey) {
		return nil, model.NewValidationError("malformed public key")
	}

	hc, cfg := w.horizon()

	account, err := hc.AccountDetail(ctx, publicKey)
	if errors.Is(err, client.ErrAccountNotFound) {
		return &AccountState{
			PublicKey:      publicKey,
			IsNewAccount:   true,
			SequenceNumber: "0",
			Balances:       []Balance{},
			Message: fmt.Sprintf(
				"account does not exist on %s yet; fund it to activate it (if you expected a balance, check that %s is the right network)",
				cfg.Name, cfg.Name),
		}, nil
	}
	if err != nil {
		return nil, &model.NetworkError{Op: "load account", Cause: err}
	}

	state := &AccountState{
		PublicKey:      publicKey,
		SequenceNumber: account.Sequence,
		SubentryCount:  account.SubentryCount,
		Balances:       make([]Balance, 0, len(account.Balances)),
	}
	for _, b := range account.Balances {
		if b.AssetType == "native" {
			state.Balances = append(state.Balances, Balance{Asset: NativeAssetCode, Amount: b.Balance})
			continue
		}
		state.Balances = append(state.Balances, Balance{
			Asset:  b.AssetCode,
			Issuer: b.AssetIssuer,
			Amount: b.Balance,
		})
	}
	return state, nil
}

// RequestFaucetFunding asks the active network's faucet to fund publicKey.
// Only valid on networks that define a faucet.
func (w *Wallet) RequestFaucetFunding(ctx context.Context, publicKey string) error {
	if !validAddress(publicKey) {
		return model.NewValidationError("malformed public key")
	}

	cfg := w.networks.Current()
	if !cfg.HasFaucet() {
		return &model.UnsupportedOperationError{
			Message: fmt.Sprintf("%s has no faucet; accounts must be funded by an external transfer", cfg.Name),
		}
	}

	fb := client.NewFriendbotClient(cfg.FriendbotURL, w.httpClient)
	if err := fb.Fund(ctx, publicKey); err != nil {
		return &model.FundingError{Cause: err}
	}

	w.log.WithField("network", cfg.ID).Info("faucet funding requested")
	return nil
}
