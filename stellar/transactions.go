package stellar

import (
	"context"
	"errors"
	"time"

	"github.com/lumenvault/lumen-wallet/internal/client"
	"github.com/lumenvault/lumen-wallet/internal/model"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 200
)

// OperationSummary is one operation of a transaction, normalized. Asset is
// the native symbol or the issued code; Issuer is empty for native.
type OperationSummary struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Asset     string    `json:"asset,omitempty"`
	Issuer    string    `json:"issuer,omitempty"`
}

// TransactionSummary is one ledger transaction touching the account,
// ordered most recent first in listings. Operations is only populated when
// detail enrichment was requested and succeeded for this transaction.
type TransactionSummary struct {
	Hash           string             `json:"hash"`
	Ledger         int32              `json:"ledger"`
	CreatedAt      time.Time          `json:"createdAt"`
	Successful     bool               `json:"successful"`
	FeeCharged     string             `json:"feeCharged"`
	Memo           string             `json:"memo,omitempty"`
	OperationCount int32              `json:"operationCount"`
	Operations     []OperationSummary `json:"operations,omitempty"`
}

// ListTransactions fetches up to limit most recent transactions for
// publicKey on the active network. With includeOperations set, each summary
// is enriched by one extra per-transaction fetch; an enrichment failure is
// logged and tolerated (that transaction simply carries no operations)
// rather than failing the whole listing.
func (w *Wallet) ListTransactions(ctx context.Context, publicKey string, limit int, includeOperations bool) ([]TransactionSummary, error) {
	if !validAddress(publicKey) {
		return nil, model.NewValidationError("malformed public key")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	hc, _ := w.horizon()

	records, err := hc.Transactions(ctx, publicKey, limit)
	if errors.Is(err, client.ErrAccountNotFound) {
		// An account that never existed has no history.
		return []TransactionSummary{}, nil
	}
	if err != nil {
		return nil, &model.NetworkError{Op: "list transactions", Cause: err}
	}

	summaries := make([]TransactionSummary, 0, len(records))
	for _, r := range records {
		summary := TransactionSummary{
			Hash:           r.Hash,
			Ledger:         r.Ledger,
			CreatedAt:      r.CreatedAt,
			Successful:     r.Successful,
			FeeCharged:     r.FeeCharged.String(),
			Memo:           r.Memo,
			OperationCount: r.OperationCount,
		}

		if includeOperations {
			ops, err := hc.TransactionOperations(ctx, r.Hash)
			if err != nil {
				w.log.WithError(err).WithField("hash", r.Hash).
					Warn("failed to fetch operations for transaction, omitting")
			} else {
				summary.Operations = normalizeOperations(ops)
			}
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func normalizeOperations(records []client.OperationRecord) []OperationSummary {
	ops := make([]OperationSummary, 0, len(records))
	for _, r := range records {
		op := OperationSummary{
			ID:        r.ID,
			Type:      r.Type,
			CreatedAt: r.CreatedAt,
			From:      r.From,
			To:        r.To,
			Amount:    r.Amount,
		}
		switch r.AssetType {
		case "":
			// Not an asset-carrying operation.
		case "native":
			op.Asset = NativeAssetCode
		default:
			op.Asset = r.AssetCode
			op.Issuer = r.AssetIssuer
		}
		ops = append(ops, op)
	}
	return ops
}
