package stellar

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stellar/go/txnbuild"

	"github.com/lumenvault/lumen-wallet/internal/common"
	"github.com/lumenvault/lumen-wallet/internal/model"
)

const (
	// baseFeeStroops is the fixed per-operation base fee.
	baseFeeStroops = 100

	// paymentTimeoutSeconds bounds how long a signed transaction stays
	// submittable. A stale envelope expires on its own instead of lingering
	// as a replayable artifact.
	paymentTimeoutSeconds = 300
)

// Asset identifies what is being paid. An empty Code (or the native symbol)
// means the native asset; anything else is an issued asset and requires an
// Issuer.
type Asset struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer,omitempty"`
}

// IsNative reports whether the asset is the network's native asset.
func (a Asset) IsNative() bool {
	return a.Code == "" || a.Code == NativeAssetCode
}

// FeeInfo is the fee schedule applied to a transaction.
type FeeInfo struct {
	OperationCount int    `json:"operationCount"`
	BaseFeeStroops int64  `json:"baseFeeStroops"`
	TotalStroops   int64  `json:"totalStroops"`
	TotalXLM       string `json:"totalXlm"`
}

// ComputeFee is a pure function of the fixed base fee and the operation
// count; no network call.
func ComputeFee(operationCount int) FeeInfo {
	if operationCount < 1 {
		operationCount = 1
	}
	total := int64(operationCount) * baseFeeStroops
	return FeeInfo{
		OperationCount: operationCount,
		BaseFeeStroops: baseFeeStroops,
		TotalStroops:   total,
		TotalXLM:       common.StroopsToXLM(total),
	}
}

// Receipt is the ledger's acknowledgment of a submitted payment, augmented
// with the fee that was charged for it.
type Receipt struct {
	Hash       string  `json:"hash"`
	Ledger     int32   `json:"ledger"`
	Successful bool    `json:"successful"`
	Fee        FeeInfo `json:"fee"`
}

// SubmitPayment builds, signs and submits a single-operation payment from
// identity to destination on the active network.
//
// All input validation happens before any network call. Failures at the
// load, build or submit stages are wrapped as PaymentError and never
// retried here: a sequence-number race must surface as a failed submission,
// because a blind retry could double-submit.
func (w *Wallet) SubmitPayment(ctx context.Context, identity Identity, destination, amount string, asset Asset) (*Receipt, error) {
	if !validAddress(destination) {
		return nil, model.NewValidationError("malformed destination address")
	}
	if !common.ValidAmount(amount) {
		return nil, model.NewValidationError("amount must be a positive decimal with at most 7 decimal places")
	}
	if !asset.IsNative() && asset.Issuer == "" {
		return nil, model.NewValidationError("issued asset %q requires an issuer", asset.Code)
	}

	fee := ComputeFee(1)
	hc, cfg := w.horizon()

	source, err := hc.AccountDetail(ctx, identity.PublicKey())
	if err != nil {
		return nil, &model.PaymentError{Stage: "load", FeeStroops: fee.TotalStroops, Cause: err}
	}
	sequence, err := strconv.ParseInt(source.Sequence, 10, 64)
	if err != nil {
		return nil, &model.PaymentError{Stage: "load", FeeStroops: fee.TotalStroops,
			Cause: fmt.Errorf("unparseable sequence number: %w", err)}
	}

	var txAsset txnbuild.Asset = txnbuild.NativeAsset{}
	if !asset.IsNative() {
		txAsset = txnbuild.CreditAsset{Code: asset.Code, Issuer: asset.Issuer}
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &txnbuild.SimpleAccount{AccountID: identity.PublicKey(), Sequence: sequence},
		IncrementSequenceNum: true,
		BaseFee:              baseFeeStroops,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(paymentTimeoutSeconds)},
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: destination,
				Amount:      amount,
				Asset:       txAsset,
			},
		},
	})
	if err != nil {
		return nil, &model.PaymentError{Stage: "build", FeeStroops: fee.TotalStroops, Cause: err}
	}

	tx, err = tx.Sign(cfg.Passphrase, identity.kp)
	if err != nil {
		return nil, &model.PaymentError{Stage: "sign", FeeStroops: fee.TotalStroops, Cause: err}
	}

	envelope, err := tx.Base64()
	if err != nil {
		return nil, &model.PaymentError{Stage: "encode", FeeStroops: fee.TotalStroops, Cause: err}
	}

	result, err := hc.SubmitTransaction(ctx, envelope)
	if err != nil {
		return nil, &model.PaymentError{Stage: "submit", FeeStroops: fee.TotalStroops, Cause: err}
	}

	w.log.WithFields(map[string]interface{}{
		"network": cfg.ID,
		"hash":    result.Hash,
		"ledger":  result.Ledger,
	}).Info("payment submitted")

	return &Receipt{
		Hash:       result.Hash,
		Ledger:     result.Ledger,
		Successful: result.Successful,
		Fee:        fee,
	}, nil
}
