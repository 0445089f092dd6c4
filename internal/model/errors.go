package model

import (
	"errors"
	"fmt"
)

// ValidationError is an error caused by bad caller input: empty fields,
// duplicate account names, malformed addresses, missing asset issuers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvalidSecretError means a secret could not be parsed into a keypair.
// The secret itself is never included in the message.
type InvalidSecretError struct {
	Cause error
}

func (e *InvalidSecretError) Error() string {
	return "secret is not a valid keypair seed"
}

func (e *InvalidSecretError) Unwrap() error {
	return e.Cause
}

// IsInvalidSecretError checks if error is an InvalidSecretError
func IsInvalidSecretError(err error) bool {
	var ise *InvalidSecretError
	return errors.As(err, &ise)
}

// NetworkError is a remote ledger call that failed for reasons other than
// the defined "account not found" case.
type NetworkError struct {
	Op    string
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ledger request %s failed: %v", e.Op, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// IsNetworkError checks if error is a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// FundingError is a failed faucet funding request.
type FundingError struct {
	Cause error
}

func (e *FundingError) Error() string {
	return fmt.Sprintf("faucet funding failed: %v", e.Cause)
}

func (e *FundingError) Unwrap() error {
	return e.Cause
}

// IsFundingError checks if error is a FundingError
func IsFundingError(err error) bool {
	var fe *FundingError
	return errors.As(err, &fe)
}

// PaymentError wraps any failure in the load/build/sign/submit pipeline of a
// payment. FeeStroops carries the fee that was (or would have been) charged,
// when known.
type PaymentError struct {
	Stage      string
	FeeStroops int64
	Cause      error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed at %s stage: %v", e.Stage, e.Cause)
}

func (e *PaymentError) Unwrap() error {
	return e.Cause
}

// IsPaymentError checks if error is a PaymentError
func IsPaymentError(err error) bool {
	var pe *PaymentError
	return errors.As(err, &pe)
}

// UnsupportedOperationError means the operation is not valid for the active
// network, e.g. faucet funding on the production network.
type UnsupportedOperationError struct {
	Message string
}

func (e *UnsupportedOperationError) Error() string {
	return e.Message
}

// IsUnsupportedOperationError checks if error is an UnsupportedOperationError
func IsUnsupportedOperationError(err error) bool {
	var ue *UnsupportedOperationError
	return errors.As(err, &ue)
}
