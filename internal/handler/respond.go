package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lumenvault/lumen-wallet/internal/model"
)

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Error messages
// never contain secret material; the taxonomy types guarantee that.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := ""

	switch {
	case model.IsValidationError(err):
		status = http.StatusBadRequest
		code = "validation"
	case model.IsInvalidSecretError(err):
		status = http.StatusBadRequest
		code = "invalid_secret"
	case model.IsUnsupportedOperationError(err):
		status = http.StatusBadRequest
		code = "unsupported_operation"
	case model.IsNetworkError(err):
		status = http.StatusBadGateway
		code = "network"
	case model.IsFundingError(err):
		status = http.StatusBadGateway
		code = "funding"
	case model.IsPaymentError(err):
		status = http.StatusBadGateway
		code = "payment"
	}

	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}
