package model

import "time"

// CreateAccountRequest represents request for POST /wallet/accounts/create
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// ImportAccountRequest represents request for POST /wallet/accounts/import
type ImportAccountRequest struct {
	Name   string `json:"name" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// AccountCreatedResponse is the one response that carries the secret: the
// caller gets it exactly once, at creation time.
type AccountCreatedResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PublicKey string    `json:"publicKey"`
	Secret    string    `json:"secret"`
	QR        string    `json:"qr,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountSummary is one listed account; secrets never appear here.
type AccountSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountListResponse represents response for GET /wallet/accounts
type AccountListResponse struct {
	Accounts []AccountSummary `json:"accounts"`
}

// AccountDetailResponse represents response for GET /wallet/account
type AccountDetailResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PublicKey string    `json:"publicKey"`
	QR        string    `json:"qr,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatsResponse represents response for GET /wallet/stats
type StatsResponse struct {
	Count   int  `json:"count"`
	IsEmpty bool `json:"isEmpty"`
}

// StatusResponse is the generic success acknowledgment.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
