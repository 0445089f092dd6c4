package model

// PayRequest represents request for POST /wallet/pay
type PayRequest struct {
	AccountID   string `json:"accountId" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	AssetCode   string `json:"assetCode,omitempty"`
	AssetIssuer string `json:"assetIssuer,omitempty"`
}

// FundRequest represents request for POST /wallet/fund
type FundRequest struct {
	AccountID string `json:"accountId,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
}
