package model

// NetworkResponse represents one network in GET /network
type NetworkResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HorizonURL string `json:"horizonUrl"`
	HasFaucet  bool   `json:"hasFaucet"`
	Active     bool   `json:"active"`
}

// NetworkListResponse represents response for GET /network
type NetworkListResponse struct {
	Current  string            `json:"current"`
	Networks []NetworkResponse `json:"networks"`
}

// SwitchNetworkRequest represents request for POST /network/switch
type SwitchNetworkRequest struct {
	Network string `json:"network" binding:"required"`
}
