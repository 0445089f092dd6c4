package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lumenvault/lumen-wallet/internal/model"
	"github.com/lumenvault/lumen-wallet/internal/network"
)

// NetworkHandler serves the network selection endpoints.
type NetworkHandler struct {
	networks *network.Manager
	log      *logrus.Logger
}

// NewNetworkHandler creates a NetworkHandler.
func NewNetworkHandler(networks *network.Manager, log *logrus.Logger) *NetworkHandler {
	return &NetworkHandler{networks: networks, log: log}
}

// Networks handles GET /network
// @Summary      List networks
// @Description  Lists the supported networks and which one is active.
// @Tags         network
// @Produce      json
// @Success      200  {object}  model.NetworkListResponse
// @Router       /network [get]
func (h *NetworkHandler) Networks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	current := h.networks.Current()
	resp := model.NetworkListResponse{Current: current.ID}
	for _, cfg := range network.Configs() {
		resp.Networks = append(resp.Networks, model.NetworkResponse{
			ID:         cfg.ID,
			Name:       cfg.Name,
			HorizonURL: cfg.HorizonURL,
			HasFaucet:  cfg.HasFaucet(),
			Active:     cfg.ID == current.ID,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Switch handles POST /network/switch
// @Summary      Switch the active network
// @Description  Activates the named network for all subsequent calls and persists the preference.
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body      model.SwitchNetworkRequest  true  "Network id"
// @Success      200      {object}  model.StatusResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /network/switch [post]
func (h *NetworkHandler) Switch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SwitchNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.networks.SwitchTo(req.Network); err != nil {
		writeError(w, err)
		return
	}

	h.log.WithField("network", req.Network).Info("active network switched")
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "network switched to " + req.Network})
}
