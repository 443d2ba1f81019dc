package config

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pacpro/pkg/api/httputil"
	"pacpro/pkg/core/config"
	"pacpro/pkg/core/metrics"
	"pacpro/pkg/core/pac"
)

type Response struct {
	CashSign  pac.CashSign   `json:"cash_sign"`
	Available []pac.CashSign `json:"available"`
	Backend   string         `json:"backend"`
}

type SwitchRequest struct {
	CashSign string `json:"cash_sign"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Settings *config.Settings
	Backend  string
}

// NewHandler creates a new config handler
func NewHandler(settings *config.Settings, backend string) *Handler {
	return &Handler{
		Settings: settings,
		Backend:  backend,
	}
}

// Register mounts the config routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/api/config", metrics.Instrument("config", http.HandlerFunc(h.HandleConfig)))
	mux.Handle("/api/config/cash-sign", metrics.Instrument("config_cash_sign", http.HandlerFunc(h.HandleSwitch)))
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodGet) {
		return
	}

	resp := Response{
		CashSign:  h.Settings.CashSign(),
		Available: []pac.CashSign{pac.CashAsExpense, pac.CashNegated},
		Backend:   h.Backend,
	}
	httputil.WriteJSON(w, resp)
}

func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodPost) {
		return
	}

	var req SwitchRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err = h.Settings.SetCashSign(req.CashSign)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Fprintf(w, "Success: Switched cash sign to %s", h.Settings.CashSign())
}
