package siteconfig

import (
	"encoding/json"
	"net/http"

	"github.com/luminadental/booking-platform/pkg/logging"
)

// Handler serves the public read and admin write of the site config.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a new siteconfig handler
func NewHandler(store Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// GetConfig handles GET /api/site-config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load site config", "error", err)
		http.Error(w, "failed to load site config", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cfg)
}

// UpdateConfig handles PUT /admin/site-config
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.Set(r.Context(), &cfg); err != nil {
		h.logger.Error("failed to save site config", "error", err)
		http.Error(w, "failed to save site config", http.StatusInternalServerError)
		return
	}

	h.logger.Info("site config updated")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&cfg)
}
