package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luminadental/booking-platform/pkg/logging"
)

// Handler exposes admin CRUD over the two catalog collections.
type Handler struct {
	services      ServiceRepository
	professionals ProfessionalRepository
	logger        *logging.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(services ServiceRepository, professionals ProfessionalRepository, logger *logging.Logger) *Handler {
	return &Handler{
		services:      services,
		professionals: professionals,
		logger:        logger,
	}
}

// ListServices handles GET /api/services and GET /admin/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", "error", err)
		http.Error(w, "failed to list services", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// CreateService handles POST /admin/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	svc, err := h.services.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "failed to create service")
		return
	}

	h.logger.Info("service created", "id", svc.ID, "title", svc.Title)
	writeJSON(w, http.StatusCreated, svc)
}

// UpdateService handles PATCH /admin/services/{id}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch ServicePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	svc, err := h.services.Update(r.Context(), id, &patch)
	if err != nil {
		h.writeError(w, err, "failed to update service")
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// DeleteService handles DELETE /admin/services/{id}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.services.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProfessionals handles GET /api/professionals and GET /admin/professionals
func (h *Handler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.professionals.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list professionals", "error", err)
		http.Error(w, "failed to list professionals", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, professionals)
}

// CreateProfessional handles POST /admin/professionals
func (h *Handler) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var req CreateProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pro, err := h.professionals.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "failed to create professional")
		return
	}

	h.logger.Info("professional created", "id", pro.ID, "name", pro.Name)
	writeJSON(w, http.StatusCreated, pro)
}

// UpdateProfessional handles PATCH /admin/professionals/{id}
func (h *Handler) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch ProfessionalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pro, err := h.professionals.Update(r.Context(), id, &patch)
	if err != nil {
		h.writeError(w, err, "failed to update professional")
		return
	}
	writeJSON(w, http.StatusOK, pro)
}

// DeleteProfessional handles DELETE /admin/professionals/{id}
func (h *Handler) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.professionals.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete professional")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error(logMsg, "error", err)
		http.Error(w, logMsg, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
