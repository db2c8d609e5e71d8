package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luminadental/booking-platform/internal/appointments"
	"github.com/luminadental/booking-platform/internal/catalog"
	"github.com/luminadental/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for the booking flow and the admin
// appointment view.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new booking handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// AvailabilityResponse is the response for the availability query.
type AvailabilityResponse struct {
	Date           string   `json:"date"`
	ProfessionalID string   `json:"professional_id"`
	Slots          []string `json:"slots"`
}

// GetAvailability handles GET /api/availability?date=...&professional_id=...
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	professionalID := r.URL.Query().Get("professional_id")
	if date == "" || professionalID == "" {
		http.Error(w, "date and professional_id are required", http.StatusBadRequest)
		return
	}

	slots, err := h.svc.AvailableSlots(r.Context(), date, professionalID)
	if err != nil {
		if appointments.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to compute availability", "error", err, "date", date)
		http.Error(w, "failed to compute availability", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Date:           date,
		ProfessionalID: professionalID,
		Slots:          slots,
	})
}

// GetBookableDays handles GET /api/availability/days
func (h *Handler) GetBookableDays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"days": h.svc.BookableDays()})
}

// SubmitBooking handles POST /api/bookings
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.svc.Submit(r.Context(), &req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// writeSubmitError maps booking failures onto HTTP statuses. A 409 tells
// the client to re-fetch availability and let the user choose again.
func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointments.ErrSlotTaken):
		http.Error(w, "slot no longer available, please choose another time", http.StatusConflict)
	case errors.Is(err, ErrTimeNotInGrid), appointments.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case catalog.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("failed to submit booking", "error", err)
		http.Error(w, "failed to submit booking", http.StatusInternalServerError)
	}
}

// ListAppointments handles GET /admin/appointments
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.ListForAdmin(r.Context())
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

// UpdateAppointment handles PATCH /admin/appointments/{id}
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch appointments.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.svc.UpdateAppointment(r.Context(), id, &patch)
	if err != nil {
		h.writeAdminError(w, err, "failed to update appointment")
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// StatusRequest is the payload for a lifecycle transition.
type StatusRequest struct {
	Status appointments.Status `json:"status"`
}

// SetAppointmentStatus handles POST /admin/appointments/{id}/status
func (h *Handler) SetAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.svc.SetAppointmentStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeAdminError(w, err, "failed to change status")
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) writeAdminError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, appointments.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, appointments.ErrSlotTaken):
		http.Error(w, "slot already booked", http.StatusConflict)
	case errors.Is(err, appointments.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case appointments.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
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
