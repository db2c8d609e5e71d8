package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/luminadental/booking-platform/internal/appointments"
	"github.com/luminadental/booking-platform/pkg/logging"
)

func newHandlerFixture(t *testing.T) (*Handler, *fixture) {
	t.Helper()
	f := newFixture(t)
	return NewHandler(f.svc, logging.Default()), f
}

func TestGetAvailability(t *testing.T) {
	handler, f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/availability?date=2024-06-01&professional_id="+f.professionalID, nil)
	w := httptest.NewRecorder()

	handler.GetAvailability(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp AvailabilityResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Slots) != 8 {
		t.Errorf("expected 8 slots, got %d", len(resp.Slots))
	}
}

func TestGetAvailabilityMissingParams(t *testing.T) {
	handler, _ := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/availability?date=2024-06-01", nil)
	w := httptest.NewRecorder()

	handler.GetAvailability(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSubmitBooking_Success(t *testing.T) {
	handler, f := newHandlerFixture(t)

	body, _ := json.Marshal(f.submitRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitBooking(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var appt appointments.Appointment
	if err := json.NewDecoder(w.Body).Decode(&appt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if appt.Status != appointments.StatusPending {
		t.Errorf("expected pending, got %s", appt.Status)
	}
}

func TestSubmitBooking_Conflict(t *testing.T) {
	handler, f := newHandlerFixture(t)

	if _, err := f.svc.Submit(context.Background(), f.submitRequest()); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	body, _ := json.Marshal(f.submitRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitBooking(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestSubmitBooking_UnknownService(t *testing.T) {
	handler, f := newHandlerFixture(t)

	sub := f.submitRequest()
	sub.ServiceID = "missing"
	body, _ := json.Marshal(sub)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitBooking(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestSubmitBooking_BadBody(t *testing.T) {
	handler, _ := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()

	handler.SubmitBooking(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSetAppointmentStatus_InvalidTransition(t *testing.T) {
	handler, f := newHandlerFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Submit(ctx, f.submitRequest())
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	if _, err := f.svc.SetAppointmentStatus(ctx, appt.ID, appointments.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	body, _ := json.Marshal(StatusRequest{Status: appointments.StatusConfirmed})
	req := httptest.NewRequest(http.MethodPost, "/admin/appointments/"+appt.ID+"/status", bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", appt.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.SetAppointmentStatus(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestListAppointments(t *testing.T) {
	handler, f := newHandlerFixture(t)

	if _, err := f.svc.Submit(context.Background(), f.submitRequest()); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/appointments", nil)
	w := httptest.NewRecorder()

	handler.ListAppointments(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var out []*AdminAppointment
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Service == nil {
		t.Fatalf("expected one joined appointment, got %+v", out)
	}
}

func TestUpdateAppointment_MoveOntoTakenSlot(t *testing.T) {
	handler, f := newHandlerFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, f.submitRequest()); err != nil {
		t.Fatalf("seed first: %v", err)
	}
	second := f.submitRequest()
	second.Time = "11:00"
	appt, err := f.svc.Submit(ctx, second)
	if err != nil {
		t.Fatalf("seed second: %v", err)
	}

	body := bytes.NewReader([]byte(`{"time":"10:00"}`))
	req := httptest.NewRequest(http.MethodPatch, "/admin/appointments/"+appt.ID, body)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", appt.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.UpdateAppointment(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}
