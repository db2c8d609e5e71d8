// Package booking coordinates the catalog, slot calendar and appointment
// ledger. It is the single entry point for the public booking flow and the
// admin appointment view.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luminadental/booking-platform/internal/appointments"
	"github.com/luminadental/booking-platform/internal/catalog"
	"github.com/luminadental/booking-platform/internal/observability/metrics"
	"github.com/luminadental/booking-platform/internal/schedule"
	"github.com/luminadental/booking-platform/pkg/logging"
)

// ErrTimeNotInGrid is returned when the requested time is not one of the
// clinic's slot labels.
var ErrTimeNotInGrid = errors.New("time is not a bookable slot")

// Service orchestrates the booking flow. It never retries a slot conflict:
// the caller must re-fetch availability and let the user pick again.
type Service struct {
	services      catalog.ServiceRepository
	professionals catalog.ProfessionalRepository
	calendar      *schedule.Calendar
	ledger        appointments.Ledger
	windowDays    int
	metrics       *metrics.BookingMetrics
	logger        *logging.Logger
}

// NewService wires the orchestrator. metrics may be nil.
func NewService(
	services catalog.ServiceRepository,
	professionals catalog.ProfessionalRepository,
	calendar *schedule.Calendar,
	ledger appointments.Ledger,
	windowDays int,
	m *metrics.BookingMetrics,
	logger *logging.Logger,
) *Service {
	if windowDays <= 0 {
		windowDays = 14
	}
	return &Service{
		services:      services,
		professionals: professionals,
		calendar:      calendar,
		ledger:        ledger,
		windowDays:    windowDays,
		metrics:       m,
		logger:        logger,
	}
}

// Services lists bookable services.
func (s *Service) Services(ctx context.Context) ([]*catalog.Service, error) {
	return s.services.List(ctx)
}

// Professionals lists bookable professionals.
func (s *Service) Professionals(ctx context.Context) ([]*catalog.Professional, error) {
	return s.professionals.List(ctx)
}

// AvailableSlots returns the free grid labels for (date, professional).
func (s *Service) AvailableSlots(ctx context.Context, date, professionalID string) ([]string, error) {
	start := time.Now()
	free, err := s.calendar.AvailableSlots(ctx, date, professionalID)
	s.metrics.ObserveAvailabilityLatency(time.Since(start).Seconds())
	return free, err
}

// BookableDays returns the days the public flow currently offers. The
// calendar itself can compute any date; the window is booking policy.
func (s *Service) BookableDays() []string {
	return schedule.UpcomingDays(time.Now(), s.windowDays)
}

// SubmitRequest is the payload of the final booking step.
type SubmitRequest struct {
	ServiceID      string `json:"service_id"`
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
}

// Submit validates the request, resolves the catalog references and appends
// to the ledger. The availability re-check happens inside Append, so two
// concurrent submits for one slot cannot both succeed.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*appointments.Appointment, error) {
	appendReq := &appointments.AppendRequest{
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Date:           req.Date,
		Time:           req.Time,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
	}
	if err := appendReq.Validate(); err != nil {
		s.metrics.ObserveSubmission("validation_failed")
		return nil, err
	}
	if !s.calendar.Grid().Contains(req.Time) {
		s.metrics.ObserveSubmission("validation_failed")
		return nil, ErrTimeNotInGrid
	}

	if _, err := s.services.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			s.metrics.ObserveSubmission("not_found")
			return nil, err
		}
		return nil, fmt.Errorf("booking: resolve service: %w", err)
	}
	if _, err := s.professionals.GetByID(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, catalog.ErrProfessionalNotFound) {
			s.metrics.ObserveSubmission("not_found")
			return nil, err
		}
		return nil, fmt.Errorf("booking: resolve professional: %w", err)
	}

	appt, err := s.ledger.Append(ctx, appendReq)
	if err != nil {
		if errors.Is(err, appointments.ErrSlotTaken) {
			s.metrics.ObserveSubmission("slot_conflict")
			s.logger.Info("booking lost slot race",
				"date", req.Date,
				"time", req.Time,
				"professional_id", req.ProfessionalID,
			)
			return nil, err
		}
		s.metrics.ObserveSubmission("error")
		return nil, err
	}

	s.metrics.ObserveSubmission("created")
	s.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"date", appt.Date,
		"time", appt.Time,
		"professional_id", appt.ProfessionalID,
	)
	return appt, nil
}

// AdminAppointment is an appointment enriched with catalog records at read
// time. Service or Professional may be nil when the referenced record was
// deleted; consumers must tolerate that.
type AdminAppointment struct {
	appointments.Appointment
	Service      *catalog.Service      `json:"service,omitempty"`
	Professional *catalog.Professional `json:"professional,omitempty"`
}

// ListForAdmin returns all appointments sorted by (date, time, id), joined
// with current catalog data.
func (s *Service) ListForAdmin(ctx context.Context) ([]*AdminAppointment, error) {
	appts, err := s.ledger.ListForAdmin(ctx)
	if err != nil {
		return nil, err
	}

	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking: list services: %w", err)
	}
	professionals, err := s.professionals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking: list professionals: %w", err)
	}

	svcByID := make(map[string]*catalog.Service, len(services))
	for _, svc := range services {
		svcByID[svc.ID] = svc
	}
	proByID := make(map[string]*catalog.Professional, len(professionals))
	for _, pro := range professionals {
		proByID[pro.ID] = pro
	}

	out := make([]*AdminAppointment, 0, len(appts))
	for _, appt := range appts {
		out = append(out, &AdminAppointment{
			Appointment:  *appt,
			Service:      svcByID[appt.ServiceID],
			Professional: proByID[appt.ProfessionalID],
		})
	}
	return out, nil
}

// UpdateAppointment patches appointment fields through the ledger.
func (s *Service) UpdateAppointment(ctx context.Context, id string, patch *appointments.Patch) (*appointments.Appointment, error) {
	return s.ledger.UpdateFields(ctx, id, patch)
}

// SetAppointmentStatus applies a lifecycle transition through the ledger.
func (s *Service) SetAppointmentStatus(ctx context.Context, id string, next appointments.Status) (*appointments.Appointment, error) {
	appt, err := s.ledger.SetStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveStatusChange(string(next))
	s.logger.Info("appointment status changed", "appointment_id", id, "status", next)
	return appt, nil
}
