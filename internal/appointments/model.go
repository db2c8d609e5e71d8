package appointments

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions encodes the strict lifecycle: pending can be confirmed or
// cancelled, confirmed can be completed or cancelled, completed and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether an appointment in this status occupies its slot.
func (s Status) Active() bool {
	return s != StatusCancelled
}

// Appointment is a booked slot. Appointments are never deleted; cancelling
// frees the slot while preserving the record.
type Appointment struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	ClientPhone    string    `json:"client_phone"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Time           string    `json:"time"` // HH:MM, 24-hour
	Status         Status    `json:"status"`
	ServiceID      string    `json:"service_id"`
	ProfessionalID string    `json:"professional_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// AppendRequest carries the fields for a new appointment. Status and ID are
// assigned by the ledger; callers cannot choose them.
type AppendRequest struct {
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	ServiceID      string `json:"service_id"`
	ProfessionalID string `json:"professional_id"`
}

// Validate validates the append request
func (r *AppendRequest) Validate() error {
	if strings.TrimSpace(r.ClientName) == "" {
		return ErrMissingClientName
	}
	if strings.TrimSpace(r.ClientPhone) == "" {
		return ErrMissingClientPhone
	}
	if r.ServiceID == "" {
		return ErrMissingService
	}
	if r.ProfessionalID == "" {
		return ErrMissingProfessional
	}
	if !ValidDate(r.Date) {
		return ErrBadDate
	}
	if !ValidTime(r.Time) {
		return ErrBadTime
	}
	return nil
}

// Patch carries optional field updates for an appointment. Nil fields are
// left untouched. Changing date, time or professional re-runs the slot
// conflict check.
type Patch struct {
	ClientName     *string `json:"client_name,omitempty"`
	ClientPhone    *string `json:"client_phone,omitempty"`
	Date           *string `json:"date,omitempty"`
	Time           *string `json:"time,omitempty"`
	ServiceID      *string `json:"service_id,omitempty"`
	ProfessionalID *string `json:"professional_id,omitempty"`
}

// Validate rejects patches that would leave the record invalid.
func (p *Patch) Validate() error {
	if p.ClientName != nil && strings.TrimSpace(*p.ClientName) == "" {
		return ErrMissingClientName
	}
	if p.ClientPhone != nil && strings.TrimSpace(*p.ClientPhone) == "" {
		return ErrMissingClientPhone
	}
	if p.Date != nil && !ValidDate(*p.Date) {
		return ErrBadDate
	}
	if p.Time != nil && !ValidTime(*p.Time) {
		return ErrBadTime
	}
	return nil
}

// movesSlot reports whether applying the patch can change the slot
// coordinate (date, professional, time).
func (p *Patch) movesSlot() bool {
	return p.Date != nil || p.Time != nil || p.ProfessionalID != nil
}

func (p *Patch) apply(a *Appointment) {
	if p.ClientName != nil {
		a.ClientName = *p.ClientName
	}
	if p.ClientPhone != nil {
		a.ClientPhone = *p.ClientPhone
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.ServiceID != nil {
		a.ServiceID = *p.ServiceID
	}
	if p.ProfessionalID != nil {
		a.ProfessionalID = *p.ProfessionalID
	}
}

// ValidDate reports whether s is a calendar day in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTime reports whether s is a 24-hour HH:MM label.
func ValidTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}
