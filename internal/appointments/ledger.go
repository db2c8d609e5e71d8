// Package appointments holds the authoritative appointment ledger. The
// ledger is the sole arbiter of the booking invariant: no two non-cancelled
// appointments may share a (date, professional, time) slot.
package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger defines the interface for appointment storage. Append is the only
// creation path; records are never deleted.
type Ledger interface {
	// ListAll returns every appointment in insertion order.
	ListAll(ctx context.Context) ([]*Appointment, error)
	// ListForAdmin returns every appointment sorted by (date, time, id).
	ListForAdmin(ctx context.Context) ([]*Appointment, error)
	// GetByID returns a single appointment.
	GetByID(ctx context.Context, id string) (*Appointment, error)
	// FindActive returns non-cancelled appointments for the given day and
	// professional.
	FindActive(ctx context.Context, date, professionalID string) ([]*Appointment, error)
	// Append validates the request, re-checks the slot invariant against
	// current state, and stores a new pending appointment. Of concurrent
	// appends for the same slot at most one succeeds; the rest get
	// ErrSlotTaken.
	Append(ctx context.Context, req *AppendRequest) (*Appointment, error)
	// UpdateFields patches an appointment. If the slot coordinate changes
	// the conflict check re-runs, excluding the record itself.
	UpdateFields(ctx context.Context, id string, patch *Patch) (*Appointment, error)
	// SetStatus applies a lifecycle transition. Terminal states reject all
	// transitions with ErrInvalidTransition.
	SetStatus(ctx context.Context, id string, next Status) (*Appointment, error)
}

// InMemoryLedger is the reference Ledger implementation. A single mutex
// serializes writers, which makes the check-then-append atomic.
type InMemoryLedger struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*Appointment
}

// NewInMemoryLedger creates an empty in-memory ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{byID: make(map[string]*Appointment)}
}

// ListAll returns every appointment in insertion order.
func (l *InMemoryLedger) ListAll(ctx context.Context) ([]*Appointment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Appointment, 0, len(l.order))
	for _, id := range l.order {
		appt := *l.byID[id]
		out = append(out, &appt)
	}
	return out, nil
}

// ListForAdmin returns every appointment sorted ascending by (date, time),
// with id breaking ties so the order is stable across cancelled duplicates.
func (l *InMemoryLedger) ListForAdmin(ctx context.Context) ([]*Appointment, error) {
	out, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.ID < b.ID
	})
	return out, nil
}

// GetByID retrieves an appointment by ID
func (l *InMemoryLedger) GetByID(ctx context.Context, id string) (*Appointment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	appt, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *appt
	return &out, nil
}

// FindActive returns non-cancelled appointments for (date, professional).
func (l *InMemoryLedger) FindActive(ctx context.Context, date, professionalID string) ([]*Appointment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*Appointment
	for _, id := range l.order {
		appt := l.byID[id]
		if appt.Date == date && appt.ProfessionalID == professionalID && appt.Status.Active() {
			copied := *appt
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Append stores a new pending appointment after re-checking the slot
// invariant under the write lock.
func (l *InMemoryLedger) Append(ctx context.Context, req *AppendRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.slotTakenLocked(req.Date, req.ProfessionalID, req.Time, "") {
		return nil, ErrSlotTaken
	}

	appt := &Appointment{
		ID:             uuid.NewString(),
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Date:           req.Date,
		Time:           req.Time,
		Status:         StatusPending,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		CreatedAt:      time.Now().UTC(),
	}
	l.byID[appt.ID] = appt
	l.order = append(l.order, appt.ID)

	out := *appt
	return &out, nil
}

// UpdateFields patches an appointment, re-running the slot check when the
// coordinate moves.
func (l *InMemoryLedger) UpdateFields(ctx context.Context, id string, patch *Patch) (*Appointment, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	appt, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.movesSlot() && appt.Status.Active() {
		next := *appt
		patch.apply(&next)
		if l.slotTakenLocked(next.Date, next.ProfessionalID, next.Time, id) {
			return nil, ErrSlotTaken
		}
	}

	patch.apply(appt)
	out := *appt
	return &out, nil
}

// SetStatus applies a lifecycle transition.
func (l *InMemoryLedger) SetStatus(ctx context.Context, id string, next Status) (*Appointment, error) {
	if !next.Valid() {
		return nil, ErrBadStatus
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	appt, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !appt.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	appt.Status = next

	out := *appt
	return &out, nil
}

// slotTakenLocked reports whether a non-cancelled appointment other than
// excludeID occupies the slot. Callers must hold the write lock.
func (l *InMemoryLedger) slotTakenLocked(date, professionalID, timeLabel, excludeID string) bool {
	for _, appt := range l.byID {
		if appt.ID == excludeID {
			continue
		}
		if appt.Date == date && appt.ProfessionalID == professionalID && appt.Time == timeLabel && appt.Status.Active() {
			return true
		}
	}
	return false
}
