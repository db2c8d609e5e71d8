// Package schedule computes bookable time slots. The calendar is derived
// state: it reads the appointment ledger at call time and is never stored.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/luminadental/booking-platform/internal/appointments"
)

// Grid is the fixed ordered sequence of daily time labels the clinic offers.
type Grid []string

// NewGrid validates the labels and returns a grid. Order is preserved.
func NewGrid(labels []string) (Grid, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("schedule: grid must not be empty")
	}
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if !appointments.ValidTime(label) {
			return nil, fmt.Errorf("schedule: bad grid label %q", label)
		}
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("schedule: duplicate grid label %q", label)
		}
		seen[label] = struct{}{}
	}
	return Grid(labels), nil
}

// Contains reports whether the label is part of the grid.
func (g Grid) Contains(label string) bool {
	for _, l := range g {
		if l == label {
			return true
		}
	}
	return false
}

// Labels returns a copy of the grid in order.
func (g Grid) Labels() []string {
	out := make([]string, len(g))
	copy(out, g)
	return out
}

// Calendar answers availability questions for a (date, professional) pair.
type Calendar struct {
	grid   Grid
	ledger appointments.Ledger
}

// NewCalendar creates a calendar over the given grid and ledger.
func NewCalendar(grid Grid, ledger appointments.Ledger) *Calendar {
	return &Calendar{grid: grid, ledger: ledger}
}

// Grid returns the calendar's slot grid.
func (c *Calendar) Grid() Grid {
	return c.grid
}

// AvailableSlots returns the grid minus the times of non-cancelled
// appointments for (date, professional), in grid order. The ledger is read
// at call time; no caching.
func (c *Calendar) AvailableSlots(ctx context.Context, date, professionalID string) ([]string, error) {
	if !appointments.ValidDate(date) {
		return nil, appointments.ErrBadDate
	}

	active, err := c.ledger.FindActive(ctx, date, professionalID)
	if err != nil {
		return nil, fmt.Errorf("schedule: read ledger: %w", err)
	}

	booked := make(map[string]struct{}, len(active))
	for _, appt := range active {
		booked[appt.Time] = struct{}{}
	}

	free := make([]string, 0, len(c.grid))
	for _, label := range c.grid {
		if _, taken := booked[label]; !taken {
			free = append(free, label)
		}
	}
	return free, nil
}

// UpcomingDays lists the next n calendar days starting today, formatted
// YYYY-MM-DD. The booking window policy lives in the orchestrator; this is
// just the helper it and the UI share.
func UpcomingDays(now time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, now.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return days
}
