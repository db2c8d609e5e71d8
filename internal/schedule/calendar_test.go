package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luminadental/booking-platform/internal/appointments"
	"github.com/luminadental/booking-platform/internal/config"
)

func testGrid(t *testing.T) Grid {
	t.Helper()
	grid, err := NewGrid(config.DefaultSlotGrid)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return grid
}

func book(t *testing.T, ledger appointments.Ledger, date, timeLabel, proID string) *appointments.Appointment {
	t.Helper()
	appt, err := ledger.Append(context.Background(), &appointments.AppendRequest{
		ClientName:     "Fernanda Lima",
		ClientPhone:    "(82) 99888-7766",
		Date:           date,
		Time:           timeLabel,
		ServiceID:      "svc-1",
		ProfessionalID: proID,
	})
	if err != nil {
		t.Fatalf("book %s %s: %v", date, timeLabel, err)
	}
	return appt
}

func TestNewGridRejectsBadLabels(t *testing.T) {
	if _, err := NewGrid(nil); err == nil {
		t.Error("expected error for empty grid")
	}
	if _, err := NewGrid([]string{"9am"}); err == nil {
		t.Error("expected error for malformed label")
	}
	if _, err := NewGrid([]string{"09:00", "09:00"}); err == nil {
		t.Error("expected error for duplicate label")
	}
}

func TestAvailableSlotsEmptyDay(t *testing.T) {
	ledger := appointments.NewInMemoryLedger()
	cal := NewCalendar(testGrid(t), ledger)

	free, err := cal.AvailableSlots(context.Background(), "2024-06-01", "p1")
	if err != nil {
		t.Fatalf("available: %v", err)
	}

	want := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	if len(free) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(free))
	}
	for i, label := range want {
		if free[i] != label {
			t.Errorf("slot %d: expected %s, got %s", i, label, free[i])
		}
	}
}

func TestAvailableSlotsSubtractsBooked(t *testing.T) {
	ledger := appointments.NewInMemoryLedger()
	cal := NewCalendar(testGrid(t), ledger)
	ctx := context.Background()

	book(t, ledger, "2024-06-01", "10:00", "p1")

	free, err := cal.AvailableSlots(ctx, "2024-06-01", "p1")
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(free) != 7 {
		t.Fatalf("expected 7 slots, got %d: %v", len(free), free)
	}
	for _, label := range free {
		if label == "10:00" {
			t.Fatal("booked slot still offered")
		}
	}
	// Grid order preserved around the gap.
	if free[0] != "09:00" || free[1] != "11:00" || free[2] != "13:00" {
		t.Errorf("order not preserved: %v", free)
	}
}

func TestAvailableSlotsPerProfessional(t *testing.T) {
	ledger := appointments.NewInMemoryLedger()
	cal := NewCalendar(testGrid(t), ledger)
	ctx := context.Background()

	book(t, ledger, "2024-06-01", "10:00", "p1")

	free, err := cal.AvailableSlots(ctx, "2024-06-01", "p2")
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(free) != 8 {
		t.Fatalf("p2 should be unaffected by p1's booking, got %d slots", len(free))
	}
}

func TestCancellationFreesSlot(t *testing.T) {
	ledger := appointments.NewInMemoryLedger()
	cal := NewCalendar(testGrid(t), ledger)
	ctx := context.Background()

	appt := book(t, ledger, "2024-06-01", "10:00", "p1")
	if _, err := ledger.SetStatus(ctx, appt.ID, appointments.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	free, err := cal.AvailableSlots(ctx, "2024-06-01", "p1")
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	found := false
	for _, label := range free {
		if label == "10:00" {
			found = true
		}
	}
	if !found {
		t.Fatalf("cancelled slot should reappear, got %v", free)
	}
}

func TestAvailableSlotsBadDate(t *testing.T) {
	ledger := appointments.NewInMemoryLedger()
	cal := NewCalendar(testGrid(t), ledger)

	if _, err := cal.AvailableSlots(context.Background(), "junk", "p1"); !errors.Is(err, appointments.ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
}

func TestAvailableSlotsFarFutureDateComputable(t *testing.T) {
	// The calendar imposes no window; range policy belongs to the caller.
	ledger := appointments.NewInMemoryLedger()
	cal := NewCalendar(testGrid(t), ledger)

	free, err := cal.AvailableSlots(context.Background(), "2099-01-01", "p1")
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(free) != 8 {
		t.Fatalf("expected full grid, got %d", len(free))
	}
}

func TestUpcomingDays(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	days := UpcomingDays(now, 14)
	if len(days) != 14 {
		t.Fatalf("expected 14 days, got %d", len(days))
	}
	if days[0] != "2024-06-01" {
		t.Errorf("window must include today, got %s", days[0])
	}
	if days[13] != "2024-06-14" {
		t.Errorf("unexpected last day: %s", days[13])
	}
}
