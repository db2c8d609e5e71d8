package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func validRequest() *AppendRequest {
	return &AppendRequest{
		ClientName:     "Fernanda Lima",
		ClientPhone:    "(82) 99888-7766",
		Date:           "2024-06-01",
		Time:           "10:00",
		ServiceID:      "svc-1",
		ProfessionalID: "p1",
	}
}

func TestAppendAssignsPendingAndID(t *testing.T) {
	ledger := NewInMemoryLedger()

	appt, err := ledger.Append(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if appt.ID == "" {
		t.Error("expected generated id")
	}
	if appt.Status != StatusPending {
		t.Errorf("expected pending status, got %s", appt.Status)
	}
}

func TestAppendValidation(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*AppendRequest)
		want   error
	}{
		{"missing name", func(r *AppendRequest) { r.ClientName = " " }, ErrMissingClientName},
		{"missing phone", func(r *AppendRequest) { r.ClientPhone = "" }, ErrMissingClientPhone},
		{"missing service", func(r *AppendRequest) { r.ServiceID = "" }, ErrMissingService},
		{"missing professional", func(r *AppendRequest) { r.ProfessionalID = "" }, ErrMissingProfessional},
		{"bad date", func(r *AppendRequest) { r.Date = "01/06/2024" }, ErrBadDate},
		{"bad time", func(r *AppendRequest) { r.Time = "10am" }, ErrBadTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if _, err := ledger.Append(ctx, req); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	all, _ := ledger.ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("failed appends must not insert, got %d records", len(all))
	}
}

func TestAppendRejectsTakenSlot(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	if _, err := ledger.Append(ctx, validRequest()); err != nil {
		t.Fatalf("first append: %v", err)
	}

	req := validRequest()
	req.ClientName = "Someone Else"
	if _, err := ledger.Append(ctx, req); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	all, _ := ledger.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("conflicting append must not insert, got %d records", len(all))
	}
}

func TestAppendAllowsSameTimeDifferentProfessional(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	if _, err := ledger.Append(ctx, validRequest()); err != nil {
		t.Fatalf("append p1: %v", err)
	}
	req := validRequest()
	req.ProfessionalID = "p2"
	if _, err := ledger.Append(ctx, req); err != nil {
		t.Fatalf("append p2 should succeed: %v", err)
	}
}

func TestCancelledSlotIsReusable(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	appt, err := ledger.Append(ctx, validRequest())
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := ledger.SetStatus(ctx, appt.ID, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := ledger.Append(ctx, validRequest()); err != nil {
		t.Fatalf("append after cancel should succeed: %v", err)
	}
}

func TestConcurrentAppendsSameSlot(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	const n = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Append(ctx, validRequest())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("expected exactly one append to succeed, got %d", succeeded)
	}
	if conflicts != n-1 {
		t.Errorf("expected %d conflicts, got %d", n-1, conflicts)
	}
}

func TestStatusLifecycle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup []Status
		next  Status
		want  error
	}{
		{"pending to confirmed", nil, StatusConfirmed, nil},
		{"pending to cancelled", nil, StatusCancelled, nil},
		{"pending to completed is forbidden", nil, StatusCompleted, ErrInvalidTransition},
		{"confirmed to completed", []Status{StatusConfirmed}, StatusCompleted, nil},
		{"confirmed to cancelled", []Status{StatusConfirmed}, StatusCancelled, nil},
		{"completed is terminal", []Status{StatusConfirmed, StatusCompleted}, StatusCancelled, ErrInvalidTransition},
		{"cancelled is terminal", []Status{StatusCancelled}, StatusConfirmed, ErrInvalidTransition},
		{"cancel twice", []Status{StatusCancelled}, StatusCancelled, ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewInMemoryLedger()
			appt, err := ledger.Append(ctx, validRequest())
			if err != nil {
				t.Fatalf("append: %v", err)
			}
			for _, s := range tt.setup {
				if _, err := ledger.SetStatus(ctx, appt.ID, s); err != nil {
					t.Fatalf("setup transition to %s: %v", s, err)
				}
			}
			_, err = ledger.SetStatus(ctx, appt.ID, tt.next)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSetStatusUnknownID(t *testing.T) {
	ledger := NewInMemoryLedger()
	if _, err := ledger.SetStatus(context.Background(), "missing", StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateFieldsPatchesWithoutMovingSlot(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	appt, _ := ledger.Append(ctx, validRequest())

	name := "Fernanda de Lima"
	updated, err := ledger.UpdateFields(ctx, appt.ID, &Patch{ClientName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ClientName != name {
		t.Errorf("name not patched: %s", updated.ClientName)
	}
	if updated.Date != appt.Date || updated.Time != appt.Time {
		t.Errorf("slot changed unexpectedly: %+v", updated)
	}
}

func TestUpdateFieldsRejectsMoveOntoTakenSlot(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	first, _ := ledger.Append(ctx, validRequest())

	req := validRequest()
	req.Time = "11:00"
	second, err := ledger.Append(ctx, req)
	if err != nil {
		t.Fatalf("append second: %v", err)
	}

	taken := first.Time
	if _, err := ledger.UpdateFields(ctx, second.ID, &Patch{Time: &taken}); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// The failed move must leave the record untouched.
	current, _ := ledger.GetByID(ctx, second.ID)
	if current.Time != "11:00" {
		t.Errorf("failed update mutated record: %+v", current)
	}
}

func TestUpdateFieldsAllowsRescheduleToOwnSlot(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	appt, _ := ledger.Append(ctx, validRequest())

	// Patching the date to its current value re-runs the check but must
	// exclude the record itself.
	same := appt.Date
	if _, err := ledger.UpdateFields(ctx, appt.ID, &Patch{Date: &same}); err != nil {
		t.Fatalf("reschedule to own slot: %v", err)
	}
}

func TestListForAdminSorted(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	seed := []struct{ date, timeLabel, pro string }{
		{"2024-06-02", "09:00", "p1"},
		{"2024-06-01", "14:00", "p1"},
		{"2024-06-01", "09:00", "p2"},
	}
	for _, s := range seed {
		req := validRequest()
		req.Date = s.date
		req.Time = s.timeLabel
		req.ProfessionalID = s.pro
		if _, err := ledger.Append(ctx, req); err != nil {
			t.Fatalf("seed append: %v", err)
		}
	}

	out, err := ledger.ListForAdmin(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(out))
	}
	if out[0].Time != "09:00" || out[0].Date != "2024-06-01" {
		t.Errorf("wrong first entry: %+v", out[0])
	}
	if out[1].Time != "14:00" {
		t.Errorf("wrong second entry: %+v", out[1])
	}
	if out[2].Date != "2024-06-02" {
		t.Errorf("wrong third entry: %+v", out[2])
	}
}

func TestFindActiveExcludesCancelled(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	kept, _ := ledger.Append(ctx, validRequest())

	req := validRequest()
	req.Time = "14:00"
	dropped, _ := ledger.Append(ctx, req)
	if _, err := ledger.SetStatus(ctx, dropped.ID, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	active, err := ledger.FindActive(ctx, "2024-06-01", "p1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(active) != 1 || active[0].ID != kept.ID {
		t.Fatalf("expected only the non-cancelled appointment, got %+v", active)
	}
}
