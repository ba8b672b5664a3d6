package booking

import (
	"testing"
	"time"

	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

func TestInitialStatus(t *testing.T) {
	if InitialStatus(SourceOnline) != StatusPending {
		t.Fatal("online bookings start pending")
	}
	if InitialStatus(SourceWalkIn) != StatusConfirmed {
		t.Fatal("walk-in bookings start confirmed")
	}
}

func TestStatusTransitions(t *testing.T) {
	if err := CanConfirm(StatusPending); err != nil {
		t.Fatalf("pending must be confirmable: %v", err)
	}
	if err := CanConfirm(StatusConfirmed); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("confirming a confirmed booking must fail, got %v", err)
	}

	if err := CanCancel(StatusPending); err != nil {
		t.Fatalf("pending must be cancellable: %v", err)
	}
	if err := CanCancel(StatusConfirmed); err != nil {
		t.Fatalf("confirmed must be cancellable: %v", err)
	}
	if err := CanCancel(StatusCompleted); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("completed bookings cannot be cancelled, got %v", err)
	}

	if err := CanComplete(StatusConfirmed); err != nil {
		t.Fatalf("confirmed must be completable: %v", err)
	}
	if err := CanComplete(StatusPending); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("pending bookings cannot be completed, got %v", err)
	}
}

func TestCancelStampsTimestamp(t *testing.T) {
	bk := &models.Booking{Status: string(StatusConfirmed)}
	now := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

	if err := Cancel(bk, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bk.Status != string(StatusCancelled) {
		t.Fatalf("expected cancelled, got %s", bk.Status)
	}
	if bk.CancelledAt == nil || !bk.CancelledAt.Equal(now) {
		t.Fatal("expected cancelled_at to be stamped")
	}
}

func TestNewBookingCode(t *testing.T) {
	a := NewBookingCode()
	b := NewBookingCode()

	if len(a) != len("VS-")+8 {
		t.Fatalf("unexpected code length: %q", a)
	}
	if a == b {
		t.Fatal("codes must be unique")
	}
}
