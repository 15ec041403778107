package booking

import (
	"testing"
	"time"

	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/models"
)

func TestCancel(t *testing.T) {
	now := time.Now().UTC()

	b := &models.Booking{Status: string(StatusConfirmed)}
	if err := Cancel(b, now); err != nil {
		t.Fatalf("cancel confirmed: %v", err)
	}
	if b.Status != string(StatusCancelled) || b.CancelledAt == nil {
		t.Fatalf("unexpected state after cancel: %+v", b)
	}

	if err := Cancel(b, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state on double cancel, got %v", err)
	}
}

func TestCheckIn(t *testing.T) {
	now := time.Now().UTC()

	b := &models.Booking{Status: string(StatusConfirmed)}
	if err := CheckIn(b, now); err != nil {
		t.Fatalf("checkin confirmed: %v", err)
	}
	if b.Status != string(StatusCheckedIn) || b.CheckedInAt == nil {
		t.Fatalf("unexpected state after checkin: %+v", b)
	}

	if err := CheckIn(b, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state on double checkin, got %v", err)
	}

	cancelled := &models.Booking{Status: string(StatusCancelled)}
	if err := CheckIn(cancelled, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state for cancelled booking, got %v", err)
	}
}
