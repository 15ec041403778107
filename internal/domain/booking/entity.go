package booking

import (
	"time"

	"github.com/bookati/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func CheckIn(b *models.Booking, now time.Time) error {
	if err := CanCheckIn(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCheckedIn)
	b.CheckedInAt = &now
	return nil
}
