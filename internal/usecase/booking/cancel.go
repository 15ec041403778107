package booking

import (
	"context"
	"time"

	"github.com/bookati/booking-api/internal/audit"
	domain "github.com/bookati/booking-api/internal/domain/booking"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	tenantID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, tenantID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Cancel(b, time.Now().UTC()); err != nil {
		return nil, err
	}

	// cancelling returns the seat to the slot
	if err := uc.repo.ReleaseSlot(ctx, b); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			TenantID: tenantID,
			UserID:   &userID,
			Action:   "booking_cancelled",
			Entity:   "booking",
			EntityID: &b.ID,
		})
	}

	return b, nil
}
