package booking

import (
	"context"
	"time"

	"github.com/bookati/booking-api/internal/audit"
	domain "github.com/bookati/booking-api/internal/domain/booking"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/models"
)

// CheckInBooking resolves a scanned ticket QR code to a booking and
// marks it checked in.
type CheckInBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCheckInBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CheckInBooking {
	return &CheckInBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CheckInBooking) Execute(
	ctx context.Context,
	tenantID uint,
	userID uint,
	ticketCode string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByTicket(ctx, tenantID, ticketCode)
	if err != nil {
		return nil, httperr.ErrBusiness("ticket_not_found")
	}

	if err := domain.CheckIn(b, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			TenantID: tenantID,
			UserID:   &userID,
			Action:   "booking_checked_in",
			Entity:   "booking",
			EntityID: &b.ID,
		})
	}

	return b, nil
}
