package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bookati/booking-api/internal/audit"
	domain "github.com/bookati/booking-api/internal/domain/booking"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/models"
	"github.com/bookati/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	TenantID uint
	SlotID   uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	slot, err := uc.repo.GetSlot(ctx, in.TenantID, in.SlotID)
	if err != nil {
		return nil, err
	}

	if tooSoon(tenant, slot, time.Now()) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	b := &models.Booking{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		TicketCode:    uuid.NewString(),
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}

	// Capacity is claimed under a row lock inside the repository, so
	// the last seat cannot be taken twice.
	if err := uc.repo.BookSlot(ctx, in.TenantID, in.SlotID, b); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			TenantID: in.TenantID,
			Action:   "booking_created",
			Entity:   "booking",
			EntityID: &b.ID,
		})
	}

	return b, nil
}

func tooSoon(tenant *models.Tenant, slot *models.Slot, now time.Time) bool {
	minAdvance := tenant.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	localNow := now.In(timezone.Location(tenant.Timezone))
	return slot.StartsAtUTC.Before(localNow.Add(time.Duration(minAdvance) * time.Minute))
}
