package booking

import (
	"context"
	"time"

	"github.com/bookati/booking-api/internal/models"
)

type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	// -------- Slot --------
	GetSlot(
		ctx context.Context,
		tenantID uint,
		slotID uint,
	) (*models.Slot, error)

	// -------- Booking (create) --------

	// BookSlot atomically claims capacity on the slot and creates the
	// booking. Fails with slot_not_found / slot_unavailable / slot_full
	// business errors.
	BookSlot(
		ctx context.Context,
		tenantID uint,
		slotID uint,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingByID(
		ctx context.Context,
		tenantID uint,
		bookingID uint,
	) (*models.Booking, error)

	GetBookingByTicket(
		ctx context.Context,
		tenantID uint,
		ticketCode string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// ReleaseSlot returns a cancelled booking's seat to its slot and
	// persists both records together.
	ReleaseSlot(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing --------
	ListBookingsForPeriod(
		ctx context.Context,
		tenantID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
