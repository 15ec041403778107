package booking

import (
	"context"
	"time"

	domain "github.com/bookati/booking-api/internal/domain/booking"
	"github.com/bookati/booking-api/internal/dto"
	"github.com/bookati/booking-api/internal/timezone"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

// Execute lists the tenant's bookings for one calendar day, with day
// boundaries taken in the tenant's display timezone.
func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	tenantID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tenant.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForPeriod(
		ctx,
		tenantID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:           b.ID,
			StartsAtUTC:  b.Slot.StartsAtUTC,
			EndsAtUTC:    b.Slot.EndsAtUTC,
			Status:       b.Status,
			CustomerName: b.CustomerName,
			TicketCode:   b.TicketCode,
			EmployeeID:   b.Slot.EmployeeID,
		})
	}

	return out, nil
}
