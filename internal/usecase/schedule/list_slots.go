package schedule

import (
	"context"
	"time"

	domain "github.com/bookati/booking-api/internal/domain/schedule"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/models"
)

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

// Execute returns the generated slots of a shift inside an inclusive
// date range, for the admin calendar.
func (uc *ListSlots) Execute(
	ctx context.Context,
	tenantID uint,
	shiftID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	if to.Before(from) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	// 404 on an unknown shift, same contract as generation.
	if _, err := uc.repo.GetShiftWithService(ctx, tenantID, shiftID); err != nil {
		return nil, err
	}

	return uc.repo.ListSlotsByShiftRange(ctx, tenantID, shiftID, from, to)
}
