package schedule

import (
	"context"
	"time"

	"github.com/bookati/booking-api/internal/audit"
	"github.com/bookati/booking-api/internal/cache"
	domain "github.com/bookati/booking-api/internal/domain/schedule"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type GenerateSlotsInput struct {
	TenantID uint
	ShiftID  uint

	StartDate time.Time // inclusive
	EndDate   time.Time // inclusive
}

// ======================================================
// USE CASE
// ======================================================

// GenerateSlots expands a shift's recurring weekly definition into
// concrete bookable slots over a date range, replacing whatever the
// previous run produced for that range. A zero count is a valid, silent
// outcome; only an unknown shift is an error.
type GenerateSlots struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewGenerateSlots(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *GenerateSlots {
	return &GenerateSlots{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GenerateSlots) Execute(
	ctx context.Context,
	in GenerateSlotsInput,
) (int, error) {

	startDate := domain.DateOnly(in.StartDate)
	endDate := domain.DateOnly(in.EndDate)

	if endDate.Before(startDate) {
		return 0, httperr.ErrBusiness("invalid_date_range")
	}

	// The shift lookup runs before any deletion: an unknown shift must
	// leave zero side effects.
	shift, err := uc.repo.GetShiftWithService(ctx, in.TenantID, in.ShiftID)
	if err != nil {
		return 0, err
	}

	startMinute, err := domain.MinuteOfDay(shift.StartTimeUTC)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_shift_times")
	}
	endMinute, err := domain.MinuteOfDay(shift.EndTimeUTC)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_shift_times")
	}

	weekdays, err := shift.WeekdaySet()
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_shift_weekdays")
	}

	roster, err := uc.resolveRoster(ctx, shift)
	if err != nil {
		return 0, err
	}

	windows := domain.CarveWindows(startMinute, endMinute, shift.Service.DurationMin)
	dates := domain.DatesInRange(startDate, endDate, weekdays)

	slots := buildSlots(shift, dates, roster, windows)

	count, err := uc.repo.ReplaceSlots(ctx, shift.ID, startDate, endDate, slots)
	if err != nil {
		return 0, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			TenantID: shift.TenantID,
			Action:   "slots_generated",
			Entity:   "shift",
			EntityID: &shift.ID,
			Metadata: map[string]any{
				"start_date": startDate.Format(domain.DateFormat),
				"end_date":   endDate.Format(domain.DateFormat),
				"count":      count,
			},
		})
	}

	uc.invalidateAvailability(ctx, shift, startDate, endDate)

	return count, nil
}

// resolveRoster runs the three candidate queries once and combines them
// under tier guards computed upfront. Tier exclusivity is global for
// the whole call, never re-checked per row.
func (uc *GenerateSlots) resolveRoster(
	ctx context.Context,
	shift *models.Shift,
) ([]uint, error) {

	shiftAssignees, err := uc.repo.ListShiftAssigneeIDs(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	serviceAssignees, err := uc.repo.ListServiceAssigneeIDs(ctx, shift.ServiceID)
	if err != nil {
		return nil, err
	}

	// Rows bound to the service's other shifts still block the
	// all-employees fallback, so existence is checked across all of them.
	hasAssignmentRows, err := uc.repo.HasServiceAssignmentRows(ctx, shift.ServiceID)
	if err != nil {
		return nil, err
	}

	tenantEmployees, err := uc.repo.ListActiveEmployeeIDs(ctx, shift.TenantID)
	if err != nil {
		return nil, err
	}

	flags := domain.Flags(shiftAssignees, serviceAssignees, hasAssignmentRows)

	return domain.UnionRoster(flags, shiftAssignees, serviceAssignees, tenantEmployees), nil
}

func buildSlots(
	shift *models.Shift,
	dates []time.Time,
	roster []uint,
	windows []domain.Window,
) []models.Slot {

	slots := make([]models.Slot, 0, len(dates)*len(roster)*len(windows))

	for _, date := range dates {
		for _, employeeID := range roster {
			for _, w := range windows {
				slots = append(slots, models.Slot{
					TenantID:   shift.TenantID,
					ShiftID:    shift.ID,
					EmployeeID: employeeID,

					SlotDate:  date,
					StartTime: domain.FormatMinute(w.StartMinute),
					EndTime:   domain.FormatMinute(w.EndMinute),

					StartsAtUTC: domain.InstantUTC(date, w.StartMinute),
					EndsAtUTC:   domain.InstantUTC(date, w.EndMinute),

					AvailableCapacity: shift.Service.CapacityPerSlot,
					BookedCount:       0,
					IsAvailable:       true,
				})
			}
		}
	}

	return slots
}

func (uc *GenerateSlots) invalidateAvailability(
	ctx context.Context,
	shift *models.Shift,
	startDate, endDate time.Time,
) {
	if uc.cache == nil {
		return
	}

	var dates []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(domain.DateFormat))
	}
	uc.cache.Invalidate(ctx, shift.TenantID, shift.ServiceID, dates...)
}
