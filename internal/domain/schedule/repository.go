package schedule

import (
	"context"
	"time"

	"github.com/bookati/booking-api/internal/models"
)

type Repository interface {
	// -------- Shift --------
	GetShiftWithService(
		ctx context.Context,
		tenantID uint,
		shiftID uint,
	) (*models.Shift, error)

	// -------- Roster candidate sets --------
	ListShiftAssigneeIDs(
		ctx context.Context,
		shiftID uint,
	) ([]uint, error)

	ListServiceAssigneeIDs(
		ctx context.Context,
		serviceID uint,
	) ([]uint, error)

	// HasServiceAssignmentRows reports whether any assignment row exists
	// for the service, shift-bound or not. Gates the all-employees tier.
	HasServiceAssignmentRows(
		ctx context.Context,
		serviceID uint,
	) (bool, error)

	ListActiveEmployeeIDs(
		ctx context.Context,
		tenantID uint,
	) ([]uint, error)

	// -------- Slots --------

	// ReplaceSlots deletes every slot of the shift dated inside
	// [from, to] and inserts the given set, as one atomic unit.
	ReplaceSlots(
		ctx context.Context,
		shiftID uint,
		from time.Time,
		to time.Time,
		slots []models.Slot,
	) (int, error)

	ListSlotsByShiftRange(
		ctx context.Context,
		tenantID uint,
		shiftID uint,
		from time.Time,
		to time.Time,
	) ([]models.Slot, error)

	ListAvailableSlots(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
		date time.Time,
	) ([]models.Slot, error)
}
