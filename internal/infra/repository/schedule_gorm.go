package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/bookati/booking-api/internal/domain/schedule"
	"github.com/bookati/booking-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Shift
// --------------------------------------------------

func (r *ScheduleGormRepository) GetShiftWithService(
	ctx context.Context,
	tenantID uint,
	shiftID uint,
) (*models.Shift, error) {

	var shift models.Shift
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id = ? AND tenant_id = ?", shiftID, tenantID).
		First(&shift).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

// --------------------------------------------------
// Roster candidate sets
// --------------------------------------------------

func (r *ScheduleGormRepository) ListShiftAssigneeIDs(
	ctx context.Context,
	shiftID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeAssignment{}).
		Distinct("employee_id").
		Where("shift_id = ?", shiftID).
		Order("employee_id ASC").
		Pluck("employee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ScheduleGormRepository) ListServiceAssigneeIDs(
	ctx context.Context,
	serviceID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeAssignment{}).
		Distinct("employee_id").
		Where("service_id = ? AND shift_id IS NULL", serviceID).
		Order("employee_id ASC").
		Pluck("employee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ScheduleGormRepository) HasServiceAssignmentRows(
	ctx context.Context,
	serviceID uint,
) (bool, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeAssignment{}).
		Where("service_id = ?", serviceID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ScheduleGormRepository) ListActiveEmployeeIDs(
	ctx context.Context,
	tenantID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("tenant_id = ? AND role = ? AND active = ?", tenantID, models.RoleEmployee, true).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

// ReplaceSlots runs the delete-then-insert as one transaction. On
// postgres a transaction-scoped advisory lock keyed on the shift id
// serializes concurrent regenerations of the same shift; different
// shifts take different keys and proceed in parallel.
func (r *ScheduleGormRepository) ReplaceSlots(
	ctx context.Context,
	shiftID uint,
	from time.Time,
	to time.Time,
	slots []models.Slot,
) (int, error) {

	var inserted int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?)",
				int64(shiftID),
			).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Where("shift_id = ? AND slot_date >= ? AND slot_date <= ?", shiftID, from, to).
			Delete(&models.Slot{}).Error; err != nil {
			return err
		}

		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
			inserted = len(slots)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *ScheduleGormRepository) ListSlotsByShiftRange(
	ctx context.Context,
	tenantID uint,
	shiftID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND shift_id = ? AND slot_date >= ? AND slot_date <= ?",
			tenantID, shiftID, from, to,
		).
		Order("starts_at_utc ASC, employee_id ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) ListAvailableSlots(
	ctx context.Context,
	tenantID uint,
	serviceID uint,
	date time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Joins("JOIN shifts ON shifts.id = slots.shift_id").
		Where(
			"slots.tenant_id = ? AND shifts.service_id = ? AND slots.slot_date = ? AND slots.is_available = ?",
			tenantID, serviceID, date, true,
		).
		Order("slots.starts_at_utc ASC, slots.employee_id ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
