package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bookati/booking-api/internal/domain/booking"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *BookingGormRepository) GetTenantByID(
	ctx context.Context,
	id uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	tenantID uint,
	slotID uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", slotID, tenantID).
		First(&slot).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("slot_not_found")
		}
		return nil, err
	}
	return &slot, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

// BookSlot locks the slot row, claims one seat and creates the booking
// in the same transaction, so two customers cannot take the last seat.
func (r *BookingGormRepository) BookSlot(
	ctx context.Context,
	tenantID uint,
	slotID uint,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND tenant_id = ?", slotID, tenantID)
		if tx.Dialector.Name() == "postgres" {
			// sqlite serializes writers on its own and rejects FOR UPDATE
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var slot models.Slot
		if err := q.First(&slot).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("slot_not_found")
			}
			return err
		}

		if !slot.IsAvailable {
			return httperr.ErrBusiness("slot_unavailable")
		}
		if slot.BookedCount >= slot.AvailableCapacity {
			return httperr.ErrBusiness("slot_full")
		}

		slot.BookedCount++
		if slot.BookedCount >= slot.AvailableCapacity {
			slot.IsAvailable = false
		}

		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		b.TenantID = tenantID
		b.SlotID = slot.ID

		if err := tx.Omit("Slot").Create(b).Error; err != nil {
			return err
		}

		b.Slot = slot
		return nil
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	tenantID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Slot").
		Where("id = ? AND tenant_id = ?", bookingID, tenantID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByTicket(
	ctx context.Context,
	tenantID uint,
	ticketCode string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Slot").
		Where("ticket_code = ? AND tenant_id = ?", ticketCode, tenantID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit("Slot").Save(b).Error
}

// ReleaseSlot persists a cancelled booking and gives its seat back to
// the slot in one transaction.
func (r *BookingGormRepository) ReleaseSlot(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Slot").Save(b).Error; err != nil {
			return err
		}

		finder := tx.Model(&models.Slot{})
		if tx.Dialector.Name() == "postgres" {
			finder = finder.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var slot models.Slot
		if err := finder.First(&slot, b.SlotID).Error; err != nil {
			return err
		}

		if slot.BookedCount > 0 {
			slot.BookedCount--
		}
		slot.IsAvailable = slot.BookedCount < slot.AvailableCapacity

		return tx.Save(&slot).Error
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	tenantID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Slot").
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Where(
			"bookings.tenant_id = ? AND slots.starts_at_utc >= ? AND slots.starts_at_utc < ?",
			tenantID, start, end,
		).
		Order("slots.starts_at_utc ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
