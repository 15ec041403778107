package booking

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bookati/booking-api/internal/db"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/infra/repository"
	"github.com/bookati/booking-api/internal/models"
)

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	db     *gorm.DB
	tenant models.Tenant
	slot   models.Slot
	repo   *repository.BookingGormRepository
}

// newFixture seeds one tenant and one open slot with 2 seats, starting
// far enough in the future to clear the minimum-advance rule.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	f := &fixture{db: gdb, repo: repository.NewBookingGormRepository(gdb)}

	f.tenant = models.Tenant{
		Name:              "Studio Norte",
		Slug:              "studio-norte",
		Timezone:          "UTC",
		MinAdvanceMinutes: 60,
	}
	if err := gdb.Create(&f.tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour)
	f.slot = models.Slot{
		TenantID:          f.tenant.ID,
		ShiftID:           1,
		EmployeeID:        1,
		SlotDate:          time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:         start.Format("15:04"),
		EndTime:           start.Add(time.Hour).Format("15:04"),
		StartsAtUTC:       start,
		EndsAtUTC:         start.Add(time.Hour),
		AvailableCapacity: 2,
		BookedCount:       0,
		IsAvailable:       true,
	}
	if err := gdb.Create(&f.slot).Error; err != nil {
		t.Fatalf("create slot: %v", err)
	}

	return f
}

func (f *fixture) book(t *testing.T, name string) (*models.Booking, error) {
	t.Helper()

	uc := NewCreateBooking(f.repo, nil)
	return uc.Execute(context.Background(), CreateBookingInput{
		TenantID:     f.tenant.ID,
		SlotID:       f.slot.ID,
		CustomerName: name,
	})
}

func (f *fixture) reloadSlot(t *testing.T) models.Slot {
	t.Helper()

	var slot models.Slot
	if err := f.db.First(&slot, f.slot.ID).Error; err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	return slot
}

// ======================================================
// TESTS
// ======================================================

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	b, err := f.book(t, "Maria")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if b.TicketCode == "" {
		t.Fatal("expected a ticket code")
	}
	if b.Status != "confirmed" {
		t.Fatalf("expected confirmed, got %q", b.Status)
	}

	slot := f.reloadSlot(t)
	if slot.BookedCount != 1 {
		t.Fatalf("expected booked_count 1, got %d", slot.BookedCount)
	}
	if !slot.IsAvailable {
		t.Fatal("slot with a free seat must stay available")
	}
}

func TestCreateBooking_FillsToCapacity(t *testing.T) {
	f := newFixture(t)

	if _, err := f.book(t, "Maria"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := f.book(t, "Joao"); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	slot := f.reloadSlot(t)
	if slot.BookedCount != 2 {
		t.Fatalf("expected booked_count 2, got %d", slot.BookedCount)
	}
	if slot.IsAvailable {
		t.Fatal("full slot must be unavailable")
	}

	if _, err := f.book(t, "Pedro"); !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestCreateBooking_UnknownSlot(t *testing.T) {
	f := newFixture(t)

	uc := NewCreateBooking(f.repo, nil)
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		TenantID:     f.tenant.ID,
		SlotID:       f.slot.ID + 999,
		CustomerName: "Maria",
	})
	if !httperr.IsBusiness(err, "slot_not_found") {
		t.Fatalf("expected slot_not_found, got %v", err)
	}
}

func TestCreateBooking_TooSoon(t *testing.T) {
	f := newFixture(t)

	soon := time.Now().UTC().Add(10 * time.Minute)
	if err := f.db.Model(&models.Slot{}).
		Where("id = ?", f.slot.ID).
		Updates(map[string]any{
			"starts_at_utc": soon,
			"ends_at_utc":   soon.Add(time.Hour),
		}).Error; err != nil {
		t.Fatalf("update slot: %v", err)
	}

	if _, err := f.book(t, "Maria"); !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("expected too_soon, got %v", err)
	}

	slot := f.reloadSlot(t)
	if slot.BookedCount != 0 {
		t.Fatalf("rejected booking must not claim a seat, got booked_count %d", slot.BookedCount)
	}
}

func TestCancelBooking_ReleasesSeat(t *testing.T) {
	f := newFixture(t)

	if _, err := f.book(t, "Maria"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	b, err := f.book(t, "Joao")
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if slot := f.reloadSlot(t); slot.IsAvailable {
		t.Fatal("expected slot full before cancel")
	}

	cancel := NewCancelBooking(f.repo, nil)
	cancelled, err := cancel.Execute(context.Background(), f.tenant.ID, 1, b.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != "cancelled" || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected booking state after cancel: %+v", cancelled)
	}

	slot := f.reloadSlot(t)
	if slot.BookedCount != 1 {
		t.Fatalf("expected booked_count 1 after cancel, got %d", slot.BookedCount)
	}
	if !slot.IsAvailable {
		t.Fatal("cancel must reopen the slot")
	}

	// A cancelled booking cannot be cancelled twice.
	if _, err := cancel.Execute(context.Background(), f.tenant.ID, 1, b.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestCheckInBooking(t *testing.T) {
	f := newFixture(t)

	b, err := f.book(t, "Maria")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	checkin := NewCheckInBooking(f.repo, nil)

	checked, err := checkin.Execute(context.Background(), f.tenant.ID, 1, b.TicketCode)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if checked.Status != "checked_in" || checked.CheckedInAt == nil {
		t.Fatalf("unexpected booking state after checkin: %+v", checked)
	}

	// Only once per ticket.
	if _, err := checkin.Execute(context.Background(), f.tenant.ID, 1, b.TicketCode); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	if _, err := checkin.Execute(context.Background(), f.tenant.ID, 1, "no-such-ticket"); !httperr.IsBusiness(err, "ticket_not_found") {
		t.Fatalf("expected ticket_not_found, got %v", err)
	}
}
