package schedule

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bookati/booking-api/internal/db"
	domain "github.com/bookati/booking-api/internal/domain/schedule"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/infra/repository"
	"github.com/bookati/booking-api/internal/models"
)

// ======================================================
// FIXTURE
// ======================================================

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

type fixture struct {
	db      *gorm.DB
	tenant  models.Tenant
	service models.Service
	shift   models.Shift
	uc      *GenerateSlots
}

// newFixture seeds a tenant with one service and one weekday shift:
// 09:00 to 17:00, Monday through Friday, 60-minute slots, 3 seats each.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := newTestDB(t)

	f := &fixture{db: gdb}

	f.tenant = models.Tenant{Name: "Studio Norte", Slug: "studio-norte", Timezone: "UTC"}
	if err := gdb.Create(&f.tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	f.service = models.Service{
		TenantID:        f.tenant.ID,
		Name:            "Haircut",
		DurationMin:     60,
		CapacityPerSlot: 3,
		Active:          true,
	}
	if err := gdb.Create(&f.service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}

	f.shift = models.Shift{
		TenantID:     f.tenant.ID,
		ServiceID:    f.service.ID,
		StartTimeUTC: "09:00",
		EndTimeUTC:   "17:00",
		Weekdays:     models.WeekdaysJSON([]int{1, 2, 3, 4, 5}),
		Active:       true,
	}
	if err := gdb.Create(&f.shift).Error; err != nil {
		t.Fatalf("create shift: %v", err)
	}

	f.uc = NewGenerateSlots(repository.NewScheduleGormRepository(gdb), nil, nil)
	return f
}

func (f *fixture) addEmployee(t *testing.T, name, email string, active bool) models.User {
	t.Helper()

	u := models.User{
		TenantID:     f.tenant.ID,
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleEmployee,
		Active:       active,
	}
	if err := f.db.Create(&u).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return u
}

func (f *fixture) assign(t *testing.T, employeeID uint, shiftID *uint) {
	t.Helper()

	a := models.EmployeeAssignment{
		TenantID:   f.tenant.ID,
		EmployeeID: employeeID,
		ServiceID:  f.service.ID,
		ShiftID:    shiftID,
	}
	if err := f.db.Create(&a).Error; err != nil {
		t.Fatalf("create assignment: %v", err)
	}
}

func (f *fixture) slotCount(t *testing.T) int64 {
	t.Helper()

	var n int64
	if err := f.db.Model(&models.Slot{}).Where("shift_id = ?", f.shift.ID).Count(&n).Error; err != nil {
		t.Fatalf("count slots: %v", err)
	}
	return n
}

// 2025-01-06 is a Monday.
var (
	monday = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	friday = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
)

func weekInput(f *fixture) GenerateSlotsInput {
	return GenerateSlotsInput{
		TenantID:  f.tenant.ID,
		ShiftID:   f.shift.ID,
		StartDate: monday,
		EndDate:   friday,
	}
}

// ======================================================
// TESTS
// ======================================================

func TestGenerateSlots_SingleAssignee(t *testing.T) {
	f := newFixture(t)

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	count, err := f.uc.Execute(context.Background(), weekInput(f))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	// 8 windows a day, 5 weekdays, 1 employee.
	if count != 40 {
		t.Fatalf("expected 40 slots, got %d", count)
	}
	if n := f.slotCount(t); n != 40 {
		t.Fatalf("expected 40 rows, got %d", n)
	}

	var first models.Slot
	if err := f.db.
		Where("shift_id = ?", f.shift.ID).
		Order("starts_at_utc ASC").
		First(&first).Error; err != nil {
		t.Fatalf("load first slot: %v", err)
	}

	if first.StartTime != "09:00" || first.EndTime != "10:00" {
		t.Fatalf("unexpected first slot times: %s-%s", first.StartTime, first.EndTime)
	}
	if first.EmployeeID != emp.ID {
		t.Fatalf("expected employee %d, got %d", emp.ID, first.EmployeeID)
	}
	if first.AvailableCapacity != 3 || first.BookedCount != 0 || !first.IsAvailable {
		t.Fatalf("unexpected slot state: %+v", first)
	}
	wantStart := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	if !first.StartsAtUTC.UTC().Equal(wantStart) {
		t.Fatalf("expected starts_at %v, got %v", wantStart, first.StartsAtUTC)
	}
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	f := newFixture(t)

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	for run := 0; run < 2; run++ {
		count, err := f.uc.Execute(context.Background(), weekInput(f))
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if count != 40 {
			t.Fatalf("run %d: expected 40 slots, got %d", run, count)
		}
	}

	if n := f.slotCount(t); n != 40 {
		t.Fatalf("expected 40 rows after re-run, got %d", n)
	}
}

func TestGenerateSlots_FallbackToActiveEmployees(t *testing.T) {
	f := newFixture(t)

	// No assignment rows at all: every active employee of the tenant is
	// a candidate. Inactive employees and non-employee roles are not.
	f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.addEmployee(t, "Bruno", "bruno@studio.test", true)
	f.addEmployee(t, "Clara", "clara@studio.test", false)

	admin := models.User{
		TenantID:     f.tenant.ID,
		Name:         "Dona",
		Email:        "dona@studio.test",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := f.db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}

	count, err := f.uc.Execute(context.Background(), weekInput(f))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 80 {
		t.Fatalf("expected 80 slots for 2 active employees, got %d", count)
	}
}

func TestGenerateSlots_ShiftAssigneesExcludeServiceWide(t *testing.T) {
	f := newFixture(t)

	bound := f.addEmployee(t, "Alice", "alice@studio.test", true)
	wide := f.addEmployee(t, "Bruno", "bruno@studio.test", true)

	f.assign(t, bound.ID, &f.shift.ID)
	f.assign(t, wide.ID, nil)

	count, err := f.uc.Execute(context.Background(), weekInput(f))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 40 {
		t.Fatalf("expected 40 slots for the bound assignee only, got %d", count)
	}

	var employeeIDs []uint
	if err := f.db.Model(&models.Slot{}).
		Where("shift_id = ?", f.shift.ID).
		Distinct("employee_id").
		Pluck("employee_id", &employeeIDs).Error; err != nil {
		t.Fatalf("pluck employees: %v", err)
	}
	if len(employeeIDs) != 1 || employeeIDs[0] != bound.ID {
		t.Fatalf("expected only employee %d in slots, got %v", bound.ID, employeeIDs)
	}
}

func TestGenerateSlots_SiblingShiftAssignmentBlocksFallback(t *testing.T) {
	f := newFixture(t)

	alice := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.addEmployee(t, "Bruno", "bruno@studio.test", true)

	// The service's only assignment binds Alice to a second shift. The
	// original shift has no candidates, and the existing row must keep
	// the all-employees fallback from firing: zero slots, not a roster
	// of every active employee.
	sibling := models.Shift{
		TenantID:     f.tenant.ID,
		ServiceID:    f.service.ID,
		StartTimeUTC: "18:00",
		EndTimeUTC:   "20:00",
		Weekdays:     models.WeekdaysJSON([]int{1, 2, 3, 4, 5}),
		Active:       true,
	}
	if err := f.db.Create(&sibling).Error; err != nil {
		t.Fatalf("create sibling shift: %v", err)
	}

	f.assign(t, alice.ID, &sibling.ID)

	count, err := f.uc.Execute(context.Background(), weekInput(f))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 slots, got %d", count)
	}
	if n := f.slotCount(t); n != 0 {
		t.Fatalf("expected no rows for the unassigned shift, got %d", n)
	}
}

func TestGenerateSlots_NarrowerRangePreservesOutsideSlots(t *testing.T) {
	f := newFixture(t)

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	if _, err := f.uc.Execute(context.Background(), weekInput(f)); err != nil {
		t.Fatalf("full week: %v", err)
	}

	tuesday := monday.AddDate(0, 0, 1)
	count, err := f.uc.Execute(context.Background(), GenerateSlotsInput{
		TenantID:  f.tenant.ID,
		ShiftID:   f.shift.ID,
		StartDate: tuesday,
		EndDate:   tuesday,
	})
	if err != nil {
		t.Fatalf("tuesday only: %v", err)
	}
	if count != 8 {
		t.Fatalf("expected 8 slots for one day, got %d", count)
	}

	if n := f.slotCount(t); n != 40 {
		t.Fatalf("expected 40 rows total, got %d", n)
	}

	var mondayCount int64
	if err := f.db.Model(&models.Slot{}).
		Where("shift_id = ? AND slot_date = ?", f.shift.ID, monday).
		Count(&mondayCount).Error; err != nil {
		t.Fatalf("count monday: %v", err)
	}
	if mondayCount != 8 {
		t.Fatalf("expected monday slots untouched, got %d", mondayCount)
	}
}

func TestGenerateSlots_RemainderDropped(t *testing.T) {
	f := newFixture(t)

	// 100-minute window, 90-minute service: one slot per day, the
	// 10-minute tail is discarded.
	if err := f.db.Model(&models.Service{}).
		Where("id = ?", f.service.ID).
		Update("duration_min", 90).Error; err != nil {
		t.Fatalf("update service: %v", err)
	}
	if err := f.db.Model(&models.Shift{}).
		Where("id = ?", f.shift.ID).
		Updates(map[string]any{
			"start_time_utc": "10:00",
			"end_time_utc":   "11:40",
		}).Error; err != nil {
		t.Fatalf("update shift: %v", err)
	}

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	count, err := f.uc.Execute(context.Background(), weekInput(f))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 slots, got %d", count)
	}

	var slot models.Slot
	if err := f.db.Where("shift_id = ?", f.shift.ID).First(&slot).Error; err != nil {
		t.Fatalf("load slot: %v", err)
	}
	if slot.StartTime != "10:00" || slot.EndTime != "11:30" {
		t.Fatalf("unexpected slot times: %s-%s", slot.StartTime, slot.EndTime)
	}
}

func TestGenerateSlots_NoMatchingWeekdays(t *testing.T) {
	f := newFixture(t)

	if err := f.db.Model(&models.Shift{}).
		Where("id = ?", f.shift.ID).
		Update("weekdays", models.WeekdaysJSON([]int{6})).Error; err != nil {
		t.Fatalf("update shift: %v", err)
	}

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	// Saturday-only shift over a Mon..Fri range: a valid, empty outcome.
	count, err := f.uc.Execute(context.Background(), weekInput(f))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 slots, got %d", count)
	}
}

func TestGenerateSlots_UnknownShiftLeavesNoTrace(t *testing.T) {
	f := newFixture(t)

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	if _, err := f.uc.Execute(context.Background(), weekInput(f)); err != nil {
		t.Fatalf("seed generation: %v", err)
	}

	in := weekInput(f)
	in.ShiftID = f.shift.ID + 999

	_, err := f.uc.Execute(context.Background(), in)
	if err != domain.ErrShiftNotFound {
		t.Fatalf("expected ErrShiftNotFound, got %v", err)
	}

	// The failed call must not have deleted anything.
	if n := f.slotCount(t); n != 40 {
		t.Fatalf("expected 40 rows untouched, got %d", n)
	}
}

func TestGenerateSlots_WrongTenant(t *testing.T) {
	f := newFixture(t)

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	in := weekInput(f)
	in.TenantID = f.tenant.ID + 1

	if _, err := f.uc.Execute(context.Background(), in); err != domain.ErrShiftNotFound {
		t.Fatalf("expected ErrShiftNotFound for foreign tenant, got %v", err)
	}
}

func TestGenerateSlots_InvalidDateRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), GenerateSlotsInput{
		TenantID:  f.tenant.ID,
		ShiftID:   f.shift.ID,
		StartDate: friday,
		EndDate:   monday,
	})
	if !httperr.IsBusiness(err, "invalid_date_range") {
		t.Fatalf("expected invalid_date_range, got %v", err)
	}
}

func TestListSlots(t *testing.T) {
	f := newFixture(t)

	emp := f.addEmployee(t, "Alice", "alice@studio.test", true)
	f.assign(t, emp.ID, &f.shift.ID)

	if _, err := f.uc.Execute(context.Background(), weekInput(f)); err != nil {
		t.Fatalf("generate: %v", err)
	}

	list := NewListSlots(repository.NewScheduleGormRepository(f.db))

	slots, err := list.Execute(context.Background(), f.tenant.ID, f.shift.ID, monday, monday)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots for one day, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].StartsAtUTC.Before(slots[i-1].StartsAtUTC) {
			t.Fatalf("slots not ordered by start time")
		}
	}

	if _, err := list.Execute(context.Background(), f.tenant.ID, f.shift.ID+999, monday, friday); err != domain.ErrShiftNotFound {
		t.Fatalf("expected ErrShiftNotFound, got %v", err)
	}
}
