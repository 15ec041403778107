package models

import "time"

// Slot is one concrete bookable window produced by the generator.
// SlotDate is midnight UTC of the calendar date; StartTime/EndTime keep
// the "HH:MM" display form while StartsAtUTC/EndsAtUTC carry the instant.
type Slot struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	ShiftID    uint `gorm:"index" json:"shift_id"`
	EmployeeID uint `gorm:"index" json:"employee_id"`

	SlotDate  time.Time `gorm:"index" json:"slot_date"`
	StartTime string    `gorm:"size:5" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`

	StartsAtUTC time.Time `gorm:"index" json:"starts_at_utc"`
	EndsAtUTC   time.Time `json:"ends_at_utc"`

	AvailableCapacity int  `json:"available_capacity"`
	BookedCount       int  `gorm:"default:0" json:"booked_count"`
	IsAvailable       bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
