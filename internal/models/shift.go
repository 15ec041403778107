package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Shift is a recurring weekly availability window for one service.
// Start/end times are stored as UTC-normalized "HH:MM" strings; the
// weekday set (0=Sunday .. 6=Saturday) is stored as a JSON array.
type Shift struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"index" json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	StartTimeUTC string `gorm:"size:5;not null" json:"start_time_utc"`
	EndTimeUTC   string `gorm:"size:5;not null" json:"end_time_utc"`

	Weekdays datatypes.JSON `json:"weekdays"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeekdaySet decodes the stored weekday array into a membership set.
func (s *Shift) WeekdaySet() (map[int]bool, error) {
	var days []int
	if len(s.Weekdays) > 0 {
		if err := json.Unmarshal(s.Weekdays, &days); err != nil {
			return nil, err
		}
	}

	set := make(map[int]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set, nil
}

func WeekdaysJSON(days []int) datatypes.JSON {
	b, _ := json.Marshal(days)
	return datatypes.JSON(b)
}
