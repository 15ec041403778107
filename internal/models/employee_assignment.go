package models

import "time"

// EmployeeAssignment binds an employee to a service and optionally to a
// specific shift. A nil ShiftID means the employee covers every shift of
// the service.
type EmployeeAssignment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	EmployeeID uint `gorm:"index" json:"employee_id"`
	Employee   User `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"employee"`

	ServiceID uint  `gorm:"index" json:"service_id"`
	ShiftID   *uint `gorm:"index" json:"shift_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
