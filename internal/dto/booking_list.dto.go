package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	StartsAtUTC  time.Time `json:"starts_at_utc"`
	EndsAtUTC    time.Time `json:"ends_at_utc"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	TicketCode   string    `json:"ticket_code"`
	EmployeeID   uint      `json:"employee_id"`
}
