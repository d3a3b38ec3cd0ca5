package attendance

import "time"

// Record is one employee's attendance for one calendar day. The store
// enforces at most one record per employee per day.
type Record struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employeeId"`
	Date        time.Time  `json:"date"`
	CheckIn     *time.Time `json:"checkIn,omitempty"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	HoursWorked *float64   `json:"hoursWorked,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
