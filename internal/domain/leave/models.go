package leave

import "time"

const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypeEmergency = "emergency"
	TypeUnpaid    = "unpaid"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// AnnualCapDays is the yearly entitlement for annual leave. Only the
// annual type is capped.
const AnnualCapDays = 30

type Request struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	TotalDays    int       `json:"totalDays"`
	Reason       string    `json:"reason,omitempty"`
	ApprovedBy   *int64    `json:"approvedById,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ValidType(leaveType string) bool {
	switch leaveType {
	case TypeAnnual, TypeSick, TypeEmergency, TypeUnpaid, TypeMaternity, TypePaternity:
		return true
	}
	return false
}
