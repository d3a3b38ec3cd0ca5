package core

import "time"

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusSuspended  = "suspended"
	StatusTerminated = "terminated"
)

const (
	ContractFullTime  = "full_time"
	ContractPartTime  = "part_time"
	ContractFreelance = "freelance"
	ContractIntern    = "intern"
)

const (
	ContractStatusActive         = "active"
	ContractStatusExpired        = "expired"
	ContractStatusTerminated     = "terminated"
	ContractStatusPendingRenewal = "pending_renewal"
)

type Employee struct {
	ID             int64      `json:"id"`
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	NationalID     string     `json:"nationalId,omitempty"`
	Address        string     `json:"address,omitempty"`
	HireDate       *time.Time `json:"hireDate,omitempty"`
	DepartmentID   int64      `json:"departmentId"`
	JobPositionID  int64      `json:"jobPositionId"`
	ManagerID      *int64     `json:"managerId,omitempty"`
	BaseSalary     float64    `json:"baseSalary"`
	Status         string     `json:"status"`
	DepartmentName string     `json:"departmentName,omitempty"`
	JobTitle       string     `json:"jobTitle,omitempty"`
	ManagerName    string     `json:"managerName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Department struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ManagerID     *int64    `json:"managerId,omitempty"`
	ManagerName   string    `json:"managerName,omitempty"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type JobPosition struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	DepartmentID int64     `json:"departmentId"`
	MinSalary    float64   `json:"minSalary"`
	MaxSalary    float64   `json:"maxSalary"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Contract struct {
	ID         int64      `json:"id"`
	EmployeeID int64      `json:"employeeId"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Salary     float64    `json:"salary"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
