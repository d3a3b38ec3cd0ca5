package auth

import "time"

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	// EmployeeID links the account to an employee record; nil for
	// service accounts such as the seeded admin.
	EmployeeID *int64     `json:"employeeId,omitempty"`
	IsActive   bool       `json:"isActive"`
	MFAEnabled bool       `json:"mfaEnabled"`
	MFASecret  string     `json:"-"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// UserContext is the authenticated identity carried on the request
// context by the auth middleware.
type UserContext struct {
	UserID   int64
	Username string
	Role     string
	// EmployeeID is zero for accounts not linked to an employee record.
	EmployeeID int64
}
