package employee

import (
	"time"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusOnLeave    EmploymentStatus = "on_leave"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

type Employee struct {
	ID               string
	OrganizationID   string
	EmployeeCode     string
	FirstName        string
	LastName         string
	Email            string
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsActive reports whether the employee may check in or submit leave.
func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive || e.EmploymentStatus == EmploymentStatusOnLeave
}
