package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent      Status = "present"
	StatusAbsent       Status = "absent"
	StatusLate         Status = "late"
	StatusHalfDay      Status = "half_day"
	StatusWorkFromHome Status = "work_from_home"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusWorkFromHome:
		return true
	}
	return false
}

// Attendance is one ledger row per (employee, calendar day). It is
// created at check-in and mutated exactly once by check-out; rows are
// never deleted.
type Attendance struct {
	ID               string
	EmployeeID       string
	OrganizationID   string
	Date             time.Time
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	BreakMinutes     int
	TotalHours       *float64
	Status           Status
	Notes            *string
	LocationCheckIn  *string
	LocationCheckOut *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}

// CheckedOut reports whether the record reached its terminal state.
func (a Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
