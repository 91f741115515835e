package leave

import (
	"time"
)

// LeaveType is per-organization policy reference data. Types that are
// referenced by requests are deactivated, never deleted.
type LeaveType struct {
	ID                string
	OrganizationID    string
	Name              string
	Description       *string
	MaxDaysPerYear    *int
	IsPaid            bool
	RequiresApproval  bool
	AdvanceNoticeDays int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// Blocking reports whether the status participates in the no-overlap
// invariant.
func (s LeaveRequestStatus) Blocking() bool {
	return s == LeaveRequestStatusPending || s == LeaveRequestStatusApproved
}

// LeaveRequest entity
type LeaveRequest struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	LeaveTypeID    string

	StartDate time.Time
	EndDate   time.Time
	TotalDays int

	Reason string

	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	// PolicyNote records advisory policy violations and notice
	// overrides carried with the request.
	PolicyNote *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// LeaveBalance is derived reporting data: consumption is computed from
// approved requests, never stored.
type LeaveBalance struct {
	LeaveTypeID   string
	LeaveTypeName string
	Year          int
	MaxDays       *int
	UsedDays      int
	RemainingDays *int
}
