package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string, organizationID string) (LeaveType, error)
	GetActiveByOrganization(ctx context.Context, organizationID string) ([]LeaveType, error)

	// Deactivate flips is_active to false. Types referenced by
	// requests are never deleted.
	Deactivate(ctx context.Context, id string, organizationID string) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, organizationID string) (LeaveRequest, error)

	// GetByIDForUpdate locks the row for the lifetime of the current
	// transaction. decide/cancel use it to pin the status they read.
	GetByIDForUpdate(ctx context.Context, id string, organizationID string) (LeaveRequest, error)

	// HasOverlapping reports whether the employee has a request in a
	// blocking status ({pending, approved}) sharing at least one day
	// with [startDate, endDate]. excludeID skips the request being
	// re-validated at decision time.
	HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)

	// UpdateStatus writes a status transition together with its
	// decision metadata.
	UpdateStatus(ctx context.Context, request LeaveRequest) error

	List(ctx context.Context, filter LeaveRequestFilter, organizationID string) ([]LeaveRequest, int64, error)

	// SumApprovedDays totals total_days of approved requests starting
	// in the given policy year. Used for derived balance reporting.
	SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
}
