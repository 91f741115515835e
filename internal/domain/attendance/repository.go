package attendance

import (
	"context"
)

// AttendanceRepository defines data access for the attendance ledger.
// All methods take an organizationID to keep tenants isolated.
type AttendanceRepository interface {
	// Create inserts a new check-in row. The (employee_id, date)
	// uniqueness is enforced by the storage layer; a constraint
	// violation surfaces as ErrAlreadyCheckedIn so racing check-ins
	// cannot both succeed.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves a record with organization isolation.
	GetByID(ctx context.Context, id string, organizationID string) (Attendance, error)

	// SetCheckOut writes the check-out fields and derived total hours.
	SetCheckOut(ctx context.Context, attendance Attendance) error

	// List retrieves records matching the filter, ordered by date
	// descending, with the total count for pagination.
	List(ctx context.Context, filter Filter, organizationID string) ([]Attendance, int64, error)
}
