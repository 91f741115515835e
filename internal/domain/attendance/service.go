package attendance

import (
	"context"
)

// AttendanceService defines business logic for the attendance ledger.
type AttendanceService interface {
	// CheckIn opens the ledger row for (employee, day). Fails when a
	// row already exists or the employee cannot be resolved.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the row and computes total hours. Terminal: a
	// second check-out is rejected.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// List retrieves records with filters. Read-only.
	List(ctx context.Context, filter Filter, organizationID string) (ListAttendanceResponse, error)
}
