package employee

import "context"

// EmployeeRepository is the directory gateway. The attendance and
// leave engines only ever read from it; employee lifecycle management
// belongs to the surrounding HR system.
type EmployeeRepository interface {
	// GetByID resolves an employee within an organization.
	// Returns ErrEmployeeNotFound when the reference cannot be resolved.
	GetByID(ctx context.Context, id string, organizationID string) (Employee, error)

	// ListByOrganization retrieves the directory for reporting.
	ListByOrganization(ctx context.Context, organizationID string) ([]Employee, error)
}
