package leave

import (
	"context"
	"time"
)

// PolicyService owns the leave-type catalog and policy checks.
type PolicyService interface {
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context, organizationID string) ([]LeaveTypeResponse, error)
	DeactivateLeaveType(ctx context.Context, id string, organizationID string) error

	// GetBalances derives per-type consumption for the policy year by
	// summing approved requests; nothing is stored redundantly.
	GetBalances(ctx context.Context, employeeID string, organizationID string, year int) ([]LeaveBalanceResponse, error)

	// ValidateNotice checks the advance-notice rule. Depending on the
	// configured strictness it either blocks with ErrInsufficientNotice
	// or returns an advisory note to carry on the request.
	ValidateNotice(leaveType LeaveType, startDate, submittedAt time.Time, override bool) (*string, error)
}

// RequestService owns the leave request lifecycle.
type RequestService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, requestID string, actorID string, organizationID string, actorIsApprover bool) (LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter, organizationID string) (ListLeaveRequestResponse, error)
}
