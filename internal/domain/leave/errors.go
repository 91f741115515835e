package leave

import "errors"

var (
	ErrLeaveTypeNotFound       = errors.New("leave type not found")
	ErrLeaveTypeInactive       = errors.New("leave type is inactive")
	ErrLeaveRequestNotFound    = errors.New("leave request not found")
	ErrTotalDaysMismatch       = errors.New("total_days does not match the date range")
	ErrOverlappingLeave        = errors.New("an overlapping leave request already exists")
	ErrAlreadyProcessed        = errors.New("leave request has already been processed")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrInsufficientNotice      = errors.New("advance notice period not met")
	ErrCancelWindowClosed      = errors.New("approved leave can only be cancelled before it starts")
	ErrCancelNotAllowed        = errors.New("only the requester or an approver may cancel")
)
