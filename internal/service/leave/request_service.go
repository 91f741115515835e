package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peoplehub/hrm-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrm-backend-go/internal/domain/leave"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/calendar"
)

// TxRunner executes fn atomically. Production wiring closes over
// postgresql.WithTransaction; tests substitute a passthrough.
type TxRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

type RequestServiceImpl struct {
	runTx TxRunner
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	policy leave.PolicyService
}

func NewRequestService(runTx TxRunner, leaveTypeRepo leave.LeaveTypeRepository, leaveRequestRepo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository, policy leave.PolicyService) leave.RequestService {
	return &RequestServiceImpl{
		runTx:                  runTx,
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		policy:                 policy,
	}
}

// Submit implements leave.RequestService. All validation happens
// before any write; the overlap check runs again inside the committing
// transaction so racing overlapping submissions cannot both land.
func (s *RequestServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.OrganizationID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !emp.IsActive() {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID, req.OrganizationID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}

	startDate, endDate := req.Dates()

	expectedDays, err := calendar.InclusiveDayCount(startDate, endDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.TotalDays != expectedDays {
		return leave.LeaveRequestResponse{}, leave.ErrTotalDaysMismatch
	}

	now := time.Now().UTC()

	policyNote, err := s.policy.ValidateNotice(leaveType, startDate, now, req.OverrideNotice)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request := leave.LeaveRequest{
		EmployeeID:     emp.ID,
		OrganizationID: req.OrganizationID,
		LeaveTypeID:    leaveType.ID,
		StartDate:      startDate,
		EndDate:        endDate,
		TotalDays:      req.TotalDays,
		Reason:         strings.TrimSpace(req.Reason),
		Status:         leave.LeaveRequestStatusPending,
		PolicyNote:     policyNote,
	}

	// System auto-approval: no approver identity is attached.
	if !leaveType.RequiresApproval {
		request.Status = leave.LeaveRequestStatusApproved
		request.ApprovedAt = &now
	}

	var created leave.LeaveRequest
	err = s.runTx(ctx, func(txCtx context.Context) error {
		hasOverlap, err := s.LeaveRequestRepository.HasOverlapping(txCtx, emp.ID, startDate, endDate, nil)
		if err != nil {
			return err
		}
		if hasOverlap {
			return leave.ErrOverlappingLeave
		}

		created, err = s.LeaveRequestRepository.Create(txCtx, request)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	name := emp.FullName()
	created.EmployeeName = &name

	return leave.NewLeaveRequestResponse(created), nil
}

// Decide implements leave.RequestService. The status guard and the
// approval-time overlap re-check run against a row locked for the
// duration of the committing transaction, so two approvers cannot
// both land decisions that violate the overlap invariant.
func (s *RequestServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if req.Decision == string(leave.DecisionRejected) {
		if req.RejectionReason == nil || strings.TrimSpace(*req.RejectionReason) == "" {
			return leave.LeaveRequestResponse{}, leave.ErrRejectionReasonRequired
		}
	}

	var decided leave.LeaveRequest
	err := s.runTx(ctx, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(txCtx, req.RequestID, req.OrganizationID)
		if err != nil {
			return err
		}

		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrAlreadyProcessed
		}

		if req.Decision == string(leave.DecisionApproved) {
			// Another request may have been approved since this one
			// was submitted; re-validate before committing.
			hasOverlap, err := s.LeaveRequestRepository.HasOverlapping(txCtx, request.EmployeeID, request.StartDate, request.EndDate, &request.ID)
			if err != nil {
				return err
			}
			if hasOverlap {
				return leave.ErrOverlappingLeave
			}
			request.Status = leave.LeaveRequestStatusApproved
		} else {
			request.Status = leave.LeaveRequestStatusRejected
			request.RejectionReason = req.RejectionReason
		}

		decidedAt := time.Now().UTC()
		request.ApprovedBy = &req.ApproverID
		request.ApprovedAt = &decidedAt

		if err := s.LeaveRequestRepository.UpdateStatus(txCtx, request); err != nil {
			return err
		}

		decided = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(decided), nil
}

// Cancel implements leave.RequestService. Pending requests may always
// be cancelled by their owner or an approver; approved requests only
// while the leave has not started.
func (s *RequestServiceImpl) Cancel(ctx context.Context, requestID string, actorID string, organizationID string, actorIsApprover bool) (leave.LeaveRequestResponse, error) {
	var cancelled leave.LeaveRequest
	err := s.runTx(ctx, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(txCtx, requestID, organizationID)
		if err != nil {
			return err
		}

		if !actorIsApprover && request.EmployeeID != actorID {
			return leave.ErrCancelNotAllowed
		}

		switch request.Status {
		case leave.LeaveRequestStatusPending:
			// Always cancellable.
		case leave.LeaveRequestStatusApproved:
			today := calendar.DateOf(time.Now().UTC())
			if !calendar.DateOf(request.StartDate).After(today) {
				return leave.ErrCancelWindowClosed
			}
		default:
			return leave.ErrAlreadyProcessed
		}

		request.Status = leave.LeaveRequestStatusCancelled
		if err := s.LeaveRequestRepository.UpdateStatus(txCtx, request); err != nil {
			return err
		}

		cancelled = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(cancelled), nil
}

// List implements leave.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter, organizationID string) (leave.ListLeaveRequestResponse, error) {
	requests, total, err := s.LeaveRequestRepository.List(ctx, filter, organizationID)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	items := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, leave.NewLeaveRequestResponse(request))
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	return leave.ListLeaveRequestResponse{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
	}, nil
}
