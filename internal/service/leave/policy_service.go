package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplehub/hrm-backend-go/internal/config"
	"github.com/peoplehub/hrm-backend-go/internal/domain/leave"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/calendar"
)

const defaultAdvanceNoticeDays = 7

type PolicyServiceImpl struct {
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	noticePolicy string
}

func NewPolicyService(leaveTypeRepo leave.LeaveTypeRepository, leaveRequestRepo leave.LeaveRequestRepository, noticePolicy string) leave.PolicyService {
	return &PolicyServiceImpl{
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveRequestRepository: leaveRequestRepo,
		noticePolicy:           noticePolicy,
	}
}

// CreateLeaveType implements leave.PolicyService.
func (s *PolicyServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	leaveType := leave.LeaveType{
		OrganizationID:    req.OrganizationID,
		Name:              req.Name,
		Description:       req.Description,
		MaxDaysPerYear:    req.MaxDaysPerYear,
		IsPaid:            true,
		RequiresApproval:  true,
		AdvanceNoticeDays: defaultAdvanceNoticeDays,
		IsActive:          true,
	}
	if req.IsPaid != nil {
		leaveType.IsPaid = *req.IsPaid
	}
	if req.RequiresApproval != nil {
		leaveType.RequiresApproval = *req.RequiresApproval
	}
	if req.AdvanceNoticeDays != nil {
		leaveType.AdvanceNoticeDays = *req.AdvanceNoticeDays
	}

	created, err := s.LeaveTypeRepository.Create(ctx, leaveType)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return leave.NewLeaveTypeResponse(created), nil
}

// ListLeaveTypes implements leave.PolicyService.
func (s *PolicyServiceImpl) ListLeaveTypes(ctx context.Context, organizationID string) ([]leave.LeaveTypeResponse, error) {
	leaveTypes, err := s.LeaveTypeRepository.GetActiveByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		responses = append(responses, leave.NewLeaveTypeResponse(lt))
	}

	return responses, nil
}

// DeactivateLeaveType implements leave.PolicyService.
func (s *PolicyServiceImpl) DeactivateLeaveType(ctx context.Context, id string, organizationID string) error {
	return s.LeaveTypeRepository.Deactivate(ctx, id, organizationID)
}

// GetBalances implements leave.PolicyService. Consumption is computed
// from approved requests at read time; the cap is informational and
// remaining may go negative.
func (s *PolicyServiceImpl) GetBalances(ctx context.Context, employeeID string, organizationID string, year int) ([]leave.LeaveBalanceResponse, error) {
	leaveTypes, err := s.LeaveTypeRepository.GetActiveByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	balances := make([]leave.LeaveBalanceResponse, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		used, err := s.LeaveRequestRepository.SumApprovedDays(ctx, employeeID, lt.ID, year)
		if err != nil {
			return nil, err
		}

		balance := leave.LeaveBalanceResponse{
			LeaveTypeID:   lt.ID,
			LeaveTypeName: lt.Name,
			Year:          year,
			MaxDays:       lt.MaxDaysPerYear,
			UsedDays:      used,
		}
		if lt.MaxDaysPerYear != nil {
			remaining := *lt.MaxDaysPerYear - used
			balance.RemainingDays = &remaining
		}

		balances = append(balances, balance)
	}

	return balances, nil
}

// ValidateNotice implements leave.PolicyService.
func (s *PolicyServiceImpl) ValidateNotice(leaveType leave.LeaveType, startDate, submittedAt time.Time, override bool) (*string, error) {
	noticeDays := int(calendar.DateOf(startDate).Sub(calendar.DateOf(submittedAt)).Hours() / 24)
	if noticeDays >= leaveType.AdvanceNoticeDays {
		return nil, nil
	}

	if override {
		note := fmt.Sprintf("advance notice requirement of %d days overridden (%d days given)",
			leaveType.AdvanceNoticeDays, noticeDays)
		return &note, nil
	}

	if s.noticePolicy == config.NoticePolicyAdvisory {
		note := fmt.Sprintf("submitted with %d days notice; policy requires %d",
			noticeDays, leaveType.AdvanceNoticeDays)
		return &note, nil
	}

	return nil, leave.ErrInsufficientNotice
}
