package leave

import (
	"time"

	"github.com/peoplehub/hrm-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE TYPE DTOs
// ========================================

type CreateLeaveTypeRequest struct {
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	MaxDaysPerYear    *int    `json:"max_days_per_year,omitempty"`
	IsPaid            *bool   `json:"is_paid,omitempty"`
	RequiresApproval  *bool   `json:"requires_approval,omitempty"`
	AdvanceNoticeDays *int    `json:"advance_notice_days,omitempty"`

	OrganizationID string `json:"-"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.MaxDaysPerYear != nil && *r.MaxDaysPerYear <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days_per_year",
			Message: "max_days_per_year must be positive",
		})
	}

	if r.AdvanceNoticeDays != nil && *r.AdvanceNoticeDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "advance_notice_days",
			Message: "advance_notice_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveTypeResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	MaxDaysPerYear    *int    `json:"max_days_per_year,omitempty"`
	IsPaid            bool    `json:"is_paid"`
	RequiresApproval  bool    `json:"requires_approval"`
	AdvanceNoticeDays int     `json:"advance_notice_days"`
	IsActive          bool    `json:"is_active"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                lt.ID,
		Name:              lt.Name,
		Description:       lt.Description,
		MaxDaysPerYear:    lt.MaxDaysPerYear,
		IsPaid:            lt.IsPaid,
		RequiresApproval:  lt.RequiresApproval,
		AdvanceNoticeDays: lt.AdvanceNoticeDays,
		IsActive:          lt.IsActive,
	}
}

// ========================================
// LEAVE REQUEST DTOs
// ========================================

type SubmitLeaveRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TotalDays   int    `json:"total_days"`
	Reason      string `json:"reason"`

	// OverrideNotice bypasses the advance-notice check. Only honored
	// on the administrative route; the handler clears it otherwise.
	OverrideNotice bool `json:"override_notice,omitempty"`

	OrganizationID string `json:"-"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	} else if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id must be a valid UUID",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.TotalDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must be positive",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed inclusive range. Validate must pass first.
func (r *SubmitLeaveRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

type DecideLeaveRequest struct {
	Decision        string  `json:"decision"`
	RejectionReason *string `json:"rejection_reason,omitempty"`

	// Set by the handler.
	RequestID      string `json:"-"`
	ApproverID     string `json:"-"`
	OrganizationID string `json:"-"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Decision, []string{string(DecisionApproved), string(DecisionRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be either approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   *string `json:"leave_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	PolicyNote      *string `json:"policy_note,omitempty"`
}

type ListLeaveRequestResponse struct {
	Items      []LeaveRequestResponse `json:"items"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalItems int64                  `json:"total_items"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	var approvedAt *string
	if lr.ApprovedAt != nil {
		s := lr.ApprovedAt.UTC().Format(time.RFC3339)
		approvedAt = &s
	}

	return LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		EmployeeName:    lr.EmployeeName,
		LeaveTypeID:     lr.LeaveTypeID,
		LeaveTypeName:   lr.LeaveTypeName,
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		TotalDays:       lr.TotalDays,
		Reason:          lr.Reason,
		Status:          string(lr.Status),
		ApprovedBy:      lr.ApprovedBy,
		ApprovedAt:      approvedAt,
		RejectionReason: lr.RejectionReason,
		PolicyNote:      lr.PolicyNote,
	}
}

type LeaveBalanceResponse struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Year          int    `json:"year"`
	MaxDays       *int   `json:"max_days,omitempty"`
	UsedDays      int    `json:"used_days"`
	RemainingDays *int   `json:"remaining_days,omitempty"`
}
