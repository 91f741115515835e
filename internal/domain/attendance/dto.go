package attendance

import (
	"time"

	"github.com/peoplehub/hrm-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Status     string  `json:"status"`
	Location   *string `json:"location,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	// CheckInTime backdates the entry. Only honored on the
	// administrative route; the handler clears it otherwise.
	CheckInTime *string `json:"check_in_time,omitempty"`

	// Set by the handler from the authenticated caller.
	OrganizationID string `json:"-"`
}

func (r *CheckInRequest) Validate() error {
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

	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half_day, work_from_home",
		})
	}

	if r.CheckInTime != nil {
		if _, ok := validator.IsValidTimestamp(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an RFC 3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedCheckInTime returns the backdated instant, if one was supplied.
func (r *CheckInRequest) ParsedCheckInTime() *time.Time {
	if r.CheckInTime == nil {
		return nil
	}
	t, ok := validator.IsValidTimestamp(*r.CheckInTime)
	if !ok {
		return nil
	}
	return &t
}

type CheckOutRequest struct {
	CheckOutTime *string `json:"check_out_time,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Location     *string `json:"location,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	// Set by the handler.
	AttendanceID   string `json:"-"`
	OrganizationID string `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	} else if !validator.IsValidUUID(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id must be a valid UUID",
		})
	}

	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidTimestamp(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an RFC 3339 timestamp",
			})
		}
	}

	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CheckOutRequest) ParsedCheckOutTime() *time.Time {
	if r.CheckOutTime == nil {
		return nil
	}
	t, ok := validator.IsValidTimestamp(*r.CheckOutTime)
	if !ok {
		return nil
	}
	return &t
}

type Filter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

type AttendanceResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     *string  `json:"employee_name,omitempty"`
	Date             string   `json:"date"`
	CheckInTime      *string  `json:"check_in_time,omitempty"`
	CheckOutTime     *string  `json:"check_out_time,omitempty"`
	BreakMinutes     int      `json:"break_minutes"`
	TotalHours       *float64 `json:"total_hours,omitempty"`
	Status           string   `json:"status"`
	Notes            *string  `json:"notes,omitempty"`
	LocationCheckIn  *string  `json:"location_check_in,omitempty"`
	LocationCheckOut *string  `json:"location_check_out,omitempty"`
}

type ListAttendanceResponse struct {
	Items      []AttendanceResponse `json:"items"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalItems int64                `json:"total_items"`
}

// NewAttendanceResponse maps the entity to its wire shape.
func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		EmployeeName:     a.EmployeeName,
		Date:             a.Date.Format("2006-01-02"),
		CheckInTime:      timePtrToString(a.CheckInTime),
		CheckOutTime:     timePtrToString(a.CheckOutTime),
		BreakMinutes:     a.BreakMinutes,
		TotalHours:       a.TotalHours,
		Status:           string(a.Status),
		Notes:            a.Notes,
		LocationCheckIn:  a.LocationCheckIn,
		LocationCheckOut: a.LocationCheckOut,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}
