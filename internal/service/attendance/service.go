package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplehub/hrm-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrm-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/calendar"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	defaultBreakMinutes int
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository, defaultBreakMinutes int) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		defaultBreakMinutes:  defaultBreakMinutes,
	}
}

// CheckIn implements attendance.AttendanceService. Duplicate detection
// is left to the storage layer's unique constraint so two racing
// check-ins cannot both succeed.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	checkInTime := time.Now().UTC()
	if backdated := req.ParsedCheckInTime(); backdated != nil {
		checkInTime = backdated.UTC()
	}

	data := attendance.Attendance{
		EmployeeID:      emp.ID,
		OrganizationID:  req.OrganizationID,
		Date:            calendar.DateOf(checkInTime),
		CheckInTime:     &checkInTime,
		BreakMinutes:    a.defaultBreakMinutes,
		Status:          attendance.Status(req.Status),
		Notes:           req.Notes,
		LocationCheckIn: req.Location,
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	name := emp.FullName()
	created.EmployeeName = &name

	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Terminal per day:
// once check_out_time is set the record never changes again through
// this path.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.AttendanceID, req.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if att.CheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if att.CheckInTime == nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("attendance record %s has no check-in time", att.ID)
	}

	checkOutTime := time.Now().UTC()
	if supplied := req.ParsedCheckOutTime(); supplied != nil {
		checkOutTime = supplied.UTC()
	}

	// Break carried over from check-in unless the caller overrides it.
	breakMinutes := att.BreakMinutes
	if req.BreakMinutes != nil {
		breakMinutes = *req.BreakMinutes
	}

	totalHours, err := calendar.NetWorkHours(*att.CheckInTime, checkOutTime, breakMinutes)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.CheckOutTime = &checkOutTime
	att.BreakMinutes = breakMinutes
	att.TotalHours = &totalHours
	att.LocationCheckOut = req.Location
	if req.Notes != nil {
		att.Notes = req.Notes
	}

	if err := a.AttendanceRepository.SetCheckOut(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(att), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter, organizationID string) (attendance.ListAttendanceResponse, error) {
	records, total, err := a.AttendanceRepository.List(ctx, filter, organizationID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		items = append(items, attendance.NewAttendanceResponse(record))
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	return attendance.ListAttendanceResponse{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
	}, nil
}
