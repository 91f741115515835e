package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrm-backend-go/internal/config"
	"github.com/peoplehub/hrm-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrm-backend-go/internal/domain/leave"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/calendar"
)

const (
	testOrgID       = "11111111-1111-4111-8111-111111111111"
	testEmployeeID  = "22222222-2222-4222-8222-222222222222"
	testApproverID  = "33333333-3333-4333-8333-333333333333"
	testLeaveTypeID = "44444444-4444-4444-8444-444444444444"
)

// passthroughTx runs the closure directly; the fakes have no
// transaction semantics to speak of.
func passthroughTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveTypeRepo struct {
	types  map[string]leave.LeaveType
	nextID int
}

func newFakeLeaveTypeRepo(types ...leave.LeaveType) *fakeLeaveTypeRepo {
	repo := &fakeLeaveTypeRepo{types: make(map[string]leave.LeaveType)}
	for _, lt := range types {
		repo.types[lt.ID] = lt
	}
	return repo
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	f.nextID++
	leaveType.ID = fmt.Sprintf("leave-type-%d", f.nextID)
	f.types[leaveType.ID] = leaveType
	return leaveType, nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string, organizationID string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok || lt.OrganizationID != organizationID {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetActiveByOrganization(ctx context.Context, organizationID string) ([]leave.LeaveType, error) {
	var result []leave.LeaveType
	for _, lt := range f.types {
		if lt.OrganizationID == organizationID && lt.IsActive {
			result = append(result, lt)
		}
	}
	return result, nil
}

func (f *fakeLeaveTypeRepo) Deactivate(ctx context.Context, id string, organizationID string) error {
	lt, ok := f.types[id]
	if !ok || lt.OrganizationID != organizationID {
		return leave.ErrLeaveTypeNotFound
	}
	lt.IsActive = false
	f.types[id] = lt
	return nil
}

type fakeLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRequestRepo() *fakeLeaveRequestRepo {
	return &fakeLeaveRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

// seed stores a request directly, bypassing service checks. Tests use
// it to stage states a well-behaved caller could only reach by racing.
func (f *fakeLeaveRequestRepo) seed(request leave.LeaveRequest) leave.LeaveRequest {
	if request.ID == "" {
		f.nextID++
		request.ID = fmt.Sprintf("leave-request-%d", f.nextID)
	}
	f.requests[request.ID] = request
	return request
}

func (f *fakeLeaveRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("leave-request-%d", f.nextID)
	request.CreatedAt = time.Now().UTC()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRequestRepo) GetByID(ctx context.Context, id string, organizationID string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok || request.OrganizationID != organizationID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeLeaveRequestRepo) GetByIDForUpdate(ctx context.Context, id string, organizationID string) (leave.LeaveRequest, error) {
	return f.GetByID(ctx, id, organizationID)
}

func (f *fakeLeaveRequestRepo) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	for _, request := range f.requests {
		if request.EmployeeID != employeeID || !request.Status.Blocking() {
			continue
		}
		if excludeID != nil && request.ID == *excludeID {
			continue
		}
		if calendar.Overlaps(request.StartDate, request.EndDate, startDate, endDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRequestRepo) UpdateStatus(ctx context.Context, request leave.LeaveRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeLeaveRequestRepo) List(ctx context.Context, filter leave.LeaveRequestFilter, organizationID string) ([]leave.LeaveRequest, int64, error) {
	var result []leave.LeaveRequest
	for _, request := range f.requests {
		if request.OrganizationID != organizationID {
			continue
		}
		if filter.EmployeeID != nil && request.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(request.Status) != *filter.Status {
			continue
		}
		result = append(result, request)
	}
	return result, int64(len(result)), nil
}

func (f *fakeLeaveRequestRepo) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	total := 0
	for _, request := range f.requests {
		if request.EmployeeID != employeeID || request.LeaveTypeID != leaveTypeID {
			continue
		}
		if request.Status != leave.LeaveRequestStatusApproved || request.StartDate.Year() != year {
			continue
		}
		total += request.TotalDays
	}
	return total, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		repo.employees[emp.ID] = emp
	}
	return repo
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, organizationID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.OrganizationID != organizationID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListByOrganization(ctx context.Context, organizationID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.OrganizationID == organizationID {
			result = append(result, emp)
		}
	}
	return result, nil
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:               testEmployeeID,
		OrganizationID:   testOrgID,
		EmployeeCode:     "EMP-001",
		FirstName:        "Ayu",
		LastName:         "Lestari",
		Email:            "ayu@example.com",
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func annualLeaveType() leave.LeaveType {
	maxDays := 12
	return leave.LeaveType{
		ID:                testLeaveTypeID,
		OrganizationID:    testOrgID,
		Name:              "Annual Leave",
		MaxDaysPerYear:    &maxDays,
		IsPaid:            true,
		RequiresApproval:  true,
		AdvanceNoticeDays: 7,
		IsActive:          true,
	}
}

// dateStr formats a date the given number of days from today.
func dateStr(daysFromNow int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func newTestRequestService(noticePolicy string, leaveTypes ...leave.LeaveType) (leave.RequestService, *fakeLeaveRequestRepo) {
	typeRepo := newFakeLeaveTypeRepo(leaveTypes...)
	requestRepo := newFakeLeaveRequestRepo()
	employeeRepo := newFakeEmployeeRepo(testEmployee())
	policy := NewPolicyService(typeRepo, requestRepo, noticePolicy)
	return NewRequestService(passthroughTx, typeRepo, requestRepo, employeeRepo, policy), requestRepo
}

func submitRequest(startOffset, days int) leave.SubmitLeaveRequest {
	return leave.SubmitLeaveRequest{
		EmployeeID:     testEmployeeID,
		LeaveTypeID:    testLeaveTypeID,
		StartDate:      dateStr(startOffset),
		EndDate:        dateStr(startOffset + days - 1),
		TotalDays:      days,
		Reason:         "Family trip",
		OrganizationID: testOrgID,
	}
}

func TestRequestService_Submit_Pending(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	result, err := service.Submit(ctx, submitRequest(30, 3))

	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, string(leave.LeaveRequestStatusPending), result.Status)
	assert.Equal(t, 3, result.TotalDays)
	assert.Nil(t, result.ApprovedBy)
	assert.Nil(t, result.ApprovedAt)
	assert.Nil(t, result.PolicyNote)
	require.NotNil(t, result.LeaveTypeName)
	assert.Equal(t, "Annual Leave", *result.LeaveTypeName)
}

func TestRequestService_Submit_AutoApproval(t *testing.T) {
	ctx := context.Background()
	sickLeave := annualLeaveType()
	sickLeave.Name = "Sick Leave"
	sickLeave.RequiresApproval = false
	sickLeave.AdvanceNoticeDays = 0
	service, _ := newTestRequestService(config.NoticePolicyStrict, sickLeave)

	result, err := service.Submit(ctx, submitRequest(1, 2))

	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusApproved), result.Status)
	assert.NotNil(t, result.ApprovedAt)
	// System approval carries no approver identity.
	assert.Nil(t, result.ApprovedBy)
}

func TestRequestService_Submit_TotalDaysMismatch(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	req := submitRequest(30, 3)
	req.TotalDays = 5

	_, err := service.Submit(ctx, req)
	assert.ErrorIs(t, err, leave.ErrTotalDaysMismatch)
}

func TestRequestService_Submit_EndBeforeStart(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	req := submitRequest(30, 3)
	req.EndDate = dateStr(28)

	_, err := service.Submit(ctx, req)
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)
}

func TestRequestService_Submit_Overlap(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	_, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	// Shares the last day of the first request.
	_, err = service.Submit(ctx, submitRequest(32, 2))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestRequestService_Submit_AdjacentRangesAllowed(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	_, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	// Starts the day after the first request ends.
	_, err = service.Submit(ctx, submitRequest(33, 2))
	assert.NoError(t, err)
}

func TestRequestService_Submit_InactiveType(t *testing.T) {
	ctx := context.Background()
	inactive := annualLeaveType()
	inactive.IsActive = false
	service, _ := newTestRequestService(config.NoticePolicyStrict, inactive)

	_, err := service.Submit(ctx, submitRequest(30, 3))
	assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)
}

func TestRequestService_Submit_InsufficientNotice_Strict(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	_, err := service.Submit(ctx, submitRequest(2, 2))
	assert.ErrorIs(t, err, leave.ErrInsufficientNotice)
}

func TestRequestService_Submit_InsufficientNotice_Advisory(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyAdvisory, annualLeaveType())

	result, err := service.Submit(ctx, submitRequest(2, 2))

	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusPending), result.Status)
	assert.NotNil(t, result.PolicyNote)
}

func TestRequestService_Submit_NoticeOverride(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	req := submitRequest(2, 2)
	req.OverrideNotice = true

	result, err := service.Submit(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusPending), result.Status)
	assert.NotNil(t, result.PolicyNote)
}

func TestRequestService_Decide_Approve(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	result, err := service.Decide(ctx, leave.DecideLeaveRequest{
		Decision:       string(leave.DecisionApproved),
		RequestID:      submitted.ID,
		ApproverID:     testApproverID,
		OrganizationID: testOrgID,
	})

	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusApproved), result.Status)
	require.NotNil(t, result.ApprovedBy)
	assert.Equal(t, testApproverID, *result.ApprovedBy)
	assert.NotNil(t, result.ApprovedAt)
}

func TestRequestService_Decide_RejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	_, err = service.Decide(ctx, leave.DecideLeaveRequest{
		Decision:       string(leave.DecisionRejected),
		RequestID:      submitted.ID,
		ApproverID:     testApproverID,
		OrganizationID: testOrgID,
	})
	assert.ErrorIs(t, err, leave.ErrRejectionReasonRequired)

	reason := "Team is at capacity that week"
	result, err := service.Decide(ctx, leave.DecideLeaveRequest{
		Decision:        string(leave.DecisionRejected),
		RejectionReason: &reason,
		RequestID:       submitted.ID,
		ApproverID:      testApproverID,
		OrganizationID:  testOrgID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusRejected), result.Status)
	require.NotNil(t, result.RejectionReason)
	assert.Equal(t, reason, *result.RejectionReason)
}

func TestRequestService_Decide_AlreadyProcessed(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	decision := leave.DecideLeaveRequest{
		Decision:       string(leave.DecisionApproved),
		RequestID:      submitted.ID,
		ApproverID:     testApproverID,
		OrganizationID: testOrgID,
	}

	_, err = service.Decide(ctx, decision)
	require.NoError(t, err)

	_, err = service.Decide(ctx, decision)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestRequestService_Decide_ApproveRechecksOverlap(t *testing.T) {
	ctx := context.Background()
	service, requestRepo := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	// An overlapping request approved after this one was submitted,
	// as happens when two approvers race.
	start, _ := time.Parse("2006-01-02", dateStr(31))
	requestRepo.seed(leave.LeaveRequest{
		EmployeeID:     testEmployeeID,
		OrganizationID: testOrgID,
		LeaveTypeID:    testLeaveTypeID,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 1),
		TotalDays:      2,
		Reason:         "Racing request",
		Status:         leave.LeaveRequestStatusApproved,
	})

	_, err = service.Decide(ctx, leave.DecideLeaveRequest{
		Decision:       string(leave.DecisionApproved),
		RequestID:      submitted.ID,
		ApproverID:     testApproverID,
		OrganizationID: testOrgID,
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestRequestService_Cancel_PendingByOwner(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	result, err := service.Cancel(ctx, submitted.ID, testEmployeeID, testOrgID, false)

	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusCancelled), result.Status)
}

func TestRequestService_Cancel_NotOwner(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	_, err = service.Cancel(ctx, submitted.ID, "55555555-5555-4555-8555-555555555555", testOrgID, false)
	assert.ErrorIs(t, err, leave.ErrCancelNotAllowed)
}

func TestRequestService_Cancel_ApprovedBeforeStart(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	_, err = service.Decide(ctx, leave.DecideLeaveRequest{
		Decision:       string(leave.DecisionApproved),
		RequestID:      submitted.ID,
		ApproverID:     testApproverID,
		OrganizationID: testOrgID,
	})
	require.NoError(t, err)

	result, err := service.Cancel(ctx, submitted.ID, testEmployeeID, testOrgID, false)

	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusCancelled), result.Status)
}

func TestRequestService_Cancel_ApprovedAlreadyStarted(t *testing.T) {
	ctx := context.Background()
	service, requestRepo := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	today := calendar.DateOf(time.Now().UTC())
	seeded := requestRepo.seed(leave.LeaveRequest{
		EmployeeID:     testEmployeeID,
		OrganizationID: testOrgID,
		LeaveTypeID:    testLeaveTypeID,
		StartDate:      today,
		EndDate:        today.AddDate(0, 0, 2),
		TotalDays:      3,
		Reason:         "Started today",
		Status:         leave.LeaveRequestStatusApproved,
	})

	_, err := service.Cancel(ctx, seeded.ID, testEmployeeID, testOrgID, false)
	assert.ErrorIs(t, err, leave.ErrCancelWindowClosed)
}

func TestRequestService_Cancel_Rejected(t *testing.T) {
	ctx := context.Background()
	service, requestRepo := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	start, _ := time.Parse("2006-01-02", dateStr(30))
	seeded := requestRepo.seed(leave.LeaveRequest{
		EmployeeID:     testEmployeeID,
		OrganizationID: testOrgID,
		LeaveTypeID:    testLeaveTypeID,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 1),
		TotalDays:      2,
		Reason:         "Previously rejected",
		Status:         leave.LeaveRequestStatusRejected,
	})

	_, err := service.Cancel(ctx, seeded.ID, testEmployeeID, testOrgID, false)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestRequestService_Cancel_FreesDatesForResubmission(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	submitted, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)

	_, err = service.Cancel(ctx, submitted.ID, testEmployeeID, testOrgID, false)
	require.NoError(t, err)

	_, err = service.Submit(ctx, submitRequest(30, 3))
	assert.NoError(t, err)
}

func TestRequestService_List_FiltersByStatus(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestRequestService(config.NoticePolicyStrict, annualLeaveType())

	first, err := service.Submit(ctx, submitRequest(30, 3))
	require.NoError(t, err)
	_, err = service.Submit(ctx, submitRequest(40, 2))
	require.NoError(t, err)

	_, err = service.Decide(ctx, leave.DecideLeaveRequest{
		Decision:       string(leave.DecisionApproved),
		RequestID:      first.ID,
		ApproverID:     testApproverID,
		OrganizationID: testOrgID,
	})
	require.NoError(t, err)

	status := string(leave.LeaveRequestStatusPending)
	result, err := service.List(ctx, leave.LeaveRequestFilter{Status: &status}, testOrgID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalItems)
	require.Len(t, result.Items, 1)
	assert.Equal(t, string(leave.LeaveRequestStatusPending), result.Items[0].Status)
}
