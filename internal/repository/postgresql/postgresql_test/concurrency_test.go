package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrm-backend-go/internal/config"
	domainattendance "github.com/peoplehub/hrm-backend-go/internal/domain/attendance"
	domainleave "github.com/peoplehub/hrm-backend-go/internal/domain/leave"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/database"
	"github.com/peoplehub/hrm-backend-go/internal/repository/postgresql"
	attendanceservice "github.com/peoplehub/hrm-backend-go/internal/service/attendance"
	leaveservice "github.com/peoplehub/hrm-backend-go/internal/service/leave"
)

func TestCheckIn_RacingDuplicates(t *testing.T) {
	ctx := context.Background()
	db := getTestDB(t)
	truncateTables(t, ctx, db)

	orgID := uuid.NewString()
	employeeID := createTestEmployee(t, ctx, db, orgID)

	service := attendanceservice.NewAttendanceService(
		postgresql.NewAttendanceRepository(db),
		postgresql.NewEmployeeRepository(db),
		0,
	)

	const racers = 5
	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CheckIn(ctx, domainattendance.CheckInRequest{
				EmployeeID:     employeeID,
				Status:         string(domainattendance.StatusPresent),
				OrganizationID: orgID,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domainattendance.ErrAlreadyCheckedIn):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, racers-1, duplicates)
}

func TestSubmit_RacingOverlaps(t *testing.T) {
	ctx := context.Background()
	db := getTestDB(t)
	truncateTables(t, ctx, db)

	orgID := uuid.NewString()
	employeeID := createTestEmployee(t, ctx, db, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, db, orgID)

	service := newDBRequestService(db)

	start := time.Now().UTC().AddDate(0, 0, 30)
	req := domainleave.SubmitLeaveRequest{
		EmployeeID:     employeeID,
		LeaveTypeID:    leaveTypeID,
		StartDate:      start.Format("2006-01-02"),
		EndDate:        start.AddDate(0, 0, 2).Format("2006-01-02"),
		TotalDays:      3,
		Reason:         "Family trip",
		OrganizationID: orgID,
	}

	const racers = 4
	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Submit(ctx, req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		// The loser of the race surfaces either the overlap found by
		// the in-transaction re-check or, if its serialization retry
		// was also beaten, the transient-storage error.
		case errors.Is(err, domainleave.ErrOverlappingLeave),
			errors.Is(err, database.ErrUnavailable):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.LessOrEqual(t, successes, 1)

	var blockingCount int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM leave_requests
		WHERE employee_id = $1 AND status IN ('pending', 'approved')
	`, employeeID).Scan(&blockingCount)
	require.NoError(t, err)
	assert.Equal(t, successes, blockingCount)

	// Sequential submission for the same range still reaches a single
	// landed request.
	if successes == 0 {
		_, err := service.Submit(ctx, req)
		require.NoError(t, err)
	}
	_, err = service.Submit(ctx, req)
	assert.ErrorIs(t, err, domainleave.ErrOverlappingLeave)
}

func newDBRequestService(db *database.DB) domainleave.RequestService {
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	policy := leaveservice.NewPolicyService(leaveTypeRepo, leaveRequestRepo, config.NoticePolicyStrict)
	runTx := func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}
	return leaveservice.NewRequestService(runTx, leaveTypeRepo, leaveRequestRepo, employeeRepo, policy)
}
