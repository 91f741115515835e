package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrm-backend-go/internal/pkg/database"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
	testDBErr  error
)

// getTestDB connects once per package run. Tests are skipped when
// TEST_DATABASE_URL is not set; the schema from migrations/ must be
// applied to the target database beforehand.
func getTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, testDBErr, "failed to connect to test database")

	return testDB
}

func truncateTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()

	for _, table := range []string{"leave_requests", "attendances", "leave_types", "employees"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, organizationID string) string {
	t.Helper()

	id := uuid.NewString()
	code := fmt.Sprintf("EMP-%d", time.Now().UnixNano())
	_, err := db.Exec(ctx, `
		INSERT INTO employees (id, organization_id, employee_code, first_name, last_name, email, hire_date, employment_status)
		VALUES ($1, $2, $3, 'Ayu', 'Lestari', $4, '2024-01-15', 'active')
	`, id, organizationID, code, fmt.Sprintf("%s@example.com", code))
	require.NoError(t, err)

	return id
}

func createTestLeaveType(t *testing.T, ctx context.Context, db *database.DB, organizationID string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(ctx, `
		INSERT INTO leave_types (id, organization_id, name, max_days_per_year, is_paid, requires_approval, advance_notice_days, is_active)
		VALUES ($1, $2, $3, 12, TRUE, TRUE, 7, TRUE)
	`, id, organizationID, fmt.Sprintf("Annual Leave %d", time.Now().UnixNano()))
	require.NoError(t, err)

	return id
}
