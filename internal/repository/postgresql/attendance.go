package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplehub/hrm-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository. The
// attendances_employee_id_date_key unique constraint is the authority
// on duplicate check-ins: the losing insert of a race maps to
// ErrAlreadyCheckedIn instead of overwriting the winner.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	newAttendance.ID = uuid.NewString()

	query := `
		INSERT INTO attendances (
			id, employee_id, organization_id, date, check_in_time,
			break_minutes, status, notes, location_check_in
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		newAttendance.OrganizationID,
		newAttendance.Date,
		newAttendance.CheckInTime,
		newAttendance.BreakMinutes,
		newAttendance.Status,
		newAttendance.Notes,
		newAttendance.LocationCheckIn,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, organizationID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			a.id, a.employee_id, a.organization_id, a.date,
			a.check_in_time, a.check_out_time, a.break_minutes, a.total_hours,
			a.status, a.notes, a.location_check_in, a.location_check_out,
			a.created_at, a.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.organization_id = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&att.ID, &att.EmployeeID, &att.OrganizationID, &att.Date,
		&att.CheckInTime, &att.CheckOutTime, &att.BreakMinutes, &att.TotalHours,
		&att.Status, &att.Notes, &att.LocationCheckIn, &att.LocationCheckOut,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// SetCheckOut implements attendance.AttendanceRepository. Guarded by
// check_out_time IS NULL so a concurrent second check-out loses even
// if it read the record before the first one committed.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1, break_minutes = $2, total_hours = $3,
		    notes = COALESCE($4, notes), location_check_out = $5, updated_at = $6
		WHERE id = $7 AND organization_id = $8 AND check_out_time IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.CheckOutTime,
		att.BreakMinutes,
		att.TotalHours,
		att.Notes,
		att.LocationCheckOut,
		time.Now().UTC(),
		att.ID,
		att.OrganizationID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAlreadyCheckedOut
		}
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter, organizationID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "a.organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Build query with pagination, newest day first
	selectQuery := fmt.Sprintf(`
		SELECT
			a.id, a.employee_id, a.organization_id, a.date,
			a.check_in_time, a.check_out_time, a.break_minutes, a.total_hours,
			a.status, a.notes, a.location_check_in, a.location_check_out,
			a.created_at, a.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, a.check_in_time DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.OrganizationID, &att.Date,
			&att.CheckInTime, &att.CheckOutTime, &att.BreakMinutes, &att.TotalHours,
			&att.Status, &att.Notes, &att.LocationCheckIn, &att.LocationCheckOut,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}
