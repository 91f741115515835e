package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hrm-backend-go/internal/domain/leave"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	leaveType.ID = uuid.NewString()

	query := `
		INSERT INTO leave_types (
			id, organization_id, name, description, max_days_per_year,
			is_paid, requires_approval, advance_notice_days, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.ID,
		leaveType.OrganizationID,
		leaveType.Name,
		leaveType.Description,
		leaveType.MaxDaysPerYear,
		leaveType.IsPaid,
		leaveType.RequiresApproval,
		leaveType.AdvanceNoticeDays,
		leaveType.IsActive,
	).Scan(&leaveType.CreatedAt, &leaveType.UpdatedAt)

	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) GetByID(ctx context.Context, id string, organizationID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, description, max_days_per_year,
		       is_paid, requires_approval, advance_notice_days, is_active,
		       created_at, updated_at
		FROM leave_types
		WHERE id = $1 AND organization_id = $2
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&lt.ID, &lt.OrganizationID, &lt.Name, &lt.Description, &lt.MaxDaysPerYear,
		&lt.IsPaid, &lt.RequiresApproval, &lt.AdvanceNoticeDays, &lt.IsActive,
		&lt.CreatedAt, &lt.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by ID: %w", err)
	}

	return lt, nil
}

// GetActiveByOrganization implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) GetActiveByOrganization(ctx context.Context, organizationID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, description, max_days_per_year,
		       is_paid, requires_approval, advance_notice_days, is_active,
		       created_at, updated_at
		FROM leave_types
		WHERE organization_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	var leaveTypes []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		err := rows.Scan(
			&lt.ID, &lt.OrganizationID, &lt.Name, &lt.Description, &lt.MaxDaysPerYear,
			&lt.IsPaid, &lt.RequiresApproval, &lt.AdvanceNoticeDays, &lt.IsActive,
			&lt.CreatedAt, &lt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		leaveTypes = append(leaveTypes, lt)
	}

	return leaveTypes, nil
}

// Deactivate implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) Deactivate(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET is_active = false, updated_at = $1
		WHERE id = $2 AND organization_id = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, time.Now().UTC(), id, organizationID).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveTypeNotFound
		}
		return fmt.Errorf("failed to deactivate leave type: %w", err)
	}

	return nil
}
