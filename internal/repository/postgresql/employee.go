package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehub/hrm-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, organizationID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, employee_code, first_name, last_name, email,
		       hire_date, employment_status, created_at, updated_at
		FROM employees
		WHERE id = $1 AND organization_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&emp.ID, &emp.OrganizationID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.HireDate, &emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// ListByOrganization implements employee.EmployeeRepository.
func (r *employeeRepository) ListByOrganization(ctx context.Context, organizationID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, employee_code, first_name, last_name, email,
		       hire_date, employment_status, created_at, updated_at
		FROM employees
		WHERE organization_id = $1
		ORDER BY last_name, first_name
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.OrganizationID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName, &emp.Email,
			&emp.HireDate, &emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}
