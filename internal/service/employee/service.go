package employee

import (
	"context"
	"fmt"

	"github.com/peoplehub/hrm-backend-go/internal/domain/employee"
)

// DirectoryService is the read-only surface over the employee
// directory the attendance and leave engines consult.
type DirectoryService interface {
	Get(ctx context.Context, id string, organizationID string) (employee.EmployeeResponse, error)
	List(ctx context.Context, organizationID string) ([]employee.EmployeeResponse, error)
}

type DirectoryServiceImpl struct {
	employee.EmployeeRepository
}

func NewDirectoryService(employeeRepo employee.EmployeeRepository) DirectoryService {
	return &DirectoryServiceImpl{EmployeeRepository: employeeRepo}
}

// Get implements DirectoryService.
func (s *DirectoryServiceImpl) Get(ctx context.Context, id string, organizationID string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id, organizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// List implements DirectoryService.
func (s *DirectoryServiceImpl) List(ctx context.Context, organizationID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	return responses, nil
}
