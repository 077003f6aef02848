package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists non-deleted employees with their clock status (admin only)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// CreateEmployee creates a new employee (admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee soft deletes an employee (admin only)
	DeleteEmployee(ctx context.Context, id string) error
}
