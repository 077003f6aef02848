package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByCode(ctx context.Context, employeeCode string) (bool, error)
	// ListActive returns non-deleted employees with their Active flag set.
	ListActive(ctx context.Context) ([]Employee, error)
	SoftDelete(ctx context.Context, id string) error
}
