package interfaces

import (
	"context"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// EmployeeRepository defines the interface for Employee data access
type EmployeeRepository interface {
	// Create creates a new employee with an auto-generated ID
	Create(ctx context.Context, emp *model.Employee) (*model.Employee, error)

	// Get retrieves an employee by ID
	Get(ctx context.Context, id types.EmployeeID) (*model.Employee, error)

	// List retrieves all employees
	List(ctx context.Context) ([]*model.Employee, error)

	// Update updates an existing employee
	Update(ctx context.Context, emp *model.Employee) (*model.Employee, error)

	// Delete deletes an employee by ID
	Delete(ctx context.Context, id types.EmployeeID) error
}
