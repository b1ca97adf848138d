package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// sanitizeEmployee strips credential material before an employee leaves
// the use case layer.
func sanitizeEmployee(emp *model.Employee) *model.Employee {
	copied := *emp
	copied.PinHash = ""
	copied.PushToken = ""
	return &copied
}

// GetEmployees lists all employees without PIN hashes or push tokens
func (uc *UseCases) GetEmployees(ctx context.Context) ([]*model.Employee, error) {
	employees, err := uc.repo.Employee().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list employees")
	}

	sanitized := make([]*model.Employee, len(employees))
	for i, emp := range employees {
		sanitized[i] = sanitizeEmployee(emp)
	}
	return sanitized, nil
}

// AddEmployeeInput carries the fields of a new employee. PIN is the raw
// secret; only its hash is stored.
type AddEmployeeInput struct {
	Name  string
	Role  types.Role
	Email string
	PIN   string `masq:"secret"`
}

func (uc *UseCases) AddEmployee(ctx context.Context, in AddEmployeeInput) (*model.Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, goerr.New("employee name is required")
	}
	if in.PIN == "" {
		return nil, goerr.New("employee pin is required")
	}
	role := in.Role.Normalize()
	if !role.IsValid() {
		return nil, goerr.New("invalid employee role", goerr.V("role", in.Role))
	}

	created, err := uc.repo.Employee().Create(ctx, &model.Employee{
		Name:    name,
		Role:    role,
		Email:   strings.TrimSpace(in.Email),
		PinHash: HashPIN(in.PIN),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create employee")
	}

	return sanitizeEmployee(created), nil
}

// UpdateEmployeeInput carries an employee update. A non-empty Password
// replaces the stored PIN hash; empty leaves it unchanged.
type UpdateEmployeeInput struct {
	ID       types.EmployeeID
	Name     string
	Role     types.Role
	Email    string
	Password string `masq:"secret"`
}

func (uc *UseCases) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*model.Employee, error) {
	existing, err := uc.repo.Employee().Get(ctx, in.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get employee", goerr.V(EmployeeIDKey, in.ID))
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		existing.Name = name
	}
	if in.Role != "" {
		if !in.Role.IsValid() {
			return nil, goerr.New("invalid employee role", goerr.V("role", in.Role))
		}
		existing.Role = in.Role
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		existing.Email = email
	}
	if in.Password != "" {
		existing.PinHash = HashPIN(in.Password)
	}

	updated, err := uc.repo.Employee().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update employee", goerr.V(EmployeeIDKey, in.ID))
	}

	return sanitizeEmployee(updated), nil
}

func (uc *UseCases) DeleteEmployee(ctx context.Context, id types.EmployeeID) error {
	if err := uc.repo.Employee().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete employee", goerr.V(EmployeeIDKey, id))
	}
	return nil
}

// RegisterPushToken stores the device push token on the employee row. The
// token is treated as opaque here; validation happens at send time.
func (uc *UseCases) RegisterPushToken(ctx context.Context, id types.EmployeeID, token string) error {
	existing, err := uc.repo.Employee().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get employee", goerr.V(EmployeeIDKey, id))
	}

	existing.PushToken = token
	if _, err := uc.repo.Employee().Update(ctx, existing); err != nil {
		return goerr.Wrap(err, "failed to store push token", goerr.V(EmployeeIDKey, id))
	}
	return nil
}
