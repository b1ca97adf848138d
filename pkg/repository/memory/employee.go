package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees map[types.EmployeeID]*model.Employee
	nextID    int64
}

func newEmployeeRepository() *employeeRepository {
	return &employeeRepository{
		employees: make(map[types.EmployeeID]*model.Employee),
		nextID:    1,
	}
}

func copyEmployee(e *model.Employee) *model.Employee {
	copied := *e
	return &copied
}

func (r *employeeRepository) Create(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyEmployee(emp)
	created.ID = types.NewEmployeeID(r.nextID)
	created.Role = created.Role.Normalize()
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.employees[created.ID] = created
	return copyEmployee(created), nil
}

func (r *employeeRepository) Get(ctx context.Context, id types.EmployeeID) (*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, exists := r.employees[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "employee not found", goerr.V("id", id))
	}

	return copyEmployee(emp), nil
}

func (r *employeeRepository) List(ctx context.Context) ([]*model.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employees := make([]*model.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		employees = append(employees, copyEmployee(emp))
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.employees[emp.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "employee not found", goerr.V("id", emp.ID))
	}

	updated := copyEmployee(emp)
	updated.CreatedAt = existing.CreatedAt

	r.employees[updated.ID] = updated
	return copyEmployee(updated), nil
}

func (r *employeeRepository) Delete(ctx context.Context, id types.EmployeeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.employees[id]; !exists {
		return goerr.Wrap(ErrNotFound, "employee not found", goerr.V("id", id))
	}

	delete(r.employees, id)
	return nil
}
