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

type taskRepository struct {
	mu     sync.RWMutex
	tasks  map[types.TaskID]*model.Task
	nextID int64
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks:  make(map[types.TaskID]*model.Task),
		nextID: 1,
	}
}

func copyTask(t *model.Task) *model.Task {
	items := make([]model.TaskItem, len(t.Items))
	copy(items, t.Items)

	readBy := make([]types.EmployeeID, len(t.ReadBy))
	copy(readBy, t.ReadBy)

	checkedBy := make([]types.EmployeeID, len(t.CheckedBy))
	copy(checkedBy, t.CheckedBy)

	return &model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Items:       items,
		Status:      t.Status,
		AssignedAt:  t.AssignedAt,
		UpdatedAt:   t.UpdatedAt,
		ReadBy:      readBy,
		CheckedBy:   checkedBy,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyTask(task)
	created.ID = types.NewTaskID(r.nextID)
	created.Status = created.Status.Normalize()
	if created.AssignedAt.IsZero() {
		created.AssignedAt = now
	}
	created.UpdatedAt = now
	r.nextID++

	r.tasks[created.ID] = created
	return copyTask(created), nil
}

func (r *taskRepository) Get(ctx context.Context, id types.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	return copyTask(task), nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, copyTask(task))
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].AssignedAt.After(tasks[j].AssignedAt) })

	return tasks, nil
}

func (r *taskRepository) ListAssigned(ctx context.Context) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if task.Status == types.TaskStatusAssigned {
			tasks = append(tasks, copyTask(task))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].AssignedAt.Before(tasks[j].AssignedAt) })

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.tasks[task.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", task.ID))
	}

	updated := copyTask(task)
	if updated.AssignedAt.IsZero() {
		updated.AssignedAt = existing.AssignedAt
	}
	updated.UpdatedAt = time.Now().UTC()

	r.tasks[updated.ID] = updated
	return copyTask(updated), nil
}

func (r *taskRepository) Delete(ctx context.Context, id types.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	delete(r.tasks, id)
	return nil
}
