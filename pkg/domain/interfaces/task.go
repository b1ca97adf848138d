package interfaces

import (
	"context"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// TaskRepository defines the interface for Task data access
type TaskRepository interface {
	// Create creates a new task with an auto-generated ID
	Create(ctx context.Context, task *model.Task) (*model.Task, error)

	// Get retrieves a task by ID
	Get(ctx context.Context, id types.TaskID) (*model.Task, error)

	// List retrieves all tasks, newest assignment first
	List(ctx context.Context) ([]*model.Task, error)

	// ListAssigned retrieves tasks with status assigned, ordered by
	// assignment time ascending (oldest first). Rows whose item lines
	// cannot be decoded are logged and skipped, not fatal.
	ListAssigned(ctx context.Context) ([]*model.Task, error)

	// Update updates an existing task
	Update(ctx context.Context, task *model.Task) (*model.Task, error)

	// Delete deletes a task by ID
	Delete(ctx context.Context, id types.TaskID) error
}
