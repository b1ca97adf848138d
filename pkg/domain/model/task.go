package model

import (
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// TaskItem is one required-quantity line of a task. RequiredQty counts the
// remaining unfulfilled quantity and never goes below zero.
type TaskItem struct {
	ItemID      types.ItemID `json:"item_id"`
	RequiredQty int          `json:"required_qty"`
}

// Task represents a unit of work referencing required item quantities,
// tracked for read/check acknowledgement by employees.
type Task struct {
	ID          types.TaskID
	Title       string
	Description string
	Items       []TaskItem
	Status      types.TaskStatus
	AssignedAt  time.Time
	UpdatedAt   time.Time
	ReadBy      []types.EmployeeID
	CheckedBy   []types.EmployeeID
}

// IsReadBy reports whether the employee has acknowledged the task
func (t *Task) IsReadBy(id types.EmployeeID) bool {
	for _, e := range t.ReadBy {
		if e == id {
			return true
		}
	}
	return false
}

// IsCheckedBy reports whether the employee has checked off the task
func (t *Task) IsCheckedBy(id types.EmployeeID) bool {
	for _, e := range t.CheckedBy {
		if e == id {
			return true
		}
	}
	return false
}

// MarkRead adds the employee to the acknowledgement set. Idempotent.
func (t *Task) MarkRead(id types.EmployeeID) bool {
	if t.IsReadBy(id) {
		return false
	}
	t.ReadBy = append(t.ReadBy, id)
	return true
}

// MarkChecked adds the employee to the check-off set. Idempotent.
func (t *Task) MarkChecked(id types.EmployeeID) bool {
	if t.IsCheckedBy(id) {
		return false
	}
	t.CheckedBy = append(t.CheckedBy, id)
	return true
}
