package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/utils/async"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

// taskCallTitle is the push notification title for task assignment calls
const taskCallTitle = "Incoming Task Call"

// TaskView is a task decorated with the acknowledgement counts clients
// render in list views.
type TaskView struct {
	*model.Task
	ItemsCount   int
	ReadCount    int
	CheckedCount int
}

func decorateTask(task *model.Task) *TaskView {
	return &TaskView{
		Task:         task,
		ItemsCount:   len(task.Items),
		ReadCount:    len(task.ReadBy),
		CheckedCount: len(task.CheckedBy),
	}
}

// AddTaskInput carries the fields of a new task
type AddTaskInput struct {
	Title       string
	Description string
	Items       []model.TaskItem
}

// AddTask creates a task assigned now and notifies the workforce: a call
// style push to every employee with a registered token, a notification
// campaign retrying that push until everyone acknowledges, and an email to
// every non-admin employee with an address. All outbound is fire and
// forget; the task exists regardless of delivery.
func (uc *UseCases) AddTask(ctx context.Context, in AddTaskInput) (*TaskView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, goerr.New("task title is required")
	}
	for _, line := range in.Items {
		if line.RequiredQty < 0 {
			return nil, goerr.New("task item quantity must not be negative",
				goerr.V(ItemIDKey, line.ItemID), goerr.V("required_qty", line.RequiredQty))
		}
	}

	created, err := uc.repo.Task().Create(ctx, &model.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Items:       in.Items,
		Status:      types.TaskStatusAssigned,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create task")
	}

	uc.notifyTask(ctx, created)

	return decorateTask(created), nil
}

// notifyTask fans a new or re-assigned task out to the workforce
func (uc *UseCases) notifyTask(ctx context.Context, task *model.Task) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		employees, err := uc.repo.Employee().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list employees for task notification",
				goerr.V(TaskIDKey, task.ID))
		}

		var notified []types.EmployeeID
		var emailRecipients []string
		for _, emp := range employees {
			if emp.IsAdmin() {
				continue
			}
			if emp.Email != "" {
				emailRecipients = append(emailRecipients, emp.Email)
			}
			if uc.push == nil || !uc.push.IsValidToken(emp.PushToken) {
				continue
			}
			if err := uc.push.SendTaskCall(ctx, emp.PushToken, task, emp.ID, taskCallTitle); err != nil {
				logging.From(ctx).Error("task call push failed",
					"task_id", task.ID,
					"employee_id", emp.ID,
					"error", err.Error(),
				)
			}
			notified = append(notified, emp.ID)
		}

		if uc.notifier != nil && len(notified) > 0 {
			uc.notifier.Start(ctx, task.ID, notified, uc.campaignInterval, uc.campaignMaxAttempts)
		}

		if uc.mail != nil && len(emailRecipients) > 0 {
			if err := uc.mail.SendTaskNotice(ctx, emailRecipients, task); err != nil {
				logging.From(ctx).Error("task notice email failed",
					"task_id", task.ID,
					"error", err.Error(),
				)
			}
		}

		return nil
	})
}

// UpdateTaskInput carries a task update. Setting Status to completed
// closes the task; any other update re-assigns it.
type UpdateTaskInput struct {
	ID          types.TaskID
	Title       string
	Description string
	Items       []model.TaskItem
	Status      types.TaskStatus
}

// UpdateTask updates a task. Marking it completed only changes the
// status. Any other edit re-assigns the task: status back to assigned,
// assignment time refreshed, acknowledgements cleared, and the workforce
// re-notified under a fresh campaign.
func (uc *UseCases) UpdateTask(ctx context.Context, in UpdateTaskInput) (*TaskView, error) {
	existing, err := uc.repo.Task().Get(ctx, in.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get task", goerr.V(TaskIDKey, in.ID))
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		existing.Title = title
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		existing.Description = desc
	}
	if in.Items != nil {
		existing.Items = in.Items
	}

	if in.Status == types.TaskStatusCompleted {
		existing.Status = types.TaskStatusCompleted
		updated, err := uc.repo.Task().Update(ctx, existing)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to update task", goerr.V(TaskIDKey, in.ID))
		}
		return decorateTask(updated), nil
	}

	existing.Status = types.TaskStatusAssigned
	existing.AssignedAt = time.Now().UTC()
	existing.ReadBy = nil
	existing.CheckedBy = nil

	updated, err := uc.repo.Task().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V(TaskIDKey, in.ID))
	}

	uc.notifyTask(ctx, updated)

	return decorateTask(updated), nil
}

// GetTasks lists tasks newest assignment first. When called on behalf of
// an employee, completed tasks are filtered out.
func (uc *UseCases) GetTasks(ctx context.Context, employeeID types.EmployeeID) ([]*TaskView, error) {
	tasks, err := uc.repo.Task().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}

	views := make([]*TaskView, 0, len(tasks))
	for _, task := range tasks {
		if employeeID != "" && task.Status == types.TaskStatusCompleted {
			continue
		}
		views = append(views, decorateTask(task))
	}
	return views, nil
}

// MarkTaskRead records that the employee has acknowledged the task.
// Idempotent.
func (uc *UseCases) MarkTaskRead(ctx context.Context, taskID types.TaskID, employeeID types.EmployeeID) (*TaskView, error) {
	task, err := uc.repo.Task().Get(ctx, taskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get task", goerr.V(TaskIDKey, taskID))
	}

	if task.MarkRead(employeeID) {
		if task, err = uc.repo.Task().Update(ctx, task); err != nil {
			return nil, goerr.Wrap(err, "failed to mark task read", goerr.V(TaskIDKey, taskID))
		}
	}
	return decorateTask(task), nil
}

// MarkTaskChecked records that the employee has checked the task off.
// Idempotent.
func (uc *UseCases) MarkTaskChecked(ctx context.Context, taskID types.TaskID, employeeID types.EmployeeID) (*TaskView, error) {
	task, err := uc.repo.Task().Get(ctx, taskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get task", goerr.V(TaskIDKey, taskID))
	}

	if task.MarkChecked(employeeID) {
		if task, err = uc.repo.Task().Update(ctx, task); err != nil {
			return nil, goerr.Wrap(err, "failed to mark task checked", goerr.V(TaskIDKey, taskID))
		}
	}
	return decorateTask(task), nil
}

// DeleteTask removes a task and cancels its campaign if one is running
func (uc *UseCases) DeleteTask(ctx context.Context, id types.TaskID) error {
	if err := uc.repo.Task().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V(TaskIDKey, id))
	}

	if uc.notifier != nil {
		if active := uc.notifier.Active(); active != nil && active.TaskID == id {
			uc.notifier.Stop()
		}
	}
	return nil
}
