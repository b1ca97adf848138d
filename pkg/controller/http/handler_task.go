package http

import (
	"context"
	"encoding/json"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/usecase"
)

func handleAddTask(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Items       []model.TaskItem `json:"items"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	task, err := uc.AddTask(ctx, usecase.AddTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Items:       req.Items,
	})
	if err != nil {
		return nil, err
	}
	return toTaskView(task), nil
}

func handleGetTasks(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		EmployeeID types.EmployeeID `json:"employee_id"`
	}
	// The payload is optional: without an employee ID the full list is
	// returned, completed tasks included.
	if len(data) > 0 {
		if err := decode(data, &req); err != nil {
			return nil, err
		}
	}

	tasks, err := uc.GetTasks(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	views := make([]taskView, len(tasks))
	for i, task := range tasks {
		views[i] = toTaskView(task)
	}
	return views, nil
}

func handleUpdateTask(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID          types.TaskID     `json:"id"`
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Items       []model.TaskItem `json:"items"`
		Status      types.TaskStatus `json:"status"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	task, err := uc.UpdateTask(ctx, usecase.UpdateTaskInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Items:       req.Items,
		Status:      req.Status,
	})
	if err != nil {
		return nil, err
	}
	return toTaskView(task), nil
}

func handleDeleteTask(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID types.TaskID `json:"id"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}
	if err := uc.DeleteTask(ctx, req.ID); err != nil {
		return nil, err
	}
	return map[string]any{"id": req.ID}, nil
}

func handleUpdateTaskReadStatus(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		TaskID     types.TaskID     `json:"task_id"`
		EmployeeID types.EmployeeID `json:"employee_id"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	task, err := uc.MarkTaskRead(ctx, req.TaskID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	return toTaskView(task), nil
}

func handleUpdateTaskCheckStatus(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		TaskID     types.TaskID     `json:"task_id"`
		EmployeeID types.EmployeeID `json:"employee_id"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	task, err := uc.MarkTaskChecked(ctx, req.TaskID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	return toTaskView(task), nil
}
