package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/repository/memory"
	"github.com/arkade-store/stockroom/pkg/service/notifier"
	"github.com/arkade-store/stockroom/pkg/usecase"
)

func TestAddTask(t *testing.T) {
	t.Run("notifies employees with valid tokens and emails the rest", func(t *testing.T) {
		repo := memory.New()
		mailSvc := &mailStub{}
		pushSvc := &pushStub{}
		n := notifier.New(repo, pushSvc)
		uc := usecase.New(repo,
			usecase.WithMail(mailSvc),
			usecase.WithPush(pushSvc),
			usecase.WithNotifier(n),
		)
		ctx := context.Background()

		admin, err := uc.AddEmployee(ctx, usecase.AddEmployeeInput{
			Name: "Morgan", Role: types.RoleAdmin, Email: "morgan@example.com", PIN: "x",
		})
		gt.NoError(t, err).Required()
		withToken, err := uc.AddEmployee(ctx, usecase.AddEmployeeInput{
			Name: "Riley", Email: "riley@example.com", PIN: "x",
		})
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.RegisterPushToken(ctx, withToken.ID, "ExponentPushToken[riley]")).Required()
		noToken, err := uc.AddEmployee(ctx, usecase.AddEmployeeInput{
			Name: "Sam", Email: "sam@example.com", PIN: "x",
		})
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.RegisterPushToken(ctx, noToken.ID, "not-a-token")).Required()

		task, err := uc.AddTask(ctx, usecase.AddTaskInput{
			Title:       "Unload truck",
			Description: "Dock 2",
			Items:       []model.TaskItem{{ItemID: "ITM00001", RequiredQty: 10}},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, task.Status).Equal(types.TaskStatusAssigned)
		gt.Value(t, task.ItemsCount).Equal(1)

		waitFor(t, func() bool { return len(pushSvc.sent()) > 0 })
		sent := pushSvc.sent()
		gt.Array(t, sent).Length(1)
		gt.Value(t, sent[0].employeeID).Equal(withToken.ID)
		gt.Value(t, sent[0].title).Equal("Incoming Task Call")

		waitFor(t, func() bool { return n.Active() != nil })
		campaign := n.Active()
		gt.Value(t, campaign.TaskID).Equal(task.ID)
		gt.Array(t, campaign.EmployeeIDs).Length(1)
		gt.Value(t, campaign.EmployeeIDs[0]).Equal(withToken.ID)

		waitFor(t, func() bool { return len(mailSvc.noticeCalls()) > 0 })
		notices := mailSvc.noticeCalls()
		gt.Array(t, notices).Length(1)
		gt.Value(t, notices[0].taskID).Equal(task.ID)
		gt.Array(t, notices[0].recipients).Length(2)
		for _, addr := range notices[0].recipients {
			gt.Bool(t, addr == admin.Email).False()
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		_, err := uc.AddTask(ctx, usecase.AddTaskInput{Title: " "})
		gt.Value(t, err).NotNil()
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("completing a task only changes status", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		task, err := uc.AddTask(ctx, usecase.AddTaskInput{Title: "Count stock"})
		gt.NoError(t, err).Required()

		_, err = uc.MarkTaskRead(ctx, task.ID, "EMP00001")
		gt.NoError(t, err).Required()

		updated, err := uc.UpdateTask(ctx, usecase.UpdateTaskInput{
			ID:     task.ID,
			Status: types.TaskStatusCompleted,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.TaskStatusCompleted)
		gt.Bool(t, updated.IsReadBy("EMP00001")).True()
	})

	t.Run("editing re-assigns and clears acknowledgements", func(t *testing.T) {
		repo := memory.New()
		pushSvc := &pushStub{}
		n := notifier.New(repo, pushSvc)
		uc := usecase.New(repo, usecase.WithPush(pushSvc), usecase.WithNotifier(n))
		ctx := context.Background()

		emp, err := uc.AddEmployee(ctx, usecase.AddEmployeeInput{Name: "Riley", PIN: "x"})
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.RegisterPushToken(ctx, emp.ID, "ExponentPushToken[riley]")).Required()

		task, err := uc.AddTask(ctx, usecase.AddTaskInput{Title: "Count stock"})
		gt.NoError(t, err).Required()
		waitFor(t, func() bool { return n.Active() != nil })

		_, err = uc.MarkTaskRead(ctx, task.ID, emp.ID)
		gt.NoError(t, err).Required()
		n.Stop()

		before := task.AssignedAt
		time.Sleep(5 * time.Millisecond)

		updated, err := uc.UpdateTask(ctx, usecase.UpdateTaskInput{
			ID:    task.ID,
			Title: "Count freezer stock",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Title).Equal("Count freezer stock")
		gt.Value(t, updated.Status).Equal(types.TaskStatusAssigned)
		gt.Bool(t, updated.AssignedAt.After(before)).True()
		gt.Array(t, updated.ReadBy).Length(0)

		waitFor(t, func() bool { return n.Active() != nil })
		gt.Value(t, n.Active().TaskID).Equal(task.ID)
		gt.Value(t, n.Active().Attempt).Equal(0)
	})
}

func TestGetTasks(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	open, err := uc.AddTask(ctx, usecase.AddTaskInput{Title: "Open"})
	gt.NoError(t, err).Required()
	done, err := uc.AddTask(ctx, usecase.AddTaskInput{Title: "Done"})
	gt.NoError(t, err).Required()
	_, err = uc.UpdateTask(ctx, usecase.UpdateTaskInput{ID: done.ID, Status: types.TaskStatusCompleted})
	gt.NoError(t, err).Required()

	t.Run("admin view includes completed tasks", func(t *testing.T) {
		tasks, err := uc.GetTasks(ctx, "")
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(2)
	})

	t.Run("employee view filters out completed tasks", func(t *testing.T) {
		tasks, err := uc.GetTasks(ctx, "EMP00001")
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(1)
		gt.Value(t, tasks[0].ID).Equal(open.ID)
	})
}

func TestMarkTaskReadAndChecked(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	task, err := uc.AddTask(ctx, usecase.AddTaskInput{Title: "Ack me"})
	gt.NoError(t, err).Required()

	t.Run("read is recorded and idempotent", func(t *testing.T) {
		view, err := uc.MarkTaskRead(ctx, task.ID, "EMP00001")
		gt.NoError(t, err).Required()
		gt.Value(t, view.ReadCount).Equal(1)

		view, err = uc.MarkTaskRead(ctx, task.ID, "EMP00001")
		gt.NoError(t, err).Required()
		gt.Value(t, view.ReadCount).Equal(1)
	})

	t.Run("check is recorded separately", func(t *testing.T) {
		view, err := uc.MarkTaskChecked(ctx, task.ID, "EMP00002")
		gt.NoError(t, err).Required()
		gt.Value(t, view.CheckedCount).Equal(1)
		gt.Value(t, view.ReadCount).Equal(1)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("stops the campaign of the deleted task", func(t *testing.T) {
		repo := memory.New()
		pushSvc := &pushStub{}
		n := notifier.New(repo, pushSvc)
		uc := usecase.New(repo, usecase.WithPush(pushSvc), usecase.WithNotifier(n))
		ctx := context.Background()

		emp, err := uc.AddEmployee(ctx, usecase.AddEmployeeInput{Name: "Riley", PIN: "x"})
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.RegisterPushToken(ctx, emp.ID, "ExponentPushToken[riley]")).Required()

		task, err := uc.AddTask(ctx, usecase.AddTaskInput{Title: "Short lived"})
		gt.NoError(t, err).Required()
		waitFor(t, func() bool { return n.Active() != nil })

		gt.NoError(t, uc.DeleteTask(ctx, task.ID)).Required()
		gt.Value(t, n.Active()).Nil()
	})
}
