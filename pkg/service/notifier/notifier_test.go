package notifier_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/repository/memory"
	"github.com/arkade-store/stockroom/pkg/service/notifier"
)

type pushRecorder struct {
	mu    sync.Mutex
	calls []types.EmployeeID
}

func (p *pushRecorder) SendTaskCall(ctx context.Context, token string, task *model.Task, employeeID types.EmployeeID, title string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, employeeID)
	return nil
}

func (p *pushRecorder) IsValidToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[")
}

func (p *pushRecorder) sent() []types.EmployeeID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.EmployeeID(nil), p.calls...)
}

func setup(t *testing.T) (*memory.Memory, *pushRecorder, *notifier.Notifier) {
	t.Helper()
	repo := memory.New()
	push := &pushRecorder{}
	return repo, push, notifier.New(repo, push)
}

func addEmployee(t *testing.T, repo *memory.Memory, name, token string) *model.Employee {
	t.Helper()
	emp, err := repo.Employee().Create(context.Background(), &model.Employee{
		Name:      name,
		PinHash:   "h",
		PushToken: token,
	})
	gt.NoError(t, err).Required()
	return emp
}

func TestNotifierTick(t *testing.T) {
	t.Run("tick with no campaign is a no-op", func(t *testing.T) {
		_, push, n := setup(t)
		gt.NoError(t, n.Tick(context.Background()))
		gt.Array(t, push.sent()).Length(0)
	})

	t.Run("resends only to employees who have not read", func(t *testing.T) {
		repo, push, n := setup(t)
		ctx := context.Background()

		reader := addEmployee(t, repo, "Riley", "ExponentPushToken[riley]")
		pending := addEmployee(t, repo, "Sam", "ExponentPushToken[sam]")

		task, err := repo.Task().Create(ctx, &model.Task{Title: "Ack me"})
		gt.NoError(t, err).Required()
		task.MarkRead(reader.ID)
		_, err = repo.Task().Update(ctx, task)
		gt.NoError(t, err).Required()

		n.Start(ctx, task.ID, []types.EmployeeID{reader.ID, pending.ID}, time.Minute, 5)
		gt.NoError(t, n.Tick(ctx))

		sent := push.sent()
		gt.Array(t, sent).Length(1)
		gt.Value(t, sent[0]).Equal(pending.ID)
		gt.Value(t, n.Active().Attempt).Equal(1)
	})

	t.Run("skips employees with invalid tokens but keeps retrying", func(t *testing.T) {
		repo, push, n := setup(t)
		ctx := context.Background()

		tokenless := addEmployee(t, repo, "Sam", "bad-token")

		task, err := repo.Task().Create(ctx, &model.Task{Title: "Ack me"})
		gt.NoError(t, err).Required()

		n.Start(ctx, task.ID, []types.EmployeeID{tokenless.ID}, time.Minute, 5)
		gt.NoError(t, n.Tick(ctx))

		gt.Array(t, push.sent()).Length(0)
		gt.Value(t, n.Active()).NotNil()
	})

	t.Run("terminates once everyone has read", func(t *testing.T) {
		repo, push, n := setup(t)
		ctx := context.Background()

		reader := addEmployee(t, repo, "Riley", "ExponentPushToken[riley]")

		task, err := repo.Task().Create(ctx, &model.Task{Title: "Ack me"})
		gt.NoError(t, err).Required()
		task.MarkRead(reader.ID)
		_, err = repo.Task().Update(ctx, task)
		gt.NoError(t, err).Required()

		n.Start(ctx, task.ID, []types.EmployeeID{reader.ID}, time.Minute, 5)
		gt.NoError(t, n.Tick(ctx))

		gt.Array(t, push.sent()).Length(0)
		gt.Value(t, n.Active()).Nil()
	})

	t.Run("terminates when the attempt budget is exhausted", func(t *testing.T) {
		repo, push, n := setup(t)
		ctx := context.Background()

		pending := addEmployee(t, repo, "Sam", "ExponentPushToken[sam]")

		task, err := repo.Task().Create(ctx, &model.Task{Title: "Ack me"})
		gt.NoError(t, err).Required()

		n.Start(ctx, task.ID, []types.EmployeeID{pending.ID}, time.Minute, 2)
		gt.NoError(t, n.Tick(ctx))
		gt.Value(t, n.Active()).NotNil()
		gt.NoError(t, n.Tick(ctx))
		gt.Value(t, n.Active()).Nil()

		gt.Array(t, push.sent()).Length(2)
	})

	t.Run("terminates when the task disappears", func(t *testing.T) {
		repo, push, n := setup(t)
		ctx := context.Background()

		pending := addEmployee(t, repo, "Sam", "ExponentPushToken[sam]")

		task, err := repo.Task().Create(ctx, &model.Task{Title: "Ack me"})
		gt.NoError(t, err).Required()

		n.Start(ctx, task.ID, []types.EmployeeID{pending.ID}, time.Minute, 5)
		gt.NoError(t, repo.Task().Delete(ctx, task.ID))

		gt.NoError(t, n.Tick(ctx))
		gt.Value(t, n.Active()).Nil()
		gt.Array(t, push.sent()).Length(0)
	})

	t.Run("starting a new campaign replaces the old one", func(t *testing.T) {
		repo, _, n := setup(t)
		ctx := context.Background()

		first, err := repo.Task().Create(ctx, &model.Task{Title: "first"})
		gt.NoError(t, err).Required()
		second, err := repo.Task().Create(ctx, &model.Task{Title: "second"})
		gt.NoError(t, err).Required()

		n.Start(ctx, first.ID, []types.EmployeeID{"EMP00001"}, time.Minute, 5)
		n.Start(ctx, second.ID, []types.EmployeeID{"EMP00001"}, time.Minute, 5)

		gt.Value(t, n.Active().TaskID).Equal(second.ID)
	})

	t.Run("defaults apply for zero interval and attempts", func(t *testing.T) {
		repo, _, n := setup(t)
		ctx := context.Background()

		task, err := repo.Task().Create(ctx, &model.Task{Title: "defaults"})
		gt.NoError(t, err).Required()

		n.Start(ctx, task.ID, []types.EmployeeID{"EMP00001"}, 0, 0)
		campaign := n.Active()
		gt.Value(t, campaign.Interval).Equal(notifier.DefaultInterval)
		gt.Value(t, campaign.MaxAttempts).Equal(notifier.DefaultMaxAttempts)
	})
}
