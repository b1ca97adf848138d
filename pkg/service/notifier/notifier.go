package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/interfaces"
	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/service/push"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

const (
	// DefaultInterval is the requested cadence recorded on new campaigns
	DefaultInterval = time.Minute
	// DefaultMaxAttempts is the attempt budget for new campaigns
	DefaultMaxAttempts = 5

	callTitle = "Incoming Task Call"
)

// Notifier owns the single active notification campaign: a bounded
// at-least-once push retry for one task. Starting a campaign replaces any
// prior one. Ticks are driven externally (see service/worker); the
// notifier never schedules itself.
type Notifier struct {
	mu      sync.Mutex
	current *model.NotificationCampaign
	repo    interfaces.Repository
	push    push.Service
}

func New(repo interfaces.Repository, pushSvc push.Service) *Notifier {
	return &Notifier{
		repo: repo,
		push: pushSvc,
	}
}

// Start installs a new campaign, replacing any active one
func (n *Notifier) Start(ctx context.Context, taskID types.TaskID, employeeIDs []types.EmployeeID, interval time.Duration, maxAttempts int) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	ids := make([]types.EmployeeID, len(employeeIDs))
	copy(ids, employeeIDs)

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current != nil {
		logging.From(ctx).Info("replacing active notification campaign",
			"old_task_id", n.current.TaskID,
			"new_task_id", taskID,
		)
	}

	n.current = &model.NotificationCampaign{
		TaskID:      taskID,
		EmployeeIDs: ids,
		Interval:    interval,
		MaxAttempts: maxAttempts,
		StartedAt:   time.Now().UTC(),
	}
}

// Active returns a copy of the current campaign, or nil when idle
func (n *Notifier) Active() *model.NotificationCampaign {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	copied := *n.current
	copied.EmployeeIDs = append([]types.EmployeeID(nil), n.current.EmployeeIDs...)
	return &copied
}

// Stop clears the active campaign
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = nil
}

// Tick runs one attempt of the active campaign: reload the task, resend
// to every employee that has not acknowledged it yet, and terminate the
// campaign once everyone has read the task or the attempt budget is
// exhausted. A tick with no active campaign is a no-op.
func (n *Notifier) Tick(ctx context.Context) error {
	n.mu.Lock()
	if n.current == nil {
		n.mu.Unlock()
		return nil
	}
	n.current.Attempt++
	campaign := *n.current
	campaign.EmployeeIDs = append([]types.EmployeeID(nil), n.current.EmployeeIDs...)
	n.mu.Unlock()

	task, err := n.repo.Task().Get(ctx, campaign.TaskID)
	if err != nil {
		n.Stop()
		if errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Info("notification campaign terminated: task gone",
				"task_id", campaign.TaskID,
			)
			return nil
		}
		return goerr.Wrap(err, "failed to reload task for campaign", goerr.V("task_id", campaign.TaskID))
	}

	employees, err := n.repo.Employee().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list employees for campaign", goerr.V("task_id", campaign.TaskID))
	}
	byID := make(map[types.EmployeeID]*model.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	allAcknowledged := true
	for _, empID := range campaign.EmployeeIDs {
		if task.IsReadBy(empID) {
			continue
		}
		allAcknowledged = false

		emp, ok := byID[empID]
		if !ok || !n.push.IsValidToken(emp.PushToken) {
			continue
		}
		if err := n.push.SendTaskCall(ctx, emp.PushToken, task, empID, callTitle); err != nil {
			logging.From(ctx).Error("campaign push send failed",
				"task_id", campaign.TaskID,
				"employee_id", empID,
				"error", err.Error(),
			)
		}
	}

	if allAcknowledged || campaign.Exhausted() {
		n.Stop()
		logging.From(ctx).Info("notification campaign terminated",
			"task_id", campaign.TaskID,
			"attempt", campaign.Attempt,
			"all_acknowledged", allAcknowledged,
		)
	}

	return nil
}
