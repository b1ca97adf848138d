package model

import (
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// NotificationCampaign is the ephemeral retry state for re-notifying
// employees about one task until all have acknowledged it or the attempt
// budget is exhausted. At most one campaign is active per process; a new
// campaign replaces the old one.
type NotificationCampaign struct {
	TaskID      types.TaskID
	EmployeeIDs []types.EmployeeID
	Interval    time.Duration
	MaxAttempts int
	Attempt     int
	StartedAt   time.Time
}

// Exhausted reports whether the attempt budget is used up
func (c *NotificationCampaign) Exhausted() bool {
	return c.Attempt >= c.MaxAttempts
}
