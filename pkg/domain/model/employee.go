package model

import (
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// Employee represents a registered user of the system. PinHash holds the
// base64-encoded SHA-256 digest of the login PIN (or admin password), and
// PushToken an opaque device token for push notifications.
type Employee struct {
	ID        types.EmployeeID
	Name      string
	Role      types.Role
	Email     string
	PinHash   string `masq:"secret"`
	PushToken string `masq:"secret"`
	LastLogin time.Time
	CreatedAt time.Time
}

// IsAdmin reports whether the employee has the admin role
func (e *Employee) IsAdmin() bool {
	return e.Role == types.RoleAdmin
}
