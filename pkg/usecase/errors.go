package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrUnknownCategory  = errors.New("unknown item category")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidThreshold = errors.New("threshold must not be negative")
)

// Context keys for error values
const (
	ItemIDKey     = "item_id"
	TaskIDKey     = "task_id"
	EmployeeIDKey = "employee_id"
	HistoryIDKey  = "history_id"
)
