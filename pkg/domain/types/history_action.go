package types

import "fmt"

// HistoryAction represents the kind of stock movement recorded in history
type HistoryAction string

const (
	HistoryActionDeduct  HistoryAction = "deduct"
	HistoryActionRestock HistoryAction = "restock"
)

// AllHistoryActions returns all valid history actions
func AllHistoryActions() []HistoryAction {
	return []HistoryAction{HistoryActionDeduct, HistoryActionRestock}
}

// IsValid checks if the history action is valid
func (a HistoryAction) IsValid() bool {
	switch a {
	case HistoryActionDeduct, HistoryActionRestock:
		return true
	default:
		return false
	}
}

// String returns the string representation of the history action
func (a HistoryAction) String() string {
	return string(a)
}

// ParseHistoryAction parses a string into a HistoryAction
func ParseHistoryAction(s string) (HistoryAction, error) {
	a := HistoryAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid history action: %s", s)
	}
	return a, nil
}
