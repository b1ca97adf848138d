package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ItemID identifies an inventory item (format: ITM00001)
type ItemID string

// EmployeeID identifies an employee (format: EMP00001)
type EmployeeID string

// TaskID identifies a task (format: TASK00001)
type TaskID string

// HistoryID identifies a history ledger record (UUID)
type HistoryID string

const (
	itemIDPrefix     = "ITM"
	employeeIDPrefix = "EMP"
	taskIDPrefix     = "TASK"
)

// NewItemID formats a sequence number as an item ID
func NewItemID(seq int64) ItemID {
	return ItemID(fmt.Sprintf("%s%05d", itemIDPrefix, seq))
}

// NewEmployeeID formats a sequence number as an employee ID
func NewEmployeeID(seq int64) EmployeeID {
	return EmployeeID(fmt.Sprintf("%s%05d", employeeIDPrefix, seq))
}

// NewTaskID formats a sequence number as a task ID
func NewTaskID(seq int64) TaskID {
	return TaskID(fmt.Sprintf("%s%05d", taskIDPrefix, seq))
}

// NewHistoryID generates a random history record ID
func NewHistoryID() HistoryID {
	return HistoryID(uuid.NewString())
}

func (x ItemID) String() string     { return string(x) }
func (x EmployeeID) String() string { return string(x) }
func (x TaskID) String() string     { return string(x) }
func (x HistoryID) String() string  { return string(x) }

func parseSeq(s, prefix string) (int64, bool) {
	if !strings.HasPrefix(s, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(s, prefix), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Seq returns the numeric part of the ID, or false if the ID is malformed
func (x ItemID) Seq() (int64, bool) { return parseSeq(string(x), itemIDPrefix) }

// Seq returns the numeric part of the ID, or false if the ID is malformed
func (x EmployeeID) Seq() (int64, bool) { return parseSeq(string(x), employeeIDPrefix) }

// Seq returns the numeric part of the ID, or false if the ID is malformed
func (x TaskID) Seq() (int64, bool) { return parseSeq(string(x), taskIDPrefix) }
