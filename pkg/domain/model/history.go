package model

import (
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// HistoryRecord is one entry of the append-only stock movement ledger.
// The payload is immutable once created except for admin corrections to
// Qty, Action and AdminNote. Seq is assigned by the repository and defines
// the newest-first visible order.
type HistoryRecord struct {
	ID           types.HistoryID
	Timestamp    time.Time
	Seq          int64
	EmployeeID   types.EmployeeID
	EmployeeName string
	ItemID       types.ItemID
	ItemName     string
	Qty          int
	Action       types.HistoryAction
	AdminNote    string
}

// HistoryQuery filters a ledger read. Zero values mean "no filter".
// End is padded by one day at query time so the range is inclusive of
// the whole end date.
type HistoryQuery struct {
	EmployeeID types.EmployeeID
	Start      time.Time
	End        time.Time
	Limit      int
}
