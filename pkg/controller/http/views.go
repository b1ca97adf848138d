package http

import (
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/usecase"
)

// Wire representations of the domain models. Timestamps are RFC 3339.

type itemView struct {
	ID        types.ItemID `json:"id"`
	Name      string       `json:"name"`
	Category  string       `json:"category"`
	Stock     int          `json:"stock"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func toItemView(item *model.Item) itemView {
	return itemView{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		Stock:     item.Stock,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toItemViews(items []*model.Item) []itemView {
	views := make([]itemView, len(items))
	for i, item := range items {
		views[i] = toItemView(item)
	}
	return views
}

type employeeView struct {
	ID        types.EmployeeID `json:"id"`
	Name      string           `json:"name"`
	Role      types.Role       `json:"role"`
	Email     string           `json:"email,omitempty"`
	LastLogin *time.Time       `json:"last_login,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func toEmployeeView(emp *model.Employee) employeeView {
	view := employeeView{
		ID:        emp.ID,
		Name:      emp.Name,
		Role:      emp.Role,
		Email:     emp.Email,
		CreatedAt: emp.CreatedAt,
	}
	if !emp.LastLogin.IsZero() {
		last := emp.LastLogin
		view.LastLogin = &last
	}
	return view
}

type taskView struct {
	ID           types.TaskID       `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Items        []model.TaskItem   `json:"items"`
	Status       types.TaskStatus   `json:"status"`
	AssignedAt   time.Time          `json:"assigned_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	ReadBy       []types.EmployeeID `json:"read_by"`
	CheckedBy    []types.EmployeeID `json:"checked_by"`
	ItemsCount   int                `json:"items_count"`
	ReadCount    int                `json:"read_count"`
	CheckedCount int                `json:"checked_count"`
}

func toTaskView(t *usecase.TaskView) taskView {
	items := t.Items
	if items == nil {
		items = []model.TaskItem{}
	}
	readBy := t.ReadBy
	if readBy == nil {
		readBy = []types.EmployeeID{}
	}
	checkedBy := t.CheckedBy
	if checkedBy == nil {
		checkedBy = []types.EmployeeID{}
	}
	return taskView{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Items:        items,
		Status:       t.Status,
		AssignedAt:   t.AssignedAt,
		UpdatedAt:    t.UpdatedAt,
		ReadBy:       readBy,
		CheckedBy:    checkedBy,
		ItemsCount:   t.ItemsCount,
		ReadCount:    t.ReadCount,
		CheckedCount: t.CheckedCount,
	}
}

type historyView struct {
	ID           types.HistoryID     `json:"id"`
	Timestamp    time.Time           `json:"timestamp"`
	EmployeeID   types.EmployeeID    `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	ItemID       types.ItemID        `json:"item_id"`
	ItemName     string              `json:"item_name"`
	Qty          int                 `json:"qty"`
	Action       types.HistoryAction `json:"action"`
	AdminNote    string              `json:"admin_note,omitempty"`
}

func toHistoryView(rec *model.HistoryRecord) historyView {
	return historyView{
		ID:           rec.ID,
		Timestamp:    rec.Timestamp,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		ItemID:       rec.ItemID,
		ItemName:     rec.ItemName,
		Qty:          rec.Qty,
		Action:       rec.Action,
		AdminNote:    rec.AdminNote,
	}
}
