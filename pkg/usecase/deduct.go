package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/service/mail"
	"github.com/arkade-store/stockroom/pkg/utils/async"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

// DeductPair is one (item, quantity) line of a deduction request
type DeductPair struct {
	ItemID types.ItemID
	Qty    int
}

// Deduct applies a batch of stock deductions on behalf of one employee.
// Pairs are processed in input order; earlier pairs stay applied when a
// later one fails. Per pair: the stock is clamped at zero, a ledger record
// is appended, a low-stock alert line is collected when the new stock is
// at or below the threshold, and the quantity is credited against open
// task requirements (oldest assignment first). One combined alert email
// goes out to all admin addresses after the batch.
func (uc *UseCases) Deduct(ctx context.Context, employeeID types.EmployeeID, employeeName string, pairs []DeductPair) ([]*model.Item, error) {
	threshold, err := uc.repo.Settings().GetLowStockThreshold(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get low stock threshold")
	}

	var alerts []mail.LowStockAlert
	results := make([]*model.Item, 0, len(pairs))

	for _, pair := range pairs {
		if pair.Qty <= 0 {
			return nil, goerr.Wrap(ErrInvalidQuantity, "deduction quantity must be positive",
				goerr.V(ItemIDKey, pair.ItemID), goerr.V("qty", pair.Qty))
		}

		item, err := uc.repo.Item().Deduct(ctx, pair.ItemID, pair.Qty)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to deduct stock", goerr.V(ItemIDKey, pair.ItemID))
		}
		results = append(results, item)

		if _, err := uc.repo.History().Append(ctx, &model.HistoryRecord{
			EmployeeID:   employeeID,
			EmployeeName: employeeName,
			ItemID:       item.ID,
			ItemName:     item.Name,
			Qty:          pair.Qty,
			Action:       types.HistoryActionDeduct,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to record deduction", goerr.V(ItemIDKey, pair.ItemID))
		}

		if item.Stock <= threshold {
			alerts = append(alerts, mail.LowStockAlert{
				Name:  item.Name,
				ID:    item.ID,
				Stock: item.Stock,
			})
		}

		uc.distributeToTasks(ctx, pair.ItemID, pair.Qty)
	}

	if len(alerts) > 0 {
		uc.sendLowStockAlerts(ctx, alerts, threshold)
	}

	return results, nil
}

// distributeToTasks credits qty against open task requirements for the
// item, oldest assignment first. Every deducted unit counts against every
// open task line for the item until the credit runs out, so two tasks
// needing the same item are both reduced by one physical deduction.
// Distribution is best effort: persistence failures are logged and the
// remaining credit moves on.
func (uc *UseCases) distributeToTasks(ctx context.Context, itemID types.ItemID, qty int) {
	tasks, err := uc.repo.Task().ListAssigned(ctx)
	if err != nil {
		logging.From(ctx).Error("failed to list assigned tasks for distribution",
			"item_id", itemID,
			"error", err.Error(),
		)
		return
	}

	remaining := qty
	for _, task := range tasks {
		if remaining <= 0 {
			return
		}

		credited := false
		for i := range task.Items {
			if task.Items[i].ItemID != itemID || task.Items[i].RequiredQty <= 0 {
				continue
			}
			credit := min(remaining, task.Items[i].RequiredQty)
			task.Items[i].RequiredQty -= credit
			remaining -= credit
			credited = true
			break
		}
		if !credited {
			continue
		}

		if _, err := uc.repo.Task().Update(ctx, task); err != nil {
			logging.From(ctx).Error("failed to persist task requirement credit",
				"task_id", task.ID,
				"item_id", itemID,
				"error", err.Error(),
			)
		}
	}
}

// sendLowStockAlerts emails one combined alert to every admin address.
// Fire and forget: the deduction has already succeeded.
func (uc *UseCases) sendLowStockAlerts(ctx context.Context, alerts []mail.LowStockAlert, threshold int) {
	if uc.mail == nil {
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		employees, err := uc.repo.Employee().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list employees for low stock alert")
		}

		var recipients []string
		for _, emp := range employees {
			if emp.IsAdmin() && emp.Email != "" {
				recipients = append(recipients, emp.Email)
			}
		}
		if len(recipients) == 0 {
			logging.From(ctx).Warn("low stock alert dropped: no admin email addresses",
				"alerts", len(alerts))
			return nil
		}

		return uc.mail.SendLowStockAlert(ctx, recipients, alerts, threshold)
	})
}
