package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// Identity recorded on stock movements triggered by an administrator
// editing items directly rather than an employee deducting.
const (
	adminEmployeeID   = types.EmployeeID("ADMIN")
	adminEmployeeName = "Administrator"
)

func (uc *UseCases) GetItems(ctx context.Context) ([]*model.Item, error) {
	items, err := uc.repo.Item().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list items")
	}
	return items, nil
}

// SearchItems returns items whose name or category contains the query,
// case-insensitively. An empty query matches everything.
func (uc *UseCases) SearchItems(ctx context.Context, query string) ([]*model.Item, error) {
	items, err := uc.repo.Item().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list items")
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}

	matched := make([]*model.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Category), q) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (uc *UseCases) validCategory(category string) bool {
	if len(uc.categories) == 0 {
		return true
	}
	for _, c := range uc.categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// AddItemInput carries the fields of a new inventory item
type AddItemInput struct {
	Name     string
	Category string
	Stock    int
}

func (uc *UseCases) AddItem(ctx context.Context, in AddItemInput) (*model.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, goerr.New("item name is required")
	}
	if in.Stock < 0 {
		return nil, goerr.New("item stock must not be negative", goerr.V("stock", in.Stock))
	}
	if !uc.validCategory(in.Category) {
		return nil, goerr.Wrap(ErrUnknownCategory, "category is not configured",
			goerr.V("category", in.Category))
	}

	created, err := uc.repo.Item().Create(ctx, &model.Item{
		Name:     name,
		Category: strings.TrimSpace(in.Category),
		Stock:    in.Stock,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create item")
	}
	return created, nil
}

// UpdateItemInput carries an item update. Stock is the desired absolute
// stock level; the difference from the stored level decides how the change
// is applied.
type UpdateItemInput struct {
	ID       types.ItemID
	Name     string
	Category string
	Stock    int
}

// UpdateItem updates an item. A raised stock level is applied as a direct
// restock with a ledger record. A lowered level runs through Deduct under
// the administrator identity so task reconciliation and low-stock alerting
// fire exactly as they would for an employee deduction. An unchanged level
// touches no stock.
func (uc *UseCases) UpdateItem(ctx context.Context, in UpdateItemInput) (*model.Item, error) {
	existing, err := uc.repo.Item().Get(ctx, in.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get item", goerr.V(ItemIDKey, in.ID))
	}
	if !uc.validCategory(in.Category) {
		return nil, goerr.Wrap(ErrUnknownCategory, "category is not configured",
			goerr.V("category", in.Category))
	}

	switch {
	case in.Stock > existing.Stock:
		if _, err := uc.restock(ctx, existing, in.Stock-existing.Stock); err != nil {
			return nil, err
		}

	case in.Stock < existing.Stock:
		if _, err := uc.Deduct(ctx, adminEmployeeID, adminEmployeeName, []DeductPair{
			{ItemID: in.ID, Qty: existing.Stock - in.Stock},
		}); err != nil {
			return nil, err
		}
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Category = strings.TrimSpace(in.Category)
	updated, err := uc.repo.Item().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update item", goerr.V(ItemIDKey, in.ID))
	}
	return updated, nil
}

// RestockItem applies an explicit upward stock delta with a ledger record
func (uc *UseCases) RestockItem(ctx context.Context, id types.ItemID, qty int) (*model.Item, error) {
	if qty <= 0 {
		return nil, goerr.Wrap(ErrInvalidQuantity, "restock quantity must be positive",
			goerr.V(ItemIDKey, id), goerr.V("qty", qty))
	}

	existing, err := uc.repo.Item().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get item", goerr.V(ItemIDKey, id))
	}
	return uc.restock(ctx, existing, qty)
}

func (uc *UseCases) restock(ctx context.Context, item *model.Item, qty int) (*model.Item, error) {
	updated, err := uc.repo.Item().AddStock(ctx, item.ID, qty)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add stock", goerr.V(ItemIDKey, item.ID))
	}

	if _, err := uc.repo.History().Append(ctx, &model.HistoryRecord{
		EmployeeID:   adminEmployeeID,
		EmployeeName: adminEmployeeName,
		ItemID:       item.ID,
		ItemName:     item.Name,
		Qty:          qty,
		Action:       types.HistoryActionRestock,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record restock", goerr.V(ItemIDKey, item.ID))
	}

	return updated, nil
}

func (uc *UseCases) DeleteItem(ctx context.Context, id types.ItemID) error {
	if err := uc.repo.Item().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete item", goerr.V(ItemIDKey, id))
	}
	return nil
}
