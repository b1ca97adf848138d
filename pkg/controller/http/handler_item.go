package http

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/usecase"
)

func handleGetItems(ctx context.Context, uc *usecase.UseCases, _ json.RawMessage) (any, error) {
	items, err := uc.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	return toItemViews(items), nil
}

func handleSearchItems(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	items, err := uc.SearchItems(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return toItemViews(items), nil
}

func handleAddItem(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Stock    int    `json:"stock"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	item, err := uc.AddItem(ctx, usecase.AddItemInput{
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
	})
	if err != nil {
		return nil, err
	}
	return toItemView(item), nil
}

func handleUpdateItem(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID       types.ItemID `json:"id"`
		Name     string       `json:"name"`
		Category string       `json:"category"`
		Stock    int          `json:"stock"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	item, err := uc.UpdateItem(ctx, usecase.UpdateItemInput{
		ID:       req.ID,
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
	})
	if err != nil {
		return nil, err
	}
	return toItemView(item), nil
}

func handleDeleteItem(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID types.ItemID `json:"id"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}
	if err := uc.DeleteItem(ctx, req.ID); err != nil {
		return nil, err
	}
	return map[string]any{"id": req.ID}, nil
}

func handleDeductItem(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		EmployeeID   types.EmployeeID `json:"employee_id"`
		EmployeeName string           `json:"employee_name"`
		Items        []struct {
			ItemID types.ItemID `json:"item_id"`
			Qty    int          `json:"qty"`
		} `json:"items"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, goerr.Wrap(errBadData, "deduction requires at least one item")
	}

	pairs := make([]usecase.DeductPair, len(req.Items))
	for i, line := range req.Items {
		pairs[i] = usecase.DeductPair{ItemID: line.ItemID, Qty: line.Qty}
	}

	items, err := uc.Deduct(ctx, req.EmployeeID, req.EmployeeName, pairs)
	if err != nil {
		return nil, err
	}
	return toItemViews(items), nil
}

func handleRestockItem(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID  types.ItemID `json:"id"`
		Qty int          `json:"qty"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	item, err := uc.RestockItem(ctx, req.ID, req.Qty)
	if err != nil {
		return nil, err
	}
	return toItemView(item), nil
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return goerr.Wrap(errBadData, "missing action data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return goerr.Wrap(errBadData, "malformed action data", goerr.V("cause", err.Error()))
	}
	return nil
}
