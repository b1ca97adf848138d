package http

import (
	"context"
	"encoding/json"

	"github.com/arkade-store/stockroom/pkg/usecase"
)

func handleGetLowStockThreshold(ctx context.Context, uc *usecase.UseCases, _ json.RawMessage) (any, error) {
	threshold, err := uc.GetLowStockThreshold(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int{"threshold": threshold}, nil
}

func handleUpdateLowStockThreshold(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		Threshold int `json:"threshold"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}
	if err := uc.SetLowStockThreshold(ctx, req.Threshold); err != nil {
		return nil, err
	}
	return map[string]int{"threshold": req.Threshold}, nil
}
