package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/usecase"
)

const historyDateLayout = "2006-01-02"

func handleGetHistory(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		EmployeeID types.EmployeeID `json:"employee_id"`
		StartDate  string           `json:"start_date"`
		EndDate    string           `json:"end_date"`
		Limit      int              `json:"limit"`
	}
	// All filters are optional
	if len(data) > 0 {
		if err := decode(data, &req); err != nil {
			return nil, err
		}
	}

	q := model.HistoryQuery{
		EmployeeID: req.EmployeeID,
		Limit:      req.Limit,
	}
	if req.StartDate != "" {
		start, err := time.Parse(historyDateLayout, req.StartDate)
		if err != nil {
			return nil, goerr.Wrap(errBadData, "malformed start date", goerr.V("start_date", req.StartDate))
		}
		q.Start = start
	}
	if req.EndDate != "" {
		end, err := time.Parse(historyDateLayout, req.EndDate)
		if err != nil {
			return nil, goerr.Wrap(errBadData, "malformed end date", goerr.V("end_date", req.EndDate))
		}
		q.End = end
	}

	records, err := uc.GetHistory(ctx, q)
	if err != nil {
		return nil, err
	}

	views := make([]historyView, len(records))
	for i, rec := range records {
		views[i] = toHistoryView(rec)
	}
	return views, nil
}

func handleUpdateHistory(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID        types.HistoryID     `json:"id"`
		Qty       int                 `json:"qty"`
		Action    types.HistoryAction `json:"action"`
		AdminNote string              `json:"admin_note"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	rec, err := uc.UpdateHistory(ctx, usecase.UpdateHistoryInput{
		ID:        req.ID,
		Qty:       req.Qty,
		Action:    req.Action,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		return nil, err
	}
	return toHistoryView(rec), nil
}

func handleDeleteHistory(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID types.HistoryID `json:"id"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}
	if err := uc.DeleteHistory(ctx, req.ID); err != nil {
		return nil, err
	}
	return map[string]any{"id": req.ID}, nil
}
