package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/interfaces"
	"github.com/arkade-store/stockroom/pkg/usecase"
	"github.com/arkade-store/stockroom/pkg/utils/errutil"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

// actionRequest is the single-endpoint envelope: every operation is a POST
// to /api carrying the action name, its payload and the shared secret.
type actionRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
	Secret string          `json:"secret"`
}

type actionResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

type actionHandler func(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error)

var actionHandlers = map[string]actionHandler{
	"LOGIN": handleLogin,

	"GET_ITEMS":    handleGetItems,
	"SEARCH_ITEMS": handleSearchItems,
	"ADD_ITEM":     handleAddItem,
	"UPDATE_ITEM":  handleUpdateItem,
	"DELETE_ITEM":  handleDeleteItem,
	"DEDUCT_ITEM":  handleDeductItem,
	"RESTOCK_ITEM": handleRestockItem,

	"GET_EMPLOYEES":       handleGetEmployees,
	"ADD_EMPLOYEE":        handleAddEmployee,
	"UPDATE_EMPLOYEE":     handleUpdateEmployee,
	"DELETE_EMPLOYEE":     handleDeleteEmployee,
	"REGISTER_PUSH_TOKEN": handleRegisterPushToken,

	"GET_HISTORY":    handleGetHistory,
	"UPDATE_HISTORY": handleUpdateHistory,
	"DELETE_HISTORY": handleDeleteHistory,

	"ADD_TASK":                 handleAddTask,
	"GET_TASKS":                handleGetTasks,
	"UPDATE_TASK":              handleUpdateTask,
	"DELETE_TASK":              handleDeleteTask,
	"UPDATE_TASK_READ_STATUS":  handleUpdateTaskReadStatus,
	"UPDATE_TASK_CHECK_STATUS": handleUpdateTaskCheckStatus,

	"GET_LOW_STOCK_THRESHOLD":    handleGetLowStockThreshold,
	"UPDATE_LOW_STOCK_THRESHOLD": handleUpdateLowStockThreshold,
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeActionError(ctx, w, http.StatusBadRequest, goerr.Wrap(err, "malformed request body"))
		return
	}

	if s.secret != "" {
		if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(s.secret)) != 1 {
			writeActionError(ctx, w, http.StatusUnauthorized, goerr.New("invalid secret"))
			return
		}
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeActionError(ctx, w, http.StatusBadRequest,
			goerr.New("unknown action", goerr.V("action", req.Action)))
		return
	}

	data, err := handler(ctx, s.uc, req.Data)
	if err != nil {
		if isClientError(err) {
			logging.From(ctx).Warn("action rejected",
				"action", req.Action,
				"error", err.Error(),
			)
			writeJSON(ctx, w, http.StatusOK, actionResponse{Status: "error", Error: err.Error()})
			return
		}

		errutil.Handle(ctx, err, "action failed")
		writeJSON(ctx, w, http.StatusInternalServerError,
			actionResponse{Status: "error", Error: err.Error()})
		return
	}

	writeJSON(ctx, w, http.StatusOK, actionResponse{Status: "success", Data: data})
}

// errBadData marks an undecodable or incomplete action payload
var errBadData = errors.New("bad action data")

// isClientError reports whether the error is a rejection of the request
// rather than a fault of the server.
func isClientError(err error) bool {
	return errors.Is(err, errBadData) ||
		errors.Is(err, interfaces.ErrNotFound) ||
		errors.Is(err, usecase.ErrInvalidCredentials) ||
		errors.Is(err, usecase.ErrUnknownCategory) ||
		errors.Is(err, usecase.ErrInvalidQuantity) ||
		errors.Is(err, usecase.ErrInvalidThreshold)
}

func writeActionError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	logging.From(ctx).Warn("request rejected", "status", status, "error", err.Error())
	writeJSON(ctx, w, status, actionResponse{Status: "error", Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}
