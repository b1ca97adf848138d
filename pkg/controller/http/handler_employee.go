package http

import (
	"context"
	"encoding/json"

	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/usecase"
)

func handleLogin(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		PIN      string `json:"pin"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	emp, err := uc.Login(ctx, usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		PIN:      req.PIN,
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeView(emp), nil
}

func handleGetEmployees(ctx context.Context, uc *usecase.UseCases, _ json.RawMessage) (any, error) {
	employees, err := uc.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]employeeView, len(employees))
	for i, emp := range employees {
		views[i] = toEmployeeView(emp)
	}
	return views, nil
}

func handleAddEmployee(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		Name  string     `json:"name"`
		Role  types.Role `json:"role"`
		Email string     `json:"email"`
		PIN   string     `json:"pin"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	emp, err := uc.AddEmployee(ctx, usecase.AddEmployeeInput{
		Name:  req.Name,
		Role:  req.Role,
		Email: req.Email,
		PIN:   req.PIN,
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeView(emp), nil
}

func handleUpdateEmployee(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID       types.EmployeeID `json:"id"`
		Name     string           `json:"name"`
		Role     types.Role       `json:"role"`
		Email    string           `json:"email"`
		Password string           `json:"password"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	emp, err := uc.UpdateEmployee(ctx, usecase.UpdateEmployeeInput{
		ID:       req.ID,
		Name:     req.Name,
		Role:     req.Role,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeView(emp), nil
}

func handleDeleteEmployee(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		ID types.EmployeeID `json:"id"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}
	if err := uc.DeleteEmployee(ctx, req.ID); err != nil {
		return nil, err
	}
	return map[string]any{"id": req.ID}, nil
}

func handleRegisterPushToken(ctx context.Context, uc *usecase.UseCases, data json.RawMessage) (any, error) {
	var req struct {
		EmployeeID types.EmployeeID `json:"employee_id"`
		Token      string           `json:"token"`
	}
	if err := decode(data, &req); err != nil {
		return nil, err
	}
	if err := uc.RegisterPushToken(ctx, req.EmployeeID, req.Token); err != nil {
		return nil, err
	}
	return map[string]any{"employee_id": req.EmployeeID}, nil
}
