package push

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

// Service sends push notifications to employee devices. Tokens are opaque
// strings recognized by the ExponentPushToken[...] prefix convention;
// malformed tokens are rejected by IsValidToken and never sent to.
type Service interface {
	// SendTaskCall delivers a high-priority "incoming call" style
	// notification about a task to one device token.
	SendTaskCall(ctx context.Context, token string, task *model.Task, employeeID types.EmployeeID, title string) error

	// IsValidToken reports whether the token is a well-formed push token
	IsValidToken(token string) bool
}

type Client struct {
	client *expo.PushClient
}

var _ Service = &Client{}

// New creates an Expo-backed push service
func New() *Client {
	return &Client{client: expo.NewPushClient(nil)}
}

func (c *Client) IsValidToken(token string) bool {
	if token == "" {
		return false
	}
	_, err := expo.NewExponentPushToken(token)
	return err == nil
}

func (c *Client) SendTaskCall(ctx context.Context, token string, task *model.Task, employeeID types.EmployeeID, title string) error {
	pushToken, err := expo.NewExponentPushToken(token)
	if err != nil {
		return goerr.Wrap(err, "malformed push token", goerr.V("employee_id", employeeID))
	}

	body := task.Description
	if body == "" {
		body = "New task assignment"
	}

	payload, err := json.Marshal(map[string]string{
		"taskId":          task.ID.String(),
		"type":            "fake_call",
		"taskTitle":       task.Title,
		"taskDescription": task.Description,
		"employeeId":      employeeID.String(),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to marshal notification payload")
	}

	resp, err := c.client.Publish(&expo.PushMessage{
		To:        []expo.ExponentPushToken{pushToken},
		Title:     title,
		Body:      body,
		Data:      map[string]string{"payload": string(payload)},
		Sound:     "ringtone",
		Priority:  expo.HighPriority,
		ChannelID: "calls",
	})
	if err != nil {
		return goerr.Wrap(err, "failed to publish push notification",
			goerr.V("task_id", task.ID),
			goerr.V("employee_id", employeeID),
		)
	}

	if err := resp.ValidateResponse(); err != nil {
		return goerr.Wrap(err, "push notification rejected",
			goerr.V("task_id", task.ID),
			goerr.V("employee_id", employeeID),
		)
	}

	logging.From(ctx).Debug("push notification sent",
		"task_id", task.ID,
		"employee_id", employeeID,
	)
	return nil
}
