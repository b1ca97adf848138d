package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/m-mizutani/goerr/v2"
	gomail "github.com/wneessen/go-mail"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

// LowStockAlert is one line of a combined low-stock alert email
type LowStockAlert struct {
	Name  string
	ID    types.ItemID
	Stock int
}

// Service sends operational email. Implementations must be safe for
// concurrent use; sends are fire-and-forget from the caller's view.
type Service interface {
	// SendLowStockAlert sends one combined alert listing every item at or
	// below the threshold to all recipients.
	SendLowStockAlert(ctx context.Context, recipients []string, alerts []LowStockAlert, threshold int) error

	// SendTaskNotice notifies recipients about a created or re-assigned
	// task. A failed batch send falls back to one individual send per
	// recipient.
	SendTaskNotice(ctx context.Context, recipients []string, task *model.Task) error
}

type Client struct {
	client *gomail.Client
	from   string
}

var _ Service = &Client{}

// New creates an SMTP-backed mail service
func New(host string, port int, username, password, from string) (*Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create SMTP client", goerr.V("host", host))
	}

	return &Client{client: client, from: from}, nil
}

var lowStockTmpl = template.Must(template.New("low_stock").Parse(`
<h2>Low Stock Alert</h2>
<p>The following items are now below the low stock threshold:</p>
<ul style="list-style: none; padding-left: 0;">
{{range .Alerts}}  <li style="margin-bottom: 8px;">
    <strong>{{.Name}}</strong> (ID: {{.ID}}) - Current Stock: {{.Stock}}
  </li>
{{end}}</ul>
<p>Threshold: {{.Threshold}}</p>
<p>Please restock as soon as possible.</p>
`))

var taskNoticeTmpl = template.Must(template.New("task_notice").Parse(`
<h2>New Task Created</h2>
<p><strong>Task ID:</strong> {{.ID}}</p>
<p><strong>Title:</strong> {{.Title}}</p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Items:</strong> {{range $i, $it := .Items}}{{if $i}}, {{end}}{{$it.ItemID}}{{end}}</p>
<p><strong>Created:</strong> {{.AssignedAt.Format "2006-01-02 15:04:05"}}</p>
<p>Please check the task management system for details.</p>
`))

func (c *Client) compose(recipients []string, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return nil, goerr.Wrap(err, "invalid sender address", goerr.V("from", c.from))
	}
	if err := msg.To(recipients...); err != nil {
		return nil, goerr.Wrap(err, "invalid recipient address", goerr.V("recipients", recipients))
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)
	return msg, nil
}

func (c *Client) SendLowStockAlert(ctx context.Context, recipients []string, alerts []LowStockAlert, threshold int) error {
	if len(recipients) == 0 || len(alerts) == 0 {
		return nil
	}

	var body bytes.Buffer
	if err := lowStockTmpl.Execute(&body, map[string]interface{}{
		"Alerts":    alerts,
		"Threshold": threshold,
	}); err != nil {
		return goerr.Wrap(err, "failed to render low stock alert")
	}

	subject := fmt.Sprintf("Low Stock Alert - %d Item(s) Below Threshold", len(alerts))
	msg, err := c.compose(recipients, subject, body.String())
	if err != nil {
		return err
	}

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to send low stock alert",
			goerr.V("recipients", len(recipients)),
			goerr.V("alerts", len(alerts)),
		)
	}

	logging.From(ctx).Info("sent low stock alert",
		"recipients", len(recipients),
		"alerts", len(alerts),
	)
	return nil
}

func (c *Client) SendTaskNotice(ctx context.Context, recipients []string, task *model.Task) error {
	if len(recipients) == 0 {
		return nil
	}

	description := task.Description
	if description == "" {
		description = "No description provided"
	}

	var body bytes.Buffer
	if err := taskNoticeTmpl.Execute(&body, map[string]interface{}{
		"ID":          task.ID,
		"Title":       task.Title,
		"Description": description,
		"Items":       task.Items,
		"AssignedAt":  task.AssignedAt,
	}); err != nil {
		return goerr.Wrap(err, "failed to render task notice")
	}

	subject := fmt.Sprintf("New Task: %s", task.Title)

	msg, err := c.compose(recipients, subject, body.String())
	if err != nil {
		return err
	}

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		logging.From(ctx).Error("batch task notice failed, falling back to individual sends",
			"error", err.Error(),
			"task_id", task.ID,
		)
	} else {
		logging.From(ctx).Info("sent task notice", "recipients", len(recipients), "task_id", task.ID)
		return nil
	}

	// One individual send per recipient after a batch failure. Further
	// failures are logged only.
	var lastErr error
	for _, rcpt := range recipients {
		msg, err := c.compose([]string{rcpt}, subject, body.String())
		if err != nil {
			lastErr = err
			continue
		}
		if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
			logging.From(ctx).Error("individual task notice failed",
				"recipient", rcpt,
				"error", err.Error(),
			)
			lastErr = err
		}
	}
	if lastErr != nil {
		return goerr.Wrap(lastErr, "task notice fallback incomplete", goerr.V("task_id", task.ID))
	}
	return nil
}
