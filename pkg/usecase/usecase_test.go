package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
	"github.com/arkade-store/stockroom/pkg/service/mail"
)

// mailStub records sends instead of talking to an SMTP server
type mailStub struct {
	mu        sync.Mutex
	lowStock  []lowStockCall
	notices   []noticeCall
}

type lowStockCall struct {
	recipients []string
	alerts     []mail.LowStockAlert
	threshold  int
}

type noticeCall struct {
	recipients []string
	taskID     types.TaskID
}

func (s *mailStub) SendLowStockAlert(ctx context.Context, recipients []string, alerts []mail.LowStockAlert, threshold int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lowStock = append(s.lowStock, lowStockCall{
		recipients: append([]string(nil), recipients...),
		alerts:     append([]mail.LowStockAlert(nil), alerts...),
		threshold:  threshold,
	})
	return nil
}

func (s *mailStub) SendTaskNotice(ctx context.Context, recipients []string, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, noticeCall{
		recipients: append([]string(nil), recipients...),
		taskID:     task.ID,
	})
	return nil
}

func (s *mailStub) lowStockCalls() []lowStockCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]lowStockCall(nil), s.lowStock...)
}

func (s *mailStub) noticeCalls() []noticeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]noticeCall(nil), s.notices...)
}

// pushStub records push sends and validates tokens by prefix
type pushStub struct {
	mu    sync.Mutex
	calls []pushCall
}

type pushCall struct {
	token      string
	taskID     types.TaskID
	employeeID types.EmployeeID
	title      string
}

func (s *pushStub) SendTaskCall(ctx context.Context, token string, task *model.Task, employeeID types.EmployeeID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, pushCall{
		token:      token,
		taskID:     task.ID,
		employeeID: employeeID,
		title:      title,
	})
	return nil
}

func (s *pushStub) IsValidToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[")
}

func (s *pushStub) sent() []pushCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pushCall(nil), s.calls...)
}

// waitFor polls cond until it holds or the deadline passes. Outbound side
// effects run on background goroutines, so tests observe them this way.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
