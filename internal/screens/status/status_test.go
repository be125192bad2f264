package status

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
)

type fakeChecker struct {
	healthy bool
	system  *api.SystemStatus
	err     error
	probes  int
}

func (f *fakeChecker) Endpoint() string { return "http://127.0.0.1:8000/api" }

func (f *fakeChecker) Health(context.Context) bool {
	f.probes++
	return f.healthy
}

func (f *fakeChecker) SystemStatus(context.Context) (*api.SystemStatus, error) {
	return f.system, f.err
}

func runCheck(t *testing.T, s *StatusScreen, cmd tea.Cmd) screen.BackendStatusMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a check command")
	}
	_, next := s.Update(cmd())
	if next == nil {
		t.Fatal("expected a status report")
	}
	msg, ok := next().(screen.BackendStatusMsg)
	if !ok {
		t.Fatalf("expected BackendStatusMsg")
	}
	return msg
}

func TestStatusHealthy(t *testing.T) {
	c := &fakeChecker{healthy: true, system: &api.SystemStatus{System: "InnerBalance", Version: "2.1", KnowledgeBaseItems: 42, VectorStoreReady: true}}
	s := New(c)

	if msg := runCheck(t, s, s.Init()); msg.Status != layout.StatusOnline {
		t.Errorf("status = %v, want online", msg.Status)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Reachable", "yes", "2.1", "42"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStatusUnreachable(t *testing.T) {
	c := &fakeChecker{}
	s := New(c)

	if msg := runCheck(t, s, s.Init()); msg.Status != layout.StatusOffline {
		t.Errorf("status = %v, want offline", msg.Status)
	}
	if !strings.Contains(s.View(100, 40), "offline") {
		t.Error("expected offline explanation")
	}
}

func TestStatusSystemError(t *testing.T) {
	c := &fakeChecker{healthy: true, err: errors.New("boom")}
	s := New(c)
	runCheck(t, s, s.Init())

	if !strings.Contains(s.View(100, 40), "System status unavailable") {
		t.Error("expected system status warning")
	}
}

func TestStatusRecheck(t *testing.T) {
	c := &fakeChecker{healthy: true}
	s := New(c)
	runCheck(t, s, s.Init())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	runCheck(t, s, cmd)
	if c.probes != 2 {
		t.Errorf("probes = %d, want 2", c.probes)
	}
}

func TestStatusWithoutChecker(t *testing.T) {
	s := New(nil)
	if s.Init() != nil {
		t.Error("expected no check without a checker")
	}
	if !strings.Contains(s.View(100, 40), "No backend is configured") {
		t.Error("expected unconfigured message")
	}
}
