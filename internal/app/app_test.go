package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
)

type fakeProbe struct{ healthy bool }

func (f fakeProbe) Endpoint() string            { return "http://stub/api" }
func (f fakeProbe) Health(context.Context) bool { return f.healthy }
func (f fakeProbe) SystemStatus(context.Context) (*api.SystemStatus, error) {
	return &api.SystemStatus{}, nil
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am
}

func TestBootstrapLoadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("INNERBALANCE_TEST_BOOTSTRAP=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INNERBALANCE_TEST_BOOTSTRAP", "")
	os.Unsetenv("INNERBALANCE_TEST_BOOTSTRAP")

	if err := Bootstrap(path); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if got := os.Getenv("INNERBALANCE_TEST_BOOTSTRAP"); got != "from-file" {
		t.Errorf("env = %q, want from-file", got)
	}
}

func TestBootstrapMissingFileIsFine(t *testing.T) {
	if err := Bootstrap(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Bootstrap: %v", err)
	}
}

func TestBootstrapKeepsExistingEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("INNERBALANCE_TEST_KEEP=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INNERBALANCE_TEST_KEEP", "shell")

	if err := Bootstrap(path); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if got := os.Getenv("INNERBALANCE_TEST_KEEP"); got != "shell" {
		t.Errorf("env = %q, want shell", got)
	}
}

func TestAppHeaderTracksBackendStatus(t *testing.T) {
	m := update(t, newAppModel(Options{Client: fakeProbe{healthy: true}}), tea.WindowSizeMsg{Width: 100, Height: 40})

	if !strings.Contains(m.render(), "checking") {
		t.Error("expected unknown status before the probe returns")
	}

	m = update(t, m, probeHealth(fakeProbe{healthy: true})())
	if !strings.Contains(m.render(), "online") {
		t.Error("expected online status after a healthy probe")
	}

	m = update(t, m, screen.BackendStatusMsg{Status: layout.StatusOffline})
	if !strings.Contains(m.render(), "offline") {
		t.Error("expected offline status")
	}
}

func TestAppTooSmall(t *testing.T) {
	m := update(t, newAppModel(Options{}), tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestAppCtrlCQuits(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestAppEscAtRootIsNoop(t *testing.T) {
	m := newAppModel(Options{})
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("expected no command for esc on the home screen")
	}
}
