package info

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
)

func TestInfoPages(t *testing.T) {
	for _, p := range []Page{About, Help, Contact} {
		s := New(p)
		if s.Title() != p.Title {
			t.Errorf("Title = %q, want %q", s.Title(), p.Title)
		}
		if !strings.Contains(s.View(100, 40), p.Title) {
			t.Errorf("%s view missing title", p.Title)
		}
	}
}

func TestInfoEnterPops(t *testing.T) {
	_, cmd := New(About).Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
