package result

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
)

func testOutcome() *flow.Outcome {
	return &flow.Outcome{
		AssessmentID: "a-9",
		Analysis: &assessment.InitialAnalysis{
			AssessmentID: "a-9",
			Analysis:     map[string]any{"total_score": 12},
			RiskLevel:    assessment.RiskHigh,
			Status:       "success",
		},
	}
}

func TestResultScreen_Document(t *testing.T) {
	s := New(testOutcome(), nil, nil)
	doc := s.Document()
	if !strings.Contains(doc, `"risk_level": "high"`) {
		t.Errorf("document missing risk level:\n%s", doc)
	}
	if !strings.Contains(doc, "\n  ") {
		t.Error("expected indented JSON")
	}
	if s.Title() != "Your Results" {
		t.Errorf("Title = %q", s.Title())
	}
	if !strings.Contains(s.View(100, 40), "HIGH") {
		t.Error("expected risk badge")
	}
}

func TestResultScreen_NoticeAndRecordError(t *testing.T) {
	notice := &flow.Notice{Level: flow.NoticeInfo, Text: flow.LocalAnalysisNotice}
	s := New(testOutcome(), notice, errors.New("disk full"))
	view := s.View(120, 60)
	if !strings.Contains(view, "analyzed locally") {
		t.Error("expected notice")
	}
	if !strings.Contains(view, "disk full") {
		t.Error("expected record error")
	}
}

func TestResultScreen_Scroll(t *testing.T) {
	s := FromDocument("Stored", "", []byte(`{"a":1,"b":2,"c":3}`))
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 2 {
		t.Errorf("offset = %d, want 2", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1", s.offset)
	}
	for i := 0; i < 20; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.offset != len(s.lines)-1 {
		t.Errorf("offset = %d, want clamp at %d", s.offset, len(s.lines)-1)
	}
}

func TestResultScreen_EnterPops(t *testing.T) {
	s := FromDocument("Stored", "low", []byte(`{}`))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestResultScreen_NonJSONDocument(t *testing.T) {
	s := FromDocument("Stored", "", []byte("not json"))
	if s.Document() != "not json" {
		t.Errorf("Document = %q", s.Document())
	}
}
