package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/result"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Records []store.AssessmentRecord
	Err     error
}

// HistoryScreen lists completed assessments.
type HistoryScreen struct {
	eventRepo store.EventRepo
	records   []store.AssessmentRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		recs, err := repo.QueryAssessments(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "v", Description: "View result"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "v":
			if s.selected < len(s.records) {
				rec := s.records[s.selected]
				title := "Assessment " + rec.Timestamp.Local().Format("Jan 02 15:04")
				next := result.FromDocument(title, rec.RiskLevel, rec.Result)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments yet. Take one from the home screen.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		risk := rec.RiskLevel
		if risk == "" {
			risk = "unknown"
		}
		mode := ""
		if rec.Offline {
			mode = "  offline"
		} else if rec.Fallback {
			mode = "  local"
		}

		line := fmt.Sprintf("%s%s  %-8s  %d answers%s",
			prefix, rec.Timestamp.Local().Format("Jan 02, 2006 15:04"), risk,
			rec.InitialAnswers+rec.FollowUpAnswers, mode)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim)
			lines := []string{
				fmt.Sprintf("    Assessment ID: %s", rec.AssessmentID),
				fmt.Sprintf("    Initial answers: %d   Follow-up answers: %d", rec.InitialAnswers, rec.FollowUpAnswers),
			}
			if summary := reportSummary(rec); summary != "" {
				lines = append(lines, "    "+summary)
			}
			for _, l := range lines {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail.Render(l)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
