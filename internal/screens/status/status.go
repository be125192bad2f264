package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/components"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

// Checker probes the collaborator. *api.Client satisfies it.
type Checker interface {
	Endpoint() string
	Health(ctx context.Context) bool
	SystemStatus(ctx context.Context) (*api.SystemStatus, error)
}

type checkedMsg struct {
	Healthy bool
	System  *api.SystemStatus
	Err     error
	Took    time.Duration
}

// StatusScreen shows whether the collaborator is reachable and, if so,
// what its analysis engine reports.
type StatusScreen struct {
	checker Checker
	checked bool
	result  checkedMsg
}

var _ screen.Screen = (*StatusScreen)(nil)
var _ screen.KeyHintProvider = (*StatusScreen)(nil)

// New creates a StatusScreen. A nil checker reports the backend as
// unconfigured.
func New(checker Checker) *StatusScreen {
	return &StatusScreen{checker: checker}
}

func (s *StatusScreen) Init() tea.Cmd {
	return s.check()
}

func (s *StatusScreen) check() tea.Cmd {
	if s.checker == nil {
		return nil
	}
	c := s.checker
	return func() tea.Msg {
		ctx := context.Background()
		start := time.Now()
		msg := checkedMsg{Healthy: c.Health(ctx)}
		if msg.Healthy {
			msg.System, msg.Err = c.SystemStatus(ctx)
		}
		msg.Took = time.Since(start)
		return msg
	}
}

func (s *StatusScreen) Title() string {
	return "Backend Status"
}

func (s *StatusScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Recheck"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		s.checked = true
		s.result = msg
		st := layout.StatusOffline
		if msg.Healthy {
			st = layout.StatusOnline
		}
		return s, func() tea.Msg { return screen.BackendStatusMsg{Status: st} }

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			if s.checker != nil {
				s.checked = false
				return s, s.check()
			}
		}
	}
	return s, nil
}

func (s *StatusScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(22)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	row := func(k, v string) string {
		return label.Render(k) + value.Render(v)
	}

	var lines []string
	switch {
	case s.checker == nil:
		lines = append(lines, theme.Hint.Render("No backend is configured."))
	case !s.checked:
		lines = append(lines,
			row("Endpoint", s.checker.Endpoint()),
			"",
			theme.Hint.Render("Checking..."),
		)
	default:
		r := s.result
		lines = append(lines, row("Endpoint", s.checker.Endpoint()))
		if r.Healthy {
			lines = append(lines, row("Reachable", lipgloss.NewStyle().Foreground(theme.Success).Render("yes")))
		} else {
			lines = append(lines, row("Reachable", lipgloss.NewStyle().Foreground(theme.Warning).Render("no")))
			lines = append(lines, "", components.Notice(components.NoticeInfo,
				"The assessment still works offline with the built-in questions and local scoring.", cw))
		}
		if r.System != nil {
			lines = append(lines,
				row("System", r.System.System),
				row("Version", r.System.Version),
				row("Model loaded", yesNo(r.System.LLMLoaded)),
				row("Vector store ready", yesNo(r.System.VectorStoreReady)),
				row("Knowledge base items", fmt.Sprintf("%d", r.System.KnowledgeBaseItems)),
			)
		}
		if r.Err != nil {
			lines = append(lines, "", components.Notice(components.NoticeWarning, "System status unavailable: "+r.Err.Error(), cw))
		}
		lines = append(lines, "", theme.Hint.Render(fmt.Sprintf("Checked in %s", r.Took.Round(time.Millisecond))))
	}

	return components.Center(components.Card(strings.Join(lines, "\n"), cw), width, height)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
