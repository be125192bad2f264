package result

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/components"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

// ResultScreen renders a finished assessment as formatted JSON.
type ResultScreen struct {
	title   string
	risk    string
	notice  *flow.Notice
	warning string
	lines   []string
	offset  int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for a live outcome. recordErr is shown when
// the outcome could not be saved to history.
func New(o *flow.Outcome, notice *flow.Notice, recordErr error) *ResultScreen {
	doc, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		doc = []byte(fmt.Sprintf("could not render result: %v", err))
	}
	s := FromDocument("Your Results", string(o.RiskLevel()), doc)
	s.notice = notice
	if recordErr != nil {
		s.warning = "Result was not saved to history: " + recordErr.Error()
	}
	return s
}

// FromDocument creates a ResultScreen for a stored JSON document.
func FromDocument(title, risk string, doc []byte) *ResultScreen {
	return &ResultScreen{
		title: title,
		risk:  risk,
		lines: strings.Split(prettyJSON(doc), "\n"),
	}
}

func prettyJSON(doc []byte) string {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return string(doc)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(doc)
	}
	return string(out)
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return s.title
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.lines)-1 {
			s.offset++
		}
	case "pgdown", "space":
		s.offset += 10
		if s.offset > len(s.lines)-1 {
			s.offset = len(s.lines) - 1
		}
	case "pgup":
		s.offset -= 10
		if s.offset < 0 {
			s.offset = 0
		}
	case "home", "g":
		s.offset = 0
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// Document returns the rendered JSON.
func (s *ResultScreen) Document() string {
	return strings.Join(s.lines, "\n")
}

func (s *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var top []string

	if s.risk != "" {
		top = append(top, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Risk level: ")+
			theme.RiskColor(s.risk).Render(strings.ToUpper(s.risk)))
	}
	if s.notice != nil {
		top = append(top, NoticeView(s.notice, cw))
	}
	if s.warning != "" {
		top = append(top, components.Notice(components.NoticeWarning, s.warning, cw))
	}
	header := strings.Join(top, "\n")

	avail := height - lipgloss.Height(header) - 3
	if avail < 3 {
		avail = 3
	}
	end := s.offset + avail
	if end > len(s.lines) {
		end = len(s.lines)
	}
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(s.lines[s.offset:end], "\n"))

	more := ""
	if end < len(s.lines) {
		more = "\n" + theme.Hint.Render(fmt.Sprintf("… %d more lines", len(s.lines)-end))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(header + "\n\n" + body + more)
}

// NoticeView renders a flow banner at width.
func NoticeView(n *flow.Notice, width int) string {
	if n == nil {
		return ""
	}
	level := components.NoticeInfo
	switch n.Level {
	case flow.NoticeWarning:
		level = components.NoticeWarning
	case flow.NoticeError:
		level = components.NoticeError
	}
	return components.Notice(level, n.Text, width)
}
