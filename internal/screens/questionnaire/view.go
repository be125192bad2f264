package questionnaire

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/result"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/components"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

func (s *QuestionnaireScreen) spinner(label string) string {
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(frame) + " " + theme.Body.Render(label)
}

func (s *QuestionnaireScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	switch s.machine.State() {
	case flow.StateLoading:
		return components.Center(s.spinner("Loading questions…"), width, height)
	case flow.StateUnavailable:
		content := result.NoticeView(s.machine.Notice(), cw) + "\n\n" + theme.Hint.Render("Press r to try again.")
		return components.Center(content, width, height)
	case flow.StateDone:
		return components.Center(s.spinner("Saving your results…"), width, height)
	}

	return components.Center(s.renderQuestion(cw), width, height)
}

func (s *QuestionnaireScreen) renderQuestion(cw int) string {
	q, _ := s.machine.Current()
	pos, total := s.machine.Position()
	progress := s.machine.Progress()
	busy := s.machine.State().Busy()

	var sections []string

	if n := s.machine.Notice(); n != nil {
		sections = append(sections, result.NoticeView(n, cw))
	}

	phase := "Initial questions"
	if q.FollowUp {
		phase = "Follow-up questions"
	}
	counter := fmt.Sprintf("Question %d of %d", pos, total)
	pct := fmt.Sprintf("%d%%", components.Percent(progress))
	gap := cw - lipgloss.Width(counter) - lipgloss.Width(pct)
	if gap < 1 {
		gap = 1
	}
	sections = append(sections,
		theme.Hint.Render(phase),
		theme.Body.Render(counter)+strings.Repeat(" ", gap)+lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct),
		components.NewProgressBar("", progress, false, cw).View(),
	)

	body := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(layout.Wrap(q.Text, cw-6)) + "\n\n"
	if s.isText {
		body += s.input.View()
	} else {
		body += s.choice.View()
	}
	sections = append(sections, components.Card(body, cw))

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	switch s.machine.State() {
	case flow.StateAnalyzing:
		sections = append(sections, s.spinner("Analyzing your answers…"))
	case flow.StateReporting:
		sections = append(sections, s.spinner("Generating your report…"))
	}

	pending := s.isText && s.input.Value() != ""
	prev := components.Button{Key: "⇧Tab", Label: "Previous", Enabled: !busy && s.machine.CanPrev()}
	var fwd components.Button
	if s.machine.OnLast() {
		fwd = components.Button{Key: "Ctrl+S", Label: "Submit", Primary: true,
			Enabled: !busy && (s.machine.CanSubmit() || pending)}
	} else {
		fwd = components.Button{Key: "Tab", Label: "Next", Primary: true,
			Enabled: !busy && (s.machine.CanNext() || pending)}
	}
	sections = append(sections, components.ButtonRow(prev, fwd))

	return lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
}
