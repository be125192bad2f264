package info

import (
	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/components"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

// Page is a static block of text.
type Page struct {
	Title string
	Body  string
}

var (
	About = Page{
		Title: "About",
		Body: "InnerBalance is a short self-check for mood and wellbeing. " +
			"You answer ten questions about the last two weeks, a few follow-up questions tailored to your answers, " +
			"and receive a summary with suggestions.\n\n" +
			"Answers are analyzed by the InnerBalance service when it is reachable. " +
			"Without it, the app scores your answers locally so you are never left without a result.",
	}

	Help = Page{
		Title: "Help",
		Body: "Use the arrow keys to highlight an answer and Enter to choose it. Digits pick a rating directly; y and n answer yes/no questions.\n\n" +
			"Tab moves to the next question and Shift+Tab goes back. On the last question press Ctrl+S to submit.\n\n" +
			"If you are struggling or in crisis, please contact a local emergency number or a crisis line right away. " +
			"This tool is not a diagnosis and does not replace a professional.",
	}

	Contact = Page{
		Title: "Contact",
		Body: "Questions or feedback about InnerBalance are welcome.\n\n" +
			"Email: support@innerbalance.app\n\n" +
			"For anything urgent, please reach out to a healthcare professional or local emergency services.",
	}
)

// InfoScreen shows a static page.
type InfoScreen struct {
	page Page
}

var _ screen.Screen = (*InfoScreen)(nil)
var _ screen.KeyHintProvider = (*InfoScreen)(nil)

// New creates an InfoScreen for page.
func New(page Page) *InfoScreen {
	return &InfoScreen{page: page}
}

func (s *InfoScreen) Init() tea.Cmd {
	return nil
}

func (s *InfoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *InfoScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	content := theme.Title.Width(cw - 4).Render(s.page.Title) + "\n\n" +
		theme.Body.Render(layout.Wrap(s.page.Body, cw-4))
	return components.Center(components.Card(content, cw), width, height)
}

func (s *InfoScreen) Title() string {
	return s.page.Title
}

func (s *InfoScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}
