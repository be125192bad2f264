package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/history"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/info"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/questionnaire"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/status"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/components"
)

// Prober is the collaborator client as seen by the TUI.
type Prober = status.Checker

// Deps are the services the home menu hands to the screens it opens.
type Deps struct {
	Backend flow.Backend
	Prober  Prober
	Events  store.EventRepo
}

type statsLoadedMsg struct {
	Taken    int
	LastRisk string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats statsLoadedMsg
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Take the assessment", Hint: "about 5 minutes", Disabled: deps.Backend == nil, Action: func() tea.Cmd {
			return push(questionnaire.New(deps.Backend, deps.Events))
		}},
		{Label: "History", Disabled: deps.Events == nil, Action: func() tea.Cmd {
			return push(history.New(deps.Events))
		}},
		{Label: "Backend status", Action: func() tea.Cmd {
			return push(status.New(deps.Prober))
		}},
		{Label: "About", Action: func() tea.Cmd {
			return push(info.New(info.About))
		}},
		{Label: "Help", Action: func() tea.Cmd {
			return push(info.New(info.Help))
		}},
		{Label: "Contact", Action: func() tea.Cmd {
			return push(info.New(info.Contact))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Events
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := repo.QueryAssessments(context.Background(), store.QueryOpts{})
		if err != nil || len(recs) == 0 {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{Taken: len(recs), LastRisk: recs[0].RiskLevel}
	}
}

// Resume reloads the stats, since the screen above may have recorded an
// assessment.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 24 || width < 80
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStats(h.stats.Taken, h.stats.LastRisk, cw),
		components.Card(h.menu.View(), cw),
		renderDisclaimer(cw),
	}
	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
