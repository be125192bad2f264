// Package questionnaire is the assessment wizard. Requests run as
// commands off the update loop; their events are applied to the flow
// machine when they arrive.
package questionnaire

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/router"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screen"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/result"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/components"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
)

const (
	msgAnswerRequired = "Please answer this question to continue."
	msgSubmitFromLast = "Answer every question, then submit from the last one."
	recordTimeout     = 5 * time.Second
)

var tickInterval = 120 * time.Millisecond

var scaleOptions = []components.ChoiceOption{
	{Label: "0  Not at all", Value: "0"},
	{Label: "1  Several days", Value: "1"},
	{Label: "2  More than half the days", Value: "2"},
	{Label: "3  Nearly every day", Value: "3"},
}

var yesNoOptions = []components.ChoiceOption{
	{Label: "Yes", Value: "Yes"},
	{Label: "No", Value: "No"},
}

// QuestionnaireScreen runs one assessment session.
type QuestionnaireScreen struct {
	backend flow.Backend
	events  store.EventRepo
	machine *flow.Machine

	choice components.Choice
	input  components.TextInput
	isText bool

	errMsg string
	frame  int
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)

// New creates a QuestionnaireScreen. Completed outcomes are recorded in
// events when it is non-nil.
func New(backend flow.Backend, events store.EventRepo) *QuestionnaireScreen {
	return &QuestionnaireScreen{
		backend: backend,
		events:  events,
		machine: flow.New(backend),
	}
}

// Machine exposes the underlying state machine.
func (s *QuestionnaireScreen) Machine() *flow.Machine {
	return s.machine
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return s.start()
}

func (s *QuestionnaireScreen) start() tea.Cmd {
	s.machine = flow.New(s.backend)
	s.errMsg = ""
	eff, err := s.machine.Start()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return tea.Batch(runEffect(eff), tick())
}

func runEffect(eff flow.Effect) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{Event: eff(context.Background())}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *QuestionnaireScreen) Title() string {
	if s.machine.Phase() == flow.PhaseFollowUp && s.machine.State() == flow.StateAnswering {
		return "Follow-up Questions"
	}
	return "Assessment"
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	switch s.machine.State() {
	case flow.StateUnavailable:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case flow.StateAnswering:
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	hints := []layout.KeyHint{}
	if !s.isText {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Highlight"}, layout.KeyHint{Key: "Enter", Description: "Choose"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Tab", Description: "Next"},
		layout.KeyHint{Key: "⇧Tab", Description: "Previous"},
	)
	if s.machine.OnLast() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
	}
	if s.machine.Notice() != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+X", Description: "Dismiss"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave"})
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return s, s.apply(msg.Event)

	case spinnerTickMsg:
		if s.machine.State().Busy() {
			s.frame++
			return s, tick()
		}
		return s, nil

	case components.ChoiceMadeMsg:
		s.record(msg.Value)
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.isText && s.machine.State() == flow.StateAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestionnaireScreen) apply(ev flow.Event) tea.Cmd {
	if err := s.machine.Apply(ev); err != nil {
		s.errMsg = err.Error()
		return nil
	}

	var cmds []tea.Cmd
	if st, ok := observedStatus(ev); ok {
		cmds = append(cmds, func() tea.Msg { return screen.BackendStatusMsg{Status: st} })
	}
	switch s.machine.State() {
	case flow.StateAnswering:
		s.syncQuestion()
	case flow.StateDone:
		cmds = append(cmds, s.finish())
	}
	return tea.Batch(cmds...)
}

// observedStatus derives the header indicator from a call's outcome. A
// fallback caused by a server error says nothing about reachability.
func observedStatus(ev flow.Event) (layout.BackendStatus, bool) {
	var fallback, offline bool
	switch ev := ev.(type) {
	case flow.QuestionsLoaded:
		fallback, offline = ev.Result.IsFallback(), ev.Result.Offline()
	case flow.AnalysisReady:
		fallback, offline = ev.Result.IsFallback(), ev.Result.Offline()
	case flow.ReportReady:
		fallback, offline = ev.Result.IsFallback(), ev.Result.Offline()
	}
	switch {
	case offline:
		return layout.StatusOffline, true
	case !fallback:
		return layout.StatusOnline, true
	}
	return layout.StatusUnknown, false
}

// finish records the outcome and swaps this screen for the result.
func (s *QuestionnaireScreen) finish() tea.Cmd {
	o := s.machine.Outcome()
	notice := s.machine.Notice()
	events := s.events
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		err := flow.Record(ctx, events, o)
		return router.ReplaceScreenMsg{Screen: result.New(o, notice, err)}
	}
}

// syncQuestion rebuilds the answer widget for the current question,
// preloaded with any recorded answer.
func (s *QuestionnaireScreen) syncQuestion() {
	q, ok := s.machine.Current()
	if !ok {
		return
	}
	val := ""
	if v, ok := s.machine.CurrentAnswer(); ok {
		val = v.String()
	}

	switch q.Type {
	case assessment.TypeScale:
		s.isText = false
		s.choice = components.NewChoice(scaleOptions, val)
	case assessment.TypeYesNo:
		s.isText = false
		s.choice = components.NewChoice(yesNoOptions, val)
	default:
		s.isText = true
		s.input = components.NewTextInput("Type your answer…", val)
	}
}

func (s *QuestionnaireScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	state := s.machine.State()

	if state == flow.StateUnavailable && key == "r" {
		return s.start()
	}
	if state != flow.StateAnswering {
		return nil
	}
	s.errMsg = ""

	switch key {
	case "ctrl+s":
		return s.submit()
	case "ctrl+x":
		s.machine.DismissNotice()
		return nil
	case "tab":
		s.next()
		return nil
	case "shift+tab":
		s.prev()
		return nil
	}

	if !s.isText {
		switch key {
		case "right", "l":
			s.next()
			return nil
		case "left", "h":
			s.prev()
			return nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return cmd
	}

	if key == "enter" {
		if s.record(s.input.Value()) && !s.machine.OnLast() {
			s.next()
		}
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// record stores raw as the current answer and reports success.
func (s *QuestionnaireScreen) record(raw string) bool {
	if err := s.machine.Answer(raw); err != nil {
		s.errMsg = err.Error()
		return false
	}
	s.errMsg = ""
	return true
}

// savePending records typed but unsaved text before leaving a question.
func (s *QuestionnaireScreen) savePending() bool {
	if !s.isText || s.input.Value() == "" {
		return true
	}
	return s.record(s.input.Value())
}

func (s *QuestionnaireScreen) next() {
	if !s.savePending() {
		return
	}
	if s.machine.OnLast() {
		return
	}
	if !s.machine.CanNext() {
		s.errMsg = msgAnswerRequired
		return
	}
	if err := s.machine.Next(); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.syncQuestion()
}

func (s *QuestionnaireScreen) prev() {
	s.savePending()
	s.errMsg = ""
	if !s.machine.CanPrev() {
		return
	}
	if err := s.machine.Prev(); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.syncQuestion()
}

func (s *QuestionnaireScreen) submit() tea.Cmd {
	if !s.savePending() {
		return nil
	}
	if !s.machine.CanSubmit() {
		if s.machine.OnLast() {
			s.errMsg = msgAnswerRequired
		} else {
			s.errMsg = msgSubmitFromLast
		}
		return nil
	}
	eff, err := s.machine.Submit()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return tea.Batch(runEffect(eff), tick())
}
