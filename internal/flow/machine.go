package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
)

// Machine drives one assessment session. It is not safe for concurrent
// use; callers serialize access (the TUI does so on its update loop).
type Machine struct {
	backend Backend
	now     func() time.Time

	state     State
	phase     Phase
	questions []assessment.Question
	index     int
	answers   assessment.Answers

	assessmentID    assessment.ID
	initialAnswers  assessment.Answers
	initialAnalysis *assessment.InitialAnalysis
	offline         bool

	notice  *Notice
	outcome *Outcome
}

// New creates a Machine in the Loading state.
func New(backend Backend) *Machine {
	return &Machine{
		backend: backend,
		now:     time.Now,
		state:   StateLoading,
		answers: assessment.Answers{},
	}
}

// Start returns the effect that loads the baseline questions.
func (m *Machine) Start() (Effect, error) {
	if m.state != StateLoading || m.questions != nil {
		return nil, fmt.Errorf("%w: start from %s", ErrInvalidTransition, m.state)
	}
	backend := m.backend
	return func(ctx context.Context) Event {
		return QuestionsLoaded{Result: backend.FetchQuestions(ctx)}
	}, nil
}

// Run executes eff and applies its event.
func (m *Machine) Run(ctx context.Context, eff Effect) error {
	if eff == nil {
		return nil
	}
	return m.Apply(eff(ctx))
}

// Apply performs the transition for ev.
func (m *Machine) Apply(ev Event) error {
	switch ev := ev.(type) {
	case QuestionsLoaded:
		return m.applyQuestions(ev)
	case AnalysisReady:
		return m.applyAnalysis(ev)
	case ReportReady:
		return m.applyReport(ev)
	default:
		return fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
}

func (m *Machine) applyQuestions(ev QuestionsLoaded) error {
	if m.state != StateLoading {
		return fmt.Errorf("%w: questions loaded in %s", ErrInvalidTransition, m.state)
	}
	qs := ev.Result.Payload.Questions
	if len(qs) == 0 {
		m.state = StateUnavailable
		m.notice = &Notice{Level: NoticeError, Text: NoQuestionsError}
		return nil
	}

	m.questions = make([]assessment.Question, len(qs))
	copy(m.questions, qs)
	m.index = 0
	m.phase = PhaseInitial
	m.state = StateAnswering
	if ev.Result.IsFallback() {
		m.offline = ev.Result.Offline()
		m.notice = &Notice{Level: NoticeInfo, Text: OfflineNotice}
	}
	return nil
}

func (m *Machine) applyAnalysis(ev AnalysisReady) error {
	if m.state != StateAnalyzing {
		return fmt.Errorf("%w: analysis ready in %s", ErrInvalidTransition, m.state)
	}
	analysis := ev.Result.Payload
	m.assessmentID = analysis.AssessmentID
	if m.assessmentID == "" {
		m.assessmentID = assessment.LocalID(m.now())
	}
	if ev.Result.IsFallback() {
		m.offline = m.offline || ev.Result.Offline()
		m.notice = &Notice{Level: NoticeInfo, Text: LocalAnalysisNotice}
	}

	if len(analysis.FollowUpQuestions) == 0 {
		m.state = StateDone
		m.outcome = &Outcome{
			AssessmentID:    m.assessmentID,
			Analysis:        &analysis,
			Fallback:        ev.Result.IsFallback(),
			Offline:         m.offline,
			InitialAnswers:  len(m.initialAnswers),
			FollowUpAnswers: 0,
		}
		return nil
	}

	m.initialAnalysis = &analysis
	stamp := m.now().UnixMilli()
	first := len(m.questions)
	for i, text := range analysis.FollowUpQuestions {
		m.questions = append(m.questions, assessment.Question{
			ID:       assessment.ID(fmt.Sprintf("followup_%d_%d", i, stamp)),
			Text:     text,
			Type:     assessment.TypeText,
			FollowUp: true,
		})
	}
	m.phase = PhaseFollowUp
	m.index = first
	m.state = StateAnswering
	return nil
}

func (m *Machine) applyReport(ev ReportReady) error {
	if m.state != StateReporting {
		return fmt.Errorf("%w: report ready in %s", ErrInvalidTransition, m.state)
	}
	report := ev.Result.Payload
	if ev.Result.IsFallback() {
		m.offline = m.offline || ev.Result.Offline()
		m.notice = &Notice{Level: NoticeWarning, Text: ReportWarning}
	}
	m.state = StateDone
	m.outcome = &Outcome{
		AssessmentID:    m.assessmentID,
		Analysis:        m.initialAnalysis,
		Report:          &report,
		Fallback:        ev.Result.IsFallback(),
		Offline:         m.offline,
		InitialAnswers:  len(m.initialAnswers),
		FollowUpAnswers: len(m.followUpResponses()),
	}
	return nil
}

// Answer records raw input for the current question after coercing it to
// the question's type. Answers can be replaced but never removed.
func (m *Machine) Answer(raw string) error {
	if m.state != StateAnswering {
		return fmt.Errorf("%w: answer in %s", ErrInvalidTransition, m.state)
	}
	q := m.questions[m.index]
	v, err := assessment.Coerce(q.Type, raw)
	if err != nil {
		return err
	}
	m.answers[q.ID] = v
	return nil
}

// Next advances to the following question. The current question must be
// answered.
func (m *Machine) Next() error {
	if !m.CanNext() {
		return fmt.Errorf("%w: next from question %d", ErrInvalidTransition, m.index+1)
	}
	m.index++
	return nil
}

// Prev returns to the previous question.
func (m *Machine) Prev() error {
	if !m.CanPrev() {
		return fmt.Errorf("%w: prev from question %d", ErrInvalidTransition, m.index+1)
	}
	m.index--
	return nil
}

// CanNext reports whether Next is allowed.
func (m *Machine) CanNext() bool {
	return m.state == StateAnswering && m.index < len(m.questions)-1 && m.answered(m.index)
}

// CanPrev reports whether Prev is allowed.
func (m *Machine) CanPrev() bool {
	return m.state == StateAnswering && m.index > 0
}

// CanSubmit reports whether Submit is allowed: the last question is
// current and answered, and no request is outstanding.
func (m *Machine) CanSubmit() bool {
	return m.state == StateAnswering && m.index == len(m.questions)-1 && m.answered(m.index)
}

// OnLast reports whether the current question is the last one.
func (m *Machine) OnLast() bool {
	return len(m.questions) > 0 && m.index == len(m.questions)-1
}

func (m *Machine) answered(i int) bool {
	if i < 0 || i >= len(m.questions) {
		return false
	}
	v, ok := m.answers[m.questions[i].ID]
	return ok && !v.Empty()
}

// Submit moves to Analyzing (initial phase) or Reporting (follow-up phase)
// and returns the effect that performs the request.
func (m *Machine) Submit() (Effect, error) {
	if !m.CanSubmit() {
		return nil, fmt.Errorf("%w: submit in %s at question %d", ErrInvalidTransition, m.state, m.index+1)
	}
	m.notice = nil
	backend := m.backend

	if m.phase == PhaseInitial {
		snapshot := m.answers.Clone()
		m.initialAnswers = snapshot
		id := m.assessmentID
		m.state = StateAnalyzing
		return func(ctx context.Context) Event {
			return AnalysisReady{Result: backend.AnalyzeInitial(ctx, snapshot, id)}
		}, nil
	}

	followUps := m.followUpResponses()
	initial := m.initialAnswers
	id := m.assessmentID
	m.state = StateReporting
	return func(ctx context.Context) Event {
		return ReportReady{Result: backend.GenerateReport(ctx, id, initial, followUps)}
	}, nil
}

// followUpResponses keys follow-up answers by question text.
func (m *Machine) followUpResponses() assessment.FollowUpResponses {
	out := assessment.FollowUpResponses{}
	for _, q := range m.questions {
		if !q.FollowUp {
			continue
		}
		if v, ok := m.answers[q.ID]; ok {
			out[q.Text] = v
		}
	}
	return out
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Current returns the current question.
func (m *Machine) Current() (assessment.Question, bool) {
	if m.index < 0 || m.index >= len(m.questions) {
		return assessment.Question{}, false
	}
	return m.questions[m.index], true
}

// CurrentAnswer returns the recorded answer for the current question.
func (m *Machine) CurrentAnswer() (assessment.Value, bool) {
	q, ok := m.Current()
	if !ok {
		return assessment.Value{}, false
	}
	v, ok := m.answers[q.ID]
	return v, ok
}

// Questions returns a copy of the question sequence.
func (m *Machine) Questions() []assessment.Question {
	out := make([]assessment.Question, len(m.questions))
	copy(out, m.questions)
	return out
}

// Position returns the 1-based index of the current question and the
// total number of questions.
func (m *Machine) Position() (int, int) {
	return m.index + 1, len(m.questions)
}

// Progress returns (index+1)/total in [0, 1].
func (m *Machine) Progress() float64 {
	if len(m.questions) == 0 {
		return 0
	}
	return float64(m.index+1) / float64(len(m.questions))
}

// Notice returns the current banner, if any.
func (m *Machine) Notice() *Notice { return m.notice }

// DismissNotice clears the banner.
func (m *Machine) DismissNotice() { m.notice = nil }

// Outcome returns the terminal result once the machine is Done.
func (m *Machine) Outcome() *Outcome { return m.outcome }

// Session returns a snapshot of the session record.
func (m *Machine) Session() Session {
	s := Session{
		AssessmentID:    m.assessmentID,
		InitialAnalysis: m.initialAnalysis,
		Phase:           m.phase,
		CurrentIndex:    m.index,
	}
	if m.initialAnswers != nil {
		s.InitialAnswers = m.initialAnswers.Clone()
	}
	return s
}
