// Package flow implements the two-phase assessment state machine.
//
// The machine never performs I/O itself. Operations that need the
// collaborator return an Effect; the caller runs it (on any goroutine) and
// feeds the resulting Event back through Apply. Run does both
// synchronously.
package flow

import (
	"context"
	"errors"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
)

// State is the machine's single enumerated state.
type State int

const (
	StateLoading State = iota
	StateAnswering
	StateAnalyzing
	StateReporting
	StateDone
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnswering:
		return "answering"
	case StateAnalyzing:
		return "analyzing"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Busy reports whether a request is outstanding.
func (s State) Busy() bool {
	return s == StateLoading || s == StateAnalyzing || s == StateReporting
}

// Phase distinguishes baseline questions from follow-ups.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseFollowUp
)

func (p Phase) String() string {
	if p == PhaseFollowUp {
		return "follow-up"
	}
	return "initial"
}

// NoticeLevel classifies a user-facing banner.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice is a banner shown alongside the current question or result.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Banner texts.
const (
	OfflineNotice       = "Offline mode: Backend server is not available. Using default questions. Start the backend server for full functionality."
	LocalAnalysisNotice = "Offline mode: your answers were analyzed locally."
	ReportWarning       = "Could not generate the full report. Showing offline summary."
	NoQuestionsError    = "No questions available. Please refresh the page."
)

// ErrInvalidTransition is returned when an operation is not allowed in
// the current state.
var ErrInvalidTransition = errors.New("invalid transition")

// Backend is the set of domain operations the machine drives.
type Backend interface {
	FetchQuestions(ctx context.Context) assessment.Result[assessment.QuestionSet]
	AnalyzeInitial(ctx context.Context, answers assessment.Answers, assessmentID assessment.ID) assessment.Result[assessment.InitialAnalysis]
	GenerateReport(ctx context.Context, assessmentID assessment.ID, initial assessment.Answers, followUps assessment.FollowUpResponses) assessment.Result[assessment.Report]
}

// Effect performs one collaborator call and reports its outcome.
type Effect func(ctx context.Context) Event

// Event is the outcome of an Effect.
type Event interface {
	isEvent()
}

// QuestionsLoaded completes the Loading state.
type QuestionsLoaded struct {
	Result assessment.Result[assessment.QuestionSet]
}

// AnalysisReady completes the Analyzing state.
type AnalysisReady struct {
	Result assessment.Result[assessment.InitialAnalysis]
}

// ReportReady completes the Reporting state.
type ReportReady struct {
	Result assessment.Result[assessment.Report]
}

func (QuestionsLoaded) isEvent() {}
func (AnalysisReady) isEvent()   {}
func (ReportReady) isEvent()     {}

// Session is the in-memory record of one pass through the assessment.
type Session struct {
	AssessmentID    assessment.ID
	InitialAnswers  assessment.Answers
	InitialAnalysis *assessment.InitialAnalysis
	Phase           Phase
	CurrentIndex    int
}
