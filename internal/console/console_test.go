package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

type fakeBackend struct {
	questions assessment.Result[assessment.QuestionSet]
	analysis  assessment.Result[assessment.InitialAnalysis]
	report    assessment.Result[assessment.Report]

	analyzed  assessment.Answers
	followUps assessment.FollowUpResponses
}

func (f *fakeBackend) FetchQuestions(context.Context) assessment.Result[assessment.QuestionSet] {
	return f.questions
}

func (f *fakeBackend) AnalyzeInitial(_ context.Context, answers assessment.Answers, _ assessment.ID) assessment.Result[assessment.InitialAnalysis] {
	f.analyzed = answers
	return f.analysis
}

func (f *fakeBackend) GenerateReport(_ context.Context, _ assessment.ID, _ assessment.Answers, followUps assessment.FollowUpResponses) assessment.Result[assessment.Report] {
	f.followUps = followUps
	return f.report
}

func backend(types []assessment.QuestionType, followUps ...string) *fakeBackend {
	qs := make([]assessment.Question, len(types))
	for i, typ := range types {
		qs[i] = assessment.Question{ID: assessment.ID(fmt.Sprint(i + 1)), Text: fmt.Sprintf("Q%d?", i+1), Type: typ}
	}
	return &fakeBackend{
		questions: assessment.Ok(assessment.QuestionSet{Count: len(qs), Questions: qs}),
		analysis: assessment.Ok(assessment.InitialAnalysis{
			AssessmentID:      "c-1",
			Analysis:          map[string]any{"total_score": 5},
			FollowUpQuestions: followUps,
			RiskLevel:         assessment.RiskLow,
		}),
		report: assessment.Ok(assessment.Report{
			AssessmentID:       "c-1",
			Report:             map[string]any{"summary": "done"},
			AssessmentComplete: true,
		}),
	}
}

func run(t *testing.T, b *fakeBackend, repo store.EventRepo, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s := &Session{Backend: b, Events: repo, In: strings.NewReader(input), Out: &out}
	o, err := s.Run(context.Background())
	if err == nil {
		if werr := WriteOutcome(&out, o); werr != nil {
			t.Fatalf("WriteOutcome: %v", werr)
		}
	}
	return out.String(), err
}

func TestSessionInitialOnly(t *testing.T) {
	b := backend([]assessment.QuestionType{assessment.TypeScale, assessment.TypeYesNo})
	out, err := run(t, b, nil, "2\ny\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := b.analyzed["1"].String(); got != "2" {
		t.Errorf("answer 1 = %q, want 2", got)
	}
	if got := b.analyzed["2"].String(); got != "Yes" {
		t.Errorf("answer 2 = %q, want Yes", got)
	}
	for _, want := range []string{"Question 1 of 2 (50%)", "Question 2 of 2 (100%)", `"risk_level": "low"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionRejectsInvalidAndGoesBack(t *testing.T) {
	b := backend([]assessment.QuestionType{assessment.TypeScale, assessment.TypeScale})
	out, err := run(t, b, nil, "7\n\n1\n:b\n\n3\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "out of range") {
		t.Error("expected range error")
	}
	if !strings.Contains(out, "Please answer this question") {
		t.Error("expected answer-required message")
	}
	if got := b.analyzed["1"].String(); got != "1" {
		t.Errorf("answer 1 = %q, want 1 kept after going back", got)
	}
	if got := b.analyzed["2"].String(); got != "3" {
		t.Errorf("answer 2 = %q, want 3", got)
	}
}

func TestSessionRecordsBackAsTextAnswer(t *testing.T) {
	b := backend([]assessment.QuestionType{assessment.TypeScale}, "Where are you now?", "Anything else?")
	_, err := run(t, b, nil, "1
back
b
")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := b.followUps["Where are you now?"].String(); got != "back" {
		t.Errorf("first follow-up = %q, want back", got)
	}
	if got := b.followUps["Anything else?"].String(); got != "b" {
		t.Errorf("second follow-up = %q, want b", got)
	}
}

func TestSessionFollowUps(t *testing.T) {
	b := backend([]assessment.QuestionType{assessment.TypeScale}, "Sleep?", "Energy?")
	repo := openRepo(t)
	out, err := run(t, b, repo, "1\nrestless\nlow\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "follow-up questions") {
		t.Error("expected follow-up intro")
	}
	if b.followUps["Sleep?"].String() != "restless" || b.followUps["Energy?"].String() != "low" {
		t.Errorf("follow-ups = %v", b.followUps)
	}
	if !strings.Contains(out, `"assessment_complete": true`) || !strings.Contains(out, `"initial_analysis"`) {
		t.Errorf("expected merged report:\n%s", out)
	}

	recs, err := repo.QueryAssessments(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("QueryAssessments: %v", err)
	}
	if len(recs) != 1 || recs[0].FollowUpAnswers != 2 {
		t.Errorf("recorded = %+v", recs)
	}
}

func TestSessionOfflineNotice(t *testing.T) {
	b := backend(nil)
	b.questions = assessment.Fallback(assessment.QuestionSet{Count: 1, Questions: []assessment.Question{
		{ID: "1", Text: "Q1?", Type: assessment.TypeScale},
	}}, &api.NetworkUnavailableError{Endpoint: "http://x"})
	out, err := run(t, b, nil, "0\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "[note] Offline mode") {
		t.Errorf("expected offline notice:\n%s", out)
	}
}

func TestSessionNoQuestions(t *testing.T) {
	_, err := run(t, backend(nil), nil, "")
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}

func TestSessionAbortedOnEOF(t *testing.T) {
	_, err := run(t, backend([]assessment.QuestionType{assessment.TypeScale, assessment.TypeScale}), nil, "1\n")
	if !errors.Is(err, ErrAborted) {
		t.Errorf("err = %v, want ErrAborted", err)
	}
}

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "console.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}
