package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
)

// Operation labels attached to the request log.
const (
	OpQuestions      = "questions"
	OpAnalyzeInitial = "analyze-initial"
	OpGenerateReport = "generate-report"
)

// Service runs the domain operations against the collaborator.
type Service struct {
	client *api.Client
	now    func() time.Time
}

// NewService creates a Service over client.
func NewService(client *api.Client) *Service {
	return &Service{client: client, now: time.Now}
}

// FetchQuestions returns the baseline questionnaire. A malformed or empty
// reply, or any request failure, yields the built-in set.
func (s *Service) FetchQuestions(ctx context.Context) Result[QuestionSet] {
	raw, err := s.client.Get(api.WithOperation(ctx, OpQuestions), "/questions/")
	if err != nil {
		return Fallback(FallbackQuestionSet(), err)
	}
	set, err := decodeQuestionSet(raw)
	if err != nil {
		return Fallback(FallbackQuestionSet(), err)
	}
	return Ok(set)
}

// AnalyzeInitial submits the baseline answers. On failure the answers are
// scored locally. An empty assessmentID is sent as null.
func (s *Service) AnalyzeInitial(ctx context.Context, answers Answers, assessmentID ID) Result[InitialAnalysis] {
	body := analyzeRequest{Answers: answers}
	if assessmentID != "" {
		body.AssessmentID = &assessmentID
	}

	raw, err := s.client.Post(api.WithOperation(ctx, OpAnalyzeInitial), "/analyze-initial/", body)
	if err == nil {
		var analysis InitialAnalysis
		if err = json.Unmarshal(raw, &analysis); err == nil {
			return Ok(analysis)
		}
		err = &api.InvalidResponseError{Content: raw, Err: fmt.Errorf("decode analysis: %w", err)}
	}

	local := LocalAnalysis(answers, assessmentID, s.now())
	local.Fallback = true
	local.Error = err.Error()
	return Fallback(local, err)
}

// GenerateReport requests the final report. On failure a minimal summary
// is assembled locally.
func (s *Service) GenerateReport(ctx context.Context, assessmentID ID, initial Answers, followUps FollowUpResponses) Result[Report] {
	body := reportRequest{
		AssessmentID:      assessmentID,
		InitialAnswers:    initial,
		FollowUpResponses: followUps,
	}

	raw, err := s.client.Post(api.WithOperation(ctx, OpGenerateReport), "/generate-report/", body)
	if err == nil {
		var report Report
		if err = json.Unmarshal(raw, &report); err == nil {
			return Ok(report)
		}
		err = &api.InvalidResponseError{Content: raw, Err: fmt.Errorf("decode report: %w", err)}
	}

	local := LocalReport(assessmentID, initial, followUps, s.now())
	local.Fallback = true
	local.Error = err.Error()
	return Fallback(local, err)
}
