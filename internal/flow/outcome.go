package flow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

// Outcome is the terminal result of a session. Without a Report it is the
// initial analysis itself; with one it is the report merged with the
// initial analysis.
type Outcome struct {
	AssessmentID    assessment.ID
	Analysis        *assessment.InitialAnalysis
	Report          *assessment.Report
	Fallback        bool
	Offline         bool
	InitialAnswers  int
	FollowUpAnswers int
}

// RiskLevel returns the risk classification from the initial analysis.
func (o *Outcome) RiskLevel() assessment.RiskLevel {
	if o.Analysis == nil {
		return ""
	}
	return o.Analysis.RiskLevel
}

// MarshalJSON renders the outcome as the document shown to the user.
func (o *Outcome) MarshalJSON() ([]byte, error) {
	if o.Report == nil {
		return json.Marshal(o.Analysis)
	}

	raw, err := json.Marshal(o.Report)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["initial_analysis"] = o.Analysis
	doc["assessment_complete"] = true
	return json.Marshal(doc)
}

// Record stores a completed outcome for later review.
func Record(ctx context.Context, repo store.EventRepo, o *Outcome) error {
	if repo == nil || o == nil {
		return nil
	}
	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	return repo.AppendAssessment(ctx, store.AssessmentEventData{
		AssessmentID:    string(o.AssessmentID),
		RiskLevel:       string(o.RiskLevel()),
		Fallback:        o.Fallback,
		Offline:         o.Offline,
		InitialAnswers:  o.InitialAnswers,
		FollowUpAnswers: o.FollowUpAnswers,
		Result:          doc,
	})
}
