package assessment

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fallback_questions.yaml
var fallbackYAML []byte

var (
	fallbackOnce sync.Once
	fallbackSet  []Question
	fallbackErr  error
)

// FallbackQuestions returns a copy of the built-in baseline questionnaire.
func FallbackQuestions() []Question {
	fallbackOnce.Do(func() {
		fallbackSet, fallbackErr = parseQuestions(fallbackYAML)
	})
	if fallbackErr != nil {
		// The file is embedded at build time, so this is a programming error.
		panic(fmt.Sprintf("assessment: invalid fallback questions: %v", fallbackErr))
	}
	out := make([]Question, len(fallbackSet))
	copy(out, fallbackSet)
	return out
}

// FallbackQuestionSet returns the built-in questionnaire as a QuestionSet.
func FallbackQuestionSet() QuestionSet {
	qs := FallbackQuestions()
	return QuestionSet{Count: len(qs), Questions: qs}
}

func parseQuestions(data []byte) ([]Question, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal questions YAML: %w", err)
	}
	for i, q := range doc.Questions {
		if q.ID == "" || q.Text == "" {
			return nil, fmt.Errorf("question %d: id and text are required", i)
		}
		if !q.Type.Valid() {
			return nil, fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
		}
	}
	return doc.Questions, nil
}

// FollowUpPrompts are asked when the collaborator cannot analyze the
// baseline answers.
var FollowUpPrompts = []string{
	"Can you tell me more about how you've been feeling lately?",
	"What activities or situations have been most challenging for you?",
	"How long have you been experiencing these feelings?",
	"What support systems do you have in place?",
	"Have you noticed any changes in your daily routine?",
}

// Report recommendations used when the report is assembled locally.
var offlineRecommendations = []string{
	"Please rerun when backend is online to get a full clinical report.",
	"Share these responses with a clinician for further review.",
}

// LocalID returns a timestamp-based assessment id.
func LocalID(now time.Time) ID {
	return ID(strconv.FormatInt(now.UnixMilli(), 10))
}

// ClassifyRisk buckets a mean answer score.
func ClassifyRisk(mean float64) RiskLevel {
	switch {
	case mean >= 2.5:
		return RiskHigh
	case mean >= 1.5:
		return RiskModerate
	default:
		return RiskLow
	}
}

// LocalAnalysis scores answers without the collaborator. Every answer is
// coerced with Value.Score, the mean is bucketed into a risk level, and a
// fixed set of follow-up prompts is attached. An empty assessmentID is
// replaced with a timestamp-based one.
func LocalAnalysis(answers Answers, assessmentID ID, now time.Time) InitialAnalysis {
	total := 0
	for _, v := range answers {
		total += v.Score()
	}
	var mean float64
	if len(answers) > 0 {
		mean = float64(total) / float64(len(answers))
	}

	if assessmentID == "" {
		assessmentID = LocalID(now)
	}

	prompts := make([]string, len(FollowUpPrompts))
	copy(prompts, FollowUpPrompts)

	return InitialAnalysis{
		AssessmentID: assessmentID,
		Analysis: map[string]any{
			"total_score":      total,
			"average_score":    fmt.Sprintf("%.2f", mean),
			"primary_concerns": []string{"General assessment"},
			"symptom_summary":  "Assessment completed in offline mode",
		},
		FollowUpQuestions: prompts,
		RiskLevel:         ClassifyRisk(mean),
		Status:            "success",
	}
}

// LocalReport assembles a minimal report from answer counts.
func LocalReport(assessmentID ID, initial Answers, followUps FollowUpResponses, now time.Time) Report {
	if assessmentID == "" {
		assessmentID = LocalID(now)
	}
	recs := make([]string, len(offlineRecommendations))
	copy(recs, offlineRecommendations)

	return Report{
		AssessmentID: assessmentID,
		Report: map[string]any{
			"summary":                   "Offline mode: report generated locally.",
			"initial_answers_count":     len(initial),
			"follow_up_responses_count": len(followUps),
			"recommendations":           recs,
		},
		Status:             "success",
		AssessmentComplete: true,
	}
}
