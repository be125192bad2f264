// Package assessment defines the questionnaire domain model and the three
// operations the assessment flow performs against the remote collaborator.
// Every operation degrades to a deterministic local payload instead of
// failing.
package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a question or an assessment. The collaborator sends either
// JSON strings or numbers; both decode to the same ID.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits ids in canonical integer form ("12", "-3") as numbers
// and everything else, including "007" and "+5", as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// QuestionType selects how an answer is entered and coerced.
type QuestionType string

const (
	TypeScale QuestionType = "scale"
	TypeYesNo QuestionType = "yesno"
	TypeText  QuestionType = "text"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeScale, TypeYesNo, TypeText:
		return true
	}
	return false
}

// Scale bounds for TypeScale answers.
const (
	ScaleMin = 0
	ScaleMax = 3
)

// Question is a single questionnaire item.
type Question struct {
	ID       ID           `json:"id" yaml:"id"`
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"question_type" yaml:"question_type"`
	Category string       `json:"category,omitempty" yaml:"category"`
	Order    int          `json:"order,omitempty" yaml:"order"`
	FollowUp bool         `json:"is_follow_up,omitempty" yaml:"is_follow_up"`
}

// UnmarshalJSON accepts the legacy "type" key when "question_type" is absent.
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var aux struct {
		plain
		LegacyType QuestionType `json:"type"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*q = Question(aux.plain)
	if q.Type == "" {
		q.Type = aux.LegacyType
	}
	return nil
}

// QuestionSet is the baseline questionnaire.
type QuestionSet struct {
	Count     int        `json:"count"`
	Questions []Question `json:"questions"`
}

// RiskLevel is the coarse classification produced by analysis.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Answers maps question ids to recorded values.
type Answers map[ID]Value

// Clone returns a shallow copy of a.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// FollowUpResponses maps follow-up question text to the answer given.
type FollowUpResponses map[string]Value

// InitialAnalysis is the result of analyzing the baseline answers.
type InitialAnalysis struct {
	AssessmentID      ID             `json:"assessment_id"`
	Analysis          map[string]any `json:"analysis,omitempty"`
	FollowUpQuestions []string       `json:"follow_up_questions,omitempty"`
	RiskLevel         RiskLevel      `json:"risk_level,omitempty"`
	Status            string         `json:"status,omitempty"`
	Fallback          bool           `json:"fallback,omitempty"`
	Error             string         `json:"error,omitempty"`
}

// Report is the final clinical report.
type Report struct {
	AssessmentID       ID             `json:"assessment_id,omitempty"`
	Report             map[string]any `json:"report"`
	Status             string         `json:"status,omitempty"`
	AssessmentComplete bool           `json:"assessment_complete"`
	Fallback           bool           `json:"fallback,omitempty"`
	Error              string         `json:"error,omitempty"`
}

// analyzeRequest is the body of POST /analyze-initial/.
type analyzeRequest struct {
	Answers      Answers `json:"answers"`
	AssessmentID *ID     `json:"assessment_id"`
}

// reportRequest is the body of POST /generate-report/.
type reportRequest struct {
	AssessmentID      ID                `json:"assessment_id"`
	InitialAnswers    Answers           `json:"initial_answers"`
	FollowUpResponses FollowUpResponses `json:"follow_up_responses"`
}
