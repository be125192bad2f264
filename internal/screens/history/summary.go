package history

import (
	"encoding/json"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

// reportSummary pulls report.summary or analysis.symptom_summary out of a
// stored result document.
func reportSummary(rec store.AssessmentRecord) string {
	var doc struct {
		Report struct {
			Summary string `json:"summary"`
		} `json:"report"`
		Analysis struct {
			SymptomSummary string `json:"symptom_summary"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(rec.Result, &doc); err != nil {
		return ""
	}
	if doc.Report.Summary != "" {
		return doc.Report.Summary
	}
	return doc.Analysis.SymptomSummary
}
