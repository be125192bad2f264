package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// FailedOnly restricts request queries to unsuccessful attempts.
	FailedOnly bool
}

// RequestEventData captures a single attempt against the collaborator.
type RequestEventData struct {
	RequestID    string
	Operation    string
	Method       string
	Endpoint     string
	Path         string
	Status       int
	Attempt      int
	LatencyMs    int64
	Success      bool
	ErrorKind    string
	ErrorMessage string
}

// RequestEventRecord is a stored request event.
type RequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RequestEventData
}

// AssessmentEventData captures a completed assessment and its terminal result.
type AssessmentEventData struct {
	AssessmentID    string
	RiskLevel       string
	Fallback        bool
	Offline         bool
	InitialAnswers  int
	FollowUpAnswers int
	Result          json.RawMessage
}

// AssessmentRecord is a stored assessment event.
type AssessmentRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// EventRepo provides append and query access to local events.
type EventRepo interface {
	// AppendRequest records one attempt against the collaborator.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// QueryRequests returns request events, most recent first.
	QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error)

	// AppendAssessment records a completed assessment.
	AppendAssessment(ctx context.Context, data AssessmentEventData) error

	// QueryAssessments returns completed assessments, most recent first.
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error)

	// GetAssessment returns one assessment by row ID, or nil if not found.
	GetAssessment(ctx context.Context, id int) (*AssessmentRecord, error)
}
