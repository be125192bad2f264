package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const assessmentEventsTable = "assessment_events"

var assessmentEventColumns = []string{
	"id", "sequence", "timestamp_ms", "assessment_id", "risk_level",
	"fallback", "offline", "initial_answers", "follow_up_answers", "result_json",
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	result := data.Result
	if len(result) == 0 {
		result = json.RawMessage("{}")
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(assessmentEventsTable).
		Columns(assessmentEventColumns[1:]...).
		Values(
			seqNum,
			r.clock().UnixMilli(),
			data.AssessmentID,
			data.RiskLevel,
			data.Fallback,
			data.Offline,
			data.InitialAnswers,
			data.FollowUpAnswers,
			string(result),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(assessmentEventColumns...).From(b.Table(assessmentEventsTable))
	applyQueryOpts(sel, opts)
	return r.scanAssessments(ctx, sel)
}

func (r *eventRepo) GetAssessment(ctx context.Context, id int) (*AssessmentRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(assessmentEventColumns...).
		From(b.Table(assessmentEventsTable)).
		Where(entsql.EQ("id", id)).
		Limit(1)

	recs, err := r.scanAssessments(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *eventRepo) scanAssessments(ctx context.Context, sel *entsql.Selector) ([]AssessmentRecord, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		var (
			rec    AssessmentRecord
			ts     int64
			result string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.AssessmentID, &rec.RiskLevel,
			&rec.Fallback, &rec.Offline, &rec.InitialAnswers, &rec.FollowUpAnswers,
			&result,
		); err != nil {
			return nil, fmt.Errorf("scan assessment event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.Result = json.RawMessage(result)
		out = append(out, rec)
	}
	return out, rows.Err()
}
