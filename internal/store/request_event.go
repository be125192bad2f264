package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const requestEventsTable = "request_events"

var requestEventColumns = []string{
	"id", "sequence", "timestamp_ms", "request_id", "operation", "method",
	"endpoint", "path", "status", "attempt", "latency_ms", "success",
	"error_kind", "error_message",
}

// eventRepo implements EventRepo over the ent SQL driver and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(requestEventsTable).
		Columns(requestEventColumns[1:]...).
		Values(
			seqNum,
			r.clock().UnixMilli(),
			data.RequestID,
			data.Operation,
			data.Method,
			data.Endpoint,
			data.Path,
			data.Status,
			data.Attempt,
			data.LatencyMs,
			data.Success,
			data.ErrorKind,
			data.ErrorMessage,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(requestEventColumns...).From(b.Table(requestEventsTable))
	if opts.FailedOnly {
		sel.Where(entsql.EQ("success", false))
	}
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var out []RequestEventRecord
	for rows.Next() {
		var (
			rec RequestEventRecord
			ts  int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.RequestID, &rec.Operation,
			&rec.Method, &rec.Endpoint, &rec.Path, &rec.Status, &rec.Attempt,
			&rec.LatencyMs, &rec.Success, &rec.ErrorKind, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// applyQueryOpts adds the shared filter, ordering and limit clauses.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp_ms", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp_ms", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
