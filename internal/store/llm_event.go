package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const llmEventsTable = "llm_request_events"

var llmEventColumns = []string{
	"id", "timestamp_ms", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body",
}

// LLMEventRepo is the SQLite-backed LLM audit log.
type LLMEventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *LLMEventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *LLMEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := builder().Insert(llmEventsTable).
		Columns(llmEventColumns[1:]...).
		Values(
			r.clock().UTC().UnixMilli(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns events newest first.
func (r *LLMEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := builder().Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		OrderBy(entsql.Desc("id"))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetLLMEvent returns a single event, or nil if no event has that id.
func (r *LLMEventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	query, args := builder().Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanLLMEvent(rows)
}

// LLMUsageByPurpose aggregates calls and tokens per purpose label.
func (r *LLMEventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "purpose")
}

// LLMUsageByModel aggregates calls and tokens per model.
func (r *LLMEventRepo) LLMUsageByModel(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "model")
}

func (r *LLMEventRepo) usageBy(ctx context.Context, column string) ([]UsageStat, error) {
	query, args := builder().Select(
		column,
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency_ms"),
	).
		From(entsql.Table(llmEventsTable)).
		GroupBy(column).
		OrderBy(column).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", column, err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var (
			key     string
			st      UsageStat
			in, out int64
			avg     float64
		)
		if err := rows.Scan(&key, &st.Calls, &in, &out, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		st.InputTokens = int(in)
		st.OutputTokens = int(out)
		st.AvgLatencyMs = int64(avg)
		if column == "model" {
			st.Model = key
		} else {
			st.Purpose = key
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func scanLLMEvent(rows *sql.Rows) (*LLMEvent, error) {
	var (
		e  LLMEvent
		ts int64
	)
	err := rows.Scan(
		&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp = time.UnixMilli(ts).UTC()
	return &e, nil
}
