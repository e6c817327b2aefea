package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// eventRepo implements EventRepo with ent's SQL builders.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var reviewEventColumns = []string{
	"event_id", "sequence", "timestamp", "session_id",
	"mode", "topic", "key", "variant",
	"correct", "response_ms", "quality",
	"ease_factor", "interval_days", "maturity",
}

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.ReviewedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(ReviewEventsTable.Name).
		Columns(reviewEventColumns...).
		Values(
			uuid.New().String(), seqNum, ts.UTC(), data.SessionID,
			data.Mode, data.Topic, data.Key, data.Variant,
			data.Correct, data.ResponseMs, data.Quality,
			data.EaseFactor, data.IntervalDays, data.Maturity,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(reviewEventColumns...).
		From(entsql.Table(ReviewEventsTable.Name))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var records []ReviewEventRecord
	for rows.Next() {
		var rec ReviewEventRecord
		err := rows.Scan(
			&rec.EventID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
			&rec.Mode, &rec.Topic, &rec.Key, &rec.Variant,
			&rec.Correct, &rec.ResponseMs, &rec.Quality,
			&rec.EaseFactor, &rec.IntervalDays, &rec.Maturity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		rec.ReviewedAt = rec.Timestamp
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	return records, nil
}

// ReviewEventCount returns the number of stored review events.
func (s *Store) ReviewEventCount(ctx context.Context) (int, error) {
	return countRows(ctx, s.db, ReviewEventsTable.Name)
}
