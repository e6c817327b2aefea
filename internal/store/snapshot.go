package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo with ent's SQL builders.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data := snap.Data
	if data.Format == "" {
		data.Format = SnapshotFormat
	}
	if data.Items == nil {
		data.Items = []*ItemRecord{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	seq := snap.Sequence
	if seq == 0 {
		if seq, err = r.seq.Next(ctx); err != nil {
			return err
		}
	} else if err := r.seq.Advance(ctx, seq); err != nil {
		return err
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(SnapshotsTable.Name).
		Columns("sequence", "timestamp", "data").
		Values(seq, ts, string(b)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = int(id)
	}
	snap.Sequence = seq
	snap.Timestamp = ts
	snap.Data = data
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "data").
		From(entsql.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("sequence"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		s   Snapshot
		raw string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Sequence, &s.Timestamp, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	data, err := DecodeSnapshotData([]byte(raw))
	if err != nil {
		return nil, &MalformedSnapshotError{Sequence: s.Sequence, Err: err}
	}
	s.Data = data
	return &s, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep < 1 {
		return fmt.Errorf("prune snapshots: keep must be at least 1, got %d", keep)
	}

	// Find the sequence threshold: the first snapshot past the N most recent.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence").
		From(entsql.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("sequence"), entsql.Desc("id")).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep snapshots exist
		}
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(SnapshotsTable.Name).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// countRows returns the number of rows in table.
func countRows(ctx context.Context, db *sql.DB, table string) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(table)).
		Query()
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// SnapshotCount returns the number of stored snapshots.
func (s *Store) SnapshotCount(ctx context.Context) (int, error) {
	return countRows(ctx, s.db, SnapshotsTable.Name)
}
