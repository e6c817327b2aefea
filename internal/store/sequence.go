package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out the global sequence shared by snapshots and
// review events, so history can be replayed from any snapshot onward.
// It lives in raw SQL because ent has no atomic counter primitive; the
// mutex serializes callers in this process and RETURNING keeps the
// increment atomic in SQLite.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Advance moves the counter past seq so that explicitly numbered rows
// never collide with later assigned ones.
func (sc *sequenceCounter) Advance(ctx context.Context, seq int64) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	_, err := sc.db.ExecContext(ctx,
		`UPDATE global_sequence SET next_val = ? WHERE id = 1 AND next_val <= ?`,
		seq+1, seq,
	)
	if err != nil {
		return fmt.Errorf("advance sequence: %w", err)
	}
	return nil
}
