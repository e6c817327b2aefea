package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotFormat is the semantic version of the serialized schedule
// layout written by this build. Readers accept any snapshot with the same
// major version; fields added in later minors are ignored and fields
// missing from earlier minors take their defaults.
const SnapshotFormat = "v1.1.0"

// SnapshotData is the full schedule store at a point in time.
type SnapshotData struct {
	Format string        `json:"format"`
	Items  []*ItemRecord `json:"items"`
}

// ItemRecord is one serialized item identity plus its schedule.
// Times are RFC 3339 strings with nanoseconds, in UTC.
type ItemRecord struct {
	Mode    string `json:"mode"`
	Topic   string `json:"topic"`
	Key     string `json:"key,omitempty"`
	Variant string `json:"variant,omitempty"`

	EaseFactor         float64 `json:"ease_factor"`
	IntervalDays       int     `json:"interval_days"`
	DueDate            string  `json:"due_date"`
	TotalReviews       int     `json:"total_reviews,omitempty"`
	CorrectReviews     int     `json:"correct_reviews,omitempty"`
	ConsecutiveCorrect int     `json:"consecutive_correct,omitempty"`
	Maturity           string  `json:"maturity,omitempty"`
	LastReviewedAt     string  `json:"last_reviewed_at,omitempty"`
}

// Snapshot represents a point-in-time capture of the schedule store.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages schedule snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is assigned from the
	// global sequence counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	// A stored snapshot that fails validation yields *MalformedSnapshotError.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// ReviewEventData captures one answered question and the schedule it produced.
type ReviewEventData struct {
	// ReviewedAt becomes the event timestamp. Zero means the time of the append.
	ReviewedAt   time.Time
	SessionID    string
	Mode         string
	Topic        string
	Key          string
	Variant      string
	Correct      bool
	ResponseMs   int64
	Quality      float64 // 0 for incorrect answers
	EaseFactor   float64
	IntervalDays int
	Maturity     string
}

// ReviewEventRecord is a stored review event.
type ReviewEventRecord struct {
	EventID   string
	Sequence  int64
	Timestamp time.Time
	ReviewEventData
}

// EventRepo provides append and query access to review events.
type EventRepo interface {
	// AppendReviewEvent records a review outcome.
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// QueryReviewEvents returns events newest first.
	QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error)
}
