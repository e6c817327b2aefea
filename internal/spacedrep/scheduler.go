package spacedrep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jazzdrill/jazzdrill/internal/store"
)

// DueItem pairs an item with a copy of its schedule.
type DueItem struct {
	ID       ItemID
	Schedule Schedule
}

// Change describes one schedule update. Before is the default schedule
// when Created is true.
type Change struct {
	ID      ItemID
	Created bool
	Before  Schedule
	After   Schedule
}

// Listener is notified after every successful RecordResult, on the
// caller's goroutine, once the store lock has been released.
type Listener func(Change)

// Scheduler owns the schedule store and applies the SM-2 derived update
// rule to answered questions. It is safe for concurrent use.
type Scheduler struct {
	mu    sync.RWMutex
	items map[ItemID]*Schedule

	snaps  store.SnapshotRepo
	events store.EventRepo

	clock      func() time.Time
	logger     *slog.Logger
	loc        *time.Location
	relearnNow bool
	keep       int
	sessionID  string
	listeners  []Listener

	loadWarning error
}

// NewScheduler creates a scheduler, loading schedules from the snapshot.
// A snapshot that does not describe a valid store is discarded with a
// warning and the scheduler starts empty. snaps and events may be nil for
// a purely in-memory scheduler.
func NewScheduler(snap *store.SnapshotData, snaps store.SnapshotRepo, events store.EventRepo, opts ...Option) *Scheduler {
	s := &Scheduler{
		items:  make(map[ItemID]*Schedule),
		snaps:  snaps,
		events: events,
		clock:  time.Now,
		logger: slog.New(slog.DiscardHandler),
		keep:   DefaultSnapshotKeep,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionID == "" {
		s.sessionID = uuid.New().String()
	}

	items, err := decodeSchedules(snap)
	if err != nil {
		s.discard(err)
		return s
	}
	s.items = items
	s.logger.Debug("schedules loaded", "items", len(items))
	return s
}

// Load builds a scheduler from the latest stored snapshot. A malformed
// snapshot is recovered from by starting empty; any other read failure is
// returned.
func Load(ctx context.Context, snaps store.SnapshotRepo, events store.EventRepo, opts ...Option) (*Scheduler, error) {
	snap, err := snaps.Latest(ctx)
	if err != nil {
		var merr *store.MalformedSnapshotError
		if !errors.As(err, &merr) {
			return nil, fmt.Errorf("load latest snapshot: %w", err)
		}
		s := NewScheduler(nil, snaps, events, opts...)
		s.discard(err)
		return s, nil
	}

	var data *store.SnapshotData
	if snap != nil {
		data = &snap.Data
	}
	return NewScheduler(data, snaps, events, opts...), nil
}

func (s *Scheduler) discard(err error) {
	s.items = make(map[ItemID]*Schedule)
	s.loadWarning = err
	s.logger.Warn("discarding malformed schedule snapshot, starting empty", "error", err)
}

// LoadWarning returns the reason persisted schedules were discarded at
// load time, or nil.
func (s *Scheduler) LoadWarning() error {
	return s.loadWarning
}

// SessionID returns the id attached to review events.
func (s *Scheduler) SessionID() string {
	return s.sessionID
}

// RecordResult applies one answered question to the item's schedule and
// persists the store. On a persistence failure the in-memory update is
// kept and the updated schedule is returned together with a *PersistError.
func (s *Scheduler) RecordResult(ctx context.Context, id ItemID, correct bool, responseSeconds float64) (Schedule, error) {
	if err := id.Validate(); err != nil {
		return Schedule{}, err
	}
	if err := validateResponseSeconds(responseSeconds); err != nil {
		return Schedule{}, err
	}

	now := s.clock().UTC()

	s.mu.Lock()
	prev, existed := s.items[id]
	before := NewSchedule(now)
	if existed {
		before = *prev
	}
	after, quality := applyOutcome(before, correct, responseSeconds, now)
	after.DueDate = s.dueDate(now, after.IntervalDays, correct)
	s.items[id] = &after
	persistErr := s.persistLocked(ctx, now)
	s.mu.Unlock()

	s.logger.Debug("review recorded",
		"item", id.String(),
		"correct", correct,
		"quality", quality,
		"ease", after.EaseFactor,
		"interval_days", after.IntervalDays,
		"maturity", after.Maturity.String(),
	)

	s.appendEvent(ctx, now, id, correct, responseSeconds, quality, after)

	change := Change{ID: id, Created: !existed, Before: before, After: after}
	for _, l := range s.listeners {
		l(change)
	}

	if persistErr != nil {
		return after, persistErr
	}
	return after, nil
}

func validateResponseSeconds(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &InvalidInputError{Field: "responseSeconds", Reason: "must be a finite number"}
	case v < 0:
		return &InvalidInputError{Field: "responseSeconds", Reason: fmt.Sprintf("must not be negative, got %g", v)}
	}
	return nil
}

func (s *Scheduler) dueDate(now time.Time, intervalDays int, correct bool) time.Time {
	if !correct && s.relearnNow {
		return now
	}
	if s.loc == nil {
		return now.AddDate(0, 0, intervalDays)
	}
	local := now.In(s.loc)
	day := time.Date(local.Year(), local.Month(), local.Day()+intervalDays, 0, 0, 0, 0, s.loc)
	return day.UTC()
}

// persistLocked writes the full store. Callers hold s.mu so snapshots
// land in mutation order.
func (s *Scheduler) persistLocked(ctx context.Context, now time.Time) error {
	if s.snaps == nil {
		return nil
	}
	snap := &store.Snapshot{
		Timestamp: now,
		Data:      *encodeSchedules(s.items),
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		s.logger.Warn("persist schedules failed, keeping in-memory state", "error", err)
		return &PersistError{Err: err}
	}
	if err := s.snaps.Prune(ctx, s.keep); err != nil {
		s.logger.Warn("prune snapshots failed", "keep", s.keep, "error", err)
	}
	return nil
}

func (s *Scheduler) appendEvent(ctx context.Context, now time.Time, id ItemID, correct bool, responseSeconds, quality float64, after Schedule) {
	if s.events == nil {
		return
	}
	err := s.events.AppendReviewEvent(ctx, store.ReviewEventData{
		ReviewedAt:   now,
		SessionID:    s.sessionID,
		Mode:         string(id.Mode),
		Topic:        id.Topic,
		Key:          id.Key,
		Variant:      id.Variant,
		Correct:      correct,
		ResponseMs:   responseMillis(responseSeconds),
		Quality:      quality,
		EaseFactor:   after.EaseFactor,
		IntervalDays: after.IntervalDays,
		Maturity:     after.Maturity.String(),
	})
	if err != nil {
		s.logger.Warn("append review event failed", "item", id.String(), "error", err)
	}
}

func responseMillis(seconds float64) int64 {
	ms := math.Round(seconds * 1000)
	if ms >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(ms)
}

// DueItems returns every item due at asOf, most overdue first. Items with
// the same due date are ordered by ItemID.Compare.
func (s *Scheduler) DueItems(asOf time.Time) []DueItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []DueItem
	for id, sched := range s.items {
		if sched.IsDue(asOf) {
			due = append(due, DueItem{ID: id, Schedule: *sched})
		}
	}
	sortDueItems(due)
	return due
}

// DueCount returns how many items are due now. An empty mode counts all
// modes.
func (s *Scheduler) DueCount(mode Mode) int {
	now := s.clock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for id, sched := range s.items {
		if mode != "" && id.Mode != mode {
			continue
		}
		if sched.IsDue(now) {
			n++
		}
	}
	return n
}

// Statistics aggregates the whole store.
func (s *Scheduler) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return computeStatistics(s.items)
}

// Get returns a copy of the item's schedule.
func (s *Scheduler) Get(id ItemID) (Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sched, ok := s.items[id]
	if !ok {
		return Schedule{}, false
	}
	return *sched, true
}

// Items returns every tracked item in due order.
func (s *Scheduler) Items() []DueItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]DueItem, 0, len(s.items))
	for id, sched := range s.items {
		all = append(all, DueItem{ID: id, Schedule: *sched})
	}
	sortDueItems(all)
	return all
}

func sortDueItems(items []DueItem) {
	sort.Slice(items, func(i, j int) bool {
		di, dj := items[i].Schedule.DueDate, items[j].Schedule.DueDate
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return items[i].ID.Compare(items[j].ID) < 0
	})
}
