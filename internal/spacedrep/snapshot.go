package spacedrep

import (
	"fmt"
	"sort"
	"time"

	"github.com/jazzdrill/jazzdrill/internal/store"
)

// encodeSchedules converts the in-memory store into its serialized form,
// sorted by item identity so equal stores encode identically.
func encodeSchedules(items map[ItemID]*Schedule) *store.SnapshotData {
	ids := make([]ItemID, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

	data := &store.SnapshotData{
		Format: store.SnapshotFormat,
		Items:  make([]*store.ItemRecord, 0, len(ids)),
	}
	for _, id := range ids {
		data.Items = append(data.Items, encodeItem(id, *items[id]))
	}
	return data
}

func encodeItem(id ItemID, s Schedule) *store.ItemRecord {
	rec := &store.ItemRecord{
		Mode:               string(id.Mode),
		Topic:              id.Topic,
		Key:                id.Key,
		Variant:            id.Variant,
		EaseFactor:         s.EaseFactor,
		IntervalDays:       s.IntervalDays,
		DueDate:            formatTime(s.DueDate),
		TotalReviews:       s.TotalReviews,
		CorrectReviews:     s.CorrectReviews,
		ConsecutiveCorrect: s.ConsecutiveCorrect,
		Maturity:           s.Maturity.String(),
	}
	if !s.LastReviewedAt.IsZero() {
		rec.LastReviewedAt = formatTime(s.LastReviewedAt)
	}
	return rec
}

// decodeSchedules rebuilds the in-memory store. Any record that breaks a
// schedule invariant rejects the whole snapshot.
func decodeSchedules(data *store.SnapshotData) (map[ItemID]*Schedule, error) {
	items := make(map[ItemID]*Schedule)
	if data == nil {
		return items, nil
	}
	if data.Format != "" {
		if err := store.CheckFormat(data.Format); err != nil {
			return nil, err
		}
	}

	for i, rec := range data.Items {
		if rec == nil {
			return nil, fmt.Errorf("item %d: missing record", i)
		}
		id, s, err := decodeItem(rec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := items[id]; dup {
			return nil, fmt.Errorf("item %d: duplicate item %s", i, id)
		}
		items[id] = &s
	}
	return items, nil
}

func decodeItem(rec *store.ItemRecord) (ItemID, Schedule, error) {
	id := ItemID{
		Mode:    Mode(rec.Mode),
		Topic:   rec.Topic,
		Key:     rec.Key,
		Variant: rec.Variant,
	}
	if err := id.Validate(); err != nil {
		return ItemID{}, Schedule{}, err
	}

	due, err := time.Parse(time.RFC3339Nano, rec.DueDate)
	if err != nil {
		return ItemID{}, Schedule{}, fmt.Errorf("%s: due date: %w", id, err)
	}

	s := Schedule{
		EaseFactor:         rec.EaseFactor,
		IntervalDays:       rec.IntervalDays,
		DueDate:            due.UTC(),
		TotalReviews:       rec.TotalReviews,
		CorrectReviews:     rec.CorrectReviews,
		ConsecutiveCorrect: rec.ConsecutiveCorrect,
	}
	if rec.LastReviewedAt != "" {
		last, err := time.Parse(time.RFC3339Nano, rec.LastReviewedAt)
		if err != nil {
			return ItemID{}, Schedule{}, fmt.Errorf("%s: last reviewed: %w", id, err)
		}
		s.LastReviewedAt = last.UTC()
	}
	if rec.Maturity != "" {
		if _, err := ParseMaturityLevel(rec.Maturity); err != nil {
			return ItemID{}, Schedule{}, fmt.Errorf("%s: %w", id, err)
		}
	}
	// The cached level is always re-derived so it cannot drift from the interval.
	s.Maturity = MaturityOf(s)

	if err := checkSchedule(s); err != nil {
		return ItemID{}, Schedule{}, fmt.Errorf("%s: %w", id, err)
	}
	return id, s, nil
}

func checkSchedule(s Schedule) error {
	switch {
	case s.EaseFactor < MinEaseFactor || s.EaseFactor > MaxEaseFactor:
		return fmt.Errorf("ease factor %.3f outside [%.1f, %.1f]", s.EaseFactor, MinEaseFactor, MaxEaseFactor)
	case s.IntervalDays < 0:
		return fmt.Errorf("negative interval %d", s.IntervalDays)
	case s.TotalReviews < 0 || s.CorrectReviews < 0 || s.ConsecutiveCorrect < 0:
		return fmt.Errorf("negative review counter")
	case s.CorrectReviews > s.TotalReviews:
		return fmt.Errorf("correct reviews %d exceed total %d", s.CorrectReviews, s.TotalReviews)
	case s.ConsecutiveCorrect > s.CorrectReviews:
		return fmt.Errorf("consecutive correct %d exceed correct reviews %d", s.ConsecutiveCorrect, s.CorrectReviews)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
