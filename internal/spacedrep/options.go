package spacedrep

import (
	"log/slog"
	"time"
)

// DefaultSnapshotKeep is how many snapshots survive each prune.
const DefaultSnapshotKeep = 10

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now as the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithLogger sets the logger used for load and persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l.With("component", "spacedrep")
		}
	}
}

// WithCalendarDays makes due dates fall on the start of a local calendar
// day in loc instead of exactly N×24h after the review.
func WithCalendarDays(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.loc = loc
	}
}

// WithRelearnImmediately makes a wrong answer due again at once. The
// interval still drops to LapseIntervalDays.
func WithRelearnImmediately() Option {
	return func(s *Scheduler) {
		s.relearnNow = true
	}
}

// WithSnapshotKeep sets how many snapshots to retain. Values below 1 are ignored.
func WithSnapshotKeep(n int) Option {
	return func(s *Scheduler) {
		if n >= 1 {
			s.keep = n
		}
	}
}

// WithSessionID tags review events with the given session id.
func WithSessionID(id string) Option {
	return func(s *Scheduler) {
		if id != "" {
			s.sessionID = id
		}
	}
}

// WithListener registers a callback for schedule changes.
func WithListener(l Listener) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}
