package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jazzdrill/jazzdrill/internal/report"
	"github.com/jazzdrill/jazzdrill/internal/spacedrep"
	"github.com/jazzdrill/jazzdrill/internal/store"
)

// openScheduler opens the store and loads the latest schedule snapshot.
// The caller must close the returned store.
func (a *app) openScheduler(cmd *cobra.Command) (*spacedrep.Scheduler, *store.Store, error) {
	dbPath, err := a.resolveDBPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	opts, err := a.schedulerOptions()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	sched, err := spacedrep.Load(cmd.Context(), st.SnapshotRepo(), st.EventRepo(), opts...)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	if w := sched.LoadWarning(); w != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Warning("saved schedules were unreadable and have been reset: "+w.Error()))
	}
	return sched, st, nil
}

func (a *app) schedulerOptions() ([]spacedrep.Option, error) {
	opts := []spacedrep.Option{
		spacedrep.WithClock(a.now),
		spacedrep.WithLogger(a.logger),
		spacedrep.WithSnapshotKeep(a.cfg.SnapshotKeep),
	}
	if a.cfg.CalendarDays() {
		loc, err := a.cfg.Location()
		if err != nil {
			return nil, err
		}
		opts = append(opts, spacedrep.WithCalendarDays(loc))
	}
	if a.cfg.RelearnImmediately {
		opts = append(opts, spacedrep.WithRelearnImmediately())
	}
	return opts, nil
}
