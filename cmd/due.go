package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jazzdrill/jazzdrill/internal/report"
	"github.com/jazzdrill/jazzdrill/internal/spacedrep"
)

func newDueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List items due for review, most overdue first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modeStr, _ := cmd.Flags().GetString("mode")
			asOfStr, _ := cmd.Flags().GetString("as-of")
			limit, _ := cmd.Flags().GetInt("limit")

			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			var mode spacedrep.Mode
			if modeStr != "" {
				m, err := spacedrep.ParseMode(modeStr)
				if err != nil {
					return err
				}
				mode = m
			}
			asOf, err := a.parseAsOf(asOfStr)
			if err != nil {
				return err
			}

			sched, st, err := a.openScheduler(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			var items []spacedrep.DueItem
			for _, it := range sched.DueItems(asOf) {
				if mode == "" || it.ID.Mode == mode {
					items = append(items, it)
				}
			}
			total := len(items)
			if limit > 0 && total > limit {
				items = items[:limit]
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Due(items, asOf, total))
			return nil
		},
	}

	cmd.Flags().String("mode", "", "Only list items of this mode")
	cmd.Flags().String("as-of", "", "Reference time: RFC 3339, or YYYY-MM-DD for the end of that day (default: now)")
	cmd.Flags().Int("limit", 0, "Maximum number of items to show (0 = all)")
	return cmd
}

// parseAsOf accepts an RFC 3339 timestamp or a calendar date. A date means
// the last instant of that day in the configured time zone.
func (a *app) parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return a.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}
