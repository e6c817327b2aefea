package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jazzdrill/jazzdrill/internal/report"
	"github.com/jazzdrill/jazzdrill/internal/spacedrep"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show practice statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, st, err := a.openScheduler(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			due := make(map[spacedrep.Mode]int)
			for _, m := range spacedrep.Modes() {
				due[m] = sched.DueCount(m)
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Stats(sched.Statistics(), due))
			return nil
		},
	}
}
