package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jazzdrill/jazzdrill/internal/report"
	"github.com/jazzdrill/jazzdrill/internal/spacedrep"
)

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the answer to one drill question",
		Long: "Record the answer to one drill question and reschedule the item.\n\n" +
			"A missed item is due again tomorrow. Pass --relearn-immediately (or set\n" +
			"relearn-immediately in the config) to make it due right away instead.",
		Example: "  jazzdrill record --mode chord --topic m7b5 --key C --correct --time 3.2\n" +
			"  jazzdrill record --mode cadence --topic ii-V-I --incorrect --time 9",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modeStr, _ := cmd.Flags().GetString("mode")
			topic, _ := cmd.Flags().GetString("topic")
			key, _ := cmd.Flags().GetString("key")
			variant, _ := cmd.Flags().GetString("variant")
			correct, _ := cmd.Flags().GetBool("correct")
			seconds, _ := cmd.Flags().GetFloat64("time")

			mode, err := spacedrep.ParseMode(modeStr)
			if err != nil {
				return err
			}
			id := spacedrep.ItemID{Mode: mode, Topic: topic, Key: key, Variant: variant}

			sched, st, err := a.openScheduler(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			s, err := sched.RecordResult(cmd.Context(), id, correct, seconds)
			var perr *spacedrep.PersistError
			if err != nil && !errors.As(err, &perr) {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Recorded(id, correct, s, a.now()))
			if perr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), report.Warning("answer recorded but not saved: "+perr.Err.Error()))
			}
			return nil
		},
	}

	cmd.Flags().String("mode", "", "Drill mode: chord, cadence, scale or interval")
	cmd.Flags().String("topic", "", "Topic within the mode (e.g. maj7, ii-V-I, dorian)")
	cmd.Flags().String("key", "", "Optional key or root (e.g. C, Bb)")
	cmd.Flags().String("variant", "", "Optional variant (e.g. spelling, inversion)")
	cmd.Flags().Bool("correct", false, "The answer was correct")
	cmd.Flags().Bool("incorrect", false, "The answer was wrong")
	cmd.Flags().Float64("time", 0, "Response time in seconds")

	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("time")
	cmd.MarkFlagsOneRequired("correct", "incorrect")
	cmd.MarkFlagsMutuallyExclusive("correct", "incorrect")
	return cmd
}
