package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jazzdrill/jazzdrill/internal/report"
	"github.com/jazzdrill/jazzdrill/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent answers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			dbPath, err := a.resolveDBPath()
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			events, err := st.EventRepo().QueryReviewEvents(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.History(events, a.now()))
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of answers to show (0 = all)")
	return cmd
}
