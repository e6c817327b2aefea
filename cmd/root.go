package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jazzdrill/jazzdrill/internal/config"
	"github.com/jazzdrill/jazzdrill/internal/logging"
	"github.com/jazzdrill/jazzdrill/internal/store"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&app{now: time.Now})
}

func buildRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "jazzdrill",
		Short: "Spaced-repetition drills for jazz harmony",
		Long: "Jazzdrill schedules chord, cadence, scale and interval drills with an SM-2 " +
			"derived algorithm and keeps the schedule in a local SQLite database.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	def := config.Default()
	pf := root.PersistentFlags()
	pf.String(config.ConfigFlag, "", "Path to YAML config file (overrides JAZZDRILL_CONFIG env var)")
	pf.String("db", "", "Path to SQLite database file (overrides JAZZDRILL_DB env var)")
	pf.String("log-level", def.LogLevel, "Log level: debug, info, warn or error")
	pf.String("log-format", def.LogFormat, "Log format: text or json")
	pf.Int("snapshot-keep", def.SnapshotKeep, "Number of schedule snapshots to retain")
	pf.String("due-granularity", def.DueGranularity, "Due date granularity: timestamp or day")
	pf.Bool("relearn-immediately", def.RelearnImmediately, "Make missed items due again at once")
	pf.String("timezone", def.Timezone, "IANA time zone for day granularity (default: local)")

	root.AddCommand(newRecordCmd(a))
	root.AddCommand(newDueCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// resolveDBPath returns the configured database path, which already
// reflects --db and JAZZDRILL_DB, or the default XDG path.
func (a *app) resolveDBPath() (string, error) {
	if p := a.cfg.DB; p != "" {
		if err := store.EnsureDir(p); err != nil {
			return "", fmt.Errorf("create database dir: %w", err)
		}
		return p, nil
	}
	return store.DefaultDBPath()
}
