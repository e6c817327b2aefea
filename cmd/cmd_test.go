package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzdrill/jazzdrill/internal/config"
	"github.com/jazzdrill/jazzdrill/internal/store"
)

var t0 = time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

// testEnv points every config and data path at a temp dir and returns the
// database path to pass with --db.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{"CONFIG", "DB", "LOG_LEVEL", "LOG_FORMAT", "SNAPSHOT_KEEP", "DUE_GRANULARITY", "RELEARN_IMMEDIATELY", "TIMEZONE"} {
		t.Setenv(config.EnvPrefix+key, "")
		os.Unsetenv(config.EnvPrefix + key)
	}
	return filepath.Join(dir, "drill.db")
}

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, now time.Time, db string, args ...string) result {
	t.Helper()
	root := buildRootCmd(&app{now: func() time.Time { return now }})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--db", db))
	err := root.ExecuteContext(context.Background())
	return result{stdout: ansi.Strip(out.String()), stderr: ansi.Strip(errOut.String()), err: err}
}

func TestRecordThenDue(t *testing.T) {
	db := testEnv(t)

	r := run(t, t0, db, "record", "--mode", "chord", "--topic", "maj7", "--key", "Eb", "--correct", "--time", "3")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "✓ correct")
	assert.Contains(t, r.stdout, "chord/maj7/Eb")
	assert.Contains(t, r.stdout, "interval 1 day")

	r = run(t, t0, db, "due")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Nothing due")

	r = run(t, t0, db, "due", "--as-of", t0.Add(24*time.Hour).Format(time.RFC3339))
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "chord/maj7/Eb")
	assert.Contains(t, r.stdout, "1 due")
}

func TestRecord_Incorrect(t *testing.T) {
	db := testEnv(t)

	r := run(t, t0, db, "record", "--mode", "cadence", "--topic", "ii-V-I", "--incorrect", "--time", "8")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "✗ missed")
	assert.Contains(t, r.stdout, "ease 2.30")
	assert.Contains(t, r.stdout, "streak 0")
}

func TestRecord_RelearnImmediately(t *testing.T) {
	db := testEnv(t)

	r := run(t, t0, db, "record", "--relearn-immediately", "--mode", "scale", "--topic", "dorian", "--incorrect", "--time", "5")
	require.NoError(t, r.err, r.stderr)

	r = run(t, t0, db, "due")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "scale/dorian")
}

func TestRecord_InvalidInput(t *testing.T) {
	db := testEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown mode", []string{"--mode", "rhythm", "--topic", "swing", "--correct", "--time", "2"}, "mode"},
		{"empty topic", []string{"--mode", "chord", "--topic", "", "--correct", "--time", "2"}, "topic"},
		{"negative time", []string{"--mode", "chord", "--topic", "maj7", "--correct", "--time", "-1"}, "response"},
		{"both outcomes", []string{"--mode", "chord", "--topic", "maj7", "--correct", "--incorrect", "--time", "2"}, "correct"},
		{"no outcome", []string{"--mode", "chord", "--topic", "maj7", "--time", "2"}, "correct"},
		{"missing time", []string{"--mode", "chord", "--topic", "maj7", "--correct"}, "time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, t0, db, append([]string{"record"}, tt.args...)...)
			require.Error(t, r.err)
			assert.Contains(t, strings.ToLower(r.err.Error()), tt.want)
		})
	}

	r := run(t, t0, db, "stats")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "items 0")
}

func TestDue_ModeAndLimit(t *testing.T) {
	db := testEnv(t)

	for _, args := range [][]string{
		{"--mode", "chord", "--topic", "maj7"},
		{"--mode", "chord", "--topic", "m7b5"},
		{"--mode", "interval", "--topic", "tritone"},
	} {
		r := run(t, t0, db, append(append([]string{"record"}, args...), "--correct", "--time", "2")...)
		require.NoError(t, r.err, r.stderr)
	}

	later := t0.Add(48 * time.Hour)

	r := run(t, later, db, "due")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "3 due")

	r = run(t, later, db, "due", "--mode", "chord")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "2 due")
	assert.NotContains(t, r.stdout, "tritone")

	r = run(t, later, db, "due", "--limit", "1")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "showing 1 of 3 due")

	r = run(t, later, db, "due", "--limit", "-1")
	assert.Error(t, r.err)

	r = run(t, later, db, "due", "--mode", "rhythm")
	assert.Error(t, r.err)
}

func TestStats(t *testing.T) {
	db := testEnv(t)

	require.NoError(t, run(t, t0, db, "record", "--mode", "chord", "--topic", "maj7", "--correct", "--time", "2").err)
	require.NoError(t, run(t, t0, db, "record", "--mode", "scale", "--topic", "lydian", "--incorrect", "--time", "6").err)

	r := run(t, t0.Add(25*time.Hour), db, "stats")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "items 2")
	assert.Contains(t, r.stdout, "reviewed 2")
	assert.Contains(t, r.stdout, "50%")
	assert.Contains(t, r.stdout, "chord 1")
	assert.Contains(t, r.stdout, "scale 1")
	assert.Contains(t, r.stdout, "cadence 0")
}

func TestHistory(t *testing.T) {
	db := testEnv(t)

	r := run(t, t0, db, "history")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No reviews recorded yet.")

	require.NoError(t, run(t, t0, db, "record", "--mode", "chord", "--topic", "maj7", "--correct", "--time", "2").err)
	require.NoError(t, run(t, t0, db, "record", "--mode", "interval", "--topic", "tritone", "--incorrect", "--time", "7").err)

	r = run(t, t0, db, "history")
	require.NoError(t, r.err)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "interval/tritone")
	assert.Contains(t, lines[1], "chord/maj7")

	r = run(t, t0, db, "history", "--limit", "1")
	require.NoError(t, r.err)
	assert.Len(t, strings.Split(strings.TrimSpace(r.stdout), "\n"), 1)
}

func TestMalformedSnapshotStartsEmpty(t *testing.T) {
	db := testEnv(t)

	st, err := store.Open(db)
	require.NoError(t, err)
	_, err = st.DB().Exec(
		`INSERT INTO snapshots (sequence, timestamp, data) VALUES (?, ?, ?)`,
		1, t0, `{"format":"v1.1.0","items":[{"mode":"chord"}]}`,
	)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	r := run(t, t0, db, "stats")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "warning:")
	assert.Contains(t, r.stdout, "items 0")

	// The next answer replaces the unreadable snapshot.
	require.NoError(t, run(t, t0, db, "record", "--mode", "chord", "--topic", "maj7", "--correct", "--time", "2").err)
	r = run(t, t0, db, "stats")
	require.NoError(t, r.err)
	assert.NotContains(t, r.stderr, "warning:")
	assert.Contains(t, r.stdout, "items 1")
}

func TestInvalidConfig(t *testing.T) {
	db := testEnv(t)

	r := run(t, t0, db, "stats", "--snapshot-keep", "0")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "snapshot-keep")

	t.Setenv(config.EnvPrefix+"DUE_GRANULARITY", "week")
	r = run(t, t0, db, "stats")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "due-granularity")
}

func TestRecord_MissedDueTomorrowByDefault(t *testing.T) {
	db := testEnv(t)

	r := run(t, t0, db, "record", "--help")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "due again tomorrow")
	assert.Contains(t, r.stdout, "--relearn-immediately")

	r = run(t, t0, db, "record", "--mode", "scale", "--topic", "dorian", "--incorrect", "--time", "5")
	require.NoError(t, r.err, r.stderr)

	r = run(t, t0, db, "due")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Nothing due")

	r = run(t, t0.Add(24*time.Hour), db, "due")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "scale/dorian")
}

func TestVersion(t *testing.T) {
	db := testEnv(t)
	t.Setenv(config.EnvPrefix+"LOG_LEVEL", "loud")

	r := run(t, t0, db, "version")
	require.NoError(t, r.err)
	assert.Equal(t, "jazzdrill (devel)\n", r.stdout)
}

func TestParseAsOf(t *testing.T) {
	a := &app{cfg: config.Config{Timezone: "UTC"}, now: func() time.Time { return t0 }}

	got, err := a.parseAsOf("")
	require.NoError(t, err)
	assert.Equal(t, t0, got)

	got, err = a.parseAsOf("2025-03-04T08:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 4, 8, 30, 0, 0, time.UTC)))

	got, err = a.parseAsOf("2025-03-04")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)))

	_, err = a.parseAsOf("next tuesday")
	assert.Error(t, err)
}
