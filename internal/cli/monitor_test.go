package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glueful/memwatch/internal/config"
	"github.com/glueful/memwatch/internal/errors"
)

func resetMonitorFlags(t *testing.T) {
	t.Helper()
	flags := monitorCmd.Flags()
	for _, name := range []string{"interval", "threshold", "duration", "log", "csv"} {
		f := flags.Lookup(name)
		require.NotNil(t, f)
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
}

func TestResolveSession_DefaultsOnly(t *testing.T) {
	resetMonitorFlags(t)

	session, err := resolveSession(monitorCmd, config.DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, time.Second, session.Interval)
	assert.Equal(t, uint64(20*bytesPerMB), session.Threshold)
	assert.Zero(t, session.MaxDuration)
	assert.False(t, session.CSVEnabled)
	assert.Equal(t, "memory-usage.csv", session.CSVPath)
	assert.True(t, session.SelfTarget())
}

func TestResolveSession_ConfigFileValues(t *testing.T) {
	resetMonitorFlags(t)

	cfg := config.DefaultConfig()
	cfg.Monitor.Interval = 0.5
	cfg.Monitor.ThresholdMB = 100
	cfg.Monitor.Duration = 30
	cfg.Monitor.Log = true
	cfg.Monitor.CSV = "from-config.csv"

	session, err := resolveSession(monitorCmd, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, session.Interval)
	assert.Equal(t, uint64(100*bytesPerMB), session.Threshold)
	assert.Equal(t, 30*time.Second, session.MaxDuration)
	assert.True(t, session.CSVEnabled)
	assert.Equal(t, "from-config.csv", session.CSVPath)
}

func TestResolveSession_FlagsOverrideConfig(t *testing.T) {
	resetMonitorFlags(t)

	cfg := config.DefaultConfig()
	cfg.Monitor.Interval = 5
	cfg.Monitor.ThresholdMB = 100
	cfg.Monitor.CSV = "from-config.csv"

	flags := monitorCmd.Flags()
	require.NoError(t, flags.Set("interval", "2"))
	require.NoError(t, flags.Set("csv", "from-flag.csv"))

	session, err := resolveSession(monitorCmd, cfg, nil)
	require.NoError(t, err)

	// Explicitly set flags win; untouched values come from the file.
	assert.Equal(t, 2*time.Second, session.Interval)
	assert.Equal(t, "from-flag.csv", session.CSVPath)
	assert.Equal(t, uint64(100*bytesPerMB), session.Threshold)
}

func TestResolveSession_FractionalInterval(t *testing.T) {
	resetMonitorFlags(t)

	flags := monitorCmd.Flags()
	require.NoError(t, flags.Set("interval", "0.25"))

	session, err := resolveSession(monitorCmd, config.DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, session.Interval)
}

func TestResolveSession_ZeroInterval(t *testing.T) {
	resetMonitorFlags(t)

	flags := monitorCmd.Flags()
	require.NoError(t, flags.Set("interval", "0"))

	_, err := resolveSession(monitorCmd, config.DefaultConfig(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestResolveSession_CommandArgs(t *testing.T) {
	resetMonitorFlags(t)

	session, err := resolveSession(monitorCmd, config.DefaultConfig(), []string{"make", "build"})
	require.NoError(t, err)

	assert.Equal(t, []string{"make", "build"}, session.Command)
	assert.False(t, session.SelfTarget())
}
