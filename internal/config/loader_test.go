package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glueful/memwatch/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
version: 1
monitor:
  interval: 0.5
  threshold_mb: 100
  duration: 60
  log: true
  csv: metrics/usage.csv
output:
  color: never
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Monitor.Interval)
	assert.Equal(t, uint64(100), cfg.Monitor.ThresholdMB)
	assert.Equal(t, uint64(60), cfg.Monitor.Duration)
	assert.True(t, cfg.Monitor.Log)
	assert.Equal(t, "metrics/usage.csv", cfg.Monitor.CSV)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
monitor:
  threshold_mb: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(50), cfg.Monitor.ThresholdMB)
	// Untouched fields keep their defaults.
	assert.Equal(t, float64(1), cfg.Monitor.Interval)
	assert.Equal(t, "memory-usage.csv", cfg.Monitor.CSV)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidColor(t *testing.T) {
	path := writeConfig(t, `
output:
  color: rainbow
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_NegativeInterval(t *testing.T) {
	path := writeConfig(t, `
monitor:
  interval: -2
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadOrDefault_NoFileReturnsDefaults(t *testing.T) {
	// Run from an empty directory with no config anywhere up the tree.
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git"), 0755))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Monitor, cfg.Monitor)
}

func TestLoadOrDefault_ExplicitMissingFileErrors(t *testing.T) {
	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind_CurrentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	found, err := Find("")
	require.NoError(t, err)
	// Compare resolved paths; the temp dir may be behind a symlink.
	assert.Equal(t, ConfigFileName, filepath.Base(found))
}

func TestFind_ParentDirectoryStopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("version: 1\n"), 0644))
	nested := filepath.Join(root, "sub", "dir")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(found))
}
