package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	original := DefaultConfig()
	original.Monitor.ThresholdMB = 256
	original.Monitor.Log = true
	require.NoError(t, Write(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.Version, loaded.Version)
	assert.Equal(t, original.Monitor, loaded.Monitor)
	assert.Equal(t, original.Output, loaded.Output)
}

func TestWrite_BadDirectory(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", ConfigFileName), DefaultConfig())
	require.Error(t, err)
}
