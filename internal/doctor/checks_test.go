package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCheck returns a fixed result.
type stubCheck struct {
	name   string
	status CheckStatus
}

func (c *stubCheck) Name() string     { return c.name }
func (c *stubCheck) Category() string { return "STUB" }
func (c *stubCheck) Run() CheckResult {
	return CheckResult{Name: c.name, Status: c.status, Message: c.name}
}

func TestRunAll_PreservesOrder(t *testing.T) {
	checks := []Check{
		&stubCheck{name: "first", status: StatusPass},
		&stubCheck{name: "second", status: StatusFail},
		&stubCheck{name: "third", status: StatusWarn},
	}

	results := RunAll(checks)

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, "third", results[2].Name)
}

func TestCountByStatus(t *testing.T) {
	results := RunAll([]Check{
		&stubCheck{name: "a", status: StatusPass},
		&stubCheck{name: "b", status: StatusPass},
		&stubCheck{name: "c", status: StatusFail},
	})

	counts := CountByStatus(results)
	assert.Equal(t, 2, counts[StatusPass])
	assert.Equal(t, 1, counts[StatusFail])
	assert.Zero(t, counts[StatusWarn])
}

func TestHasFailuresAndIssues(t *testing.T) {
	clean := RunAll([]Check{&stubCheck{name: "a", status: StatusPass}})
	assert.False(t, HasFailures(clean))
	assert.False(t, HasIssues(clean))

	warned := RunAll([]Check{&stubCheck{name: "a", status: StatusWarn}})
	assert.False(t, HasFailures(warned))
	assert.True(t, HasIssues(warned))

	failed := RunAll([]Check{&stubCheck{name: "a", status: StatusFail}})
	assert.True(t, HasFailures(failed))
	assert.True(t, HasIssues(failed))
}

func TestCheckStatus_String(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "warn", StatusWarn.String())
	assert.Equal(t, "fail", StatusFail.String())
}

func TestSamplingCheck(t *testing.T) {
	result := (&SamplingCheck{}).Run()

	assert.Equal(t, StatusPass, result.Status)
	assert.Contains(t, result.Message, "Memory sampling works")
}

func TestLimitCheck(t *testing.T) {
	result := (&LimitCheck{}).Run()

	assert.Equal(t, StatusPass, result.Status)
	assert.Contains(t, result.Message, "Memory ceiling detected")
}

func TestConfigCheck_NoFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git"), 0755))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	result := (&ConfigCheck{}).Run()

	assert.Equal(t, StatusPass, result.Status)
	assert.Contains(t, result.Message, "defaults")
}

func TestConfigCheck_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".memwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  color: purple\n"), 0644))

	result := (&ConfigCheck{Explicit: path}).Run()

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "invalid")
}

func TestSinkCheck(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		status CheckStatus
	}{
		{
			name: "creatable in existing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "usage.csv")
			},
			status: StatusPass,
		},
		{
			name: "existing appendable file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "usage.csv")
				require.NoError(t, os.WriteFile(path, []byte("header\n"), 0644))
				return path
			},
			status: StatusPass,
		},
		{
			name: "path is a directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			status: StatusFail,
		},
		{
			name: "missing parent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "not-yet", "usage.csv")
			},
			status: StatusWarn,
		},
		{
			name:   "empty path",
			setup:  func(t *testing.T) string { return "" },
			status: StatusWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (&SinkCheck{Path: tt.setup(t)}).Run()
			assert.Equal(t, tt.status, result.Status, result.Message)
		})
	}
}
