package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "employees.csv")
	require.NoError(t, os.WriteFile(path, []byte("emp_id,emp_name\nE1,Bob\n"), 0o644))
	return path
}

func TestResolveConfig_Defaults(t *testing.T) {
	csv := writeTempCSV(t)

	cfg, err := resolveConfig("", "", "", csv, "", 0, false)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "outputs", cfg.OutputsDir)
	assert.Equal(t, csv, cfg.DataCSV)
	assert.Equal(t, 0, cfg.MaxConcurrentRuns)
}

func TestResolveConfig_FlagsWin(t *testing.T) {
	csv := writeTempCSV(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"port":"7000","outputs_dir":"/tmp/from-file"}`), 0o644))

	cfg, err := resolveConfig(configPath, "9090", "", csv, "", 2, true)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port, "flag overrides config file")
	assert.Equal(t, "/tmp/from-file", cfg.OutputsDir, "config file fills unset flags")
	assert.Equal(t, 2, cfg.MaxConcurrentRuns)
	assert.True(t, cfg.Verbose)
}

func TestResolveConfig_EnvFills(t *testing.T) {
	csv := writeTempCSV(t)
	t.Setenv("PORT", "7777")
	t.Setenv("OUTPUTS_DIR", "/tmp/from-env")

	cfg, err := resolveConfig("", "", "", csv, "", 0, false)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Port)
	assert.Equal(t, "/tmp/from-env", cfg.OutputsDir)
}

func TestResolveConfig_MissingDataCSV(t *testing.T) {
	_, err := resolveConfig("", "", "", "", "", 0, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data CSV path is required")
}

func TestResolveConfig_InvalidDataPath(t *testing.T) {
	_, err := resolveConfig("", "", "", filepath.Join(t.TempDir(), "nope.csv"), "", 0, false)
	assert.Error(t, err)
}

func TestLoadPolicy_Default(t *testing.T) {
	policy, err := loadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, 20, policy.Leave.MaxConsecutiveDays)
}
