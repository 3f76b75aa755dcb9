package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hr-audit/internal/rules"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"outputs_dir": "/tmp/outputs",
		"port": "9090",
		"max_concurrent_runs": 4,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/outputs", cfg.OutputsDir)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 4, cfg.MaxConcurrentRuns)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeFile(t, "bad.json", "{not json")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{MaxConcurrentRuns: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DataCSV: filepath.Join(t.TempDir(), "nope.csv")}
	assert.Error(t, cfg.Validate())

	csv := writeFile(t, "data.csv", "emp_id,emp_name\n")
	cfg = &Config{DataCSV: csv, MaxConcurrentRuns: 2}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: "9090"}
	merged := cfg.MergeWithDefaults(Config{
		Port:              "8080",
		OutputsDir:        "outputs",
		MaxConcurrentRuns: 8,
	})

	assert.Equal(t, "9090", merged.Port, "explicit values win")
	assert.Equal(t, "outputs", merged.OutputsDir)
	assert.Equal(t, 8, merged.MaxConcurrentRuns)
}

func TestLoadPolicy(t *testing.T) {
	path := writeFile(t, "policy.yaml", `
leave:
  max_consecutive_days: 30
tracked_fields:
  - position
  - paygrade
`)

	pc, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, 30, pc.Leave.MaxConsecutiveDays)
	assert.Equal(t, []string{"position", "paygrade"}, pc.TrackedFields)
}

func TestLoadPolicy_Defaults(t *testing.T) {
	path := writeFile(t, "policy.yaml", "{}\n")

	pc, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, rules.DefaultLeaveThreshold, pc.Leave.MaxConsecutiveDays)
	assert.Equal(t, rules.TrackedFields, pc.TrackedFields)
}

func TestDefaultPolicy(t *testing.T) {
	pc := DefaultPolicy()
	assert.Equal(t, rules.DefaultLeaveThreshold, pc.Leave.MaxConsecutiveDays)
	assert.NotEmpty(t, pc.TrackedFields)
}
