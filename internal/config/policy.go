package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/hr-audit/internal/rules"
)

// PolicyConfig holds the audit policy knobs loaded from a YAML file. The
// zero value, passed through ApplyDefaults, matches the built-in policy.
type PolicyConfig struct {
	Leave struct {
		// MaxConsecutiveDays is the longest leave streak that is still
		// compliant; strictly longer streaks are violations.
		MaxConsecutiveDays int `yaml:"max_consecutive_days"`
	} `yaml:"leave"`

	// TrackedFields are the record fields checked for per-employee
	// conflicting values.
	TrackedFields []string `yaml:"tracked_fields"`
}

// LoadPolicy reads and parses a YAML policy file, applying defaults for
// anything the file leaves unset.
func LoadPolicy(path string) (*PolicyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	var pc PolicyConfig
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	pc.ApplyDefaults()
	return &pc, nil
}

// DefaultPolicy returns the built-in policy used when no policy file is
// configured.
func DefaultPolicy() *PolicyConfig {
	pc := &PolicyConfig{}
	pc.ApplyDefaults()
	return pc
}

// ApplyDefaults fills unset fields with the built-in policy values.
func (pc *PolicyConfig) ApplyDefaults() {
	if pc.Leave.MaxConsecutiveDays <= 0 {
		pc.Leave.MaxConsecutiveDays = rules.DefaultLeaveThreshold
	}
	if len(pc.TrackedFields) == 0 {
		pc.TrackedFields = append([]string(nil), rules.TrackedFields...)
	}
}
