package domain

import (
	"fmt"
	"time"
)

// EngineConfig holds engine-level configuration loaded from .subvet.yaml.
// It is resolved once at startup and never mutated at runtime.
type EngineConfig struct {
	// Weights maps categories to their share of the overall confidence.
	Weights map[Category]float64 `yaml:"weights" json:"weights,omitempty"`

	// MaxWorkers bounds how many files are analyzed concurrently.
	MaxWorkers int `yaml:"max_workers" json:"max_workers,omitempty"`

	// OracleTimeout bounds every external oracle call.
	OracleTimeout time.Duration `yaml:"oracle_timeout" json:"oracle_timeout,omitempty"`

	// ClamdAddress is the clamd socket ("/var/run/clamav/clamd.ctl" or
	// "tcp://host:3310"). Empty disables the malware stage.
	ClamdAddress string `yaml:"clamd_address" json:"clamd_address,omitempty"`

	// Tool paths for the language oracles.
	PythonBin string `yaml:"python_bin" json:"python_bin,omitempty"`
	Flake8Bin string `yaml:"flake8_bin" json:"flake8_bin,omitempty"`
	BanditBin string `yaml:"bandit_bin" json:"bandit_bin,omitempty"`
	NodeBin   string `yaml:"node_bin" json:"node_bin,omitempty"`
	ESLintBin string `yaml:"eslint_bin" json:"eslint_bin,omitempty"`

	// Baselines for the stubbed categories until real oracles exist.
	OriginalityBaseline  int `yaml:"originality_baseline" json:"originality_baseline,omitempty"`
	CompletenessBaseline int `yaml:"completeness_baseline" json:"completeness_baseline,omitempty"`
}

// DefaultConfig returns the engine defaults: the standard category weights,
// four workers, 30s oracle budget and the usual tool names.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		Weights: map[Category]float64{
			CategorySecurity:     0.35,
			CategoryTechnical:    0.30,
			CategoryOriginality:  0.20,
			CategoryCompleteness: 0.15,
		},
		MaxWorkers:           4,
		OracleTimeout:        30 * time.Second,
		ClamdAddress:         "/var/run/clamav/clamd.ctl",
		PythonBin:            "python3",
		Flake8Bin:            "flake8",
		BanditBin:            "bandit",
		NodeBin:              "node",
		ESLintBin:            "eslint",
		OriginalityBaseline:  85,
		CompletenessBaseline: 80,
	}
}

// Validate catches malformed configuration before any analysis runs.
func (c EngineConfig) Validate() error {
	for cat, w := range c.Weights {
		if !validCategory(cat) {
			return fmt.Errorf("unknown weight category %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("negative weight %.2f for category %q", w, cat)
		}
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must be positive, got %d", c.MaxWorkers)
	}
	if c.OracleTimeout < 0 {
		return fmt.Errorf("oracle_timeout must be positive, got %s", c.OracleTimeout)
	}
	if c.OriginalityBaseline < 0 || c.OriginalityBaseline > 100 {
		return fmt.Errorf("originality_baseline out of range: %d", c.OriginalityBaseline)
	}
	if c.CompletenessBaseline < 0 || c.CompletenessBaseline > 100 {
		return fmt.Errorf("completeness_baseline out of range: %d", c.CompletenessBaseline)
	}
	return nil
}

func validCategory(cat Category) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}
