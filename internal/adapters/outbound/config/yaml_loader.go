package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vieraprotocol/subvet/internal/domain"
)

const fileName = ".subvet.yaml"

// YAMLLoader reads engine configuration from .subvet.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// rawConfig is the on-disk shape. Durations are strings ("30s") and zero
// values mean "use the default".
type rawConfig struct {
	Weights              map[string]float64 `yaml:"weights"`
	MaxWorkers           int                `yaml:"max_workers"`
	OracleTimeout        string             `yaml:"oracle_timeout"`
	ClamdAddress         *string            `yaml:"clamd_address"`
	PythonBin            string             `yaml:"python_bin"`
	Flake8Bin            string             `yaml:"flake8_bin"`
	BanditBin            string             `yaml:"bandit_bin"`
	NodeBin              string             `yaml:"node_bin"`
	ESLintBin            string             `yaml:"eslint_bin"`
	OriginalityBaseline  *int               `yaml:"originality_baseline"`
	CompletenessBaseline *int               `yaml:"completeness_baseline"`
}

// Load reads .subvet.yaml from dir, merging explicit values over the engine
// defaults. A missing file yields the defaults.
func (l *YAMLLoader) Load(dir string) (domain.EngineConfig, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return domain.EngineConfig{}, err
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if len(raw.Weights) > 0 {
		weights := make(map[domain.Category]float64, len(raw.Weights))
		for name, w := range raw.Weights {
			weights[domain.Category(name)] = w
		}
		cfg.Weights = weights
	}
	if raw.MaxWorkers != 0 {
		cfg.MaxWorkers = raw.MaxWorkers
	}
	if raw.OracleTimeout != "" {
		d, err := time.ParseDuration(raw.OracleTimeout)
		if err != nil {
			return domain.EngineConfig{}, fmt.Errorf("invalid oracle_timeout in %s: %w", fileName, err)
		}
		cfg.OracleTimeout = d
	}
	// Pointer distinguishes "disable clamd" (empty string) from "not set".
	if raw.ClamdAddress != nil {
		cfg.ClamdAddress = *raw.ClamdAddress
	}
	if raw.PythonBin != "" {
		cfg.PythonBin = raw.PythonBin
	}
	if raw.Flake8Bin != "" {
		cfg.Flake8Bin = raw.Flake8Bin
	}
	if raw.BanditBin != "" {
		cfg.BanditBin = raw.BanditBin
	}
	if raw.NodeBin != "" {
		cfg.NodeBin = raw.NodeBin
	}
	if raw.ESLintBin != "" {
		cfg.ESLintBin = raw.ESLintBin
	}
	if raw.OriginalityBaseline != nil {
		cfg.OriginalityBaseline = *raw.OriginalityBaseline
	}
	if raw.CompletenessBaseline != nil {
		cfg.CompletenessBaseline = *raw.CompletenessBaseline
	}

	// Validate after merging so typos in the file surface here.
	if err := cfg.Validate(); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}
