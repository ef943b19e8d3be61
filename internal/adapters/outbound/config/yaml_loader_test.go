package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/vieraprotocol/subvet/internal/adapters/outbound/config"
	"github.com/vieraprotocol/subvet/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".subvet.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ExplicitValuesOverrideDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
max_workers: 8
oracle_timeout: 10s
weights:
  security: 0.50
  technical_quality: 0.50
originality_baseline: 70
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxWorkers)
	assert.Equal(t, 10*time.Second, cfg.OracleTimeout)
	assert.InDelta(t, 0.50, cfg.Weights[domain.CategorySecurity], 0.001)
	assert.Len(t, cfg.Weights, 2)
	assert.Equal(t, 70, cfg.OriginalityBaseline)
	// Untouched fields keep their defaults.
	assert.Equal(t, "python3", cfg.PythonBin)
	assert.Equal(t, 80, cfg.CompletenessBaseline)
}

func TestYAMLLoader_EmptyClamdAddressDisablesMalwareScan(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `clamd_address: ""`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.ClamdAddress)
}

func TestYAMLLoader_UnsetClamdAddressKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `max_workers: 2`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig().ClamdAddress, cfg.ClamdAddress)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .subvet.yaml")
}

func TestYAMLLoader_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `oracle_timeout: soon`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle_timeout")
}

func TestYAMLLoader_UnknownWeightCategory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
weights:
  vibes: 0.90
`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown weight category")
}
