package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, SourceXLSX, cfg.Source.Kind)
	assert.Equal(t, "hornos_mecanica_tiempos.xlsx", cfg.Source.Path)
	assert.Equal(t, model.DefaultWeights(), cfg.Weights)
	assert.Equal(t, model.DefaultColumns(), cfg.Columns)
	assert.Equal(t, "t_neto_mean", cfg.Columns.NetTimeMean)
	assert.True(t, cfg.Logging.Console)
}

func TestLoadFromPath_PartialOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cfg.yaml", `
source:
  kind: csv
  path: trials.csv
columns:
  furnaceID: "Horno"
weights:
  elongation: 1
  time: 0
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.Source.Kind)
	assert.Equal(t, "trials.csv", cfg.Source.Path)
	assert.Equal(t, "furnace_trial", cfg.Source.Table)
	assert.Equal(t, "Horno", cfg.Columns.FurnaceID)
	assert.Equal(t, "RH-Acero", cfg.Columns.SteelType)
	assert.Equal(t, 1.0, cfg.Weights.Elongation)
	assert.Equal(t, 0.3, cfg.Weights.Resistance)
	assert.Equal(t, 0.0, cfg.Weights.Time)
	assert.Equal(t, 8700, cfg.Server.Port)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := writeConfig(t, dir, "bad.yaml", "source: [")
	_, err = LoadFromPath(path)
	assert.ErrorContains(t, err, "failed to parse config file")

	path = writeConfig(t, dir, "inf.yaml", "weights:\n  time: .inf\n")
	_, err = LoadFromPath(path)
	assert.ErrorContains(t, err, "time weight must be a finite number")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{"unknown kind", func(cfg *Config) { cfg.Source.Kind = "parquet" }, "validation failed"},
		{"csv without path", func(cfg *Config) { cfg.Source.Kind = SourceCSV; cfg.Source.Path = "" }, "source.path is required"},
		{"sheets without id", func(cfg *Config) { cfg.Source.Kind = SourceSheets }, "validation failed"},
		{"postgres without url", func(cfg *Config) { cfg.Source.Kind = SourcePostgres }, "validation failed"},
		{"empty column label", func(cfg *Config) { cfg.Columns.YieldStd = "" }, "validation failed"},
		{"same ports", func(cfg *Config) { cfg.Server.MetricsPort = cfg.Server.Port }, "validation failed"},
		{"bad port", func(cfg *Config) { cfg.Server.Port = 0 }, "validation failed"},
		{"no log dir", func(cfg *Config) { cfg.Logging.Dir = "" }, "validation failed"},
		{"nan weight", func(cfg *Config) { cfg.Weights.Resistance = math.NaN() }, "resistance weight must be a finite number"},
		{"infinite weight", func(cfg *Config) { cfg.Weights.Time = math.Inf(1) }, "time weight must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_SourceKinds(t *testing.T) {
	cfg := Default()
	cfg.Source = SourceConfig{Kind: SourceSheets, SpreadsheetID: "sheet123", Range: "Datos!A:I", Table: "furnace_trial"}
	assert.NoError(t, Validate(cfg))

	cfg.Source = SourceConfig{Kind: SourcePostgres, DatabaseURL: "postgres://localhost/hornos", Table: "furnace_trial"}
	assert.NoError(t, Validate(cfg))
}

func TestLoadWithEnv_FindsEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	writeConfig(t, dir, "furnace_rank_config.test.yaml", `
source:
  kind: csv
  path: from-test.csv
`)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "from-test.csv", cfg.Source.Path)
}

func TestLoadWithEnv_FallsBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envSourcePath, "override.xlsx")

	cfg, err := LoadWithEnv("prod")
	require.NotNil(t, cfg)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.Equal(t, "override.xlsx", cfg.Source.Path)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(envDatabaseURL, "postgres://db/hornos")
	t.Setenv(envSpreadsheet, "abc123")
	t.Setenv(envSourcePath, "")

	cfg := Default()
	applyEnv(cfg)

	assert.Equal(t, "postgres://db/hornos", cfg.Source.DatabaseURL)
	assert.Equal(t, "abc123", cfg.Source.SpreadsheetID)
	assert.Equal(t, "hornos_mecanica_tiempos.xlsx", cfg.Source.Path)
}

func TestConfigFileName(t *testing.T) {
	assert.Equal(t, "furnace_rank_config.yaml", configFileName(""))
	assert.Equal(t, "furnace_rank_config.prod.yaml", configFileName("prod"))
}
