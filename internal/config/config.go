package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/furnace-rank/pkg/core/loader"
	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

// Source kinds
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourceSheets   = "sheets"
	SourcePostgres = "postgres"
)

const (
	configFileBase = "furnace_rank_config"
	defaultTable   = "furnace_trial"
	defaultLogDir  = "logs"
	defaultPort    = 8700
	defaultMetrics = 8701
	envDatabaseURL = "FURNACE_RANK_DATABASE_URL"
	envSourcePath  = "FURNACE_RANK_SOURCE_PATH"
	envSpreadsheet = "FURNACE_RANK_SPREADSHEET_ID"
)

// ErrConfigNotFound is returned when no config file exists in the search locations
var ErrConfigNotFound = errors.New("config file not found in current directory or home directory")

// SourceConfig selects where trial records are read from
type SourceConfig struct {
	Kind          string `yaml:"kind" validate:"required,oneof=csv xlsx sheets postgres"`
	Path          string `yaml:"path,omitempty"`
	Sheet         string `yaml:"sheet,omitempty"`
	SpreadsheetID string `yaml:"spreadsheetID,omitempty" validate:"required_if=Kind sheets"`
	Range         string `yaml:"range,omitempty" validate:"required_if=Kind sheets"`
	DatabaseURL   string `yaml:"databaseURL,omitempty" validate:"required_if=Kind postgres"`
	Table         string `yaml:"table,omitempty" validate:"required"`
}

// ServerConfig configures the HTTP API started by the serve command
type ServerConfig struct {
	Port        int `yaml:"port" validate:"min=1,max=65535"`
	MetricsPort int `yaml:"metricsPort" validate:"min=1,max=65535,nefield=Port"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Dir     string `yaml:"dir" validate:"required"`
	Console bool   `yaml:"console"`
	Debug   bool   `yaml:"debug"`
}

// Config represents the application configuration
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Columns model.Columns `yaml:"columns"`
	Weights model.Weights `yaml:"weights"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:  SourceXLSX,
			Path:  loader.DefaultFilePath,
			Range: "A:Z",
			Table: defaultTable,
		},
		Columns: model.DefaultColumns(),
		Weights: model.DefaultWeights(),
		Server: ServerConfig{
			Port:        defaultPort,
			MetricsPort: defaultMetrics,
		},
		Logging: LoggingConfig{
			Dir:     defaultLogDir,
			Console: true,
		},
	}
}

// LoadWithEnv loads furnace_rank_config.<env>.yaml (or furnace_rank_config.yaml when env is
// empty) from the current directory or the home directory. When neither exists the
// defaults are returned together with ErrConfigNotFound so callers can decide whether
// that matters.
func LoadWithEnv(env string) (*Config, error) {
	configPath, findErr := findConfigFile(env)
	if findErr != nil {
		if !errors.Is(findErr, ErrConfigNotFound) {
			return nil, findErr
		}

		cfg := Default()
		applyEnv(cfg)
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, findErr
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Keys absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and the source-specific requirements
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := cfg.Weights.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Source.Kind {
	case SourceCSV, SourceXLSX:
		if cfg.Source.Path == "" {
			return fmt.Errorf("config validation failed: source.path is required for %s sources", cfg.Source.Kind)
		}
	}

	return nil
}

// applyEnv overrides connection details from the environment
func applyEnv(cfg *Config) {
	if v := os.Getenv(envDatabaseURL); v != "" {
		cfg.Source.DatabaseURL = v
	}
	if v := os.Getenv(envSourcePath); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv(envSpreadsheet); v != "" {
		cfg.Source.SpreadsheetID = v
	}
}

// configFileName returns the file name searched for the given environment
func configFileName(env string) string {
	if env == "" {
		return configFileBase + ".yaml"
	}
	return configFileBase + "." + env + ".yaml"
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	name := configFileName(env)

	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", ErrConfigNotFound
}
