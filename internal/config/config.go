package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the application settings loaded from YAML.
type Config struct {
	DataPath  string  `validate:"required"`
	TestRatio float64 `validate:"gt=0,lt=1"`
	SplitSeed int64

	ModelSeed   int64
	Criterion   string `validate:"oneof=gini entropy"`
	MaxFeatures int    `validate:"min=0"`

	OutputDir string `validate:"required"`
	TreeDepth int    `validate:"min=0"`

	LogLevel string `validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

type fileConfig struct {
	Data struct {
		Path      string   `yaml:"path"`
		TestRatio *float64 `yaml:"test_ratio"`
		SplitSeed *int64   `yaml:"split_seed"`
	} `yaml:"data"`

	Model struct {
		Seed        *int64 `yaml:"seed"`
		Criterion   string `yaml:"criterion"`
		MaxFeatures *int   `yaml:"max_features"`
	} `yaml:"model"`

	Output struct {
		Dir       string `yaml:"dir"`
		TreeDepth *int   `yaml:"tree_depth"`
	} `yaml:"output"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// ErrorType classifies configuration failures.
type ErrorType string

const (
	ErrRead       ErrorType = "READ_FAILED"
	ErrParsing    ErrorType = "PARSING_FAILED"
	ErrValidation ErrorType = "VALIDATION_FAILED"
)

// Error is returned by Load and Validate.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		DataPath:  "data/weather_forecast_data_updated.csv",
		TestRatio: 0.2,
		SplitSeed: 42,
		ModelSeed: 42,
		Criterion: "gini",
		OutputDir: "out",
		TreeDepth: 0,
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path over Defaults. An empty path returns
// the defaults. Keys absent from the file keep their default value.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Type: ErrRead, Message: "config file not found: " + path, Err: err}
		}
		return nil, &Error{Type: ErrRead, Message: "read config file", Err: err}
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &Error{Type: ErrParsing, Message: "parse config file", Err: err}
	}

	if fc.Data.Path != "" {
		cfg.DataPath = fc.Data.Path
	}
	if fc.Data.TestRatio != nil {
		cfg.TestRatio = *fc.Data.TestRatio
	}
	if fc.Data.SplitSeed != nil {
		cfg.SplitSeed = *fc.Data.SplitSeed
	}
	if fc.Model.Seed != nil {
		cfg.ModelSeed = *fc.Model.Seed
	}
	if fc.Model.Criterion != "" {
		cfg.Criterion = fc.Model.Criterion
	}
	if fc.Model.MaxFeatures != nil {
		cfg.MaxFeatures = *fc.Model.MaxFeatures
	}
	if fc.Output.Dir != "" {
		cfg.OutputDir = fc.Output.Dir
	}
	if fc.Output.TreeDepth != nil {
		cfg.TreeDepth = *fc.Output.TreeDepth
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg, typically again after flag overrides.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &Error{Type: ErrValidation, Message: "configuration validation failed", Err: err}
	}
	return nil
}
