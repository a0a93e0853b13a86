// Package config loads hclust command configuration from defaults, an
// optional YAML file and HCLUST_* environment variables, in that order of
// increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/hclust"
)

// Config is the full command configuration.
type Config struct {
	Metric     string  `yaml:"metric" validate:"required,oneof=euclidean sqeuclidean manhattan cityblock chebyshev minkowski cosine hamming jaccard"`
	MinkowskiP float64 `yaml:"minkowski_p" validate:"gte=1"`
	Linkage    string  `yaml:"linkage" validate:"required,oneof=single complete average weighted centroid median ward"`
	Algorithm  string  `yaml:"algorithm" validate:"omitempty,oneof=auto generic mst"`
	Workers    int     `yaml:"workers" validate:"gte=0"`

	// Clusters requests a flat partition with this many clusters. 0 disables it.
	Clusters int `yaml:"clusters" validate:"gte=0"`
	// Height requests a flat partition cut at this height. nil disables it.
	Height *float64 `yaml:"height" validate:"omitempty,gte=0"`

	Log   LogConfig   `yaml:"log"`
	Input InputConfig `yaml:"input"`
}

// LogConfig selects the logger level and encoder.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// InputConfig describes the layout of the input table.
type InputConfig struct {
	// Header marks the first row as feature names.
	Header bool `yaml:"header"`
	// LabelColumn is the column holding row labels, or -1 for none.
	LabelColumn int `yaml:"label_column" validate:"gte=-1"`
	// Sheet is the worksheet to read from XLSX input. Empty means the first.
	Sheet string `yaml:"sheet"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Metric:     "euclidean",
		MinkowskiP: 2,
		Linkage:    "complete",
		Algorithm:  "auto",
		Log:        LogConfig{Level: "info"},
		Input:      InputConfig{Header: true, LabelColumn: -1},
	}
}

// Load builds a configuration from defaults, the YAML file at path (if
// path is non-empty) and the process environment, then validates it.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays HCLUST_* environment variables on cfg.
func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv("HCLUST_METRIC"); ok {
		c.Metric = v
	}
	if v, ok := lookupEnv("HCLUST_LINKAGE"); ok {
		c.Linkage = v
	}
	if v, ok := lookupEnv("HCLUST_ALGORITHM"); ok {
		c.Algorithm = v
	}
	if v, ok := lookupEnv("HCLUST_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookupEnv("HCLUST_WORKERS"); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("config: HCLUST_WORKERS: %w", err)
		}
		c.Workers = n
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// EngineConfig converts c into the clustering engine configuration.
func (c *Config) EngineConfig() (hclust.Config, error) {
	metric, err := hclust.ParseMetric(c.Metric)
	if err != nil {
		return hclust.Config{}, err
	}
	linkage, err := hclust.ParseLinkage(c.Linkage)
	if err != nil {
		return hclust.Config{}, err
	}
	algo, err := hclust.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return hclust.Config{}, err
	}
	return hclust.Config{
		Metric:     metric,
		MinkowskiP: c.MinkowskiP,
		Linkage:    linkage,
		Algorithm:  algo,
		Workers:    c.Workers,
	}, nil
}
