// Package config provides configuration for the search engine.
// Values are loaded from a YAML file with ${VAR} environment expansion;
// missing fields fall back to defaults that satisfy Validate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Suggest  SuggestConfig  `yaml:"suggest"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// DatabaseConfig holds the source-of-truth store settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig holds the tunable constants of the matching and scoring
// pipeline. Field weights and the recency curve are deliberately configuration
// rather than constants in code.
type SearchConfig struct {
	TitleWeight   float64 `yaml:"title_weight"`
	ExcerptWeight float64 `yaml:"excerpt_weight"`
	ContentWeight float64 `yaml:"content_weight"`

	// MatchFloor is the minimum per-token similarity for a query token to
	// contribute to a field's score, in [0, 1).
	MatchFloor float64 `yaml:"match_floor"`

	// DefaultThreshold applies when the request omits `threshold` (0-100).
	DefaultThreshold float64 `yaml:"default_threshold"`

	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`

	// ContentPrefixRunes caps how much of the content field is tokenized.
	ContentPrefixRunes int `yaml:"content_prefix_runes"`

	// RecencyMaxBonus is the largest score bump a fresh post can receive.
	// It only applies to documents that already match, so it can never lift
	// a non-match above a positive threshold.
	RecencyMaxBonus float64 `yaml:"recency_max_bonus"`
	// RecencyHalfLifeDays controls how quickly the bonus decays with age.
	RecencyHalfLifeDays float64 `yaml:"recency_half_life_days"`

	// MaxComparisons caps token similarity computations per query. When the
	// budget runs out the query returns a partial, correctly-sorted result.
	MaxComparisons int `yaml:"max_comparisons"`

	// BuildPoolSize is the worker count used when building corpus snapshots.
	BuildPoolSize int `yaml:"build_pool_size"`

	// RefreshIntervalSec triggers periodic snapshot rebuilds; 0 disables them.
	RefreshIntervalSec int `yaml:"refresh_interval_sec"`
}

// SuggestConfig holds autocomplete settings.
type SuggestConfig struct {
	MinQueryLen  int `yaml:"min_query_len"`
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // prod, dev, local
	Level string `yaml:"level"` // debug, info, warn, error
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)}`)

func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// Load reads configuration from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns a configuration with every field at its default value.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	if c.Database.Path == "" {
		c.Database.Path = "./blog.db"
	}
	if c.Search.TitleWeight <= 0 {
		c.Search.TitleWeight = 3.0
	}
	if c.Search.ExcerptWeight <= 0 {
		c.Search.ExcerptWeight = 1.5
	}
	if c.Search.ContentWeight <= 0 {
		c.Search.ContentWeight = 0.5
	}
	if c.Search.MatchFloor <= 0 {
		c.Search.MatchFloor = 0.3
	}
	if c.Search.DefaultThreshold <= 0 {
		c.Search.DefaultThreshold = 40
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 15
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 100
	}
	if c.Search.ContentPrefixRunes <= 0 {
		c.Search.ContentPrefixRunes = 2000
	}
	if c.Search.RecencyMaxBonus <= 0 {
		c.Search.RecencyMaxBonus = 5
	}
	if c.Search.RecencyHalfLifeDays <= 0 {
		c.Search.RecencyHalfLifeDays = 90
	}
	if c.Search.MaxComparisons <= 0 {
		c.Search.MaxComparisons = 2_000_000
	}
	if c.Search.BuildPoolSize <= 0 {
		c.Search.BuildPoolSize = 4
	}
	if c.Suggest.MinQueryLen <= 0 {
		c.Suggest.MinQueryLen = 3
	}
	if c.Suggest.DefaultLimit <= 0 {
		c.Suggest.DefaultLimit = 5
	}
	if c.Suggest.MaxLimit <= 0 {
		c.Suggest.MaxLimit = 10
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.MatchFloor < 0 || c.Search.MatchFloor >= 1 {
		return fmt.Errorf("search.match_floor must be in [0, 1), got %g", c.Search.MatchFloor)
	}
	if c.Search.DefaultThreshold < 0 || c.Search.DefaultThreshold > 100 {
		return fmt.Errorf("search.default_threshold must be in [0, 100], got %g", c.Search.DefaultThreshold)
	}
	if c.Search.MaxLimit > 100 {
		return fmt.Errorf("search.max_limit must not exceed 100, got %d", c.Search.MaxLimit)
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit %d exceeds search.max_limit %d", c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	if c.Search.RecencyMaxBonus > 20 {
		return fmt.Errorf("search.recency_max_bonus must not exceed 20, got %g", c.Search.RecencyMaxBonus)
	}
	if c.Suggest.MaxLimit > 10 {
		return fmt.Errorf("suggest.max_limit must not exceed 10, got %d", c.Suggest.MaxLimit)
	}
	if c.Suggest.MinQueryLen < 1 {
		return fmt.Errorf("suggest.min_query_len must be at least 1, got %d", c.Suggest.MinQueryLen)
	}
	switch c.Logging.Env {
	case "prod", "dev", "local":
	default:
		return fmt.Errorf("logging.env must be prod, dev or local, got %q", c.Logging.Env)
	}
	return nil
}
