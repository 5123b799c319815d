// Package config handles loading and managing fundmatch configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

// Config is the top-level configuration for fundmatch.
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// MatchingConfig controls the scoring engine.
type MatchingConfig struct {
	// Weights overrides individual factor weights; unset factors keep
	// their defaults.
	Weights map[string]float64 `yaml:"weights"`

	// Recency curve knobs, in days.
	FreshWindowDays float64 `yaml:"fresh_window_days"`
	OuterWindowDays float64 `yaml:"outer_window_days"`
}

// CatalogConfig controls where the CLI reads opportunity data from.
type CatalogConfig struct {
	OpportunitiesFile string `yaml:"opportunities_file"`
	CacheSize         int    `yaml:"cache_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Matching: MatchingConfig{
			Weights:         map[string]float64{},
			FreshWindowDays: matching.DefaultFreshWindowDays,
			OuterWindowDays: matching.DefaultOuterWindowDays,
		},
		Catalog: CatalogConfig{
			CacheSize: 20,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the given path, creating parent directories
// as needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FindConfigFile looks for .fundmatch/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".fundmatch", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Weights returns the effective weight vector: defaults overlaid with the
// configured overrides. Invalid overrides surface as an error rather than
// being silently dropped.
func (c *Config) Weights() (matching.WeightVector, error) {
	if err := matching.WeightVector(c.Matching.Weights).Validate(); err != nil {
		return nil, err
	}
	w := matching.DefaultWeights()
	for k, v := range c.Matching.Weights {
		w[k] = v
	}
	return w, nil
}

// Factors builds the factor set from the configured recency curve knobs.
// Pass a nil clock to use wall time. Knobs that would invert the curve
// fall back to the defaults.
func (c *Config) Factors(now func() time.Time) []matching.Factor {
	factors := matching.DefaultFactors(now)
	if c.Matching.OuterWindowDays <= c.Matching.FreshWindowDays {
		return factors
	}
	for _, f := range factors {
		if rf, ok := f.(*matching.RecencyFactor); ok {
			rf.FreshWindowDays = c.Matching.FreshWindowDays
			rf.OuterWindowDays = c.Matching.OuterWindowDays
		}
	}
	return factors
}

// CacheDir returns the per-user cache directory for fundmatch data.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "fundmatch")
}

// ReportDir returns the directory where the CLI archives ranking reports.
func ReportDir() string {
	return filepath.Join(CacheDir(), "reports")
}
