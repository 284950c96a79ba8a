package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Bundle      BundleConfig      `mapstructure:"bundle" yaml:"bundle"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Overwrite bool   `mapstructure:"overwrite" yaml:"overwrite"`
	Manifest  bool   `mapstructure:"manifest" yaml:"manifest"`
	Archive   bool   `mapstructure:"archive" yaml:"archive"`
}

// BundleConfig contains asset collection settings
type BundleConfig struct {
	// InlineThreshold is a size such as "50KB"; "0" disables inlining
	InlineThreshold string `mapstructure:"inline_threshold" yaml:"inline_threshold"`
	CombineCSS      bool   `mapstructure:"combine_css" yaml:"combine_css"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Bundle.InlineThreshold == "" {
		c.Bundle.InlineThreshold = DefaultInlineThreshold
	} else if _, err := ParseSize(c.Bundle.InlineThreshold); err != nil {
		return fmt.Errorf("invalid bundle.inline_threshold: %w", err)
	}
	return nil
}

// InlineThresholdBytes returns the parsed inline threshold
func (c *Config) InlineThresholdBytes() (int64, error) {
	if c.Bundle.InlineThreshold == "" {
		return ParseSize(DefaultInlineThreshold)
	}
	return ParseSize(c.Bundle.InlineThreshold)
}

// ParseSize parses sizes such as "512", "512B", "50KB", "2MB" or "1GB".
// Units are binary multiples.
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var multiplier int64 = 1
	if strings.HasSuffix(s, "GB") {
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	} else if strings.HasSuffix(s, "MB") {
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	} else if strings.HasSuffix(s, "KB") {
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	} else if strings.HasSuffix(s, "B") {
		s = strings.TrimSuffix(s, "B")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("no numeric value in size string")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value: %w", err)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative size not allowed")
	}

	return n * multiplier, nil
}
