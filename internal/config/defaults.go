package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Output defaults
	DefaultOutputDir = "./dist"
	DefaultManifest  = true

	// Bundle defaults
	DefaultInlineThreshold = "50KB"
	DefaultCombineCSS      = true

	// Concurrency defaults
	DefaultWorkers = 4

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 7 * 24 * time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deckpack"
	}
	return filepath.Join(home, ".deckpack")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: DefaultOutputDir,
			Overwrite: false,
			Manifest:  DefaultManifest,
			Archive:   false,
		},
		Bundle: BundleConfig{
			InlineThreshold: DefaultInlineThreshold,
			CombineCSS:      DefaultCombineCSS,
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
