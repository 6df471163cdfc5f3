package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/tbhb/aitells/internal/excerpt"
)

// Default values
const (
	// Output defaults
	DefaultOutputDir = "./notebooks/samples/human_written"

	// Fetch defaults
	DefaultTimeout           = 30 * time.Second
	DefaultGovernmentTimeout = 10 * time.Second
	DefaultDelay             = 1 * time.Second
	DefaultMaxRetries        = 3
	DefaultUserAgent         = "aitells-sample-fetcher/1.0 (https://github.com/tbhb/aitells; educational use)"

	// Concurrency defaults
	DefaultWorkers = 4

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 24 * time.Hour

	// Excerpt defaults
	DefaultMinParagraphWords = excerpt.DefaultMinParagraphWords

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aitells"
	}
	return filepath.Join(home, ".aitells")
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
	bounds := excerpt.DefaultBounds()
	return &Config{
		Output: OutputConfig{
			Directory: DefaultOutputDir,
		},
		Fetch: FetchConfig{
			Timeout:           DefaultTimeout,
			GovernmentTimeout: DefaultGovernmentTimeout,
			Delay:             DefaultDelay,
			UserAgent:         DefaultUserAgent,
			MaxRetries:        DefaultMaxRetries,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Excerpt: ExcerptConfig{
			MinWords:          bounds.MinWords,
			MaxWords:          bounds.MaxWords,
			MinParagraphs:     bounds.MinParagraphs,
			MaxParagraphs:     bounds.MaxParagraphs,
			MinParagraphWords: DefaultMinParagraphWords,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
