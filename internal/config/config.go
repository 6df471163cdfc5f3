package config

import (
	"fmt"
	"time"

	"github.com/tbhb/aitells/internal/excerpt"
)

// Config represents the application configuration
type Config struct {
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Fetch       FetchConfig       `mapstructure:"fetch" yaml:"fetch"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Excerpt     ExcerptConfig     `mapstructure:"excerpt" yaml:"excerpt"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	// Catalog is the path of a catalog file; empty selects the built-in catalog
	Catalog string `mapstructure:"catalog" yaml:"catalog"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory    string `mapstructure:"directory" yaml:"directory"`
	JSONMetadata bool   `mapstructure:"json_metadata" yaml:"json_metadata"`
	Overwrite    bool   `mapstructure:"overwrite" yaml:"overwrite"`
}

// FetchConfig contains HTTP fetch settings
type FetchConfig struct {
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	GovernmentTimeout time.Duration `mapstructure:"government_timeout" yaml:"government_timeout"`
	Delay             time.Duration `mapstructure:"delay" yaml:"delay"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxRetries        int           `mapstructure:"max_retries" yaml:"max_retries"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// ExcerptConfig contains the excerpt selection bounds and filters
type ExcerptConfig struct {
	MinWords          int    `mapstructure:"min_words" yaml:"min_words"`
	MaxWords          int    `mapstructure:"max_words" yaml:"max_words"`
	MinParagraphs     int    `mapstructure:"min_paragraphs" yaml:"min_paragraphs"`
	MaxParagraphs     int    `mapstructure:"max_paragraphs" yaml:"max_paragraphs"`
	MinParagraphWords int    `mapstructure:"min_paragraph_words" yaml:"min_paragraph_words"`
	Language          string `mapstructure:"language" yaml:"language"`
}

// Bounds returns the selection bounds described by the config
func (e ExcerptConfig) Bounds() excerpt.Bounds {
	return excerpt.Bounds{
		MinWords:      e.MinWords,
		MaxWords:      e.MaxWords,
		MinParagraphs: e.MinParagraphs,
		MaxParagraphs: e.MaxParagraphs,
	}
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration.
// Out-of-range tunables are reset to their defaults; inconsistent excerpt
// bounds are an error.
func (c *Config) Validate() error {
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Fetch.Timeout < time.Second {
		c.Fetch.Timeout = DefaultTimeout
	}
	if c.Fetch.GovernmentTimeout < time.Second {
		c.Fetch.GovernmentTimeout = DefaultGovernmentTimeout
	}
	if c.Fetch.Delay < 0 {
		c.Fetch.Delay = DefaultDelay
	}
	if c.Fetch.MaxRetries < 0 {
		c.Fetch.MaxRetries = DefaultMaxRetries
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Directory == "" {
		c.Cache.Directory = CacheDir()
	}
	if c.Excerpt.MinParagraphWords < 1 {
		c.Excerpt.MinParagraphWords = DefaultMinParagraphWords
	}
	if c.Logging.Format != "json" && c.Logging.Format != "pretty" {
		c.Logging.Format = DefaultLogFormat
	}

	if err := c.Excerpt.Bounds().Validate(); err != nil {
		return fmt.Errorf("invalid excerpt bounds: %w", err)
	}
	return nil
}
