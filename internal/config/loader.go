package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "AITELLS"

// Load loads configuration from file, environment, and defaults.
// It uses the global viper instance so CLI flag bindings take part.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration into v. An explicit config file set with
// v.SetConfigFile must exist; otherwise config.yaml is looked up in the
// config directory and the working directory and may be absent.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// SetConfigName drops a file set with SetConfigFile, so only search
	// when none was given.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Environment variables (AITELLS_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("output.directory", d.Output.Directory)
	v.SetDefault("output.json_metadata", false)
	v.SetDefault("output.overwrite", false)

	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.government_timeout", d.Fetch.GovernmentTimeout)
	v.SetDefault("fetch.delay", d.Fetch.Delay)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("fetch.max_retries", d.Fetch.MaxRetries)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.directory", d.Cache.Directory)

	v.SetDefault("concurrency.workers", d.Concurrency.Workers)

	v.SetDefault("excerpt.min_words", d.Excerpt.MinWords)
	v.SetDefault("excerpt.max_words", d.Excerpt.MaxWords)
	v.SetDefault("excerpt.min_paragraphs", d.Excerpt.MinParagraphs)
	v.SetDefault("excerpt.max_paragraphs", d.Excerpt.MaxParagraphs)
	v.SetDefault("excerpt.min_paragraph_words", d.Excerpt.MinParagraphWords)
	v.SetDefault("excerpt.language", "")

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("catalog", "")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// EnsureCacheDir creates the cache directory if it doesn't exist
func EnsureCacheDir() error {
	return os.MkdirAll(CacheDir(), 0755)
}
