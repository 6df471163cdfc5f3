package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../mocks/fetcher_mock.go -package=mocks github.com/tbhb/aitells/internal/domain Fetcher

// Fetcher defines the interface for HTTP fetching
type Fetcher interface {
	// Get fetches content from a URL
	Get(ctx context.Context, url string) (*Response, error)
	// GetWithTimeout fetches content, giving up after timeout
	GetWithTimeout(ctx context.Context, url string, timeout time.Duration) (*Response, error)
	// Close releases resources
	Close() error
}

// Cache defines the interface for content caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// Writer defines the interface for sample output
type Writer interface {
	// Write saves a sample to the output directory
	Write(ctx context.Context, sample *Sample) error
	// Exists reports whether the named output file is already present
	Exists(name string) bool
}

// LanguageDetector reports whether text is written in the expected language
type LanguageDetector interface {
	// Expected returns the name of the accepted language
	Expected() string
	// Matches returns the detected language name and whether it is the expected one
	Matches(text string) (string, bool)
}
