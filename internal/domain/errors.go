package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	// ErrNoExcerpt indicates no paragraph window satisfied the selection bounds
	ErrNoExcerpt = errors.New("no suitable excerpt found")

	// ErrSkipped indicates the output already exists and overwriting is disabled
	ErrSkipped = errors.New("output already exists")

	// ErrNoSections indicates a structured document had no usable sections
	ErrNoSections = errors.New("no content sections found")

	// ErrNoParagraphs indicates extraction produced no paragraphs at all
	ErrNoParagraphs = errors.New("no paragraphs found")

	// ErrTooFewParagraphs indicates fewer content paragraphs than an excerpt needs
	ErrTooFewParagraphs = errors.New("not enough content paragraphs")

	// ErrStubPage indicates a wiki page too short to be worth sampling
	ErrStubPage = errors.New("page appears to be a stub")

	// ErrMarkersNotFound indicates a plain-text book without start/end markers
	ErrMarkersNotFound = errors.New("start/end markers not found")

	// ErrLanguageMismatch indicates the excerpt is not in the expected language
	ErrLanguageMismatch = errors.New("excerpt language mismatch")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited indicates rate limiting was encountered
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("timeout")

	// ErrInvalidURL indicates an invalid URL was provided
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidSource indicates a catalog entry is missing required fields
	ErrInvalidSource = errors.New("invalid source")

	// ErrUnexpectedContent indicates a response whose content type the strategy cannot parse
	ErrUnexpectedContent = errors.New("unexpected content type")

	// ErrUnknownKind indicates no strategy handles the source kind
	ErrUnknownKind = errors.New("unknown source kind")
)

// FetchError represents an error during fetching
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err        error
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RetryableError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("retryable error (retry after %ds): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		// Cloudflare origin errors
		if fetchErr.StatusCode >= 520 && fetchErr.StatusCode <= 530 {
			return true
		}
	}

	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// StrategyError ties a failure to the strategy and source that produced it
type StrategyError struct {
	Strategy string
	Source   string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s failed for %s: %v", e.Strategy, e.Source, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError
func NewStrategyError(strategy, source string, err error) *StrategyError {
	return &StrategyError{
		Strategy: strategy,
		Source:   source,
		Err:      err,
	}
}
