package fetcher

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/tbhb/aitells/internal/domain"
)

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// RetrierOptions contains options for creating a Retrier
type RetrierOptions struct {
	// MaxRetries is the number of retries after the first attempt; zero disables retrying
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultRetrierOptions returns default retrier options
func DefaultRetrierOptions() RetrierOptions {
	return RetrierOptions{
		MaxRetries:      3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	}
}

// NewRetrier creates a new Retrier with the given options
func NewRetrier(opts RetrierOptions) *Retrier {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 3
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 1 * time.Second
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}

	return &Retrier{
		maxRetries:      opts.MaxRetries,
		initialInterval: opts.InitialInterval,
		maxInterval:     opts.MaxInterval,
		multiplier:      opts.Multiplier,
	}
}

func (r *Retrier) newBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.Multiplier = r.multiplier
	b.RandomizationFactor = 0.5
	b.Reset()

	return backoff.WithMaxRetries(b, uint64(r.maxRetries))
}

// Retry executes an operation with exponential backoff.
// Errors that domain.IsRetryable rejects stop the loop immediately. A
// RetryableError carrying RetryAfter stretches the next wait to that many
// seconds, capped at the maximum interval. The last operation error is
// returned when retrying gives up.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	var lastErr error

	b := backoff.WithContext(&retryAfterBackOff{
		BackOff: r.newBackoff(),
		lastErr: &lastErr,
		maxWait: r.maxInterval,
	}, ctx)

	err := backoff.Retry(func() error {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if !domain.IsRetryable(lastErr) {
			return backoff.Permanent(lastErr)
		}

		return lastErr
	}, b)

	if err != nil && lastErr != nil {
		return lastErr
	}
	return err
}

// RetryWithValue executes an operation with exponential backoff and returns a value
func RetryWithValue[T any](ctx context.Context, r *Retrier, operation func() (T, error)) (T, error) {
	var result T

	err := r.Retry(ctx, func() error {
		var err error
		result, err = operation()
		return err
	})

	return result, err
}

// retryAfterBackOff waits at least as long as the server asked in its
// Retry-After header.
type retryAfterBackOff struct {
	backoff.BackOff
	lastErr *error
	maxWait time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}

	var retryable *domain.RetryableError
	if !errors.As(*b.lastErr, &retryable) || retryable.RetryAfter <= 0 {
		return next
	}

	wait := time.Duration(retryable.RetryAfter) * time.Second
	if b.maxWait > 0 && wait > b.maxWait {
		wait = b.maxWait
	}
	if wait > next {
		return wait
	}
	return next
}

// ShouldRetryStatus returns true if the HTTP status code should be retried
func ShouldRetryStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	// Cloudflare errors (520-530)
	return statusCode >= 520 && statusCode <= 530
}

// ParseRetryAfter parses the Retry-After header value, given either as
// delay seconds or as an HTTP date.
func ParseRetryAfter(retryAfter string) time.Duration {
	retryAfter = strings.TrimSpace(retryAfter)
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		return 0
	}

	if at, err := http.ParseTime(retryAfter); err == nil {
		if d := time.Until(at); d > 0 {
			return d.Round(time.Second)
		}
	}
	return 0
}
