package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/tbhb/aitells/internal/cache"
	"github.com/tbhb/aitells/internal/domain"
)

// Ensure Client implements domain.Fetcher
var _ domain.Fetcher = (*Client)(nil)

// Client is an HTTP client using tls-client that identifies itself with a
// fixed user agent and caches successful responses.
type Client struct {
	tlsClient    tls_client.HttpClient
	userAgent    string
	timeout      time.Duration
	retrier      *Retrier
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
	refreshCache bool
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	// Timeout bounds each request attempt made by Get
	Timeout    time.Duration
	MaxRetries int
	// RetryInterval is the first backoff interval, 1s when zero
	RetryInterval time.Duration
	EnableCache   bool
	CacheTTL      time.Duration
	Cache         domain.Cache
	// RefreshCache skips cache lookups but still stores fresh responses
	RefreshCache bool
	UserAgent    string
	ProxyURL     string
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		EnableCache: true,
		CacheTTL:    24 * time.Hour,
		UserAgent:   DefaultUserAgent,
	}
}

// NewClient creates a new HTTP client
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	// Per-attempt deadlines come from the request context; the transport
	// limit only guards against a context without one.
	tlsTimeout := opts.Timeout * 3
	if tlsTimeout < time.Minute {
		tlsTimeout = time.Minute
	}

	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(tlsTimeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithRandomTLSExtensionOrder(),
	}

	if opts.ProxyURL != "" {
		tlsOpts = append(tlsOpts, tls_client.WithProxyUrl(opts.ProxyURL))
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	retrier := NewRetrier(RetrierOptions{
		MaxRetries:      opts.MaxRetries,
		InitialInterval: opts.RetryInterval,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	})

	return &Client{
		tlsClient:    tlsClient,
		userAgent:    opts.UserAgent,
		timeout:      opts.Timeout,
		retrier:      retrier,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache,
		cacheTTL:     opts.CacheTTL,
		refreshCache: opts.RefreshCache,
	}, nil
}

// Get fetches content from a URL using the client timeout
func (c *Client) Get(ctx context.Context, url string) (*domain.Response, error) {
	return c.GetWithTimeout(ctx, url, c.timeout)
}

// GetWithTimeout fetches content from a URL, bounding each attempt by timeout
func (c *Client) GetWithTimeout(ctx context.Context, url string, timeout time.Duration) (*domain.Response, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}

	if c.cacheEnabled && c.cache != nil && !c.refreshCache {
		if cached, err := c.getFromCache(ctx, url); err == nil {
			return cached, nil
		}
	}

	resp, err := RetryWithValue(ctx, c.retrier, func() (*domain.Response, error) {
		return c.doRequest(ctx, url, timeout)
	})
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled && c.cache != nil {
		_ = c.saveToCache(ctx, url, resp)
	}

	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, targetURL string, timeout time.Duration) (*domain.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(attemptCtx, fhttp.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &domain.FetchError{
			URL: targetURL,
			Err: fmt.Errorf("%w: %v", domain.ErrInvalidURL, err),
		}
	}

	for k, v := range RequestHeaders(c.userAgent) {
		req.Header.Set(k, v)
	}

	resp, err := c.tlsClient.Do(req)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &domain.FetchError{
				URL: targetURL,
				Err: fmt.Errorf("%w after %s", domain.ErrTimeout, timeout),
			}
		}
		return nil, &domain.FetchError{
			URL: targetURL,
			Err: fmt.Errorf("request failed: %w", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fetchErr := &domain.FetchError{
			URL:        targetURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
		if ShouldRetryStatus(resp.StatusCode) {
			return nil, &domain.RetryableError{
				Err:        fetchErr,
				RetryAfter: int(ParseRetryAfter(resp.Header.Get("Retry-After")).Seconds()),
			}
		}
		return nil, fetchErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &domain.FetchError{URL: targetURL, Err: fmt.Errorf("%w reading body", domain.ErrTimeout)}
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	httpHeaders := make(http.Header, len(resp.Header))
	for k, v := range resp.Header {
		httpHeaders[k] = v
	}

	finalURL := targetURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		Headers:     httpHeaders,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         finalURL,
		FromCache:   false,
	}, nil
}

// Close releases client resources
func (c *Client) Close() error {
	c.tlsClient.CloseIdleConnections()
	return nil
}

func (c *Client) getFromCache(ctx context.Context, url string) (*domain.Response, error) {
	data, err := c.cache.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	entry, err := cache.UnmarshalEntry(data)
	if err != nil {
		return nil, err
	}
	if entry.IsExpired() {
		return nil, domain.ErrCacheMiss
	}
	return entry.Response(), nil
}

func (c *Client) saveToCache(ctx context.Context, url string, resp *domain.Response) error {
	data, err := cache.NewEntry(resp, c.cacheTTL).Marshal()
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, url, data, c.cacheTTL)
}

// SetCache sets the cache implementation
func (c *Client) SetCache(cache domain.Cache) {
	c.cache = cache
}

// SetCacheEnabled enables or disables caching
func (c *Client) SetCacheEnabled(enabled bool) {
	c.cacheEnabled = enabled
}
