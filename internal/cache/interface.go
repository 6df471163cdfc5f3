package cache

import (
	"encoding/json"
	"time"

	"github.com/tbhb/aitells/internal/domain"
)

// Ensure BadgerCache implements domain.Cache
var _ domain.Cache = (*BadgerCache)(nil)

// Entry represents a cached response with metadata
type Entry struct {
	URL         string    `json:"url"`
	Content     []byte    `json:"content"`
	ContentType string    `json:"content_type"`
	FetchedAt   time.Time `json:"fetched_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewEntry builds an entry for resp that expires after ttl
func NewEntry(resp *domain.Response, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		URL:         resp.URL,
		Content:     resp.Body,
		ContentType: resp.ContentType,
		FetchedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// IsExpired returns true if the entry has expired
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// TTL returns the remaining time-to-live
func (e *Entry) TTL() time.Duration {
	remaining := time.Until(e.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Response converts the entry back into a response marked as served from cache
func (e *Entry) Response() *domain.Response {
	return &domain.Response{
		StatusCode:  200,
		Body:        e.Content,
		ContentType: e.ContentType,
		URL:         e.URL,
		FromCache:   true,
	}
}

// Marshal encodes the entry for storage
func (e *Entry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEntry decodes an entry written by Marshal
func UnmarshalEntry(data []byte) (*Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	Logger    bool
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{}
}
