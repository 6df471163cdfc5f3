package domain

import (
	"net/http"
	"time"
)

// Section is a titled run of paragraphs, such as a chapter or an essay
type Section struct {
	ID         string
	Paragraphs []string
}

// Response represents an HTTP response
type Response struct {
	StatusCode  int
	Body        []byte
	Headers     http.Header
	ContentType string
	URL         string
	FromCache   bool
}

// Sample is an excerpt ready to be written, together with its provenance
type Sample struct {
	Kind       Kind      `json:"kind"`
	Output     string    `json:"output"`
	Publisher  string    `json:"source"`
	Title      string    `json:"title"`
	Author     string    `json:"author,omitempty"`
	Section    string    `json:"section,omitempty"`
	URL        string    `json:"url"`
	License    string    `json:"license"`
	Paragraphs []string  `json:"-"`
	WordCount  int       `json:"word_count"`
	Offset     int       `json:"paragraph_offset"`
	FetchedAt  time.Time `json:"fetched_at"`
	CacheHit   bool      `json:"cache_hit"`
}

// ParagraphCount returns the number of paragraphs in the excerpt
func (s *Sample) ParagraphCount() int {
	return len(s.Paragraphs)
}

// SampleMetadata is the JSON sidecar written next to a sample
type SampleMetadata struct {
	*Sample
	ParagraphCount int `json:"paragraph_count"`
}

// ToMetadata converts a Sample to its sidecar form
func (s *Sample) ToMetadata() *SampleMetadata {
	return &SampleMetadata{
		Sample:         s,
		ParagraphCount: s.ParagraphCount(),
	}
}
