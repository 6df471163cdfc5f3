// Package excerpt selects a word-count-bounded run of paragraphs from a
// document.
//
// The selector scans start positions in ascending order and, for each start,
// window lengths in descending order from MaxParagraphs down to
// MinParagraphs. The first window whose total word count falls inside
// [MinWords, MaxWords] wins. The scan is deterministic: the same paragraphs
// and bounds always yield the same excerpt.
package excerpt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tbhb/aitells/internal/domain"
)

// ErrNotFound is returned when no window satisfies the bounds.
var ErrNotFound = domain.ErrNoExcerpt

// Default selection bounds
const (
	DefaultMinWords      = 150
	DefaultMaxWords      = 400
	DefaultMinParagraphs = 2
	DefaultMaxParagraphs = 5
)

// Bounds constrains the size of an excerpt. All limits are inclusive.
type Bounds struct {
	MinWords      int `mapstructure:"min_words" yaml:"min_words" json:"min_words"`
	MaxWords      int `mapstructure:"max_words" yaml:"max_words" json:"max_words"`
	MinParagraphs int `mapstructure:"min_paragraphs" yaml:"min_paragraphs" json:"min_paragraphs"`
	MaxParagraphs int `mapstructure:"max_paragraphs" yaml:"max_paragraphs" json:"max_paragraphs"`
}

// DefaultBounds returns the bounds used when nothing is configured.
func DefaultBounds() Bounds {
	return Bounds{
		MinWords:      DefaultMinWords,
		MaxWords:      DefaultMaxWords,
		MinParagraphs: DefaultMinParagraphs,
		MaxParagraphs: DefaultMaxParagraphs,
	}
}

// Validate reports whether the bounds are usable. Select itself never calls
// it; inverted bounds simply match nothing there.
func (b Bounds) Validate() error {
	if b.MinParagraphs < 1 {
		return domain.NewValidationError("min_paragraphs", "must be at least 1")
	}
	if b.MinParagraphs > b.MaxParagraphs {
		return domain.NewValidationError("max_paragraphs",
			fmt.Sprintf("must be >= min_paragraphs (%d > %d)", b.MinParagraphs, b.MaxParagraphs))
	}
	if b.MinWords < 0 {
		return domain.NewValidationError("min_words", "must not be negative")
	}
	if b.MinWords > b.MaxWords {
		return domain.NewValidationError("max_words",
			fmt.Sprintf("must be >= min_words (%d > %d)", b.MinWords, b.MaxWords))
	}
	return nil
}

// Window is a selected run of paragraphs.
type Window struct {
	Start      int
	Paragraphs []string
	Words      int
}

// End returns the index one past the last paragraph of the window.
func (w Window) End() int {
	return w.Start + len(w.Paragraphs)
}

// Select returns the first contiguous run of paragraphs that satisfies b, or
// ErrNotFound. The returned slice is a copy of the matching window.
func Select(paragraphs []string, b Bounds) ([]string, error) {
	w, err := Find(paragraphs, b)
	if err != nil {
		return nil, err
	}
	return w.Paragraphs, nil
}

// Find is Select with the window position and word total attached.
// Windows always hold at least one paragraph: with MinParagraphs 0 and
// MinWords <= 0 an empty window never matches, and Find reports ErrNotFound
// when no non-empty window fits.
func Find(paragraphs []string, b Bounds) (Window, error) {
	if len(paragraphs) == 0 || len(paragraphs) < b.MinParagraphs {
		return Window{}, ErrNotFound
	}

	// prefix[i] is the word total of paragraphs[:i]
	prefix := make([]int, len(paragraphs)+1)
	for i, p := range paragraphs {
		prefix[i+1] = prefix[i] + WordCount(p)
	}

	for start := range paragraphs {
		for n := b.MaxParagraphs; n >= b.MinParagraphs; n-- {
			end := start + n
			if n < 1 || end > len(paragraphs) {
				continue
			}
			words := prefix[end] - prefix[start]
			if words >= b.MinWords && words <= b.MaxWords {
				selected := make([]string, n)
				copy(selected, paragraphs[start:end])
				return Window{Start: start, Paragraphs: selected, Words: words}, nil
			}
		}
	}

	return Window{}, ErrNotFound
}

// IsNotFound reports whether err signals that no excerpt matched.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// CountWords returns the total word count of paragraphs.
func CountWords(paragraphs ...string) int {
	total := 0
	for _, p := range paragraphs {
		total += WordCount(p)
	}
	return total
}
