package strategies

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/converter"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/excerpt"
	"github.com/tbhb/aitells/internal/utils"
)

// Front and back matter trimming for plain-text books
const (
	GutenbergTrimFraction  = 0.1
	GutenbergMinParagraphs = 5
)

var (
	gutenbergStart = regexp.MustCompile(`(?i)\*\*\* ?START OF (?:THE |THIS )?PROJECT GUTENBERG`)
	gutenbergEnd   = regexp.MustCompile(`(?i)\*\*\* ?END OF (?:THE |THIS )?PROJECT GUTENBERG`)
)

// GutenbergStrategy extracts excerpts from Project Gutenberg plain-text books
type GutenbergStrategy struct {
	deps   *Dependencies
	logger *utils.Logger
}

// NewGutenbergStrategy creates a new Gutenberg strategy
func NewGutenbergStrategy(deps *Dependencies) *GutenbergStrategy {
	return &GutenbergStrategy{
		deps:   deps,
		logger: deps.strategyLogger(string(domain.KindGutenberg)),
	}
}

// Name returns the strategy name
func (s *GutenbergStrategy) Name() string {
	return string(domain.KindGutenberg)
}

// CanHandle returns true for Gutenberg sources
func (s *GutenbergStrategy) CanHandle(src catalog.Source) bool {
	return src.Kind == domain.KindGutenberg
}

// Execute runs the Gutenberg extraction
func (s *GutenbergStrategy) Execute(ctx context.Context, src catalog.Source, opts Options) (*domain.Sample, error) {
	return s.deps.run(ctx, s.Name(), src, opts, s.extract)
}

func (s *GutenbergStrategy) extract(ctx context.Context, src catalog.Source) (*extraction, error) {
	resp, err := s.deps.Fetcher.Get(ctx, src.FetchURL())
	if err != nil {
		return nil, err
	}

	if !converter.IsPlainTextContent(resp.ContentType, resp.URL) {
		s.logger.Warn().
			Str("content_type", resp.ContentType).
			Str("url", resp.URL).
			Msg("Response is not plain text, looking for markers anyway")
	}

	text := converter.NormalizeNewlines(converter.DecodeText(resp.Body))

	content, err := ExtractGutenbergContent(text)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, src.DisplayTitle())
	}

	paragraphs := excerpt.FilterShort(converter.SplitParagraphs(content), s.deps.MinParagraphWords)
	if len(paragraphs) < s.deps.Bounds.MinParagraphs {
		return nil, fmt.Errorf("%w: found %d, need %d",
			domain.ErrTooFewParagraphs, len(paragraphs), s.deps.Bounds.MinParagraphs)
	}

	middle := excerpt.TrimFraction(paragraphs, GutenbergTrimFraction, GutenbergMinParagraphs)
	if len(middle) < s.deps.Bounds.MinParagraphs {
		return nil, fmt.Errorf("%w: %d paragraphs left after trimming front and back matter",
			domain.ErrNoExcerpt, len(middle))
	}
	skipped := (len(paragraphs) - len(middle)) / 2

	s.logger.Debug().
		Int("paragraphs", len(paragraphs)).
		Int("skipped_each_end", skipped).
		Str("output", src.Output).
		Msg("Trimmed front and back matter")

	ext, err := s.deps.selectFlat(middle)
	if err != nil {
		return nil, err
	}
	ext.Offset += skipped
	ext.CacheHit = resp.FromCache
	return ext, nil
}

// ExtractGutenbergContent returns the book body between the START and END
// markers with runs of blank lines collapsed. The body begins on the line
// after the start marker. Line endings must already be normalized to LF.
func ExtractGutenbergContent(text string) (string, error) {
	start := gutenbergStart.FindStringIndex(text)
	if start == nil {
		return "", fmt.Errorf("%w: start marker", domain.ErrMarkersNotFound)
	}

	end := gutenbergEnd.FindStringIndex(text)
	if end == nil {
		return "", fmt.Errorf("%w: end marker", domain.ErrMarkersNotFound)
	}

	from := start[1]
	if nl := strings.IndexByte(text[from:], '\n'); nl >= 0 {
		from += nl
	}
	if from > end[0] {
		return "", fmt.Errorf("%w: end marker precedes start", domain.ErrMarkersNotFound)
	}

	content := converter.CollapseBlankLines(text[from:end[0]])
	return strings.TrimSpace(content), nil
}
