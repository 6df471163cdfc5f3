package strategies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/converter"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/excerpt"
	"github.com/tbhb/aitells/internal/utils"
)

// DefaultGovernmentTimeout bounds each government page request. These sites
// are often slow, so a request that stalls is abandoned early.
const DefaultGovernmentTimeout = 10 * time.Second

// GovernmentStrategy extracts excerpts from U.S. government web pages using a
// per-source CSS selector, falling back to readability extraction
type GovernmentStrategy struct {
	deps   *Dependencies
	logger *utils.Logger
}

// NewGovernmentStrategy creates a new government strategy
func NewGovernmentStrategy(deps *Dependencies) *GovernmentStrategy {
	return &GovernmentStrategy{
		deps:   deps,
		logger: deps.strategyLogger(string(domain.KindGovernment)),
	}
}

// Name returns the strategy name
func (s *GovernmentStrategy) Name() string {
	return string(domain.KindGovernment)
}

// CanHandle returns true for government sources
func (s *GovernmentStrategy) CanHandle(src catalog.Source) bool {
	return src.Kind == domain.KindGovernment
}

// Execute runs the government page extraction
func (s *GovernmentStrategy) Execute(ctx context.Context, src catalog.Source, opts Options) (*domain.Sample, error) {
	return s.deps.run(ctx, s.Name(), src, opts, s.extract)
}

func (s *GovernmentStrategy) extract(ctx context.Context, src catalog.Source) (*extraction, error) {
	pageURL := src.FetchURL()

	resp, err := s.deps.Fetcher.GetWithTimeout(ctx, pageURL, s.deps.GovernmentTimeout)
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(resp)
	if err != nil {
		return nil, err
	}

	var texts []string
	if src.Selector != "" {
		texts = converter.SelectorTexts(doc, src.Selector)
	}

	if len(texts) == 0 {
		s.logger.Warn().
			Str("selector", src.Selector).
			Str("url", pageURL).
			Msg("No paragraphs found with selector, falling back to readability")

		html, err := doc.Html()
		if err != nil {
			return nil, fmt.Errorf("failed to render page: %w", err)
		}

		article, err := converter.ExtractArticle(html, pageURL)
		if err != nil {
			if errors.Is(err, converter.ErrNoArticle) {
				return nil, fmt.Errorf("%w at %s", domain.ErrNoParagraphs, pageURL)
			}
			return nil, err
		}
		texts = article.Paragraphs
	}

	paragraphs := excerpt.FilterShort(texts, s.deps.MinParagraphWords)
	s.logger.Debug().
		Int("found", len(texts)).
		Int("kept", len(paragraphs)).
		Str("output", src.Output).
		Msg("Filtered paragraphs")

	ext, err := s.deps.selectFlat(paragraphs)
	if err != nil {
		return nil, err
	}
	ext.CacheHit = resp.FromCache
	return ext, nil
}
