package strategies

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/converter"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/excerpt"
	"github.com/tbhb/aitells/internal/utils"
)

// StubWordThreshold is the total prose below which a page is treated as a stub
const StubWordThreshold = 100

// wikiContentSelector locates the rendered article body on MediaWiki pages
const wikiContentSelector = "#mw-content-text .mw-parser-output"

// WikibooksStrategy extracts excerpts from Wikibooks pages
type WikibooksStrategy struct {
	deps   *Dependencies
	logger *utils.Logger
}

// NewWikibooksStrategy creates a new Wikibooks strategy
func NewWikibooksStrategy(deps *Dependencies) *WikibooksStrategy {
	return &WikibooksStrategy{
		deps:   deps,
		logger: deps.strategyLogger(string(domain.KindWikibooks)),
	}
}

// Name returns the strategy name
func (s *WikibooksStrategy) Name() string {
	return string(domain.KindWikibooks)
}

// CanHandle returns true for Wikibooks sources
func (s *WikibooksStrategy) CanHandle(src catalog.Source) bool {
	return src.Kind == domain.KindWikibooks
}

// Execute runs the Wikibooks extraction
func (s *WikibooksStrategy) Execute(ctx context.Context, src catalog.Source, opts Options) (*domain.Sample, error) {
	return s.deps.run(ctx, s.Name(), src, opts, s.extract)
}

func (s *WikibooksStrategy) extract(ctx context.Context, src catalog.Source) (*extraction, error) {
	pageURL := src.FetchURL()

	resp, err := s.deps.Fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(resp)
	if err != nil {
		return nil, err
	}

	paragraphs := excerpt.FilterShort(s.ExtractParagraphs(doc), s.deps.MinParagraphWords)

	if total := excerpt.CountWords(paragraphs...); total < StubWordThreshold {
		return nil, fmt.Errorf("%w (%d words) at %s", domain.ErrStubPage, total, pageURL)
	}

	ext, err := s.deps.selectFlat(paragraphs)
	if err != nil {
		return nil, err
	}
	ext.CacheHit = resp.FromCache
	return ext, nil
}

// ExtractParagraphs returns the cleaned text of every paragraph in the
// article body that is not nested inside navigation, captions, notices or
// other chrome listed in converter.WikiSkipClasses. Paragraphs are not
// length-filtered.
func (s *WikibooksStrategy) ExtractParagraphs(doc *goquery.Document) []string {
	root := doc.Find(wikiContentSelector).First()
	if root.Length() == 0 {
		return nil
	}

	var paragraphs []string
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		if converter.InWikiChrome(p) {
			return
		}
		if text := converter.StripWikiArtifacts(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}
