package strategies

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/converter"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/excerpt"
	"github.com/tbhb/aitells/internal/utils"
)

// MinSectionParagraphs is the least prose a non-chapter section needs
const MinSectionParagraphs = 3

// frontBackMatterIDs are section ids that hold no body prose
var frontBackMatterIDs = map[string]bool{
	"titlepage":     true,
	"toc":           true,
	"imprint":       true,
	"preface":       true,
	"halftitlepage": true,
	"endnotes":      true,
	"colophon":      true,
	"uncopyright":   true,
}

// subsectionID matches ids like "essay-name-2"
var subsectionID = regexp.MustCompile(`-\d+$`)

// StandardEbooksStrategy extracts excerpts from Standard Ebooks single-page editions
type StandardEbooksStrategy struct {
	deps   *Dependencies
	logger *utils.Logger
}

// NewStandardEbooksStrategy creates a new Standard Ebooks strategy
func NewStandardEbooksStrategy(deps *Dependencies) *StandardEbooksStrategy {
	return &StandardEbooksStrategy{
		deps:   deps,
		logger: deps.strategyLogger(string(domain.KindStandardEbooks)),
	}
}

// Name returns the strategy name
func (s *StandardEbooksStrategy) Name() string {
	return string(domain.KindStandardEbooks)
}

// CanHandle returns true for Standard Ebooks sources
func (s *StandardEbooksStrategy) CanHandle(src catalog.Source) bool {
	return src.Kind == domain.KindStandardEbooks
}

// Execute runs the Standard Ebooks extraction
func (s *StandardEbooksStrategy) Execute(ctx context.Context, src catalog.Source, opts Options) (*domain.Sample, error) {
	return s.deps.run(ctx, s.Name(), src, opts, s.extract)
}

func (s *StandardEbooksStrategy) extract(ctx context.Context, src catalog.Source) (*extraction, error) {
	resp, err := s.deps.Fetcher.Get(ctx, src.FetchURL())
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(resp)
	if err != nil {
		return nil, err
	}

	sections := ExtractSections(doc)
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoSections, src.TitleSlug)
	}
	s.logger.Debug().
		Int("sections", len(sections)).
		Str("output", src.Output).
		Msg("Extracted sections")

	middle := excerpt.MiddleSections(sections)
	if middle == nil {
		return nil, fmt.Errorf("%w: only %d sections", domain.ErrNoExcerpt, len(sections))
	}

	section, w, err := excerpt.SelectFromSections(middle, s.deps.Bounds)
	if err != nil {
		return nil, err
	}

	return &extraction{
		Paragraphs: w.Paragraphs,
		Offset:     w.Start,
		Section:    catalog.FormatSlug(section.ID),
		CacheHit:   resp.FromCache,
	}, nil
}

// ExtractSections splits a single-page ebook into prose sections. Novels
// are split on elements whose id starts with "chapter-". Collections without
// chapters use every identified article or section, skipping front and back
// matter, numbered subsections and volume wrappers, and keeping only those
// with at least MinSectionParagraphs paragraphs.
func ExtractSections(doc *goquery.Document) []domain.Section {
	var sections []domain.Section

	chapters := doc.Find(`[id^="chapter-"]`)
	if chapters.Length() > 0 {
		chapters.Each(func(_ int, el *goquery.Selection) {
			id, _ := el.Attr("id")
			if paragraphs := converter.ParagraphTexts(el); len(paragraphs) > 0 {
				sections = append(sections, domain.Section{ID: id, Paragraphs: paragraphs})
			}
		})
		return sections
	}

	doc.Find("article, section").Each(func(_ int, el *goquery.Selection) {
		id, ok := el.Attr("id")
		if !ok || id == "" {
			return
		}
		if frontBackMatterIDs[id] || subsectionID.MatchString(id) || strings.HasPrefix(id, "volume-") {
			return
		}

		if paragraphs := converter.ParagraphTexts(el); len(paragraphs) >= MinSectionParagraphs {
			sections = append(sections, domain.Section{ID: id, Paragraphs: paragraphs})
		}
	})

	return sections
}
