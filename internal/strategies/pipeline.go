package strategies

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/converter"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/excerpt"
)

// extraction is what a strategy hands back after selecting an excerpt
type extraction struct {
	Paragraphs []string
	Offset     int
	Section    string
	CacheHit   bool
}

type extractFunc func(ctx context.Context, src catalog.Source) (*extraction, error)

// run performs the steps every strategy shares around its extract step:
// the existing-output check, the language check, writing and logging.
func (d *Dependencies) run(ctx context.Context, name string, src catalog.Source, opts Options, extract extractFunc) (*domain.Sample, error) {
	logger := d.strategyLogger(name).WithSource(src.Output)

	if !opts.Force && d.Writer.Exists(src.Output) {
		logger.Info().Msgf("Skipping %s (already exists, use --force to overwrite)", src.Output)
		return nil, domain.ErrSkipped
	}

	logger.WithURL(src.FetchURL()).Info().
		Msgf("Fetching %s", src.DisplayTitle())

	ext, err := extract(ctx, src)
	if err != nil {
		return nil, domain.NewStrategyError(name, src.Output, err)
	}

	if d.Language != nil {
		detected, ok := d.Language.Matches(strings.Join(ext.Paragraphs, " "))
		if !ok {
			return nil, domain.NewStrategyError(name, src.Output,
				fmt.Errorf("%w: detected %s, expected %s",
					domain.ErrLanguageMismatch, detected, d.Language.Expected()))
		}
	}

	sample := &domain.Sample{
		Kind:       src.Kind,
		Output:     src.Output,
		Publisher:  src.DisplayPublisher(),
		Title:      src.DisplayTitle(),
		Author:     src.DisplayAuthor(),
		Section:    ext.Section,
		URL:        src.PageURL(),
		License:    src.DisplayLicense(),
		Paragraphs: ext.Paragraphs,
		WordCount:  excerpt.CountWords(ext.Paragraphs...),
		Offset:     ext.Offset,
		FetchedAt:  time.Now().UTC(),
		CacheHit:   ext.CacheHit,
	}

	if err := d.Writer.Write(ctx, sample); err != nil {
		return nil, domain.NewStrategyError(name, src.Output, err)
	}

	verb := "Saved"
	if opts.DryRun {
		verb = "Would save"
	}
	logger.Info().
		Int("paragraphs", sample.ParagraphCount()).
		Int("words", sample.WordCount).
		Bool("cache_hit", sample.CacheHit).
		Msgf("%s %s (%d paragraphs, %d words)", verb, src.Output, sample.ParagraphCount(), sample.WordCount)

	return sample, nil
}

// selectFlat runs the selector over a flat paragraph list after the shared
// minimum-paragraph check.
func (d *Dependencies) selectFlat(paragraphs []string) (*extraction, error) {
	if len(paragraphs) < d.Bounds.MinParagraphs {
		return nil, fmt.Errorf("%w: found %d, need %d",
			domain.ErrTooFewParagraphs, len(paragraphs), d.Bounds.MinParagraphs)
	}

	w, err := excerpt.Find(paragraphs, d.Bounds)
	if err != nil {
		return nil, err
	}

	return &extraction{
		Paragraphs: w.Paragraphs,
		Offset:     w.Start,
	}, nil
}

// parseHTML parses an HTML response. Other content types, such as a PDF
// served in place of a page, are rejected.
func parseHTML(resp *domain.Response) (*goquery.Document, error) {
	if !converter.IsHTMLContent(resp.ContentType) {
		return nil, fmt.Errorf("%w: %s at %s", domain.ErrUnexpectedContent, resp.ContentType, resp.URL)
	}
	return converter.NewDocument(resp.Body, resp.ContentType)
}
