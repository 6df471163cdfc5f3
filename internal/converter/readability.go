package converter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ErrNoArticle is returned when readability finds no article body
var ErrNoArticle = errors.New("no readable article found")

// Article is the main content readability found on a page
type Article struct {
	Title      string
	Paragraphs []string
}

// ExtractArticle runs the readability algorithm over an HTML page and
// returns the normalized text of each paragraph in the article body.
func ExtractArticle(html, sourceURL string) (*Article, error) {
	parsedURL, err := url.Parse(sourceURL)
	if err != nil || parsedURL.Host == "" {
		parsedURL = &url.URL{Scheme: "https", Host: "example.com"}
	}

	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoArticle, err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, ErrNoArticle
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article: %w", err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := NormalizeText(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return nil, ErrNoArticle
	}

	return &Article{
		Title:      CollapseWhitespace(article.Title),
		Paragraphs: paragraphs,
	}, nil
}
