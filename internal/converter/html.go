package converter

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// NewDocument decodes an HTML body to UTF-8 and parses it
func NewDocument(body []byte, contentType string) (*goquery.Document, error) {
	decoded, err := DecodeHTML(body, contentType)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParagraphTexts returns the collapsed text of every non-empty <p> under sel,
// in document order.
func ParagraphTexts(sel *goquery.Selection) []string {
	var paragraphs []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := CollapseWhitespace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}

// SelectorTexts returns the normalized text of every element matching the
// CSS selector. Empty results are dropped.
func SelectorTexts(doc *goquery.Document, selector string) []string {
	var texts []string
	doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
		if text := NormalizeText(el.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}
