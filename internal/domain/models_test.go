package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"standard-ebooks", KindStandardEbooks},
		{"Government", KindGovernment},
		{" gutenberg ", KindGutenberg},
		{"WIKIBOOKS", KindWikibooks},
		{"all", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.input))
		})
	}
}

func TestKinds_Order(t *testing.T) {
	assert.Equal(t, []Kind{KindStandardEbooks, KindGovernment, KindGutenberg, KindWikibooks}, Kinds)
}

func TestSample_ToMetadata(t *testing.T) {
	fetched := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sample := &Sample{
		Kind:       KindGutenberg,
		Output:     "memoir_franklin.txt",
		Publisher:  "Project Gutenberg",
		Title:      "The Autobiography of Benjamin Franklin",
		Author:     "Benjamin Franklin",
		URL:        "https://www.gutenberg.org/ebooks/148",
		License:    "Public Domain",
		Paragraphs: []string{"one two", "three"},
		WordCount:  3,
		FetchedAt:  fetched,
	}

	meta := sample.ToMetadata()
	assert.Equal(t, 2, meta.ParagraphCount)

	data, err := json.Marshal(meta)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "gutenberg", decoded["kind"])
	assert.Equal(t, "Project Gutenberg", decoded["source"])
	assert.Equal(t, float64(2), decoded["paragraph_count"])
	assert.Equal(t, float64(3), decoded["word_count"])
	assert.NotContains(t, decoded, "Paragraphs")
	assert.NotContains(t, decoded, "section")
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		url  string
		want Kind
	}{
		{"https://standardebooks.org/ebooks/john-muir/my-first-summer-in-the-sierra", KindStandardEbooks},
		{"https://www.gutenberg.org/ebooks/211", KindGutenberg},
		{"https://gutenberg.org/cache/epub/148/pg148.txt", KindGutenberg},
		{"https://en.wikibooks.org/wiki/Cookbook:Bread", KindWikibooks},
		{"https://www.nps.gov/subjects/geology/plate-tectonics.htm", KindGovernment},
		{"https://www.fs.usda.gov/visit/know-before-you-go/bears", KindGovernment},
		{"https://www.army.mil/history", KindGovernment},
		{"HTTPS://WWW.NPS.GOV/", KindGovernment},
		{"https://notgutenberg.org/ebooks/1", KindUnknown},
		{"https://gov.example.com/page", KindUnknown},
		{"ftp://www.gutenberg.org/", KindUnknown},
		{"not a url", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.url))
		})
	}
}
