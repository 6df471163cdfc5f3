package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArticle(t *testing.T) {
	sentence := "The national park service protects the geology of the region for future generations of visitors. "
	html := `<html><head><title>Plate Tectonics</title></head><body>
		<nav><a href="/">Home</a><a href="/about">About</a></nav>
		<div id="main"><article>
			<h1>Plate Tectonics</h1>
			<p>` + strings.Repeat(sentence, 4) + `</p>
			<p>` + strings.Repeat(sentence, 3) + `</p>
			<p>` + strings.Repeat(sentence, 5) + `</p>
		</article></div>
		<footer>Contact us</footer>
	</body></html>`

	article, err := ExtractArticle(html, "https://www.nps.gov/subjects/geology/plate-tectonics.htm")
	require.NoError(t, err)

	assert.Equal(t, "Plate Tectonics", article.Title)
	require.Len(t, article.Paragraphs, 3)
	assert.True(t, strings.HasPrefix(article.Paragraphs[0], "The national park service"))
	for _, p := range article.Paragraphs {
		assert.NotContains(t, p, "Contact us")
	}
}

func TestExtractArticle_Empty(t *testing.T) {
	_, err := ExtractArticle("<html><body></body></html>", "not a url")
	assert.ErrorIs(t, err, ErrNoArticle)
}
