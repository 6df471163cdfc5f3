package strategies

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/mocks"
)

func wikiPage(body string) string {
	return `<html><body><div id="content">
		<div id="mw-content-text"><div class="mw-parser-output">` + body + `</div></div>
	</div></body></html>`
}

func wikibooksSource(url string) catalog.Source {
	return catalog.Source{
		Kind:   domain.KindWikibooks,
		URL:    url,
		Title:  "Bread",
		Output: "howto_bread.txt",
	}
}

func TestWikibooksStrategy_ExtractParagraphs(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewWikibooksStrategy(newTestDeps(t, mocks.NewMockFetcher(ctrl)))

	doc := mustParseHTML(t, wikiPage(`
		<div class="hatnote"><p>For other uses, see Bread (disambiguation).</p></div>
		<div id="toc" class="toc"><p>Contents</p></div>
		<h2>History<span class="mw-editsection">[edit]</span></h2>
		<p>Bread is a staple food.[1] It is old.[citation needed]</p>
		<div class="thumb"><div class="thumbinner"><p>A loaf of bread.</p></div></div>
		<table class="navbox"><tr><td><p>Cookbook navigation</p></td></tr></table>
		<p>   </p>
		<p>Dough  rises [ 12 ] slowly.</p>
	`))

	assert.Equal(t, []string{
		"Bread is a staple food. It is old.",
		"Dough rises slowly.",
	}, s.ExtractParagraphs(doc))

	assert.Nil(t, s.ExtractParagraphs(mustParseHTML(t, "<p>no wiki body</p>")))
}

func TestWikibooksStrategy_ExtractParagraphs_AncestorChrome(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewWikibooksStrategy(newTestDeps(t, mocks.NewMockFetcher(ctrl)))

	t.Run("only ancestors are checked", func(t *testing.T) {
		doc := mustParseHTML(t, wikiPage(`
			<p class="metadata">Tagged paragraph is kept.</p>
			<p style="display:none">Hidden paragraph is kept.</p>
			<p>Footnote marker goes.<sup class="reference">[1]</sup></p>
			<div class="ambox"><div><p>Deep notice.</p></div></div>
		`))

		assert.Equal(t, []string{
			"Tagged paragraph is kept.",
			"Hidden paragraph is kept.",
			"Footnote marker goes.",
		}, s.ExtractParagraphs(doc))
	})

	t.Run("chrome above the article body", func(t *testing.T) {
		doc := mustParseHTML(t, `<html><body><div class="noprint"><div id="mw-content-text">
			<div class="mw-parser-output"><p>Printed nowhere.</p></div>
		</div></div></body></html>`)

		assert.Empty(t, s.ExtractParagraphs(doc))
	})
}

func TestWikibooksStrategy_Execute(t *testing.T) {
	t.Run("selects prose", func(t *testing.T) {
		server := serveHTML(t, wikiPage(`
			<p>Short intro.</p>
			<p>`+words(80, "knead")+`[1]</p>
			<p>`+words(90, "proof")+`</p>
			<div class="navbox"><p>`+words(50, "nav")+`</p></div>
		`))

		deps := newTestDeps(t, newHTTPClient(t))
		src := wikibooksSource(server.URL + "/wiki/Cookbook:Bread")

		sample, err := NewWikibooksStrategy(deps).Execute(context.Background(), src, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, 170, sample.WordCount)

		content := readOutput(t, deps, src.Output)
		assert.True(t, strings.HasPrefix(content,
			"# Source: Wikibooks - Bread\n"+
				"# URL: "+src.URL+"\n"+
				"# License: CC BY-SA 3.0\n\n"))
		assert.NotContains(t, content, "[1]")
		assert.NotContains(t, content, "nav ")
	})

	t.Run("stub page", func(t *testing.T) {
		server := serveHTML(t, wikiPage(`<p>`+words(40, "stub")+`</p><p>`+words(30, "tiny")+`</p>`))

		deps := newTestDeps(t, newHTTPClient(t))
		_, err := NewWikibooksStrategy(deps).Execute(context.Background(), wikibooksSource(server.URL), DefaultOptions())

		assert.ErrorIs(t, err, domain.ErrStubPage)
		assert.Contains(t, err.Error(), "70 words")
	})

	t.Run("missing content root is a stub", func(t *testing.T) {
		server := serveHTML(t, `<html><body><p>`+words(300, "loose")+`</p></body></html>`)

		deps := newTestDeps(t, newHTTPClient(t))
		_, err := NewWikibooksStrategy(deps).Execute(context.Background(), wikibooksSource(server.URL), DefaultOptions())

		assert.ErrorIs(t, err, domain.ErrStubPage)
	})

	t.Run("one long paragraph is too few", func(t *testing.T) {
		server := serveHTML(t, wikiPage(`<p>`+words(200, "single")+`</p>`))

		deps := newTestDeps(t, newHTTPClient(t))
		_, err := NewWikibooksStrategy(deps).Execute(context.Background(), wikibooksSource(server.URL), DefaultOptions())

		assert.ErrorIs(t, err, domain.ErrTooFewParagraphs)
	})
}
