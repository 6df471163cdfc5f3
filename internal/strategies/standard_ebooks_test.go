package strategies

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/mocks"
)

func mustParseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// chapterBook renders a single-page novel with one section per entry of
// paragraphWords, each holding three paragraphs of that many words.
func chapterBook(paragraphWords ...int) string {
	var b strings.Builder
	b.WriteString(`<html><body><section id="titlepage"><p>Title page</p></section>`)
	for i, n := range paragraphWords {
		fmt.Fprintf(&b, `<section id="chapter-%d"><h2>Chapter %d</h2>`, i+1, i+1)
		for j := 0; j < 3; j++ {
			fmt.Fprintf(&b, "<p>%s</p>", words(n, fmt.Sprintf("c%d", i+1)))
		}
		b.WriteString(`</section>`)
	}
	b.WriteString(`<section id="colophon"><p>Colophon</p></section></body></html>`)
	return b.String()
}

func TestExtractSections(t *testing.T) {
	t.Run("chapters", func(t *testing.T) {
		doc := mustParseHTML(t, chapterBook(10, 20, 30))

		sections := ExtractSections(doc)
		require.Len(t, sections, 3)
		assert.Equal(t, "chapter-1", sections[0].ID)
		assert.Equal(t, "chapter-3", sections[2].ID)
		assert.Len(t, sections[1].Paragraphs, 3)
	})

	t.Run("empty chapters dropped", func(t *testing.T) {
		doc := mustParseHTML(t, `<section id="chapter-1"><h2>I</h2></section>
			<section id="chapter-2"><p>Some text.</p><p>   </p></section>`)

		sections := ExtractSections(doc)
		require.Len(t, sections, 1)
		assert.Equal(t, "chapter-2", sections[0].ID)
		assert.Equal(t, []string{"Some text."}, sections[0].Paragraphs)
	})

	t.Run("essay collection", func(t *testing.T) {
		three := "<p>one</p><p>two</p><p>three</p>"
		doc := mustParseHTML(t, `
			<section id="toc">`+three+`</section>
			<section id="imprint">`+three+`</section>
			<article id="self-reliance">`+three+`</article>
			<section id="self-reliance-2">`+three+`</section>
			<section id="volume-1">`+three+`</section>
			<article id="compensation"><p>too</p><p>short</p></article>
			<article>`+three+`</article>
			<section id="history">`+three+`<p>four</p></section>`)

		sections := ExtractSections(doc)
		require.Len(t, sections, 2)
		assert.Equal(t, "self-reliance", sections[0].ID)
		assert.Equal(t, "history", sections[1].ID)
		assert.Len(t, sections[1].Paragraphs, 4)
	})

	t.Run("nothing found", func(t *testing.T) {
		assert.Empty(t, ExtractSections(mustParseHTML(t, "<p>loose</p>")))
	})
}

func TestStandardEbooksStrategy_Execute(t *testing.T) {
	src := catalog.Source{
		Kind:       domain.KindStandardEbooks,
		AuthorSlug: "kenneth-grahame",
		TitleSlug:  "the-wind-in-the-willows",
		Output:     "fiction_grahame.txt",
	}
	fetchURL := "https://standardebooks.org/ebooks/kenneth-grahame/the-wind-in-the-willows/text/single-page"

	t.Run("selects from middle chapters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		// chapter-2 paragraphs are too long; chapter-3 fits as a whole
		f.EXPECT().Get(gomock.Any(), fetchURL).Return(&domain.Response{
			StatusCode:  200,
			Body:        []byte(chapterBook(60, 300, 60, 60)),
			ContentType: "text/html; charset=utf-8",
		}, nil)

		deps := newTestDeps(t, f)
		s := NewStandardEbooksStrategy(deps)

		sample, err := s.Execute(context.Background(), src, DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, "Chapter 3", sample.Section)
		assert.Equal(t, 180, sample.WordCount)
		assert.Equal(t, 0, sample.Offset)
		assert.Equal(t, "The Wind In The Willows", sample.Title)
		assert.Equal(t, "Kenneth Grahame", sample.Author)

		content := readOutput(t, deps, src.Output)
		assert.True(t, strings.HasPrefix(content,
			"# Source: Standard Ebooks - The Wind In The Willows by Kenneth Grahame\n"+
				"# Section: Chapter 3\n"+
				"# URL: "+fetchURL+"\n"+
				"# License: Public Domain (CC0)\n\n"))
		assert.True(t, strings.HasSuffix(content, "c3\n"))
		assert.NotContains(t, content, "c1 ")
		assert.NotContains(t, content, "c4 ")
	})

	t.Run("too few sections", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(gomock.Any(), fetchURL).Return(&domain.Response{Body: []byte(chapterBook(60, 60))}, nil)

		_, err := NewStandardEbooksStrategy(newTestDeps(t, f)).Execute(context.Background(), src, DefaultOptions())
		assert.ErrorIs(t, err, domain.ErrNoExcerpt)
	})

	t.Run("no sections", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(gomock.Any(), fetchURL).Return(&domain.Response{Body: []byte("<p>nothing</p>")}, nil)

		_, err := NewStandardEbooksStrategy(newTestDeps(t, f)).Execute(context.Background(), src, DefaultOptions())
		assert.ErrorIs(t, err, domain.ErrNoSections)
	})

	t.Run("non-HTML response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(gomock.Any(), fetchURL).Return(&domain.Response{
			StatusCode:  200,
			Body:        []byte("%PDF-1.7"),
			ContentType: "application/pdf",
			URL:         fetchURL,
		}, nil)

		_, err := NewStandardEbooksStrategy(newTestDeps(t, f)).Execute(context.Background(), src, DefaultOptions())
		assert.ErrorIs(t, err, domain.ErrUnexpectedContent)
	})

	t.Run("fetch failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(gomock.Any(), fetchURL).Return(nil, domain.NewFetchError(fetchURL, 404, fmt.Errorf("HTTP 404")))

		deps := newTestDeps(t, f)
		_, err := NewStandardEbooksStrategy(deps).Execute(context.Background(), src, DefaultOptions())

		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 404, fetchErr.StatusCode)
		assert.False(t, deps.Writer.Exists(src.Output))
	})

	t.Run("dry run fetches but does not write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(gomock.Any(), fetchURL).Return(&domain.Response{Body: []byte(chapterBook(60, 60, 60))}, nil)

		deps := newTestDeps(t, f)
		deps.Writer = newDryRunWriter(t)
		opts := DefaultOptions()
		opts.DryRun = true

		sample, err := NewStandardEbooksStrategy(deps).Execute(context.Background(), src, opts)
		require.NoError(t, err)
		assert.Equal(t, "Chapter 2", sample.Section)
		assert.False(t, deps.Writer.Exists(src.Output))
	})
}
