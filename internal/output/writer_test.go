package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbhb/aitells/internal/domain"
)

func testSample(output string) *domain.Sample {
	return &domain.Sample{
		Kind:       domain.KindGutenberg,
		Output:     output,
		Publisher:  "Project Gutenberg",
		Title:      "The Aspern Papers",
		Author:     "Henry James",
		URL:        "https://www.gutenberg.org/ebooks/211",
		License:    "Public Domain",
		Paragraphs: []string{"one two three", "four five"},
		WordCount:  5,
		FetchedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		name  string
		opts  WriterOptions
		check func(t *testing.T, w *Writer)
	}{
		{
			name: "default base dir",
			opts: WriterOptions{},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, DefaultBaseDir, w.BaseDir())
				assert.False(t, w.DryRun())
			},
		},
		{
			name: "all options",
			opts: WriterOptions{BaseDir: "/tmp/out", JSONMetadata: true, DryRun: true},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, "/tmp/out", w.BaseDir())
				assert.True(t, w.jsonMetadata)
				assert.True(t, w.DryRun())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewWriter(tt.opts))
		})
	}
}

func TestWriter_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("writes rendered sample", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		w := NewWriter(WriterOptions{BaseDir: dir})
		sample := testSample("fiction_james.txt")

		require.NoError(t, w.Write(ctx, sample))

		data, err := os.ReadFile(filepath.Join(dir, "fiction_james.txt"))
		require.NoError(t, err)
		assert.Equal(t, Render(sample), string(data))
		assert.True(t, w.Exists("fiction_james.txt"))
		assert.NoFileExists(t, filepath.Join(dir, "fiction_james.json"))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "essay.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		w := NewWriter(WriterOptions{BaseDir: dir})
		require.NoError(t, w.Write(ctx, testSample("essay.txt")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Source: Project Gutenberg")
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		w := NewWriter(WriterOptions{BaseDir: dir, DryRun: true, JSONMetadata: true})

		require.NoError(t, w.Write(ctx, testSample("dry.txt")))
		require.NoError(t, w.EnsureBaseDir())
		assert.NoDirExists(t, dir)
	})

	t.Run("json sidecar", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWriter(WriterOptions{BaseDir: dir, JSONMetadata: true})

		require.NoError(t, w.Write(ctx, testSample("fiction_james.txt")))

		data, err := os.ReadFile(filepath.Join(dir, "fiction_james.json"))
		require.NoError(t, err)

		var meta map[string]any
		require.NoError(t, json.Unmarshal(data, &meta))
		assert.Equal(t, "gutenberg", meta["kind"])
		assert.Equal(t, "https://www.gutenberg.org/ebooks/211", meta["url"])
		assert.Equal(t, float64(5), meta["word_count"])
		assert.Equal(t, float64(2), meta["paragraph_count"])
		assert.Equal(t, "2024-01-02T03:04:05Z", meta["fetched_at"])
	})

	t.Run("rejects unsafe filenames", func(t *testing.T) {
		w := NewWriter(WriterOptions{BaseDir: t.TempDir()})

		for _, name := range []string{"", "../escape.txt", "a/b.txt"} {
			err := w.Write(ctx, testSample(name))
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr, name)
		}
	})

	t.Run("nil sample", func(t *testing.T) {
		w := NewWriter(WriterOptions{BaseDir: t.TempDir()})
		assert.ErrorIs(t, w.Write(ctx, nil), domain.ErrInvalidSource)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		w := NewWriter(WriterOptions{BaseDir: t.TempDir()})
		assert.ErrorIs(t, w.Write(cctx, testSample("x.txt")), context.Canceled)
	})
}

func TestWriter_RecordsToCollector(t *testing.T) {
	dir := t.TempDir()
	collector := NewMetadataCollector(CollectorOptions{BaseDir: dir, Enabled: true})
	w := NewWriter(WriterOptions{BaseDir: dir, Collector: collector})

	require.NoError(t, w.Write(context.Background(), testSample("a.txt")))
	assert.Equal(t, 1, collector.Count())
}

func TestWriter_Path(t *testing.T) {
	w := NewWriter(WriterOptions{BaseDir: "/data/samples"})
	assert.Equal(t, filepath.Join("/data/samples", "essay_emerson.txt"), w.Path("essay_emerson.txt"))
	assert.False(t, w.Exists("essay_emerson.txt"))
}
