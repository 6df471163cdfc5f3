package excerpt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbhb/aitells/internal/domain"
)

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("p%d", i)
	}
	return out
}

func TestFilterShort(t *testing.T) {
	paragraphs := []string{words(19), words(20), "", words(50)}

	got := FilterShort(paragraphs, DefaultMinParagraphWords)

	assert.Equal(t, []string{words(20), words(50)}, got)
	assert.Empty(t, FilterShort(nil, 20))
}

func TestTrimFraction(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		want   []string
		minLen int
	}{
		{
			name:   "below minimum length",
			input:  numbered(4),
			minLen: 5,
			want:   nil,
		},
		{
			name:   "at least one from each end",
			input:  numbered(5),
			minLen: 5,
			want:   []string{"p1", "p2", "p3"},
		},
		{
			name:   "ten percent of a longer sequence",
			input:  numbered(30),
			minLen: 5,
			want:   numbered(30)[3:27],
		},
		{
			name:   "nothing left after trimming",
			input:  numbered(2),
			minLen: 0,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimFraction(tt.input, 0.1, tt.minLen))
		})
	}
}

func TestMiddleSections(t *testing.T) {
	sections := []domain.Section{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	got := MiddleSections(sections)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	assert.Nil(t, MiddleSections(sections[:2]))
}

func TestSelectFromSections(t *testing.T) {
	bounds := Bounds{MinWords: 20, MaxWords: 30, MinParagraphs: 2, MaxParagraphs: 3}

	t.Run("first section with a hit wins", func(t *testing.T) {
		sections := []domain.Section{
			{ID: "chapter-1", Paragraphs: []string{words(100), words(100)}},
			{ID: "chapter-2", Paragraphs: []string{words(10), words(12)}},
			{ID: "chapter-3", Paragraphs: []string{words(10), words(10)}},
		}

		section, w, err := SelectFromSections(sections, bounds)
		require.NoError(t, err)
		assert.Equal(t, "chapter-2", section.ID)
		assert.Equal(t, 22, w.Words)
	})

	t.Run("windows do not span sections", func(t *testing.T) {
		sections := []domain.Section{
			{ID: "a", Paragraphs: []string{words(12)}},
			{ID: "b", Paragraphs: []string{words(12)}},
		}

		_, _, err := SelectFromSections(sections, bounds)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
