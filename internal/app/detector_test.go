package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/strategies"
)

func TestDetectStrategy(t *testing.T) {
	tests := []struct {
		url  string
		want domain.Kind
	}{
		{"https://standardebooks.org/ebooks/mary-shelley/frankenstein", domain.KindStandardEbooks},
		{"https://www.gutenberg.org/ebooks/148", domain.KindGutenberg},
		{"https://en.wikibooks.org/wiki/Cookbook:Bread", domain.KindWikibooks},
		{"https://www.nps.gov/yell/learn/nature/geysers.htm", domain.KindGovernment},
		{"https://example.com/", domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectStrategy(tt.url))
		})
	}
}

func TestIsValidStrategy(t *testing.T) {
	for _, kind := range domain.Kinds {
		assert.True(t, IsValidStrategy(kind), kind)
	}
	assert.False(t, IsValidStrategy(domain.KindUnknown))
	assert.False(t, IsValidStrategy("crawler"))
}

func TestCreateStrategy(t *testing.T) {
	deps := &strategies.Dependencies{}

	for _, kind := range domain.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			strategy := CreateStrategy(kind, deps)
			require.NotNil(t, strategy)
			assert.Equal(t, string(kind), strategy.Name())
		})
	}

	assert.Nil(t, CreateStrategy(domain.KindUnknown, deps))
}

func TestGetAllStrategies(t *testing.T) {
	all := GetAllStrategies(&strategies.Dependencies{})
	require.Len(t, all, len(domain.Kinds))

	for i, kind := range domain.Kinds {
		assert.Equal(t, string(kind), all[i].Name())
	}
}

func TestFindMatchingStrategy(t *testing.T) {
	deps := &strategies.Dependencies{}

	strategy := FindMatchingStrategy(catalog.Source{Kind: domain.KindGutenberg, ID: 148}, deps)
	require.NotNil(t, strategy)
	assert.Equal(t, "gutenberg", strategy.Name())

	assert.Nil(t, FindMatchingStrategy(catalog.Source{Kind: domain.KindUnknown}, deps))
}
