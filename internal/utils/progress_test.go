package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	tests := []struct {
		name  string
		total int
	}{
		{name: "known total", total: 20},
		{name: "unknown total", total: -1},
		{name: "zero total", total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			bar := NewProgressBar(tt.total, DescFetching, &buf)
			require.NotNil(t, bar)
		})
	}
}

func TestProgressBar_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(3, DescFetching, &buf)

	require.NoError(t, bar.Add(1))
	require.NoError(t, bar.Add(2))
	require.NoError(t, bar.Finish())

	assert.Contains(t, buf.String(), DescFetching)
	assert.Contains(t, buf.String(), "3/3")
}

func TestProgressBar_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		bar := NewProgressBar(1, DescProcessing, nil)
		_ = bar.Finish()
	})
}
