package language

import (
	"testing"

	"github.com/pemistahl/lingua-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    lingua.Language
		wantErr bool
	}{
		{"english", lingua.English, false},
		{"English", lingua.English, false},
		{"en", lingua.English, false},
		{" FR ", lingua.French, false},
		{"latin", lingua.Latin, false},
		{"klingon", lingua.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Disabled(t *testing.T) {
	d, err := New("")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestNew_Unsupported(t *testing.T) {
	_, err := New("klingon")
	assert.Error(t, err)
}

func TestDetector_Matches(t *testing.T) {
	d, err := New("english")
	require.NoError(t, err)
	assert.Equal(t, "English", d.Expected())

	name, ok := d.Matches("It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness.")
	assert.True(t, ok)
	assert.Equal(t, "English", name)

	name, ok = d.Matches("Longtemps, je me suis couché de bonne heure. Parfois, à peine ma bougie éteinte, mes yeux se fermaient si vite que je n'avais pas le temps de me dire.")
	assert.False(t, ok)
	assert.Equal(t, "French", name)
}
