package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{name: "valid sample name", filename: "essay_chesterton.txt", expected: true},
		{name: "valid with spaces", filename: "my sample.txt", expected: true},
		{name: "path separator", filename: "samples/essay.txt", expected: false},
		{name: "backslash", filename: `samples\essay.txt`, expected: false},
		{name: "invalid characters", filename: "test:file.txt", expected: false},
		{name: "empty string", filename: "", expected: false},
		{name: "dot", filename: ".", expected: false},
		{name: "double dot", filename: "..", expected: false},
		{name: "Windows reserved name", filename: "CON.txt", expected: false},
		{name: "control character", filename: "test\x00file.txt", expected: false},
		{name: "too long", filename: strings.Repeat("a", MaxFilenameLength+1), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidFilename(tt.filename))
		})
	}
}

func TestJSONPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "text file", path: "/out/fiction_james.txt", expected: "/out/fiction_james.json"},
		{name: "no extension", path: "/out/sample", expected: "/out/sample.json"},
		{name: "dotted directory", path: "/out.d/nature_muir.txt", expected: "/out.d/nature_muir.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JSONPath(tt.path))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	testPath := filepath.Join(tempDir, "subdir", "file.txt")

	require.NoError(t, EnsureDir(testPath))
	require.NoError(t, EnsureDir(testPath))

	info, err := os.Stat(filepath.Dir(testPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
	assert.False(t, FileExists(dir))
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent and writes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "sample.txt")

		require.NoError(t, WriteFileAtomic(path, []byte("hello\n"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(data))
	})

	t.Run("replaces existing file without leftovers", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestCheckWritable(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, CheckWritable(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "home directory with slash", input: "~/.aitells/cache", expected: filepath.Join(home, ".aitells/cache")},
		{name: "home directory only", input: "~", expected: home},
		{name: "regular path", input: "/tmp/test", expected: "/tmp/test"},
		{name: "relative path", input: "./notebooks", expected: "./notebooks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}
