package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Loader loads and validates catalog files
type Loader struct{}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{}
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	return NewLoader().LoadFromBytes(defaultCatalog, ".yaml")
}

// LoadOrDefault loads the catalog at path, or the built-in one when path is empty
func (l *Loader) LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return l.Load(path)
}

// Load reads and parses a catalog file from the given path
func (l *Loader) Load(path string) (*Catalog, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return l.LoadFromBytes(data, filepath.Ext(path))
}

// LoadFromBytes parses a catalog from raw bytes
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Catalog, error) {
	ext = strings.ToLower(ext)

	var cat Catalog
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	l.applyDefaults(&cat)

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	return &cat, nil
}

func (l *Loader) applyDefaults(cat *Catalog) {
	for i := range cat.Sources {
		cat.Sources[i].normalize()
	}
	if cat.Options.Delay < 0 {
		cat.Options.Delay = 0
	}
}
