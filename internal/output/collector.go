package output

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/utils"
)

// DefaultIndexFilename is the run index written next to the samples
const DefaultIndexFilename = "samples.json"

// SampleIndex lists every sample written during one run
type SampleIndex struct {
	GeneratedAt  time.Time                `json:"generated_at"`
	TotalSamples int                      `json:"total_samples"`
	TotalWords   int                      `json:"total_words"`
	Samples      []*domain.SampleMetadata `json:"samples"`
}

// MetadataCollector gathers sample metadata from concurrent writers and
// flushes it as a single index file.
type MetadataCollector struct {
	mu       sync.RWMutex
	samples  []*domain.SampleMetadata
	baseDir  string
	filename string
	enabled  bool
}

// CollectorOptions contains options for the collector
type CollectorOptions struct {
	BaseDir  string
	Filename string
	Enabled  bool
}

// NewMetadataCollector creates a collector
func NewMetadataCollector(opts CollectorOptions) *MetadataCollector {
	filename := opts.Filename
	if filename == "" {
		filename = DefaultIndexFilename
	}
	return &MetadataCollector{
		samples:  make([]*domain.SampleMetadata, 0),
		baseDir:  opts.BaseDir,
		filename: filename,
		enabled:  opts.Enabled,
	}
}

// Add records a sample
func (c *MetadataCollector) Add(sample *domain.Sample) {
	if !c.enabled || sample == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, sample.ToMetadata())
}

// Flush writes the index. Nothing is written when the collector is
// disabled or empty.
func (c *MetadataCollector) Flush() error {
	if !c.enabled {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.samples) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(c.buildIndex(), "", "  ")
	if err != nil {
		return err
	}

	return utils.WriteFileAtomic(c.Path(), append(data, '\n'), 0o644)
}

// buildIndex orders samples by output name so the index is stable
// regardless of which kind finished first.
func (c *MetadataCollector) buildIndex() *SampleIndex {
	samples := make([]*domain.SampleMetadata, len(c.samples))
	copy(samples, c.samples)
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Output < samples[j].Output
	})

	words := 0
	for _, s := range samples {
		words += s.WordCount
	}

	return &SampleIndex{
		GeneratedAt:  time.Now().UTC(),
		TotalSamples: len(samples),
		TotalWords:   words,
		Samples:      samples,
	}
}

// Path returns where the index is written
func (c *MetadataCollector) Path() string {
	return filepath.Join(c.baseDir, c.filename)
}

// Count returns the number of samples recorded
func (c *MetadataCollector) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.samples)
}

// GetIndex returns the index as it would be written now
func (c *MetadataCollector) GetIndex() *SampleIndex {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buildIndex()
}

// IsEnabled reports whether the collector records samples
func (c *MetadataCollector) IsEnabled() bool {
	return c.enabled
}
