package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/utils"
)

// Ensure Writer implements domain.Writer
var _ domain.Writer = (*Writer)(nil)

// Writer saves samples to the output directory
type Writer struct {
	baseDir      string
	jsonMetadata bool
	dryRun       bool
	collector    *MetadataCollector
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir      string
	JSONMetadata bool
	DryRun       bool
	// Collector, when set, records every sample written
	Collector *MetadataCollector
}

// DefaultBaseDir is used when no output directory is configured
const DefaultBaseDir = "./notebooks/samples/human_written"

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = DefaultBaseDir
	}

	return &Writer{
		baseDir:      opts.BaseDir,
		jsonMetadata: opts.JSONMetadata,
		dryRun:       opts.DryRun,
		collector:    opts.Collector,
	}
}

// Write renders a sample and saves it as <baseDir>/<sample.Output>,
// replacing any existing file. In dry-run mode nothing is written.
func (w *Writer) Write(ctx context.Context, sample *domain.Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sample == nil {
		return fmt.Errorf("%w: nil sample", domain.ErrInvalidSource)
	}
	if !utils.IsValidFilename(sample.Output) {
		return domain.NewValidationError("output", fmt.Sprintf("invalid filename %q", sample.Output))
	}

	if w.dryRun {
		return nil
	}

	path := w.Path(sample.Output)
	if err := utils.EnsureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := utils.WriteFileAtomic(path, []byte(Render(sample)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sample.Output, err)
	}

	if w.jsonMetadata {
		if err := w.writeJSON(utils.JSONPath(path), sample); err != nil {
			return fmt.Errorf("failed to write metadata for %s: %w", sample.Output, err)
		}
	}

	if w.collector != nil {
		w.collector.Add(sample)
	}

	return nil
}

// writeJSON writes the metadata sidecar
func (w *Writer) writeJSON(path string, sample *domain.Sample) error {
	data, err := json.MarshalIndent(sample.ToMetadata(), "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

// Path returns the output path for a file name
func (w *Writer) Path(name string) string {
	return filepath.Join(w.baseDir, name)
}

// Exists checks if an output file is already present
func (w *Writer) Exists(name string) bool {
	return utils.FileExists(w.Path(name))
}

// BaseDir returns the output directory
func (w *Writer) BaseDir() string {
	return w.baseDir
}

// DryRun reports whether writes are suppressed
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// EnsureBaseDir creates the base directory if it doesn't exist
func (w *Writer) EnsureBaseDir() error {
	if w.dryRun {
		return nil
	}
	return os.MkdirAll(w.baseDir, 0o755)
}
