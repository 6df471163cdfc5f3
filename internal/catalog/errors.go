package catalog

import "errors"

// Sentinel errors for the catalog package
var (
	// ErrNoSources indicates the catalog has no sources defined
	ErrNoSources = errors.New("catalog must contain at least one source")

	// ErrMissingOutput indicates a source has no output filename
	ErrMissingOutput = errors.New("source output filename cannot be empty")

	// ErrInvalidOutput indicates an output filename that is not a plain file name
	ErrInvalidOutput = errors.New("source output must be a plain file name")

	// ErrMissingField indicates a source lacks a field required by its kind
	ErrMissingField = errors.New("source is missing a required field")

	// ErrDuplicateOutput indicates two sources share an output filename
	ErrDuplicateOutput = errors.New("duplicate source output filename")

	// ErrInvalidFormat indicates the catalog file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("catalog must be valid YAML or JSON")

	// ErrFileNotFound indicates the catalog file does not exist
	ErrFileNotFound = errors.New("catalog file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")
)
