package registry

import (
	"context"

	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/scanner"
)

// DefaultPython is the interpreter used for .py descriptors
const DefaultPython = "python3"

// Loader parses descriptor files into raw field mappings
type Loader struct {
	python string
}

// NewLoader creates a loader. An empty python falls back to DefaultPython.
func NewLoader(python string) *Loader {
	if python == "" {
		python = DefaultPython
	}
	return &Loader{python: python}
}

// Load parses the descriptor at path and returns its package id and fields.
// Files with an unknown extension yield models.ErrUnsupportedFormat; parse
// failures of known formats are returned as ErrDescriptorParse errors.
func (l *Loader) Load(ctx context.Context, path string) (string, models.Descriptor, error) {
	switch scanner.DetectDescriptorType(path) {
	case scanner.TypeYAML:
		return ParseYAMLPackage(path)
	case scanner.TypePython:
		return LoadPythonPackage(ctx, l.python, path)
	default:
		return "", nil, models.ErrUnsupportedFormat
	}
}

func parseError(pkgID string, err error) error {
	return &models.RepoGenError{
		Type:    models.ErrDescriptorParse,
		Package: pkgID,
		Err:     err,
	}
}
