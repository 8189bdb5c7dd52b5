package scanner

import "context"

// DescriptorType represents the source format of a package descriptor
type DescriptorType int

const (
	TypeUnknown DescriptorType = iota
	TypeYAML
	TypePython
)

// String returns the string representation of DescriptorType
func (dt DescriptorType) String() string {
	switch dt {
	case TypeYAML:
		return "yaml"
	case TypePython:
		return "python"
	default:
		return "unknown"
	}
}

// ScannedDescriptor represents a descriptor file found during scanning
type ScannedDescriptor struct {
	Path string
	Type DescriptorType
	Size int64
}

// Scanner interface for finding package descriptors
type Scanner interface {
	// Scan lists the descriptor files directly inside a directory
	Scan(ctx context.Context, dir string) ([]ScannedDescriptor, error)

	// DetectType determines the descriptor type of a file
	DetectType(path string) DescriptorType
}
