package scanner

import (
	"path/filepath"
)

// DetectDescriptorType determines the descriptor type from the file extension
func DetectDescriptorType(path string) DescriptorType {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return TypeYAML
	case ".py":
		return TypePython
	default:
		return TypeUnknown
	}
}

// PackageID derives the package identifier from a descriptor path
func PackageID(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
