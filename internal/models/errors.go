package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrDescriptorParse ErrorType = iota
	ErrInvalidDescriptor
	ErrMetadataGen
	ErrSigning
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrDescriptorParse:
		return "DescriptorParse"
	case ErrInvalidDescriptor:
		return "InvalidDescriptor"
	case ErrMetadataGen:
		return "MetadataGen"
	case ErrSigning:
		return "Signing"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// ErrUnsupportedFormat is returned by descriptor loaders for files whose
// extension is not a known descriptor format.
var ErrUnsupportedFormat = errors.New("unsupported descriptor format")

// RepoGenError represents an error during catalog generation
type RepoGenError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *RepoGenError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *RepoGenError) Unwrap() error {
	return e.Err
}

// InvalidDescriptor builds the error returned when a descriptor fails
// semantic validation.
func InvalidDescriptor(pkgID string, format string, args ...interface{}) error {
	return &RepoGenError{
		Type:    ErrInvalidDescriptor,
		Package: pkgID,
		Err:     fmt.Errorf(format, args...),
	}
}

// IsSkippable reports whether err only disqualifies a single descriptor.
// Any other error aborts a directory scan.
func IsSkippable(err error) bool {
	if errors.Is(err, ErrUnsupportedFormat) {
		return true
	}
	var rgErr *RepoGenError
	if errors.As(err, &rgErr) {
		return rgErr.Type == ErrInvalidDescriptor
	}
	return false
}
