package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner interface for filesystem scanning
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan lists regular files directly inside dir. Subdirectories are not
// descended into and symlinks are followed. Files with an unknown extension
// are returned with TypeUnknown so callers can decide how to report them.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]ScannedDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	var descriptors []ScannedDescriptor
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logrus.Warnf("Failed to stat %s: %v", path, err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		descType := s.DetectType(path)
		logrus.Debugf("Found %s descriptor: %s", descType, path)

		descriptors = append(descriptors, ScannedDescriptor{
			Path: path,
			Type: descType,
			Size: info.Size(),
		})
	}

	logrus.Infof("Found %d files in %s", len(descriptors), dir)
	return descriptors, nil
}

// DetectType determines the descriptor type of a file
func (s *FileSystemScanner) DetectType(path string) DescriptorType {
	return DetectDescriptorType(path)
}
