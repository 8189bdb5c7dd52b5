package catalog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ralt/apprepogen/internal/utils"
)

// ReleaseFileInfo contains information about a file in the release
type ReleaseFileInfo struct {
	Path     string
	Checksum *utils.Checksum
}

// GenerateReleaseFile lists every catalog file with its size and checksums
func GenerateReleaseFile(date time.Time, packageCount int, files []ReleaseFileInfo) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Date: %s\n", date.UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Packages: %d\n", packageCount)

	buf.WriteString("SHA256:\n")
	for _, file := range files {
		fmt.Fprintf(&buf, " %s %d %s\n", file.Checksum.SHA256, file.Checksum.Size, file.Path)
	}

	buf.WriteString("SHA512:\n")
	for _, file := range files {
		fmt.Fprintf(&buf, " %s %d %s\n", file.Checksum.SHA512, file.Checksum.Size, file.Path)
	}

	return buf.Bytes()
}

// CalculateReleaseFileInfos calculates checksums for catalog files
// relative to basePath
func CalculateReleaseFileInfos(basePath string, files []string) ([]ReleaseFileInfo, error) {
	var infos []ReleaseFileInfo

	for _, file := range files {
		checksum, err := utils.CalculateChecksums(filepath.Join(basePath, file))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate checksum for %s: %w", file, err)
		}

		infos = append(infos, ReleaseFileInfo{
			Path:     filepath.ToSlash(file),
			Checksum: checksum,
		})
	}

	return infos, nil
}
