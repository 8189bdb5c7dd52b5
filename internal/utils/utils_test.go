package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

func decompress(format string, data []byte) ([]byte, error) {
	var r io.Reader
	switch format {
	case FormatGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case FormatXZ:
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		r = xr
	case FormatZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("unknown compression format %q", format)
	}
	return io.ReadAll(r)
}

func TestURLFixup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://x/m", "http://x/m"},
		{"  https://example.com/app.manifest.json \n", "https://example.com/app.manifest.json"},
		{
			"https://github.com/webosbrew/app/blob/main/dist/app.manifest.json",
			"https://raw.githubusercontent.com/webosbrew/app/main/dist/app.manifest.json",
		},
		{
			"https://github.com/webosbrew/app/raw/v1.0/app.manifest.json",
			"https://raw.githubusercontent.com/webosbrew/app/v1.0/app.manifest.json",
		},
		{
			"https://github.com/webosbrew/app/releases/latest/download/app.manifest.json",
			"https://github.com/webosbrew/app/releases/latest/download/app.manifest.json",
		},
	}

	for _, tt := range tests {
		got := URLFixup(tt.in)
		if got != tt.want {
			t.Errorf("URLFixup(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := URLFixup(got); again != got {
			t.Errorf("URLFixup is not idempotent: %q -> %q", got, again)
		}
	}
}

func TestSanitizeDescription(t *testing.T) {
	in := `<b>Bold</b> <script>alert(1)</script><a href="javascript:alert(1)" onclick="x()">link</a> <a href="https://example.com">ok</a>`
	out := SanitizeDescription(in)

	for _, bad := range []string{"<script", "onclick", "javascript:"} {
		if strings.Contains(out, bad) {
			t.Errorf("Sanitized description still contains %q: %s", bad, out)
		}
	}
	if !strings.Contains(out, "<b>Bold</b>") {
		t.Errorf("Allowed markup was removed: %s", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Errorf("Allowed link was removed: %s", out)
	}

	if again := SanitizeDescription(out); again != out {
		t.Errorf("Sanitizing is not idempotent:\n%s\n%s", out, again)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	if got := SanitizeDescription(""); got != "" {
		t.Errorf("Expected empty description, got %q", got)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte(`{"packages":[]}`), 64)

	for _, format := range []string{FormatGzip, FormatXZ, FormatZstd} {
		compressed, err := Compress(format, data)
		if err != nil {
			t.Fatalf("Compress(%s) failed: %v", format, err)
		}
		decompressed, err := decompress(format, compressed)
		if err != nil {
			t.Fatalf("Decompress(%s) failed: %v", format, err)
		}
		if !bytes.Equal(decompressed, data) {
			t.Errorf("%s round trip mismatch", format)
		}
	}

	if _, err := Compress("bz2", data); err == nil {
		t.Errorf("Expected error for unknown format")
	}
}

func TestChecksums(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.json")
	data := []byte("hello\n")
	if err := WriteFileAtomic(path, data, 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	fromFile, err := CalculateChecksums(path)
	if err != nil {
		t.Fatalf("CalculateChecksums failed: %v", err)
	}
	sum := sha256.Sum256(data)

	if fromFile.SHA256 != hex.EncodeToString(sum[:]) {
		t.Errorf("Checksum differs from sha256 of data: %s", fromFile.SHA256)
	}
	if fromFile.SHA256 != "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03" {
		t.Errorf("Unexpected sha256: %s", fromFile.SHA256)
	}
	if fromFile.MD5 != "b1946ac92492d2347c6235b4d2611184" {
		t.Errorf("Unexpected md5: %s", fromFile.MD5)
	}
	if fromFile.Size != int64(len(data)) {
		t.Errorf("Unexpected size: %d", fromFile.Size)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Temporary file left behind")
	}
}
