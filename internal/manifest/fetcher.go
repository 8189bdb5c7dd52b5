package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/utils"
	"github.com/sirupsen/logrus"
)

// Source resolves the manifest of a package channel
type Source interface {
	// Obtain returns the manifest and its last modification time. A nil
	// manifest and zero time mean nothing could be retrieved.
	Obtain(ctx context.Context, pkgID string, channel models.Channel, manifestURL string, offline bool) (*models.PackageManifest, time.Time)
}

// Fetcher retrieves manifests over HTTP and keeps the last good copy of each
// in a cache directory for offline runs and fetch failures.
type Fetcher struct {
	cacheDir string
	client   *http.Client
	now      func() time.Time
}

// NewFetcher creates a fetcher caching into cacheDir
func NewFetcher(cacheDir string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// Obtain implements Source
func (f *Fetcher) Obtain(ctx context.Context, pkgID string, channel models.Channel, manifestURL string, offline bool) (*models.PackageManifest, time.Time) {
	cachePath := f.cachePath(pkgID, channel)

	if !offline {
		manifest, lastModified, err := f.fetch(ctx, cachePath, manifestURL)
		if err == nil {
			return manifest, lastModified
		}
		logrus.Warnf("Failed to fetch %s manifest for %s: %v", channel, pkgID, err)
	}

	manifest, lastModified, err := f.readCache(cachePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("Failed to read cached %s manifest for %s: %v", channel, pkgID, err)
		}
		return nil, time.Time{}
	}

	logrus.Debugf("Using cached %s manifest for %s", channel, pkgID)
	return manifest, lastModified
}

func (f *Fetcher) cachePath(pkgID string, channel models.Channel) string {
	return filepath.Join(f.cacheDir, fmt.Sprintf("manifest_%s_%s.json", pkgID, channel))
}

func (f *Fetcher) fetch(ctx context.Context, cachePath, manifestURL string) (*models.PackageManifest, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, time.Time{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("downloading %s: %w", manifestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, time.Time{}, fmt.Errorf("downloading %s: HTTP %d", manifestURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading %s: %w", manifestURL, err)
	}

	var manifest models.PackageManifest
	if err := json.Unmarshal(body, &manifest); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding %s: %w", manifestURL, err)
	}

	// Redirects are followed, so resolve against the final location
	base := resp.Request.URL
	if base == nil {
		base, _ = url.Parse(manifestURL)
	}
	manifest.IpkURL = resolveURL(base, manifest.IpkURL)

	lastModified := f.now().UTC()
	if header := resp.Header.Get("Last-Modified"); header != "" {
		if t, err := http.ParseTime(header); err == nil {
			lastModified = t.UTC()
		} else {
			logrus.Debugf("Ignoring malformed Last-Modified %q from %s", header, manifestURL)
		}
	}

	if err := f.writeCache(cachePath, &manifest, lastModified); err != nil {
		logrus.Warnf("Failed to cache manifest %s: %v", manifestURL, err)
	}

	return &manifest, lastModified, nil
}

func (f *Fetcher) writeCache(cachePath string, manifest *models.PackageManifest, lastModified time.Time) error {
	data, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(cachePath, data, 0644); err != nil {
		return err
	}
	return os.Chtimes(cachePath, lastModified, lastModified)
}

func (f *Fetcher) readCache(cachePath string) (*models.PackageManifest, time.Time, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, time.Time{}, err
	}

	var manifest models.PackageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding %s: %w", cachePath, err)
	}

	lastModified, err := utils.ModTime(cachePath)
	if err != nil {
		return nil, time.Time{}, err
	}

	return &manifest, lastModified, nil
}

func resolveURL(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
