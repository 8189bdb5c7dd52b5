package pkginfo

import (
	"context"
	"time"

	"github.com/ralt/apprepogen/internal/manifest"
	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/utils"
	"github.com/sirupsen/logrus"
)

// DefaultTimeLayout renders timestamps as 2023/01/01 00:00:00 UTC
const DefaultTimeLayout = "2006/01/02 15:04:05 MST"

// DescriptorLoader parses a descriptor file into its id and raw fields
type DescriptorLoader interface {
	Load(ctx context.Context, path string) (string, models.Descriptor, error)
}

// Options configures a Builder
type Options struct {
	Offline      bool
	TimeLayout   string
	TimeLocation *time.Location
}

// Builder turns descriptors into package records
type Builder struct {
	loader    DescriptorLoader
	manifests manifest.Source
	opts      Options
}

// NewBuilder creates a builder
func NewBuilder(loader DescriptorLoader, manifests manifest.Source, opts Options) *Builder {
	if opts.TimeLayout == "" {
		opts.TimeLayout = DefaultTimeLayout
	}
	if opts.TimeLocation == nil {
		opts.TimeLocation = time.UTC
	}
	return &Builder{
		loader:    loader,
		manifests: manifests,
		opts:      opts,
	}
}

var requiredFields = []string{"title", "iconUri", "manifestUrl"}

// FromPackageInfoFile loads the descriptor at path and builds its record.
// Errors for which models.IsSkippable is true only disqualify this file.
func (b *Builder) FromPackageInfoFile(ctx context.Context, path string) (*models.PackageInfo, error) {
	pkgID, content, err := b.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return b.FromPackageInfo(ctx, pkgID, content)
}

// FromPackageInfo validates and normalizes the declared fields of pkgID and
// attaches its release and beta manifests.
func (b *Builder) FromPackageInfo(ctx context.Context, pkgID string, content models.Descriptor) (*models.PackageInfo, error) {
	// Only presence is checked; an empty value is kept as declared.
	for _, key := range requiredFields {
		if !content.Has(key) {
			return nil, models.InvalidDescriptor(pkgID, "missing required field %s", key)
		}
		if _, ok := content.String(key); !ok {
			return nil, models.InvalidDescriptor(pkgID, "field %s is not a string", key)
		}
	}

	title, _ := content.String("title")
	iconURI, _ := content.String("iconUri")
	rawManifestURL, _ := content.String("manifestUrl")
	manifestURL := utils.URLFixup(rawManifestURL)

	info := &models.PackageInfo{
		ID:          pkgID,
		Title:       title,
		IconURI:     iconURI,
		ManifestURL: manifestURL,
		Category:    content.StringOr("category", ""),
		Description: utils.SanitizeDescription(content.StringOr("description", "")),
	}

	if v, ok := content.String("detailIconUri"); ok {
		info.DetailIconURI = v
	}
	if content.Has("funding") {
		info.Funding = content["funding"]
	}

	if content.Has("pool") {
		declared, _ := content.String("pool")
		pool, err := models.ParsePool(declared)
		if err != nil {
			return nil, models.InvalidDescriptor(pkgID, "%v", err)
		}
		info.Pool = pool
	} else {
		// Older submissions predate the pool field
		info.Pool = models.PoolMain
		info.NoPool = true
	}

	releaseManifest, lastModifiedRelease := b.manifests.Obtain(ctx, pkgID, models.ChannelRelease, manifestURL, b.opts.Offline)
	if releaseManifest != nil {
		info.Manifest = releaseManifest
	}

	var lastModifiedBeta time.Time
	if betaURL, ok := content.String("manifestUrlBeta"); ok && betaURL != "" {
		info.ManifestURLBeta = utils.URLFixup(betaURL)

		var betaManifest *models.PackageManifest
		betaManifest, lastModifiedBeta = b.manifests.Obtain(ctx, pkgID, models.ChannelBeta, info.ManifestURLBeta, b.opts.Offline)
		if betaManifest != nil {
			info.ManifestBeta = betaManifest
		}
	}

	lastModified := latest(lastModifiedRelease, lastModifiedBeta)
	if lastModified.IsZero() {
		return nil, models.InvalidDescriptor(pkgID, "no manifest could be retrieved")
	}
	info.LastModified = lastModified
	info.LastModifiedStr = lastModified.In(b.opts.TimeLocation).Format(b.opts.TimeLayout)

	logrus.Debugf("Built package %s (%s, pool %s)", pkgID, title, info.Pool)
	return info, nil
}

// latest returns the later of the non-zero timestamps
func latest(times ...time.Time) time.Time {
	var result time.Time
	for _, t := range times {
		if !t.IsZero() && t.After(result) {
			result = t
		}
	}
	return result
}
