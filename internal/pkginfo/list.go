package pkginfo

import (
	"context"
	"sort"

	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/scanner"
	"github.com/sirupsen/logrus"
)

// ListPackages builds a record for every descriptor directly inside dir and
// returns them sorted by title. Descriptors that fail validation are dropped;
// a descriptor that cannot be parsed aborts the whole listing.
func (b *Builder) ListPackages(ctx context.Context, sc scanner.Scanner, dir string) ([]models.PackageInfo, error) {
	found, err := sc.Scan(ctx, dir)
	if err != nil {
		return nil, &models.RepoGenError{
			Type: models.ErrFileOp,
			Err:  err,
		}
	}

	var packages []models.PackageInfo
	for _, desc := range found {
		if desc.Type == scanner.TypeUnknown {
			logrus.Debugf("Skipping %s: not a package descriptor", desc.Path)
			continue
		}

		info, err := b.FromPackageInfoFile(ctx, desc.Path)
		if err != nil {
			if models.IsSkippable(err) {
				logrus.Warnf("Skipping %s: %v", desc.Path, err)
				continue
			}
			return nil, err
		}

		packages = append(packages, *info)
	}

	sort.SliceStable(packages, func(i, j int) bool {
		return packages[i].Title < packages[j].Title
	})

	logrus.Infof("Loaded %d packages from %s", len(packages), dir)
	return packages, nil
}
