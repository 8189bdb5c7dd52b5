package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ralt/apprepogen/internal/generator"
	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/signer"
	"github.com/ralt/apprepogen/internal/utils"
	"github.com/sirupsen/logrus"
)

// Generator implements the generator.Generator interface for the JSON
// package catalog served under api/
type Generator struct {
	signer signer.Signer
	now    func() time.Time
}

// NewGenerator creates a new catalog generator. s may be nil for an
// unsigned catalog.
func NewGenerator(s signer.Signer) generator.Generator {
	return &Generator{
		signer: s,
		now:    time.Now,
	}
}

// Generate writes the catalog:
//
//	api/apps.json                 every package
//	api/apps.json.{gz,xz,zst}     compressed copies, per config.Compress
//	api/apps/<page>.json          paginated index
//	api/packages/<id>.json        one record per package
//	api/Release                   checksums of all of the above
//	api/InRelease, Release.gpg, KEY.gpg when signing
func (g *Generator) Generate(ctx context.Context, config *models.RepositoryConfig, packages []models.PackageInfo) error {
	logrus.Info("Generating package catalog...")

	// The catalog is built next to api/ and swapped in at the end, so files
	// of packages that disappeared since the last run are not left behind.
	apiDir := filepath.Join(config.OutputDir, "api")
	stageDir := filepath.Join(config.OutputDir, ".api.staging")
	if err := os.RemoveAll(stageDir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", stageDir, err)
	}
	if err := utils.EnsureDir(stageDir); err != nil {
		return err
	}

	done := false
	defer func() {
		if !done {
			os.RemoveAll(stageDir)
		}
	}()

	var written []string
	write := func(rel string, data []byte) error {
		if err := utils.WriteFile(filepath.Join(stageDir, rel), data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		written = append(written, rel)
		return nil
	}

	// Full index
	indexData, err := marshal(FullIndex(packages))
	if err != nil {
		return fmt.Errorf("failed to encode apps.json: %w", err)
	}
	if err := write("apps.json", indexData); err != nil {
		return err
	}

	for _, format := range config.Compress {
		compressed, err := utils.Compress(format, indexData)
		if err != nil {
			return fmt.Errorf("failed to compress apps.json: %w", err)
		}
		if err := write("apps.json."+format, compressed); err != nil {
			return err
		}
	}

	// Paginated index
	for _, page := range BuildPages(packages, config.PageSize, config.BaseURL) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pageData, err := marshal(page)
		if err != nil {
			return fmt.Errorf("failed to encode page %d: %w", page.Paging.Page, err)
		}
		if err := write(filepath.Join("apps", fmt.Sprintf("%d.json", page.Paging.Page)), pageData); err != nil {
			return err
		}
	}

	// Per package records
	for _, pkg := range packages {
		pkgData, err := marshal(pkg)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", pkg.ID, err)
		}
		if err := write(filepath.Join("packages", pkg.ID+".json"), pkgData); err != nil {
			return err
		}
	}

	logrus.Infof("Wrote %d catalog files for %d packages", len(written), len(packages))

	if err := g.generateRelease(stageDir, len(packages), written); err != nil {
		return fmt.Errorf("failed to generate Release: %w", err)
	}

	if err := os.RemoveAll(apiDir); err != nil {
		return fmt.Errorf("failed to remove previous catalog: %w", err)
	}
	if err := os.Rename(stageDir, apiDir); err != nil {
		return fmt.Errorf("failed to move catalog into place: %w", err)
	}
	done = true

	logrus.Info("Package catalog generated successfully")
	return nil
}

// generateRelease generates the Release, InRelease, and Release.gpg files
func (g *Generator) generateRelease(apiDir string, packageCount int, files []string) error {
	logrus.Info("Generating Release file...")

	sort.Strings(files)
	fileInfos, err := CalculateReleaseFileInfos(apiDir, files)
	if err != nil {
		return err
	}

	releaseData := GenerateReleaseFile(g.now(), packageCount, fileInfos)
	if err := utils.WriteFile(filepath.Join(apiDir, "Release"), releaseData, 0644); err != nil {
		return fmt.Errorf("failed to write Release: %w", err)
	}

	if g.signer == nil {
		logrus.Warn("No signer configured, catalog will be unsigned")
		return nil
	}

	inReleaseData, err := g.signer.SignCleartext(releaseData)
	if err != nil {
		return &models.RepoGenError{Type: models.ErrSigning, Err: fmt.Errorf("failed to sign InRelease: %w", err)}
	}
	if err := utils.WriteFile(filepath.Join(apiDir, "InRelease"), inReleaseData, 0644); err != nil {
		return fmt.Errorf("failed to write InRelease: %w", err)
	}

	releaseGpg, err := g.signer.SignDetached(releaseData)
	if err != nil {
		return &models.RepoGenError{Type: models.ErrSigning, Err: fmt.Errorf("failed to create Release.gpg: %w", err)}
	}
	if err := utils.WriteFile(filepath.Join(apiDir, "Release.gpg"), releaseGpg, 0644); err != nil {
		return fmt.Errorf("failed to write Release.gpg: %w", err)
	}

	pubKey, err := g.signer.GetPublicKey()
	if err != nil {
		return &models.RepoGenError{Type: models.ErrSigning, Err: fmt.Errorf("failed to export public key: %w", err)}
	}
	if err := utils.WriteFile(filepath.Join(apiDir, "KEY.gpg"), pubKey, 0644); err != nil {
		return fmt.Errorf("failed to write KEY.gpg: %w", err)
	}

	logrus.Info("Release file signed successfully")
	return nil
}

// ValidatePackages checks that package ids are usable as file names and
// unique within the catalog
func (g *Generator) ValidatePackages(packages []models.PackageInfo) error {
	seen := make(map[string]bool)
	for _, pkg := range packages {
		if pkg.ID == "" {
			return fmt.Errorf("package %q missing id", pkg.Title)
		}
		if pkg.ID != filepath.Base(pkg.ID) || pkg.ID == "." || pkg.ID == ".." {
			return fmt.Errorf("package id %q is not a valid file name", pkg.ID)
		}
		if seen[pkg.ID] {
			return fmt.Errorf("duplicate package id %s", pkg.ID)
		}
		seen[pkg.ID] = true
	}
	return nil
}
