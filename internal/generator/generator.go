package generator

import (
	"context"

	"github.com/ralt/apprepogen/internal/models"
)

// Generator interface for catalog renderers
type Generator interface {
	// Generate writes the catalog for the provided, title-sorted packages
	Generate(ctx context.Context, config *models.RepositoryConfig, packages []models.PackageInfo) error

	// ValidatePackages checks if packages can be rendered by this generator
	ValidatePackages(packages []models.PackageInfo) error
}
