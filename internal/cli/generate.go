package cli

import (
	"context"
	"fmt"

	"github.com/ralt/apprepogen/internal/generator/catalog"
	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the package catalog",
		Long: `Scans the packages directory for descriptors and writes the JSON
catalog (index, pages, per-package records) with its Release file and
optional signatures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logrus.Info("Starting catalog generation...")
			return runGeneration(cmd.Context(), cfg)
		},
	}

	addPackageFlags(cmd.Flags())

	// Output flags
	cmd.Flags().StringP("output-dir", "o", "content", "Output directory")
	cmd.Flags().String("base-url", "", "Base URL used for page links")
	cmd.Flags().Int("page-size", catalog.DefaultPageSize, "Packages per index page")
	cmd.Flags().StringSlice("compress", []string{"gz"}, "Compressed copies of apps.json (gz, xz, zst)")

	// Signing flags
	cmd.Flags().StringP("gpg-key", "k", "", "Path to GPG private key")
	cmd.Flags().StringP("gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func runGeneration(ctx context.Context, cfg *models.RepositoryConfig) error {
	// Step 1: Build package records
	packages, err := listPackages(ctx, cfg)
	if err != nil {
		return err
	}

	if len(packages) == 0 {
		logrus.Warn("No packages found in packages directory")
	}

	// Step 2: Initialize signer
	var gpgSigner signer.Signer
	if cfg.GPGKeyPath != "" {
		gpgSigner, err = signer.NewGPGSigner(cfg.GPGKeyPath, cfg.GPGPassphrase)
		if err != nil {
			return &models.RepoGenError{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		logrus.Info("GPG signer initialized")
	}

	// Step 3: Render the catalog
	gen := catalog.NewGenerator(gpgSigner)
	if err := gen.ValidatePackages(packages); err != nil {
		return &models.RepoGenError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("package validation failed: %w", err),
		}
	}

	if err := gen.Generate(ctx, cfg, packages); err != nil {
		return &models.RepoGenError{
			Type: models.ErrMetadataGen,
			Err:  fmt.Errorf("failed to generate catalog: %w", err),
		}
	}

	logrus.Info("Catalog generation completed successfully!")
	logrus.Infof("Output directory: %s", cfg.OutputDir)

	return nil
}
