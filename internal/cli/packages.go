package cli

import (
	"context"
	"fmt"

	"github.com/ralt/apprepogen/internal/config"
	"github.com/ralt/apprepogen/internal/manifest"
	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/pkginfo"
	"github.com/ralt/apprepogen/internal/registry"
	"github.com/ralt/apprepogen/internal/scanner"
	"github.com/ralt/apprepogen/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addPackageFlags registers the flags shared by commands that list packages
func addPackageFlags(flags *pflag.FlagSet) {
	flags.StringP("packages-dir", "i", "packages", "Directory containing package descriptors")
	flags.String("cache-dir", "cache", "Manifest cache directory")
	flags.Bool("offline", false, "Use cached manifests only")
	flags.String("python", registry.DefaultPython, "Interpreter for .py descriptors")
	flags.String("time-layout", pkginfo.DefaultTimeLayout, "Go time layout for lastmodified_str")
	flags.String("time-zone", "UTC", "Time zone for lastmodified_str")
}

// loadConfig resolves the configuration of cmd
func loadConfig(cmd *cobra.Command) (*models.RepositoryConfig, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	redacted := *cfg
	if redacted.GPGPassphrase != "" {
		redacted.GPGPassphrase = "***"
	}
	logrus.Debugf("Configuration: %+v", redacted)
	return cfg, nil
}

// listPackages builds the sorted package list described by cfg
func listPackages(ctx context.Context, cfg *models.RepositoryConfig) ([]models.PackageInfo, error) {
	if err := utils.EnsureDir(cfg.CacheDir); err != nil {
		return nil, &models.RepoGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to create cache directory: %w", err),
		}
	}

	builder := pkginfo.NewBuilder(
		registry.NewLoader(cfg.Python),
		manifest.NewFetcher(cfg.CacheDir, cfg.HTTPTimeout),
		pkginfo.Options{
			Offline:      cfg.Offline,
			TimeLayout:   cfg.TimeLayout,
			TimeLocation: cfg.TimeLocation,
		},
	)

	logrus.Infof("Scanning directory: %s", cfg.PackagesDir)
	return builder.ListPackages(ctx, scanner.NewFileSystemScanner(), cfg.PackagesDir)
}
