package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/ralt/apprepogen/internal/models"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APPREPOGEN_CONFIG", "")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.PackagesDir != "packages" || cfg.OutputDir != "content" || cfg.CacheDir != "cache" {
		t.Errorf("Unexpected directories: %+v", cfg)
	}
	if cfg.TimeLayout != "2006/01/02 15:04:05 MST" {
		t.Errorf("Unexpected time layout: %s", cfg.TimeLayout)
	}
	if cfg.TimeLocation != time.UTC {
		t.Errorf("Expected UTC location, got %v", cfg.TimeLocation)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Unexpected timeout: %v", cfg.HTTPTimeout)
	}
	if len(cfg.Compress) != 1 || cfg.Compress[0] != "gz" {
		t.Errorf("Unexpected compression formats: %v", cfg.Compress)
	}
	if cfg.Offline {
		t.Errorf("Offline should default to false")
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apprepogen.yml")
	content := `packages_dir: /srv/packages
output_dir: /srv/content
compress: [gz, xz]
time:
  zone: Europe/Paris
gpg:
  key: /keys/repo.asc
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("APPREPOGEN_OFFLINE", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", "", "")
	flags.Bool("offline", false, "")
	if err := flags.Parse([]string{"--output-dir", "/tmp/out"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.PackagesDir != "/srv/packages" {
		t.Errorf("Expected packages dir from file, got %s", cfg.PackagesDir)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("Expected output dir from flag, got %s", cfg.OutputDir)
	}
	if !cfg.Offline {
		t.Errorf("Expected offline from environment")
	}
	if cfg.TimeLocation.String() != "Europe/Paris" {
		t.Errorf("Unexpected location: %v", cfg.TimeLocation)
	}
	if len(cfg.Compress) != 2 || cfg.Compress[1] != "xz" {
		t.Errorf("Unexpected compression formats: %v", cfg.Compress)
	}
	if cfg.GPGKeyPath != "/keys/repo.asc" {
		t.Errorf("Unexpected key path: %s", cfg.GPGKeyPath)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("APPREPOGEN_TIME_ZONE", "Not/AZone")

	_, err := Load("", nil)
	var rgErr *models.RepoGenError
	if !errors.As(err, &rgErr) || rgErr.Type != models.ErrInvalidConfig {
		t.Fatalf("Expected InvalidConfig error, got %v", err)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml"), nil); err == nil {
		t.Errorf("Expected error for explicit missing config file")
	}
}

func TestValidateCompression(t *testing.T) {
	cfg := &models.RepositoryConfig{
		PackagesDir: "p",
		OutputDir:   "o",
		CacheDir:    "c",
		PageSize:    10,
		Compress:    []string{"bz2"},
	}
	if err := Validate(cfg); err == nil {
		t.Errorf("Expected error for unknown compression format")
	}
}
