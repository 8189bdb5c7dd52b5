package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ralt/apprepogen/internal/generator/catalog"
	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/pkginfo"
	"github.com/ralt/apprepogen/internal/registry"
	"github.com/ralt/apprepogen/internal/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. APPREPOGEN_OFFLINE
const EnvPrefix = "APPREPOGEN"

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"packages-dir":   "packages_dir",
	"output-dir":     "output_dir",
	"cache-dir":      "cache_dir",
	"offline":        "offline",
	"python":         "python",
	"time-layout":    "time.layout",
	"time-zone":      "time.zone",
	"base-url":       "base_url",
	"page-size":      "page_size",
	"compress":       "compress",
	"gpg-key":        "gpg.key",
	"gpg-passphrase": "gpg.passphrase",
}

// Load merges defaults, the optional config file, APPREPOGEN_* environment
// variables and any flags that were set on the command line.
func Load(configPath string, flags *pflag.FlagSet) (*models.RepositoryConfig, error) {
	v := viper.New()

	v.SetDefault("packages_dir", "packages")
	v.SetDefault("output_dir", "content")
	v.SetDefault("cache_dir", "cache")
	v.SetDefault("offline", false)
	v.SetDefault("python", registry.DefaultPython)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("time.layout", pkginfo.DefaultTimeLayout)
	v.SetDefault("time.zone", "UTC")
	v.SetDefault("page_size", catalog.DefaultPageSize)
	v.SetDefault("compress", []string{utils.FormatGzip})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", flag, err)
				}
			}
		}
	}

	if configPath == "" {
		configPath = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, &models.RepoGenError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("reading config %s: %w", configPath, err),
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*models.RepositoryConfig, error) {
	loc, err := time.LoadLocation(v.GetString("time.zone"))
	if err != nil {
		return nil, invalid("time.zone: %w", err)
	}

	cfg := &models.RepositoryConfig{
		PackagesDir:   v.GetString("packages_dir"),
		OutputDir:     v.GetString("output_dir"),
		CacheDir:      v.GetString("cache_dir"),
		Offline:       v.GetBool("offline"),
		HTTPTimeout:   v.GetDuration("http.timeout"),
		Python:        v.GetString("python"),
		TimeLayout:    v.GetString("time.layout"),
		TimeLocation:  loc,
		BaseURL:       v.GetString("base_url"),
		PageSize:      v.GetInt("page_size"),
		Compress:      normalizeFormats(v.GetStringSlice("compress")),
		GPGKeyPath:    ExpandHome(v.GetString("gpg.key")),
		GPGPassphrase: v.GetString("gpg.passphrase"),
	}

	return cfg, Validate(cfg)
}

// Validate checks a configuration for values that cannot work
func Validate(cfg *models.RepositoryConfig) error {
	if cfg.PackagesDir == "" {
		return invalid("packages-dir is required")
	}
	if cfg.OutputDir == "" {
		return invalid("output-dir is required")
	}
	if cfg.CacheDir == "" {
		return invalid("cache-dir is required")
	}
	if cfg.PageSize <= 0 {
		return invalid("page-size must be positive, got %d", cfg.PageSize)
	}
	for _, format := range cfg.Compress {
		switch format {
		case utils.FormatGzip, utils.FormatXZ, utils.FormatZstd:
		default:
			return invalid("unknown compression format %q", format)
		}
	}
	return nil
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// normalizeFormats accepts both "gz,xz" style env values and lists
func normalizeFormats(formats []string) []string {
	var out []string
	for _, f := range formats {
		for _, part := range strings.Split(f, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), ".")
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func invalid(format string, args ...interface{}) error {
	return &models.RepoGenError{
		Type: models.ErrInvalidConfig,
		Err:  fmt.Errorf(format, args...),
	}
}
