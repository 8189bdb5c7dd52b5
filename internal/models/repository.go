package models

import "time"

// RepositoryConfig contains configuration for catalog generation
type RepositoryConfig struct {
	// Input/Output
	PackagesDir string
	OutputDir   string
	CacheDir    string

	// Manifest retrieval
	Offline     bool
	HTTPTimeout time.Duration

	// Descriptor loading
	Python string // Interpreter used for .py descriptors

	// Timestamp rendering
	TimeLayout   string
	TimeLocation *time.Location

	// Catalog output
	BaseURL  string
	PageSize int
	Compress []string // gz, xz, zst

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
