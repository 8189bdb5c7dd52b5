package models

import (
	"fmt"
	"time"
)

// Pool classifies a package by its licensing/distribution category
type Pool string

const (
	PoolMain    Pool = "main"
	PoolNonFree Pool = "non-free"
)

// ParsePool validates a declared pool value
func ParsePool(value string) (Pool, error) {
	switch Pool(value) {
	case PoolMain, PoolNonFree:
		return Pool(value), nil
	default:
		return "", fmt.Errorf("unknown pool type %q", value)
	}
}

// Channel selects the release or beta manifest of a package
type Channel string

const (
	ChannelRelease Channel = "release"
	ChannelBeta    Channel = "beta"
)

// PackageInfo is a validated, normalized package record
type PackageInfo struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	IconURI         string           `json:"iconUri"`
	ManifestURL     string           `json:"manifestUrl"`
	ManifestURLBeta string           `json:"manifestUrlBeta,omitempty"`
	Category        string           `json:"category"`
	Description     string           `json:"description"`
	DetailIconURI   string           `json:"detailIconUri,omitempty"`
	Funding         interface{}      `json:"funding,omitempty"`
	Pool            Pool             `json:"pool"`
	NoPool          bool             `json:"nopool,omitempty"`
	Manifest        *PackageManifest `json:"manifest,omitempty"`
	ManifestBeta    *PackageManifest `json:"manifestBeta,omitempty"`

	LastModified    time.Time `json:"lastmodified"`
	LastModifiedStr string    `json:"lastmodified_str"`
}
