package models

// PackageManifest describes the installable artifact of one package channel
type PackageManifest struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Version        string  `json:"version"`
	Type           string  `json:"type,omitempty"`
	AppDescription string  `json:"appDescription,omitempty"`
	IconURI        string  `json:"iconUri,omitempty"`
	SourceURL      string  `json:"sourceUrl,omitempty"`
	RootRequired   any     `json:"rootRequired,omitempty"`
	IpkURL         string  `json:"ipkUrl"`
	IpkHash        IpkHash `json:"ipkHash"`
	IpkSize        int64   `json:"ipkSize,omitempty"`
}

// IpkHash holds the checksums published for an ipk
type IpkHash struct {
	SHA256 string `json:"sha256"`
}
