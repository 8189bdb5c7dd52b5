package utils

import (
	"net/url"
	"strings"
)

// URLFixup normalizes a manifest URL. GitHub "blob" and "raw" page links are
// rewritten to their raw.githubusercontent.com form. Applying it twice gives
// the same result as applying it once.
func URLFixup(u string) string {
	u = strings.TrimSpace(u)

	parsed, err := url.Parse(u)
	if err != nil || parsed.Host != "github.com" {
		return u
	}

	// /<owner>/<repo>/(blob|raw)/<ref>/<path...>
	segs := strings.SplitN(strings.TrimPrefix(parsed.Path, "/"), "/", 5)
	if len(segs) < 5 || (segs[2] != "blob" && segs[2] != "raw") {
		return u
	}

	parsed.Scheme = "https"
	parsed.Host = "raw.githubusercontent.com"
	parsed.Path = "/" + strings.Join([]string{segs[0], segs[1], segs[3], segs[4]}, "/")
	parsed.RawPath = ""
	return parsed.String()
}
