package utils

import (
	"github.com/microcosm-cc/bluemonday"
)

var descriptionPolicy = newDescriptionPolicy()

func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("a", "abbr", "acronym", "b", "blockquote", "code",
		"em", "i", "li", "ol", "strong", "ul")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("title").OnElements("abbr", "acronym")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)

	return p
}

// SanitizeDescription strips markup outside of a small inline allow-list
// from a package description.
func SanitizeDescription(text string) string {
	return descriptionPolicy.Sanitize(text)
}
