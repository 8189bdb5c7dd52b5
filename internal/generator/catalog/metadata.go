package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ralt/apprepogen/internal/models"
)

// DefaultPageSize is the number of packages per index page
const DefaultPageSize = 20

// Paging describes the position of an index page
type Paging struct {
	Page       int    `json:"page"`
	Count      int    `json:"count"`
	MaxPage    int    `json:"maxPage"`
	ItemsTotal int    `json:"itemsTotal"`
	Prev       string `json:"prev,omitempty"`
	Next       string `json:"next,omitempty"`
}

// Index is the JSON document listing packages
type Index struct {
	Paging   Paging               `json:"paging"`
	Packages []models.PackageInfo `json:"packages"`
}

// BuildPages splits packages into index pages of pageSize entries. Pages are
// numbered from 1; an empty catalog still yields a single empty page.
func BuildPages(packages []models.PackageInfo, pageSize int, baseURL string) []Index {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	maxPage := (len(packages) + pageSize - 1) / pageSize
	if maxPage == 0 {
		maxPage = 1
	}

	pages := make([]Index, 0, maxPage)
	for page := 1; page <= maxPage; page++ {
		start := (page - 1) * pageSize
		end := start + pageSize
		if end > len(packages) {
			end = len(packages)
		}

		items := packages[start:end]
		if items == nil {
			items = []models.PackageInfo{}
		}

		paging := Paging{
			Page:       page,
			Count:      len(items),
			MaxPage:    maxPage,
			ItemsTotal: len(packages),
		}
		if page > 1 {
			paging.Prev = pageURL(baseURL, page-1)
		}
		if page < maxPage {
			paging.Next = pageURL(baseURL, page+1)
		}

		pages = append(pages, Index{Paging: paging, Packages: items})
	}

	return pages
}

// FullIndex returns a single index holding every package
func FullIndex(packages []models.PackageInfo) Index {
	if packages == nil {
		packages = []models.PackageInfo{}
	}
	return Index{
		Paging: Paging{
			Page:       0,
			Count:      len(packages),
			MaxPage:    1,
			ItemsTotal: len(packages),
		},
		Packages: packages,
	}
}

func pageURL(baseURL string, page int) string {
	path := fmt.Sprintf("apps/%d.json", page)
	if baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/api/" + path
}

func marshal(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
