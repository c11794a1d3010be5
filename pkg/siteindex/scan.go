package siteindex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/slug"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoOutputDir means pages have not been generated yet
	ErrNoOutputDir = errors.New("output directory does not exist")
	// ErrNoPages means the output directory holds no HTML pages
	ErrNoPages = errors.New("no HTML pages found")
)

// Page is a rendered HTML file in the output directory
type Page struct {
	Name    string // file name, e.g. "인천-에서-신갈-가는-시외버스-시간표.html"
	Title   string
	ModTime time.Time
}

// IsHub reports whether the page is a terminal index page
func (p Page) IsHub() bool {
	return slug.IsHubPage(p.Name)
}

// RouteText is the readable route of the page, e.g. "인천 → 신갈"
func (p Page) RouteText() string {
	return slug.RouteText(p.Name)
}

// URL returns the absolute URL of the page file
func (p Page) URL(baseURL string) string {
	return baseURL + slug.Escape(p.Name)
}

// Scan lists the HTML pages of outputDir sorted by name. index.html is skipped.
func Scan(outputDir string) ([]Page, error) {
	info, err := os.Stat(outputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoOutputDir, outputDir)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", outputDir, err)
	}

	var pages []Page
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".html") || name == "index.html" {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}

		pages = append(pages, Page{
			Name:    name,
			Title:   readTitle(filepath.Join(outputDir, name)),
			ModTime: fi.ModTime(),
		})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, outputDir)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Name < pages[j].Name })
	return pages, nil
}

// readTitle returns the page <title>, or "" when it cannot be read
func readTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("head title").First().Text())
}
