package siteindex

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options configures a site index build
type Options struct {
	OutputDir string
	BaseURL   string
	SiteName  string
	RSSItems  int
	Now       func() time.Time
	Location  *time.Location
	Log       io.Writer
}

// Result reports what was written
type Result struct {
	Pages    int
	RSSItems int
	Files    []string
}

// Build writes sitemap.xml, rss.xml and robots.txt for the pages already in
// the output directory.
func Build(opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = io.Discard
	}
	baseURL := opts.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	limit := opts.RSSItems
	if limit <= 0 {
		limit = DefaultRSSItems
	}

	pages, err := Scan(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if opts.Location != nil {
		for i := range pages {
			pages[i].ModTime = pages[i].ModTime.In(opts.Location)
		}
	}

	res := &Result{Pages: len(pages), RSSItems: min(limit, len(pages))}

	feed := Feed{
		Title:       opts.SiteName,
		Description: "전국 시외버스 시간표와 요금, 소요시간 정보",
		BaseURL:     baseURL,
	}
	if feed.Title == "" {
		feed.Title = "전국 시외버스 시간표"
	}

	outputs := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"sitemap.xml", func(w io.Writer) error { return WriteSitemap(w, baseURL, pages) }},
		{"rss.xml", func(w io.Writer) error { return WriteRSS(w, feed, pages, now(), limit) }},
		{"robots.txt", func(w io.Writer) error { return WriteRobots(w, baseURL) }},
	}

	for _, out := range outputs {
		var buf bytes.Buffer
		if err := out.write(&buf); err != nil {
			return res, fmt.Errorf("failed to build %s: %w", out.name, err)
		}
		if err := os.WriteFile(filepath.Join(opts.OutputDir, out.name), buf.Bytes(), 0644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", out.name, err)
		}
		res.Files = append(res.Files, out.name)
		fmt.Fprintf(log, "✅ %s\n", out.name)
	}

	return res, nil
}
