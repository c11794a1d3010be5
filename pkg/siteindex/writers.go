package siteindex

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"time"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	atomNS    = "http://www.w3.org/2005/Atom"

	// rfc1123GMT is the date format of RSS pubDate/lastBuildDate
	rfc1123GMT = "Mon, 02 Jan 2006 15:04:05 GMT"

	// DefaultRSSItems is how many recent pages the feed lists
	DefaultRSSItems = 20
)

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// WriteSitemap writes a sitemaps.org urlset for pages
func WriteSitemap(w io.Writer, baseURL string, pages []Page) error {
	set := urlset{Xmlns: sitemapNS}
	for _, p := range pages {
		priority := "0.8"
		if p.IsHub() {
			priority = "0.9"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        p.URL(baseURL),
			LastMod:    p.ModTime.Format("2006-01-02"),
			ChangeFreq: "daily",
			Priority:   priority,
		})
	}
	return writeXML(w, set)
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
}

// Feed describes the RSS channel
type Feed struct {
	Title       string
	Description string
	BaseURL     string
}

// WriteRSS writes an RSS 2.0 feed of the limit most recently modified pages.
func WriteRSS(w io.Writer, feed Feed, pages []Page, now time.Time, limit int) error {
	if limit <= 0 {
		limit = DefaultRSSItems
	}

	recent := append([]Page(nil), pages...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ModTime.After(recent[j].ModTime)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}

	doc := rss{
		Version: "2.0",
		Atom:    atomNS,
		Channel: rssChannel{
			Title:         feed.Title,
			Link:          feed.BaseURL,
			Description:   feed.Description,
			Language:      "ko",
			LastBuildDate: now.UTC().Format(rfc1123GMT),
			AtomLink: atomLink{
				Href: feed.BaseURL + "rss.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
		},
	}

	for _, p := range recent {
		route := p.RouteText()
		title := p.Title
		if title == "" {
			title = route + " 시외버스 시간표"
		}
		url := p.URL(feed.BaseURL)
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       title,
			Description: route + " 노선의 시외버스 시간표 정보입니다.",
			Link:        url,
			GUID:        url,
			PubDate:     p.ModTime.UTC().Format(rfc1123GMT),
		})
	}

	return writeXML(w, doc)
}

// WriteRobots writes a robots.txt allowing everything and pointing at the sitemap
func WriteRobots(w io.Writer, baseURL string) error {
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %ssitemap.xml\n\nCrawl-delay: 1\n", baseURL)
	return err
}

func writeXML(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
