package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/schedule"
	"github.com/Hyunwoo0815/bus2/pkg/slug"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	routeTemplate = "route.html.tmpl"
	hubTemplate   = "hub.html.tmpl"

	updateLayout = "2006년 01월 02일"
)

// Site holds the values shared by every generated page
type Site struct {
	BaseURL    string // absolute, ends with "/"
	Name       string
	BookingURL string
}

// Renderer fills the embedded page templates
type Renderer struct {
	site Site
	tmpl *template.Template
}

// New parses the embedded templates for the given site.
func New(site Site) (*Renderer, error) {
	if site.BaseURL != "" && !strings.HasSuffix(site.BaseURL, "/") {
		site.BaseURL += "/"
	}

	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"duration": FormatDuration,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("could not parse page templates: %w", err)
	}

	return &Renderer{site: site, tmpl: tmpl}, nil
}

// Site returns the site settings the renderer was built with
func (r *Renderer) Site() Site {
	return r.site
}

// URL returns the absolute URL of a page name (without extension)
func (r *Renderer) URL(page string) string {
	return r.site.BaseURL + slug.Escape(page)
}

// RoutePage is everything one origin/destination timetable page shows.
// Aggregate must come from schedule.Aggregate and Records must be valid.
type RoutePage struct {
	Origin      string
	Destination string
	Aggregate   schedule.RouteAggregate
	Records     []schedule.Record
	Published   string
	Modified    string
	Updated     time.Time
	Related     []string
}

type link struct {
	Name string
	URL  string
}

type row struct {
	Time     string
	Duration string
	Operator string
	Fare     string
}

type routeView struct {
	Site            Site
	Page            RoutePage
	Title           string
	CanonicalURL    string
	ReturnURL       string
	HubURL          string
	Year            int
	UpdateDate      string
	AverageDuration string
	Rows            []row
	Related         []link
	StructuredData  busTrip
}

// RoutePage renders a timetable page.
func (r *Renderer) RoutePage(w io.Writer, p RoutePage) error {
	view := routeView{
		Site:            r.site,
		Page:            p,
		Title:           fmt.Sprintf("%s에서 %s 가는 시외버스 시간표", p.Origin, p.Destination),
		CanonicalURL:    r.URL(slug.RoutePage(p.Origin, p.Destination)),
		ReturnURL:       r.URL(slug.RoutePage(p.Destination, p.Origin)),
		HubURL:          r.URL(slug.HubPage(p.Origin)),
		Year:            p.Updated.Year(),
		UpdateDate:      p.Updated.Format(updateLayout),
		AverageDuration: FormatDuration(p.Aggregate.AverageDurationMinutes),
	}

	for _, rec := range p.Records {
		view.Rows = append(view.Rows, row{
			Time:     rec.DepartureTime,
			Duration: FormatDuration(rec.DurationMinutes),
			Operator: rec.OperatorLabel(),
			Fare:     rec.Fare,
		})
	}

	for _, to := range p.Related {
		view.Related = append(view.Related, link{
			Name: to,
			URL:  r.URL(slug.RoutePage(p.Origin, to)),
		})
	}

	view.StructuredData = r.busTrip(p, view.CanonicalURL)

	if err := r.tmpl.ExecuteTemplate(w, routeTemplate, view); err != nil {
		return fmt.Errorf("failed to render route page %s -> %s: %w", p.Origin, p.Destination, err)
	}
	return nil
}

// HubPage is the index page of one departure terminal
type HubPage struct {
	Terminal     string
	Destinations []string
	Updated      time.Time
}

type hubView struct {
	Site         Site
	Page         HubPage
	CanonicalURL string
	UpdateDate   string
	Date         string
	Links        []link
}

// HubPage renders a terminal index page.
func (r *Renderer) HubPage(w io.Writer, p HubPage) error {
	view := hubView{
		Site:         r.site,
		Page:         p,
		CanonicalURL: r.URL(slug.HubPage(p.Terminal)),
		UpdateDate:   p.Updated.Format(updateLayout),
		Date:         p.Updated.Format("2006-01-02"),
	}

	for _, to := range p.Destinations {
		view.Links = append(view.Links, link{
			Name: to,
			URL:  r.URL(slug.RoutePage(p.Terminal, to)),
		})
	}

	if err := r.tmpl.ExecuteTemplate(w, hubTemplate, view); err != nil {
		return fmt.Errorf("failed to render hub page %s: %w", p.Terminal, err)
	}
	return nil
}

// FormatDuration renders minutes as "1시간 10분", or the unknown label for 0.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return schedule.UnknownLabel
	}
	return fmt.Sprintf("%d시간 %d분", minutes/60, minutes%60)
}

// EstimateArrival adds a travel time to an HH:MM departure, wrapping past midnight.
// It returns "" when departure is not HH:MM.
func EstimateArrival(departure string, minutes int) string {
	var h, m int
	if _, err := fmt.Sscanf(departure, "%d:%d", &h, &m); err != nil {
		return ""
	}
	total := (h*60 + m + minutes) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
