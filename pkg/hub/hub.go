package hub

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/render"
	"github.com/Hyunwoo0815/bus2/pkg/schedule"
	"github.com/Hyunwoo0815/bus2/pkg/slug"
)

// ErrNoRoutes is returned when no route could be found in the data dir
var ErrNoRoutes = errors.New("no routes found")

// Route is one departure/arrival pair with a timetable page
type Route struct {
	Departure string
	Arrival   string
	File      string
	URL       string
}

// Terminal groups the routes leaving one departure terminal
type Terminal struct {
	Name   string
	Routes []Route
}

// Arrivals returns the arrival names of the terminal's routes
func (t Terminal) Arrivals() []string {
	names := make([]string, 0, len(t.Routes))
	for _, r := range t.Routes {
		names = append(names, r.Arrival)
	}
	return names
}

// routeFile is the shape of single-route data files
type routeFile struct {
	Route *struct {
		Departure string `json:"departure"`
		Arrival   string `json:"arrival"`
	} `json:"route"`
}

func newRoute(departure, arrival string) Route {
	return Route{
		Departure: departure,
		Arrival:   arrival,
		File:      slug.RoutePageFile(departure, arrival),
		URL:       slug.RoutePage(departure, arrival),
	}
}

// LoadRoutes collects routes from every JSON file in dataDir.
// Single-route files contribute their route.departure/route.arrival pair;
// schedule files contribute every destination that has a valid departure.
// Files that cannot be read are reported to log and skipped.
func LoadRoutes(dataDir string, log io.Writer) ([]Route, error) {
	if log == nil {
		log = io.Discard
	}

	files, err := filepath.Glob(filepath.Join(dataDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list data files: %w", err)
	}
	sort.Strings(files)

	seen := make(map[string]bool)
	var routes []Route
	add := func(dep, arr string) {
		dep, arr = schedule.CanonicalName(dep), schedule.CanonicalName(arr)
		if dep == "" || arr == "" {
			return
		}
		key := dep + "\x00" + arr
		if seen[key] {
			return
		}
		seen[key] = true
		routes = append(routes, newRoute(dep, arr))
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(log, "🚫 %s: %v\n", path, err)
			continue
		}

		if schedule.IsScheduleFile(path) {
			doc, err := schedule.Decode(data)
			if err != nil {
				fmt.Fprintf(log, "🚫 %s: %v\n", path, err)
				continue
			}
			tt := doc.Normalize(schedule.OriginFromFilename(path))
			for _, d := range tt.Destinations {
				if d.Err != nil {
					continue
				}
				if _, ok := schedule.Aggregate(d.Records); ok {
					add(tt.Origin, d.Name)
				}
			}
			continue
		}

		var rf routeFile
		if err := json.Unmarshal(data, &rf); err != nil {
			fmt.Fprintf(log, "🚫 %s: %v\n", path, err)
			continue
		}
		if rf.Route != nil {
			add(rf.Route.Departure, rf.Route.Arrival)
		}
	}

	return routes, nil
}

// Group groups routes by departure. Terminals and their arrivals are sorted.
func Group(routes []Route) []Terminal {
	byName := make(map[string]*Terminal)
	var names []string
	for _, r := range routes {
		t, ok := byName[r.Departure]
		if !ok {
			t = &Terminal{Name: r.Departure}
			byName[r.Departure] = t
			names = append(names, r.Departure)
		}
		t.Routes = append(t.Routes, r)
	}
	sort.Strings(names)

	terminals := make([]Terminal, 0, len(names))
	for _, n := range names {
		t := byName[n]
		sort.SliceStable(t.Routes, func(i, j int) bool {
			return t.Routes[i].Arrival < t.Routes[j].Arrival
		})
		terminals = append(terminals, *t)
	}
	return terminals
}

// Options configures a hub build
type Options struct {
	DataDir   string
	OutputDir string
	Renderer  *render.Renderer
	Now       func() time.Time
	Location  *time.Location
	Log       io.Writer
}

// Result lists the hub pages written
type Result struct {
	Pages  []string
	Routes int
}

// Build writes one terminal page per departure terminal.
func Build(opts Options) (*Result, error) {
	if opts.Renderer == nil {
		return nil, errors.New("hub: no renderer configured")
	}
	log := opts.Log
	if log == nil {
		log = io.Discard
	}

	routes, err := LoadRoutes(opts.DataDir, log)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRoutes, opts.DataDir)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	updated := now().In(loc)

	res := &Result{Routes: len(routes)}
	for _, t := range Group(routes) {
		var buf bytes.Buffer
		err := opts.Renderer.HubPage(&buf, render.HubPage{
			Terminal:     t.Name,
			Destinations: t.Arrivals(),
			Updated:      updated,
		})
		if err != nil {
			return res, err
		}

		name := slug.HubPageFile(t.Name)
		if err := os.WriteFile(filepath.Join(opts.OutputDir, name), buf.Bytes(), 0644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", name, err)
		}
		res.Pages = append(res.Pages, name)
		fmt.Fprintf(log, "✅ %s (%d routes)\n", name, len(t.Routes))
	}

	return res, nil
}
