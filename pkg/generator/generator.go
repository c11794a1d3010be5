package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/published"
	"github.com/Hyunwoo0815/bus2/pkg/render"
	"github.com/Hyunwoo0815/bus2/pkg/routes"
	"github.com/Hyunwoo0815/bus2/pkg/schedule"
	"github.com/Hyunwoo0815/bus2/pkg/slug"
)

var (
	// ErrNoInput is returned when the data directory holds no schedule files
	ErrNoInput = errors.New("no schedule files found")
	// ErrUnknownOrigin is returned when no schedule file exists for an origin
	ErrUnknownOrigin = errors.New("unknown origin terminal")
)

// Options configures a generation run
type Options struct {
	DataDir    string
	OutputDir  string
	RouteFile  string
	MaxRelated int // 0 disables related links
	Renderer   *render.Renderer

	Now      func() time.Time
	Location *time.Location
	Rand     *rand.Rand

	// Origins limits the run to these origin terminals when not empty
	Origins []string

	Log io.Writer
}

// Skip is a destination that produced no page
type Skip struct {
	Origin      string
	Destination string
	Reason      string
}

func (s Skip) String() string {
	return fmt.Sprintf("%s → %s (%s)", s.Origin, s.Destination, s.Reason)
}

// FileResult is the outcome of one schedule file
type FileResult struct {
	Path    string
	Origin  string
	Shape   schedule.Shape
	Created int
	Skipped int
	// Err is set when the whole file was skipped
	Err error
}

// Summary reports what a run produced
type Summary struct {
	Files    []FileResult
	Created  []string
	Skipped  []Skip
	Degraded []string
	// Dates is the registry with this run's first-seen pages added
	Dates *published.Store
}

// FailedFiles returns the files that were skipped entirely
func (s *Summary) FailedFiles() []FileResult {
	var failed []FileResult
	for _, f := range s.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Discover returns the sorted *_schedules.json files of dataDir
func Discover(dataDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dataDir, "*_schedules.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Origins lists the origin terminals found in dataDir
func Origins(dataDir string) ([]string, error) {
	files, err := Discover(dataDir)
	if err != nil {
		return nil, err
	}
	origins := make([]string, 0, len(files))
	for _, f := range files {
		origins = append(origins, schedule.OriginFromFilename(f))
	}
	return origins, nil
}

// LoadTimetable reads and normalizes the schedule file of one origin
func LoadTimetable(dataDir, origin string) (*schedule.Timetable, error) {
	files, err := Discover(dataDir)
	if err != nil {
		return nil, err
	}

	origin = schedule.CanonicalName(origin)
	for _, f := range files {
		if schedule.OriginFromFilename(f) != origin {
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		doc, err := schedule.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", f, err)
		}
		return doc.Normalize(origin), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownOrigin, origin)
}

// Run renders one page per origin/destination pair found in the data dir.
// dates is not modified; the returned Summary carries the updated registry
// and saving it is up to the caller.
func Run(opts Options, dates *published.Store) (*Summary, error) {
	if opts.Renderer == nil {
		return nil, errors.New("generator: no renderer configured")
	}
	log := opts.Log
	if log == nil {
		log = io.Discard
	}

	files, err := Discover(opts.DataDir)
	if err != nil {
		return nil, err
	}
	files = filterOrigins(files, opts.Origins)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInput, opts.DataDir)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	graph, err := routes.Load(opts.RouteFile)
	summary := &Summary{}
	if err != nil {
		note := fmt.Sprintf("related routes disabled: %v", err)
		summary.Degraded = append(summary.Degraded, note)
		fmt.Fprintf(log, "⚠️  %s\n", note)
	}

	if dates == nil {
		dates = published.New()
	}
	summary.Dates = dates.Clone()

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	updated := now().In(loc)
	today := updated.Format(published.DateLayout)

	run := &runner{
		opts:    opts,
		log:     log,
		graph:   graph,
		summary: summary,
		updated: updated,
		today:   today,
	}

	for _, path := range files {
		summary.Files = append(summary.Files, run.file(path))
	}

	return summary, nil
}

type runner struct {
	opts    Options
	log     io.Writer
	graph   routes.Graph
	summary *Summary
	updated time.Time
	today   string
}

func (r *runner) file(path string) FileResult {
	origin := schedule.OriginFromFilename(path)
	res := FileResult{Path: path, Origin: origin}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		fmt.Fprintf(r.log, "🚫 %v\n", res.Err)
		return res
	}

	doc, err := schedule.Decode(data)
	if err != nil {
		res.Err = fmt.Errorf("failed to decode %s: %w", path, err)
		fmt.Fprintf(r.log, "🚫 %v\n", res.Err)
		return res
	}
	res.Shape = doc.Shape()

	tt := doc.Normalize(origin)
	fmt.Fprintf(r.log, "📄 %s: %d destinations (%s)\n", filepath.Base(path), len(tt.Destinations), res.Shape)

	for _, d := range tt.Destinations {
		name, reason := r.destination(tt.Origin, d)
		if reason != "" {
			skip := Skip{Origin: tt.Origin, Destination: d.Name, Reason: reason}
			r.summary.Skipped = append(r.summary.Skipped, skip)
			res.Skipped++
			fmt.Fprintf(r.log, "⚠️  skipped %s\n", skip)
			continue
		}
		r.summary.Created = append(r.summary.Created, name)
		res.Created++
		fmt.Fprintf(r.log, "✅ %s\n", name)
	}

	return res
}

// destination writes one route page and returns its filename, or the reason
// it was skipped.
func (r *runner) destination(origin string, d schedule.Destination) (string, string) {
	if d.Err != nil {
		return "", d.Err.Error()
	}
	if len(d.Records) == 0 {
		return "", "no records"
	}

	agg, ok := schedule.Aggregate(d.Records)
	if !ok {
		return "", "no valid departure times"
	}
	records := schedule.ValidRecords(d.Records)
	schedule.SortByDeparture(records)

	name := slug.RoutePageFile(origin, d.Name)
	pub, ok := r.summary.Dates.Get(name)
	if !ok {
		pub = r.today
	}

	page := render.RoutePage{
		Origin:      origin,
		Destination: d.Name,
		Aggregate:   agg,
		Records:     records,
		Published:   pub,
		Modified:    r.today,
		Updated:     r.updated,
		Related:     routes.PickRelated(r.graph, origin, d.Name, r.opts.MaxRelated, r.opts.Rand),
	}

	var buf bytes.Buffer
	if err := r.opts.Renderer.RoutePage(&buf, page); err != nil {
		return "", err.Error()
	}
	if err := os.WriteFile(filepath.Join(r.opts.OutputDir, name), buf.Bytes(), 0644); err != nil {
		return "", fmt.Sprintf("failed to write page: %v", err)
	}

	r.summary.Dates.Publish(name, r.today)
	return name, ""
}

func filterOrigins(files []string, origins []string) []string {
	if len(origins) == 0 {
		return files
	}
	want := make(map[string]bool, len(origins))
	for _, o := range origins {
		want[schedule.CanonicalName(o)] = true
	}

	var kept []string
	for _, f := range files {
		if want[schedule.OriginFromFilename(f)] {
			kept = append(kept, f)
		}
	}
	return kept
}
