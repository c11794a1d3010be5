package generator

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/published"
	"github.com/Hyunwoo0815/bus2/pkg/render"
	"github.com/Hyunwoo0815/bus2/pkg/slug"
)

const routeObjects = `[
  {"출발지": "인천", "도착지": "신갈", "스케줄": [
    {"출발시각": "07:45", "차편정보": "경남여객(일반)1:10 소요", "어른요금": "5,600원"},
    {"출발시각": "06:30", "차편정보": "경기고속(우등)1시간 5분"}
  ]},
  {"출발지": "인천", "도착지": "수원", "스케줄": [
    {"출발시각": "", "차편정보": "정보 없음"}
  ]}
]`

const flatDict = `{
  "부산/사상": [{"TIM_TIM": "0900", "COR_NAM": "천일고속", "LIN_TIM": 250}],
  "대구": "not a list",
  "광주": []
}`

type fixture struct {
	dataDir   string
	outputDir string
	routeFile string
	log       *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		dataDir:   filepath.Join(root, "data"),
		outputDir: filepath.Join(root, "outputs"),
		routeFile: filepath.Join(root, "route", "total_route.json"),
		log:       &bytes.Buffer{},
	}
	os.MkdirAll(f.dataDir, 0755)
	os.MkdirAll(filepath.Dir(f.routeFile), 0755)
	return f
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func (f *fixture) options(t *testing.T, day time.Time) Options {
	t.Helper()
	r, err := render.New(render.Site{BaseURL: "https://example.com/", Name: "test"})
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return Options{
		DataDir:    f.dataDir,
		OutputDir:  f.outputDir,
		RouteFile:  f.routeFile,
		MaxRelated: 7,
		Renderer:   r,
		Now:        func() time.Time { return day },
		Location:   time.UTC,
		Rand:       rand.New(rand.NewSource(1)),
		Log:        f.log,
	}
}

func TestRun_NoInput(t *testing.T) {
	f := newFixture(t)

	_, err := Run(f.options(t, time.Now()), published.New())
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
	if _, statErr := os.Stat(f.outputDir); !os.IsNotExist(statErr) {
		t.Errorf("expected no output directory to be created")
	}
}

func TestRun_RouteObjects(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.dataDir, "인천_schedules.json"), routeObjects)
	f.write(t, f.routeFile, `{"인천": ["신갈", "수원", "안산"]}`)

	day := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	summary, err := Run(f.options(t, day), published.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := slug.RoutePageFile("인천", "신갈")
	if len(summary.Created) != 1 || summary.Created[0] != want {
		t.Fatalf("expected only %s to be created, got %v", want, summary.Created)
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0].Destination != "수원" {
		t.Errorf("expected 수원 to be skipped, got %v", summary.Skipped)
	}
	if len(summary.Degraded) != 0 {
		t.Errorf("expected no degraded features, got %v", summary.Degraded)
	}

	html, err := os.ReadFile(filepath.Join(f.outputDir, want))
	if err != nil {
		t.Fatalf("expected page to be written: %v", err)
	}
	page := string(html)
	if strings.Index(page, "<td>06:30") > strings.Index(page, "<td>07:45") {
		t.Errorf("expected rows sorted by departure time")
	}
	if !strings.Contains(page, "인천 → 안산") {
		t.Errorf("expected related link to 안산")
	}

	if d, _ := summary.Dates.Get(want); d != "2025-03-01" {
		t.Errorf("expected publish date 2025-03-01, got %q", d)
	}
	if !strings.Contains(f.log.String(), "✅") {
		t.Errorf("expected progress lines in the log")
	}
}

func TestRun_FlatDictSkips(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.dataDir, "서울경부_schedules.json"), flatDict)

	summary, err := Run(f.options(t, time.Now()), published.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := slug.RoutePageFile("서울경부", "부산/사상")
	if want != "서울경부-에서-부산-사상-가는-시외버스-시간표.html" {
		t.Fatalf("unexpected page name %s", want)
	}
	if len(summary.Created) != 1 || summary.Created[0] != want {
		t.Errorf("expected %s to be created, got %v", want, summary.Created)
	}
	if len(summary.Skipped) != 2 {
		t.Errorf("expected 대구 and 광주 to be skipped, got %v", summary.Skipped)
	}

	// route file is missing
	if len(summary.Degraded) != 1 {
		t.Errorf("expected related routes to be reported as degraded, got %v", summary.Degraded)
	}
}

func TestRun_BadFileIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.dataDir, "broken_schedules.json"), "{not json")
	f.write(t, filepath.Join(f.dataDir, "scalar_schedules.json"), `"hello"`)
	f.write(t, filepath.Join(f.dataDir, "인천_schedules.json"), routeObjects)

	summary, err := Run(f.options(t, time.Now()), published.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failed := summary.FailedFiles()
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed files, got %d", len(failed))
	}
	if len(summary.Created) != 1 {
		t.Errorf("expected the good file to still produce a page, got %v", summary.Created)
	}
}

func TestRun_PublishedDateIsStable(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.dataDir, "인천_schedules.json"), routeObjects)
	registry := filepath.Join(f.outputDir, "published_dates.json")
	name := slug.RoutePageFile("인천", "신갈")

	first := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s1, err := Run(f.options(t, first), published.New())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := s1.Dates.Save(registry); err != nil {
		t.Fatalf("failed to save registry: %v", err)
	}

	dates, err := published.Load(registry)
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	second := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	s2, err := Run(f.options(t, second), dates)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if d, _ := s2.Dates.Get(name); d != "2025-01-01" {
		t.Errorf("expected first publish date to survive, got %q", d)
	}

	html, _ := os.ReadFile(filepath.Join(f.outputDir, name))
	if !strings.Contains(string(html), "2025-01-01") || !strings.Contains(string(html), "2025-02-01") {
		t.Errorf("expected page to show published 2025-01-01 and modified 2025-02-01")
	}
	if dates.Len() != 1 {
		t.Errorf("expected the input registry to be left alone")
	}
}

func TestRun_OriginFilter(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.dataDir, "인천_schedules.json"), routeObjects)
	f.write(t, filepath.Join(f.dataDir, "서울경부_schedules.json"), flatDict)

	opts := f.options(t, time.Now())
	opts.Origins = []string{"서울경부"}
	summary, err := Run(opts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Files) != 1 || summary.Files[0].Origin != "서울경부" {
		t.Errorf("expected only 서울경부 to be processed, got %+v", summary.Files)
	}

	opts.Origins = []string{"없음"}
	if _, err := Run(opts, nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput when the filter matches nothing, got %v", err)
	}
}

func TestOrigins(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.dataDir, "인천_schedules.json"), routeObjects)
	f.write(t, filepath.Join(f.dataDir, "동서울_schedules.json"), flatDict)
	f.write(t, filepath.Join(f.dataDir, "notes.json"), "{}")

	origins, err := Origins(f.dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(origins) != 2 {
		t.Errorf("expected 2 origins, got %v", origins)
	}
}

func TestLoadTimetable(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.dataDir, "인천_schedules.json"), routeObjects)

	tt, err := LoadTimetable(f.dataDir, " 인천 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := tt.Lookup("신갈")
	if !ok || len(d.Records) != 2 {
		t.Errorf("expected 2 records for 신갈, got %+v", d)
	}

	if _, err := LoadTimetable(f.dataDir, "부산"); !errors.Is(err, ErrUnknownOrigin) {
		t.Errorf("expected ErrUnknownOrigin, got %v", err)
	}
}
