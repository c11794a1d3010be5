package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/exporter"
	"github.com/Hyunwoo0815/bus2/pkg/generator"
	"github.com/Hyunwoo0815/bus2/pkg/schedule"
	"github.com/Hyunwoo0815/bus2/pkg/slug"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// RunExportTUI walks through origin, destination and file name and writes an .ics calendar
func RunExportTUI(s *Session) error {
	origins, err := generator.Origins(s.Config.DataDir)
	if err != nil {
		return err
	}
	if len(origins) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No schedule files found in %s!", s.Config.DataDir)))
		return nil
	}

	var origin string
	originForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("출발 터미널").
				Options(huh.NewOptions(origins...)...).
				Value(&origin).
				Filtering(true).
				Height(12),
		),
	).WithTheme(GetTheme(s.Config))

	if err := originForm.Run(); err != nil {
		return err
	}

	var tt *schedule.Timetable
	_ = spinner.New().
		Title(fmt.Sprintf("Loading %s timetable...", origin)).
		Action(func() {
			tt, err = generator.LoadTimetable(s.Config.DataDir, origin)
		}).
		Run()

	if err != nil {
		return err
	}

	var destOptions []huh.Option[string]
	for _, d := range tt.Destinations {
		valid := schedule.ValidRecords(d.Records)
		if d.Err != nil || len(valid) == 0 {
			continue
		}
		destOptions = append(destOptions, huh.NewOption(fmt.Sprintf("%s (%d편)", d.Name, len(valid)), d.Name))
	}
	if len(destOptions) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No departures found for %s!", origin)))
		return nil
	}

	var destination, outputFile string
	exportForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("도착 터미널").
				Options(destOptions...).
				Value(&destination).
				Filtering(true).
				Height(12),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme(s.Config))

	if err := exportForm.Run(); err != nil {
		return err
	}
	if outputFile == "" {
		outputFile = slug.Sanitize(origin+"-"+destination) + ".ics"
	}
	if !strings.HasSuffix(outputFile, ".ics") {
		outputFile += ".ics"
	}

	d, _ := tt.Lookup(destination)

	loc, err := s.Config.Location()
	if err != nil {
		return err
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(origin, destination, d.Records, time.Now(), loc, file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	count := len(schedule.ValidRecords(d.Records))
	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d departures to %s", count, outputFile)))

	return nil
}
