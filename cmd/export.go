package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/exporter"
	"github.com/Hyunwoo0815/bus2/pkg/generator"
	"github.com/Hyunwoo0815/bus2/pkg/schedule"
	"github.com/Hyunwoo0815/bus2/pkg/slug"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one route's departures to an ICS file",
	Long:  `Write every departure of one origin/destination route as a daily recurring calendar event.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		output, _ := cmd.Flags().GetString("output")
		dateFlag, _ := cmd.Flags().GetString("date")

		loc, err := appConfig.Location()
		if err != nil {
			return err
		}

		day := time.Now().In(loc)
		if dateFlag != "" {
			day, err = time.ParseInLocation("2006-01-02", dateFlag, loc)
			if err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", dateFlag, err)
			}
		}

		var tt *schedule.Timetable
		runStep(fmt.Sprintf("Loading %s timetable...", from), func() {
			tt, err = generator.LoadTimetable(appConfig.DataDir, from)
		})
		if err != nil {
			return fmt.Errorf("failed to load timetable: %w", err)
		}

		dest, ok := tt.Lookup(to)
		if !ok {
			return fmt.Errorf("no route from %s to %s", from, to)
		}
		if dest.Err != nil {
			return fmt.Errorf("route %s → %s is unusable: %w", from, to, dest.Err)
		}
		records := schedule.ValidRecords(dest.Records)
		if len(records) == 0 {
			return fmt.Errorf("no departures found from %s to %s", from, to)
		}

		if output == "" {
			output = slug.Sanitize(tt.Origin+"-"+dest.Name) + ".ics"
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		err = exporter.GenerateICS(tt.Origin, dest.Name, records, day, loc, file)
		if err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("✅ Exported %d departures to %s", len(records), output)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("from", "f", "", "Origin terminal (e.g. 인천)")
	exportCmd.Flags().StringP("to", "t", "", "Destination terminal (e.g. 신갈)")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (defaults to {from}-{to}.ics)")
	exportCmd.Flags().StringP("date", "d", "", "First day of the calendar (format: YYYY-MM-DD), defaults to today")
	exportCmd.MarkFlagRequired("from")
	exportCmd.MarkFlagRequired("to")
}
