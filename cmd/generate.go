package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/config"
	"github.com/Hyunwoo0815/bus2/pkg/generator"
	"github.com/Hyunwoo0815/bus2/pkg/published"
	"github.com/Hyunwoo0815/bus2/pkg/render"

	"github.com/spf13/cobra"
)

var (
	generateOrigins []string
	generateSeed    int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one timetable page per origin and destination",
	Long: `Read every *_schedules.json file in the data directory and write one HTML
timetable page per origin/destination pair to the output directory.
First-publish dates are kept in the published dates registry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(appConfig, generateOrigins, generateSeed)
	},
}

func newRenderer(cfg *config.AppConfig) (*render.Renderer, error) {
	return render.New(render.Site{
		BaseURL:    cfg.BaseURL,
		Name:       cfg.SiteName,
		BookingURL: cfg.BookingURL,
	})
}

// runGenerate renders the route pages and saves the updated registry
func runGenerate(cfg *config.AppConfig, origins []string, seed int64) error {
	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	registry := cfg.RegistryPath()
	dates, err := published.Load(registry)
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠️  %v (starting a new registry)", err)))
	}

	opts := generator.Options{
		DataDir:    cfg.DataDir,
		OutputDir:  cfg.OutputDir,
		RouteFile:  cfg.RouteFile,
		MaxRelated: cfg.MaxRelatedLinks,
		Renderer:   renderer,
		Now:        time.Now,
		Location:   loc,
		Origins:    origins,
		Log:        progressLog(),
	}
	if seed != 0 {
		opts.Rand = rand.New(rand.NewSource(seed))
	}

	var summary *generator.Summary
	var runErr error
	runStep("🚌 Generating timetable pages...", func() {
		summary, runErr = generator.Run(opts, dates)
	})
	if runErr != nil {
		return fmt.Errorf("generate failed: %w", runErr)
	}

	if err := summary.Dates.Save(registry); err != nil {
		return fmt.Errorf("failed to save published dates: %w", err)
	}

	printGenerateSummary(summary)
	return nil
}

func printGenerateSummary(s *generator.Summary) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Generated %d pages", len(s.Created))))
	printList(s.Created, maxCreatedShown, okStyle)

	for _, note := range s.Degraded {
		fmt.Println(warnStyle.Render("⚠️  " + note))
	}

	if failed := s.FailedFiles(); len(failed) > 0 {
		fmt.Println(titleStyle.Render(fmt.Sprintf("Skipped %d files", len(failed))))
		for _, f := range failed {
			fmt.Println(errStyle.Render("  🚫 " + f.Err.Error()))
		}
	}

	if len(s.Skipped) > 0 {
		fmt.Println(titleStyle.Render(fmt.Sprintf("Skipped %d destinations", len(s.Skipped))))
		var lines []string
		for _, sk := range s.Skipped {
			lines = append(lines, sk.String())
		}
		printList(lines, maxSkippedShown, warnStyle)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringSliceVarP(&generateOrigins, "origin", "o", nil, "Only generate pages for these origin terminals")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Seed for related route picks (0 = random)")
}
