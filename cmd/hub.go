package cmd

import (
	"fmt"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/config"
	"github.com/Hyunwoo0815/bus2/pkg/hub"

	"github.com/spf13/cobra"
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Build one index page per departure terminal",
	Long:  `Collect the routes found in the data directory and write a terminal hub page linking every timetable page of that terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHub(appConfig)
	},
}

func runHub(cfg *config.AppConfig) error {
	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var res *hub.Result
	var runErr error
	runStep("🏢 Building terminal hub pages...", func() {
		res, runErr = hub.Build(hub.Options{
			DataDir:   cfg.DataDir,
			OutputDir: cfg.OutputDir,
			Renderer:  renderer,
			Now:       time.Now,
			Location:  loc,
			Log:       progressLog(),
		})
	})
	if runErr != nil {
		return fmt.Errorf("hub build failed: %w", runErr)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Built %d terminal pages for %d routes", len(res.Pages), res.Routes)))
	printList(res.Pages, maxCreatedShown, okStyle)
	return nil
}

func init() {
	rootCmd.AddCommand(hubCmd)
}
