package cmd

import (
	"github.com/Hyunwoo0815/bus2/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to pick terminals, build the site and export route calendars interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(newSession())
	},
}

func newSession() *tui.Session {
	return &tui.Session{
		Config:     appConfig,
		ConfigPath: cfgFile,
		Actions: tui.Actions{
			Generate: func(origins []string) error { return runGenerate(appConfig, origins, 0) },
			Hub:      func() error { return runHub(appConfig) },
			Sitemap:  func() error { return runSitemap(appConfig) },
		},
	}
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
