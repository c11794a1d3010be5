package cmd

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run generate, hub and sitemap in order",
	Long:  `Build the whole site: timetable pages, terminal hub pages and the site index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runGenerate(appConfig, generateOrigins, generateSeed); err != nil {
			return err
		}
		if err := runHub(appConfig); err != nil {
			return err
		}
		return runSitemap(appConfig)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Seed for related route picks (0 = random)")
}
