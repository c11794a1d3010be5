package cmd

import (
	"fmt"
	"os"

	"github.com/Hyunwoo0815/bus2/pkg/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	plain     bool
	appConfig *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "bus2",
	Short: "A static timetable site generator for Korean intercity buses",
	Long: `bus2 turns per-terminal schedule JSON files into static HTML timetable
pages, terminal hub pages, a sitemap, an RSS feed and robots.txt.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(errStyle.Render("❌ " + err.Error()))
		os.Exit(1)
	}
}

// loadConfig resolves the settings: defaults, bus2.yml, .env and BUS2_* variables, then flags.
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"data-dir":   &cfg.DataDir,
		"output-dir": &cfg.OutputDir,
		"base-url":   &cfg.BaseURL,
	}
	for name, field := range overrides {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding *_schedules.json files (overrides config)")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory the site is written to (overrides config)")
	rootCmd.PersistentFlags().String("base-url", "", "Absolute URL the site is served from (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Print plain progress lines instead of spinners (implied when CI is set)")
}
