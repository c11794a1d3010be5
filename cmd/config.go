package cmd

import (
	"fmt"
	"os"

	"github.com/Hyunwoo0815/bus2/pkg/config"
	"github.com/Hyunwoo0815/bus2/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the bus2 configuration",
	Long: `Print the effective configuration (bus2.yml, .env, BUS2_* variables and flags),
write a starter bus2.yml with --init, or edit settings interactively with --edit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		initFile, _ := cmd.Flags().GetBool("init")
		force, _ := cmd.Flags().GetBool("force")
		edit, _ := cmd.Flags().GetBool("edit")

		if initFile {
			if _, err := os.Stat(cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
			}
			if err := config.Save(cfgFile, config.Default()); err != nil {
				return err
			}
			fmt.Println(okStyle.Render(fmt.Sprintf("✅ Wrote default configuration to %s", cfgFile)))
			return nil
		}

		if edit {
			return tui.RunConfigTUI(newSession())
		}

		printConfig(appConfig)
		return nil
	},
}

func printConfig(cfg *config.AppConfig) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Configuration (%s)", cfgFile)))

	rows := []struct{ key, value string }{
		{"data_dir", cfg.DataDir},
		{"output_dir", cfg.OutputDir},
		{"route_file", cfg.RouteFile},
		{"published_dates_file", cfg.RegistryPath()},
		{"base_url", cfg.BaseURL},
		{"site_name", cfg.SiteName},
		{"booking_url", cfg.BookingURL},
		{"timezone", cfg.Timezone},
		{"max_related_links", fmt.Sprint(cfg.MaxRelatedLinks)},
		{"rss_items", fmt.Sprint(cfg.RSSItems)},
		{"accent_color", cfg.AccentColor},
	}
	for _, r := range rows {
		fmt.Printf("%s %s\n", dimStyle.Render(fmt.Sprintf("%-22s", r.key)), r.value)
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Write a default bus2.yml")
	configCmd.Flags().Bool("force", false, "Overwrite an existing file with --init")
	configCmd.Flags().BoolP("edit", "e", false, "Edit settings interactively")
}
