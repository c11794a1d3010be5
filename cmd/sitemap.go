package cmd

import (
	"fmt"
	"time"

	"github.com/Hyunwoo0815/bus2/pkg/config"
	"github.com/Hyunwoo0815/bus2/pkg/siteindex"

	"github.com/spf13/cobra"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Write sitemap.xml, rss.xml and robots.txt",
	Long: `Scan the HTML pages already in the output directory and write sitemap.xml,
rss.xml and robots.txt next to them. Run generate first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSitemap(appConfig)
	},
}

func runSitemap(cfg *config.AppConfig) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var res *siteindex.Result
	var runErr error
	runStep("🗺️  Building site index...", func() {
		res, runErr = siteindex.Build(siteindex.Options{
			OutputDir: cfg.OutputDir,
			BaseURL:   cfg.BaseURL,
			SiteName:  cfg.SiteName,
			RSSItems:  cfg.RSSItems,
			Now:       time.Now,
			Location:  loc,
			Log:       progressLog(),
		})
	})
	if runErr != nil {
		return fmt.Errorf("site index failed: %w", runErr)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Indexed %d pages (%d in RSS)", res.Pages, res.RSSItems)))
	printList(res.Files, len(res.Files), okStyle)
	return nil
}

func init() {
	rootCmd.AddCommand(sitemapCmd)
}
