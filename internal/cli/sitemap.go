package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/sitemap"
)

func newSitemapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Regenerate sitemap.xml from the pages already on disk",
		RunE:  runSitemap,
	}
}

func runSitemap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pages, err := sitemap.Generate(cfg.OutputDir, cfg.Origin, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Sitemap lists %d pages.\n", pages)
	return nil
}
