package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/config"
	"github.com/910cpr/ew2landers/internal/feed"
	"github.com/910cpr/ew2landers/internal/logger"
	"github.com/910cpr/ew2landers/internal/pages"
	"github.com/910cpr/ew2landers/internal/prices"
	"github.com/910cpr/ew2landers/internal/schedule"
	"github.com/910cpr/ew2landers/internal/sitemap"
	"github.com/910cpr/ew2landers/internal/snapshot"
	"github.com/910cpr/ew2landers/internal/status"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build pages, feed, sitemap, and status from the saved snapshot",
		RunE:  runBuild,
	}
}

// runBuild is the full pipeline: snapshot on disk in, site tree out.
func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	courses, sessions, panelCount, err := loadSchedule(cfg)
	if err != nil {
		return err
	}

	cache, err := prices.LoadCache(cfg.PriceCachePath)
	if err != nil {
		// A broken cache costs prices, not the build.
		logger.Warn("ignoring unreadable price cache", logger.Fields{
			"path":  cfg.PriceCachePath,
			"error": err.Error(),
		})
		cache = prices.NewCache()
	}
	priced := prices.ApplyCached(cache, sessions)

	now := time.Now()
	gen := pages.NewGenerator(cfg)
	if err := gen.Build(courses, sessions, now); err != nil {
		return fmt.Errorf("building pages: %w", err)
	}

	f := feed.Build(sessions, cfg.SnapshotURL, panelCount, now)
	if err := feed.Save(cfg.FeedPath, f); err != nil {
		return err
	}

	written := make(map[string]struct{})
	for _, rel := range gen.Written() {
		written[rel] = struct{}{}
	}
	pageCount, err := sitemap.Generate(cfg.OutputDir, cfg.Origin, written)
	if err != nil {
		return err
	}

	report := status.Collect(cfg.SnapshotPath, cfg.FeedPath, now)
	if err := status.Write(cfg.StatusPath, report); err != nil {
		return err
	}

	result := &BuildResult{
		BuiltAt:         now.UTC(),
		Courses:         len(courses),
		Sessions:        len(sessions),
		Locations:       len(schedule.GroupByLocation(sessions)),
		PricedFromCache: priced,
		SitemapPages:    pageCount,
		Skips:           logger.CounterSnapshot(),
	}
	return WriteOutput(os.Stdout, result, OutputFormat(flagFormat), flagVerbose)
}

// loadSchedule reads the snapshot from disk and extracts structured records.
// A missing snapshot is fatal: run refresh first.
func loadSchedule(cfg *config.Config) ([]*schedule.Course, []*schedule.Session, int, error) {
	file, err := os.Open(cfg.SnapshotPath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("opening snapshot %s (run refresh first): %w", cfg.SnapshotPath, err)
	}
	defer file.Close()

	panels, err := snapshot.NewParser(cfg.Rules).Parse(file)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("parsing snapshot: %w", err)
	}

	norm, err := schedule.NewNormalizer(cfg.EnrollBase, cfg.Location(), cfg.Rules.SessionItemSelector)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("creating normalizer: %w", err)
	}

	courses, sessions := norm.Normalize(panels)
	return courses, sessions, len(panels), nil
}
