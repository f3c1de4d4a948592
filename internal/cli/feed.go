package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/feed"
	"github.com/910cpr/ew2landers/internal/logger"
	"github.com/910cpr/ew2landers/internal/prices"
)

func newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Rebuild only the widget feed from the saved snapshot",
		RunE:  runFeed,
	}
}

func runFeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, sessions, panelCount, err := loadSchedule(cfg)
	if err != nil {
		return err
	}

	if cache, err := prices.LoadCache(cfg.PriceCachePath); err == nil {
		prices.ApplyCached(cache, sessions)
	} else {
		logger.Warn("ignoring unreadable price cache", logger.Fields{
			"path":  cfg.PriceCachePath,
			"error": err.Error(),
		})
	}

	f := feed.Build(sessions, cfg.SnapshotURL, panelCount, time.Now())
	return feed.Save(cfg.FeedPath, f)
}
