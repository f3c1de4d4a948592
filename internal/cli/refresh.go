package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/snapshot"
)

func newRefreshCmd() *cobra.Command {
	var fetchOnly bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch a fresh schedule snapshot and rebuild the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd, args, fetchOnly)
		},
	}

	cmd.Flags().BoolVar(&fetchOnly, "fetch-only", false, "Fetch the snapshot without rebuilding")
	return cmd
}

func runRefresh(cmd *cobra.Command, args []string, fetchOnly bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher := snapshot.NewFetcher(cfg.SnapshotURL)
	if err := fetcher.FetchToFile(cmd.Context(), cfg.SnapshotPath); err != nil {
		return err
	}
	fmt.Println("Snapshot refreshed successfully.")

	if fetchOnly {
		return nil
	}
	return runBuild(cmd, args)
}
