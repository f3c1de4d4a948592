package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/status"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Write status.json and report whether the build artifacts are complete",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := status.Collect(cfg.SnapshotPath, cfg.FeedPath, time.Now())
	if err := status.Write(cfg.StatusPath, report); err != nil {
		return err
	}

	if !report.Complete() {
		fmt.Fprintln(os.Stderr, "Build artifacts are incomplete.")
		os.Exit(ExitError)
	}

	fmt.Println("Build artifacts are complete.")
	return nil
}
