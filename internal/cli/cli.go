package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/config"
	"github.com/910cpr/ew2landers/internal/logger"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitIncomplete = 2
)

var (
	flagConfig  string
	flagVerbose bool
	flagFormat  string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ew2landers",
		Short: "Build static course, session, and location pages from the booking schedule",
		Long: `A pipeline that snapshots the Enrollware booking schedule, extracts
structured course and session records, and builds the static landing
pages, widget feed, and sitemap for the site.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultPath+" if present)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	cmd.AddCommand(
		newBuildCmd(),
		newRefreshCmd(),
		newFeedCmd(),
		newPricesCmd(),
		newSitemapCmd(),
		newStatusCmd(),
		newServeCmd(),
		newDeployCmd(),
	)

	return cmd
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
