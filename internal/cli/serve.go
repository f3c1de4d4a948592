package cli

import (
	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built site locally for preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return server.Run(server.Options{
				OutputDir:   cfg.OutputDir,
				EnrollBase:  cfg.EnrollBase,
				ScheduleURL: cfg.ScheduleURL,
				MaxUpcoming: cfg.MaxUpcoming,
			}, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	return cmd
}
