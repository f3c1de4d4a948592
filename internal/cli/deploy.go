package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/910cpr/ew2landers/internal/deploy"
)

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Upload the built site to the production host over SFTP",
		RunE:  runDeploy,
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := deploy.FromEnv()
	if err != nil {
		return err
	}

	uploaded, err := deploy.Deploy(cfg.OutputDir, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %d files to %s.\n", uploaded, opts.Host)
	return nil
}
