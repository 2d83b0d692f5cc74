package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nightking/internal/config"
)

// newConfigCmd creates the command printing the effective configuration.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Prints the configuration nightking would run with, after merging the
built-in defaults, the config file, NIGHTKING_* environment variables and
flags. The output is valid config file content.

With --check the configuration is also validated and the command fails if
it is not usable.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}

	addProjectFlags(cmd)
	addSubscriptionFlags(cmd)
	cmd.Flags().Bool("check", false, "Validate the configuration")
	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")

	nk, err := loadConfig(cmd, check)
	if err != nil {
		return err
	}

	out, err := config.Marshal(nk)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
