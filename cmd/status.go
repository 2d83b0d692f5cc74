package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nightking/internal/app"
)

// newStatusCmd creates the read-only status command.
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status NAME...",
		Short:   "Show the lifecycle state of the named instances",
		Long:    `Queries the Compute Engine API for each named instance and prints its current state. Nothing is modified.`,
		Example: `  nightking status --project my-project --zone us-east1-b worker-1 worker-2 -o json`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runStatus,
	}

	addProjectFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().String("zone", "", "Zone of the instances (required)")
	_ = cmd.MarkFlagRequired("zone")
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(cmd)
	if err != nil {
		return err
	}
	nk, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	application, err := app.NewApplication(ctx, app.NewConfig(nk, debugEnabled(cmd)), app.ModeOneShot)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	zone, _ := cmd.Flags().GetString("zone")
	rows, err := application.Status(ctx, zone, args)
	if err != nil {
		return err
	}
	return formatter.FormatStatus(rows)
}
