package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nightking/internal/app"
	"nightking/internal/formatting"
	"nightking/internal/reconciler"
)

// newResurrectCmd creates the one-shot resurrection command.
func newResurrectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resurrect NAME...",
		Short: "Restart the named instances if they are terminated",
		Long: `Handles the named instances exactly as if a preemption notification had
been received for each of them: a stopping instance is waited for, a
terminated one is started, anything else is left alone.

Instances are processed concurrently. The command exits non-zero if a
start request could not be issued for any of them.`,
		Example: `  nightking resurrect --project my-project --zone us-east1-b worker-1 worker-2`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runResurrect,
	}

	addProjectFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().String("zone", "", "Zone of the instances (required)")
	_ = cmd.MarkFlagRequired("zone")
	return cmd
}

func runResurrect(cmd *cobra.Command, args []string) error {
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
	rows, err := application.Resurrect(ctx, zone, args)
	if err != nil {
		return err
	}
	if err := formatter.FormatResurrections(rows); err != nil {
		return err
	}

	var failed int
	for _, row := range rows {
		if row.Result.Outcome == reconciler.OutcomeResurrected && row.Result.Error != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d start request(s) failed", failed)
	}
	return nil
}

// addOutputFlags registers the flags selecting how results are printed.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", string(formatting.FormatTable), "Output format: table, json or yaml")
	cmd.Flags().Bool("color", false, "Colorize table output")
}

func newFormatter(cmd *cobra.Command) (formatting.Formatter, error) {
	output, _ := cmd.Flags().GetString("output")
	format, err := formatting.ParseOutputFormat(output)
	if err != nil {
		return nil, err
	}
	color, _ := cmd.Flags().GetBool("color")
	return formatting.New(formatting.Options{
		Format: format,
		Output: cmd.OutOrStdout(),
		Color:  color,
	}), nil
}
