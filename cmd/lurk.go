package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nightking/internal/app"
)

// newLurkCmd creates the daemon command.
func newLurkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lurk",
		Aliases: []string{"serve"},
		Short:   "Listen for preemption notifications and restart preempted instances",
		Long: `Listens on a Pub/Sub subscription for preemption notifications.

Each message is a JSON object naming the preempted instance:

  {"name": "my-instance", "zone": "us-east1-b"}

For every message nightking polls the instance until it has finished
stopping and then starts it again. Instances that are running, or in any
state other than STOPPING or TERMINATED, are left alone. Every message is
acknowledged once handled, including malformed ones.

Runs until interrupted (SIGINT or SIGTERM). When started as a systemd
notify service it reports readiness and shutdown.`,
		Args: cobra.NoArgs,
		RunE: runLurk,
	}

	addProjectFlags(cmd)
	addSubscriptionFlags(cmd)
	return cmd
}

func runLurk(cmd *cobra.Command, args []string) error {
	nk, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	application, err := app.NewApplication(ctx, app.NewConfig(nk, debugEnabled(cmd)), app.ModeDaemon)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	return application.Run(ctx)
}
