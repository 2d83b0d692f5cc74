package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nightking/internal/config"
	"nightking/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfig indicates the configuration is invalid.
	ExitCodeConfig = 2
)

// rootCmd represents the base command for the nightking application.
var rootCmd = newRootCmd()

// newRootCmd builds the full command tree.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nightking",
		Short: "Restart preempted Compute Engine instances",
		Long: `nightking brings preemptible and spot Compute Engine instances back up
after they are preempted.

It listens on a Pub/Sub subscription that receives one message per
preemption, waits for the instance to finish stopping and then starts it
again.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage:      true,
		PersistentPreRunE: initCLILogging,
	}

	cmd.SetVersionTemplate(`{{printf "nightking version %s\n" .Version}}`)

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.config/nightking/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format: text or json")

	cmd.AddCommand(
		newVersionCmd(),
		newLurkCmd(),
		newResurrectCmd(),
		newStatusCmd(),
		newConfigCmd(),
	)
	return cmd
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if code := getExitCode(err); code != ExitCodeSuccess {
		os.Exit(code)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var cfgErrs *config.ConfigurationErrorCollection
	if errors.As(err, &cfgErrs) {
		return ExitCodeConfig
	}
	var cfgErr config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfig
	}

	// Default to general error
	return ExitCodeError
}

// initCLILogging sets up logging from the global flags so that messages
// emitted while loading configuration are not lost. The application
// re-initializes logging from the merged configuration later.
func initCLILogging(cmd *cobra.Command, args []string) error {
	levelFlag, _ := cmd.Flags().GetString("log-level")
	formatFlag, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(levelFlag)
	if err != nil {
		return err
	}
	if debugEnabled(cmd) {
		level = logging.LevelDebug
	}
	format, err := logging.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	logging.Init(logging.Options{Level: level, Format: format, Output: cmd.ErrOrStderr()})
	return nil
}

// loadConfig merges defaults, the config file, NIGHTKING_* variables and the
// flags set on cmd, then validates the result. Validation problems are
// reported in detail on stderr.
func loadConfig(cmd *cobra.Command, validate bool) (config.NightkingConfig, error) {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return config.NightkingConfig{}, err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := loader.Load(configFile)
	if err != nil {
		return config.NightkingConfig{}, err
	}

	if !validate {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		var cfgErrs *config.ConfigurationErrorCollection
		if errors.As(err, &cfgErrs) {
			fmt.Fprintln(cmd.ErrOrStderr(), cfgErrs.GetDetailedReport())
		}
		return config.NightkingConfig{}, err
	}
	return cfg, nil
}

// debugEnabled reports whether --debug was passed.
func debugEnabled(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}

// addProjectFlags registers the flags every command talking to Compute
// Engine accepts.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Google Cloud project id (required)")
	cmd.Flags().String("credentials-file", "", "Service account key file (default: Application Default Credentials)")
	cmd.Flags().Duration("poll-interval", config.DefaultPollInterval, "Wait between status checks of a stopping instance")
	cmd.Flags().Duration("max-wait", 0, "Give up on an instance that is still stopping after this long (0 waits forever)")
}

// addSubscriptionFlags registers the daemon-only flags.
func addSubscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("subscription-name", config.DefaultSubscription, "Pub/Sub subscription receiving preemption notifications")
	cmd.Flags().Int("max-outstanding-messages", config.DefaultMaxOutstanding, "Maximum number of notifications handled at once")
	cmd.Flags().Int("receive-goroutines", config.DefaultGoroutines, "Number of streaming pulls")
	cmd.Flags().String("metrics-address", "", "Serve Prometheus metrics on this address, e.g. :9090 (disabled when empty)")
	cmd.Flags().Duration("shutdown-grace", config.DefaultShutdownGrace, "How long in-flight reconciliations may finish after a shutdown signal")
}
