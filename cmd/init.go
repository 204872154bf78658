package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Mohsinsiddi/w3connect/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	initPoll     int
	initLogLevel string
	initLogFile  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the config file",
	Long: `Write provider_url, poll_interval, log_level and log_file to the config file.

Only the flags given on the command line change; the rest keep their
current values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		if flags.Changed("provider") {
			cfg.ProviderURL = providerURL
		}
		if flags.Changed("poll") {
			if initPoll < 0 {
				return fmt.Errorf("--poll must not be negative, got %d", initPoll)
			}
			cfg.PollInterval = initPoll
		}
		if flags.Changed("log-level") {
			if _, err := zerolog.ParseLevel(initLogLevel); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			cfg.LogLevel = initLogLevel
		}
		if flags.Changed("log-file") {
			cfg.LogFile = initLogFile
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Config written to "+filepath.Join(cfg.Dir(), "config.json")))
		return nil
	},
}

func init() {
	initCmd.Flags().IntVar(&initPoll, "poll", 0, "account/chain polling interval in seconds")
	initCmd.Flags().StringVar(&initLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	initCmd.Flags().StringVar(&initLogFile, "log-file", "", "log file, relative to the config dir")
}
