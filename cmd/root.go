package cmd

import (
	"fmt"
	"os"

	"github.com/Mohsinsiddi/w3connect/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/w3connect/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir      string
	cfg         *config.Config
	providerURL string
	verbose     bool
)

// rootCmd is the top-level command. Without a sub-command it opens the
// interactive wallet view.
var rootCmd = &cobra.Command{
	Use:   "w3connect",
	Short: "Connect a wallet and read its balances",
	Long: `w3connect — connect to an Ethereum wallet provider from the terminal.

  Requests account access, shows the account's native balance and chain,
  reads a fixed ERC-20 token balance, and follows account/chain changes.

The provider endpoint is taken from --provider, then $WALLET_PROVIDER_URL,
then provider_url in the config file. Nothing is signed or sent.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConnect(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: $"+config.EnvConfigDir+" or ~/.w3connect)")
	rootCmd.PersistentFlags().StringVar(&providerURL, "provider", "", "wallet provider endpoint (http, ws or ipc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		connectCmd,
		initCmd,
		statusCmd,
		versionCmd,
	)
}
