package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Mohsinsiddi/w3connect/internal/session"
	"github.com/Mohsinsiddi/w3connect/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Open the interactive wallet view (default)",
	Long: `Open the interactive wallet view.

Keys:
  c   connect (or retry after an error)
  r   refresh balances
  d   disconnect
  q   quit

The view follows account and chain changes reported by the provider.
Diagnostics go to the log file in the config directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConnect(cmd)
	},
}

func runConnect(cmd *cobra.Command) error {
	log, closer, err := fileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, conn := openSession(ctx, log)
	defer closeSession(conn)

	model := ui.NewConnectModel(ctx, conn, store.Snapshot())
	prog := tea.NewProgram(model, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	unsubscribe := store.Subscribe(ui.Forward(prog))
	defer unsubscribe()

	bridge := session.NewBridge(conn)
	if conn.Provider() != nil {
		if err := bridge.Start(ctx); err != nil {
			return fmt.Errorf("subscribing to provider events: %w", err)
		}
		defer bridge.Stop()
	}

	_, err = prog.Run()
	interrupted := ctx.Err() != nil
	// Stops in-flight connects and makes late store updates skip the program.
	cancel()
	if err != nil && !interrupted {
		return fmt.Errorf("running wallet view: %w", err)
	}
	return nil
}
