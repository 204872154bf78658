package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mohsinsiddi/w3connect/internal/config"
	"github.com/Mohsinsiddi/w3connect/internal/session"
	"github.com/Mohsinsiddi/w3connect/internal/ui"
	"github.com/spf13/cobra"
)

var statusJSON bool

// statusView is the --json shape of a session snapshot. Unset fields are
// null.
type statusView struct {
	Address       *string `json:"address"`
	ChainID       *int64  `json:"chainId"`
	NativeBalance *string `json:"nativeBalance"`
	TokenSymbol   *string `json:"tokenSymbol"`
	TokenBalance  *string `json:"tokenBalance"`
	Status        string  `json:"status"`
	Error         *string `json:"error"`
	WrongNetwork  bool    `json:"wrongNetwork"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Connect once and print the wallet state",
	Long: `Connect to the wallet once, print the resulting state and exit.

Exits non-zero when the provider is missing or the connect attempt fails.

  w3connect status
  w3connect status --json
  w3connect status --provider http://127.0.0.1:8545`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := consoleLogger()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, config.StatusTimeout)
		defer cancel()

		store, conn := openSession(ctx, log)
		defer closeSession(conn)

		if conn.Provider() != nil {
			// The outcome is in the store either way.
			_ = conn.Connect(ctx)
		}

		s := store.Snapshot()
		if statusJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(newStatusView(s)); err != nil {
				return err
			}
		} else {
			fmt.Fprint(cmd.OutOrStdout(), ui.Render(s))
		}

		if s.Status == session.StatusError {
			return errors.New(s.Error)
		}
		return nil
	},
}

func newStatusView(s session.State) statusView {
	v := statusView{
		Status:       s.Status.String(),
		WrongNetwork: ui.IsWrongNetwork(s.ChainID),
	}
	optional := func(str string) *string {
		if str == "" {
			return nil
		}
		return &str
	}
	v.Address = optional(s.Address)
	v.NativeBalance = optional(s.NativeBalance)
	v.TokenSymbol = optional(s.TokenSymbol)
	v.TokenBalance = optional(s.TokenBalance)
	v.Error = optional(s.Error)
	if s.ChainID != 0 {
		id := s.ChainID
		v.ChainID = &id
	}
	return v
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the state as JSON")
}
