package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablopoggiog/send-it/internal/address"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/provider"
	"github.com/pablopoggiog/send-it/internal/rpc"
	"github.com/pablopoggiog/send-it/internal/session"
	"github.com/pablopoggiog/send-it/internal/ui"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the default wallet",
	Long: `Resolve the default signing wallet, verify it can provide an account,
and persist the connected session. Commands like balance and send use the
connected account until you disconnect.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prov := newProvider()
		if !provider.NewDetector(prov.Describe).Available() {
			fmt.Println(ui.Err(session.MsgNoProvider))
			fmt.Println(ui.Meta("Add a signing wallet with: send-it wallet add <name> --key <private-key>"))
			return errors.New("connect failed")
		}
		sess := session.New(prov)

		ctx, cancel := context.WithTimeout(context.Background(), config.RPCTimeout)
		defer cancel()

		if err := sess.Connect(ctx); err != nil {
			fmt.Println(ui.Err(session.FailureMessage(err)))
			if verbose {
				fmt.Println(ui.Meta(err.Error()))
			}
			return errors.New("connect failed")
		}

		if err := cfg.SaveSession(&config.Session{
			Connected: true,
			Wallet:    cfg.DefaultWallet,
			Address:   sess.Address(),
		}); err != nil {
			return fmt.Errorf("persisting session: %w", err)
		}

		fmt.Println(ui.Success("Connected " + ui.Addr(address.Truncate(sess.Address()))))
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.SaveSession(&config.Session{}); err != nil {
			return fmt.Errorf("persisting session: %w", err)
		}
		fmt.Println(ui.Success("Disconnected."))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the connection status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cfg.LoadSession()
		if err != nil || !s.Connected {
			fmt.Println(ui.Meta("Not connected."))
			if !provider.NewDetector(newProvider().Describe).Available() {
				fmt.Println(ui.Warn(session.MsgNoProvider))
				fmt.Println(ui.Meta("Add one with: send-it wallet add <name> --key <private-key>"))
				return nil
			}
			fmt.Println(ui.Meta("Connect with: send-it connect"))
			return nil
		}
		fmt.Printf("%s %s %s\n", ui.Success("Connected"), ui.Addr(s.Address), ui.Meta("("+s.Wallet+")"))
		fmt.Println(ui.Meta("Network: Avalanche Fuji (chain " + fmt.Sprint(config.ChainID) + ")"))

		ep, err := rpc.HealthCheck(cmd.Context(), cfg.RPCURL)
		if err != nil {
			fmt.Println(ui.Warn("RPC unreachable: " + cfg.RPCURL))
			return nil
		}
		fmt.Println(ui.Meta(fmt.Sprintf("RPC healthy: block %d, %dms", ep.BlockNumber, ep.Latency.Milliseconds())))
		return nil
	},
}
