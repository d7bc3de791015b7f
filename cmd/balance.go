package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/token"
	"github.com/pablopoggiog/send-it/internal/ui"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show AVAX and USDC balances",
	Long: `Show the AVAX and USDC balances of the connected account, or of an
explicit address when one is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr string
		if len(args) > 0 {
			addr = args[0]
		} else {
			s, err := cfg.LoadSession()
			if err != nil || !s.Connected {
				return fmt.Errorf("not connected — run `send-it connect` or pass an address")
			}
			addr = s.Address
		}

		prov := newProvider()
		ctx, cancel := context.WithTimeout(context.Background(), config.RPCTimeout)
		defer cancel()

		sp := ui.NewSpinner("Fetching balances...")
		sp.Start()
		native, nativeErr := prov.NativeBalance(ctx, addr)
		usdc, usdcErr := prov.TokenBalance(ctx, config.USDCTokenAddress, addr)
		sp.StopWithMsg(ui.Meta("Account ") + ui.Addr(addr))
		if nativeErr != nil {
			fmt.Println(ui.Err("AVAX balance unavailable"))
		} else {
			fmt.Printf("  %s %s\n", ui.Val(token.FormatUnits(native, 18)), ui.Meta("AVAX"))
		}
		if usdcErr != nil {
			fmt.Println(ui.Err("Unable to fetch balance"))
		} else {
			fmt.Printf("  %s %s\n", ui.Val(token.FormatFixed(usdc, config.USDCDecimals, config.USDCDecimals)), ui.Meta("USDC"))
		}
		fmt.Println(ui.Meta("View on explorer: ") + ui.Link(chain.ExplorerAddressURL(cfg.ExplorerURL, addr)))
		return nil
	},
}
