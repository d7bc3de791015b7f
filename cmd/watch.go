package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablopoggiog/send-it/internal/address"
	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/contract"
	"github.com/pablopoggiog/send-it/internal/events"
	"github.com/pablopoggiog/send-it/internal/token"
	"github.com/pablopoggiog/send-it/internal/ui"
)

var watchPollFlag bool

var watchCmd = &cobra.Command{
	Use:   "watch <txhash>",
	Short: "Watch a transaction until it confirms",
	Long: `Watch a USDC transfer until it lands.

By default this subscribes to the token contract's event stream over
WebSocket and reports the moment a log with the given hash appears, which
is usually faster than polling. With --poll (or when no WebSocket URL is
configured) it polls for the receipt instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash := args[0]
		if !strings.HasPrefix(hash, "0x") {
			return fmt.Errorf("%q does not look like a transaction hash", hash)
		}
		return runWatch(hash)
	},
}

// runWatch settles a transaction by whatever means answers first. A mined
// transaction emits no further logs, so the receipt is checked once up
// front; only a still-pending hash is worth streaming events for. The
// polling fallback runs on its own deadline, so an event stream that went
// quiet cannot eat the whole confirmation window.
func runWatch(hash string) error {
	client := chain.NewClient(cfg.RPCURL)

	checkCtx, cancel := context.WithTimeout(context.Background(), config.RPCTimeout)
	receipt, err := client.TransactionReceipt(checkCtx, hash)
	cancel()
	if err == nil && receipt != nil {
		return reportReceipt(receipt, hash)
	}

	if !watchPollFlag && cfg.WSURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), config.TxConfirmTimeout)
		err := watchEvents(ctx, hash)
		cancel()
		if err == nil {
			return nil
		}
		// Stream broke; the receipt poll below settles it either way.
		fmt.Println(ui.Warn("Event stream unavailable, falling back to receipt polling"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.TxConfirmTimeout)
	defer cancel()
	return watchReceipt(ctx, client, hash)
}

func watchEvents(ctx context.Context, hash string) error {
	monitor := events.NewMonitor(events.NewWSSubscriber(cfg.WSURL))
	done := make(chan error, 1)
	var matched chain.LogEntry

	err := monitor.Start(ctx, events.Config{
		Contract: config.USDCTokenAddress,
		TxHash:   hash,
		OnSuccess: func(e chain.LogEntry) {
			matched = e
			done <- nil
		},
		OnError: func(err error) {
			done <- err
		},
	})
	if err != nil {
		return err
	}
	defer monitor.Stop()

	sp := ui.NewSpinner("Watching for transfer events...")
	sp.Start()
	select {
	case err := <-done:
		sp.Stop()
		if err != nil {
			return err
		}
		fmt.Println(ui.Success("Transfer confirmed"))
		if ev, ok := contract.ParseTransfer(matched.Topics, matched.Data); ok {
			fmt.Printf("  %s %s %s %s\n",
				ui.Addr(address.Truncate(ev.From)), ui.Meta("→"),
				ui.Addr(address.Truncate(ev.To)),
				ui.Val(token.FormatUnits(ev.Amount, config.USDCDecimals)+" USDC"))
		}
		fmt.Println(ui.Meta("View on explorer: ") + ui.Link(chain.ExplorerTxURL(cfg.ExplorerURL, hash)))
		return nil
	case <-ctx.Done():
		sp.Stop()
		return ctx.Err()
	}
}

func watchReceipt(ctx context.Context, client *chain.Client, hash string) error {
	sp := ui.NewSpinner("Waiting for receipt...")
	sp.Start()
	receipt, err := client.WaitForReceipt(ctx, hash, config.TxConfirmTimeout, func() {
		sp.SetMessage("Still waiting for receipt...")
	})
	sp.Stop()
	if err != nil {
		return err
	}
	return reportReceipt(receipt, hash)
}

func reportReceipt(receipt *chain.Receipt, hash string) error {
	if !receipt.Succeeded() {
		fmt.Println(ui.Err("Transaction reverted"))
		return fmt.Errorf("transaction %s reverted", hash)
	}
	fmt.Println(ui.Success(fmt.Sprintf("Confirmed in block %d (gas used %d)", receipt.BlockNumber, receipt.GasUsed)))
	fmt.Println(ui.Meta("View on explorer: ") + ui.Link(chain.ExplorerTxURL(cfg.ExplorerURL, hash)))
	return nil
}

func init() {
	watchCmd.Flags().BoolVar(&watchPollFlag, "poll", false, "poll for the receipt instead of streaming events")
}
