package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/events"
	"github.com/pablopoggiog/send-it/internal/form"
	"github.com/pablopoggiog/send-it/internal/notify"
	"github.com/pablopoggiog/send-it/internal/provider"
	"github.com/pablopoggiog/send-it/internal/session"
	"github.com/pablopoggiog/send-it/internal/ui"
)

var (
	sendToFlag     string
	sendAmountFlag string
	sendYesFlag    bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send USDC",
	Long: `Send USDC on Avalanche Fuji.

Without flags this opens the interactive form. With --to and --amount the
transfer runs scripted, prompting once for approval unless --yes is set:

  send-it send
  send-it send --to 0xRecipient --amount 1.5
  send-it send --to 0xRecipient --amount 1.5 --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prov := newProvider()
		if !sendYesFlag {
			prov.Approve = ui.ConfirmTransfer
		}

		if sendToFlag == "" && sendAmountFlag == "" {
			return runSendTUI(prov)
		}
		if sendToFlag == "" || sendAmountFlag == "" {
			return errors.New("--to and --amount must be given together")
		}
		return runSendScripted(prov)
	},
}

func runSendTUI(prov *provider.Local) error {
	var monitor *events.Monitor
	if cfg.WSURL != "" {
		monitor = events.NewMonitor(events.NewWSSubscriber(cfg.WSURL))
	}
	return ui.RunSend(ui.SendDeps{
		Session:  session.New(prov),
		Provider: prov,
		Client:   chain.NewClient(cfg.RPCURL),
		Notes:    notify.NewRecorder(),
		Monitor:  monitor,
		Token:    config.USDCTokenAddress,
	})
}

func runSendScripted(prov *provider.Local) error {
	ctx := context.Background()

	sess := session.New(prov)
	connectCtx, cancel := context.WithTimeout(ctx, config.RPCTimeout)
	err := sess.Connect(connectCtx)
	cancel()
	if err != nil {
		return errors.New(session.FailureMessage(err))
	}

	client := chain.NewClient(cfg.RPCURL)
	console := notify.NewConsole()
	ctrl := form.NewController(console,
		form.WithTransferFunc(func(ctx context.Context, to string, v *big.Int) (string, error) {
			return prov.Transfer(ctx, config.USDCTokenAddress, to, v)
		}),
		form.WithExplorerURL(cfg.ExplorerURL),
	)
	ctrl.SetConnection(sess.Address(), true)

	balCtx, cancel := context.WithTimeout(ctx, config.RPCTimeout)
	usdc, err := prov.TokenBalance(balCtx, config.USDCTokenAddress, sess.Address())
	cancel()
	if err != nil {
		ctrl.ClearBalance()
	} else {
		ctrl.SetBalance(usdc)
	}

	ctrl.SetRecipient(sendToFlag)
	ctrl.SetAmount(sendAmountFlag)
	if errs := ctrl.Errors(); errs.Recipient != "" || errs.Amount != "" {
		if errs.Recipient != "" {
			fmt.Println(ui.Err(errs.Recipient))
		}
		if errs.Amount != "" {
			fmt.Println(ui.Err(errs.Amount))
		}
		return errors.New("validation failed")
	}

	if err := ctrl.Submit(ctx); err != nil {
		return err
	}
	if ctrl.Status() == form.StatusFailed {
		return errors.New("transfer not sent")
	}

	// Broadcast accepted; wait for the receipt.
	sp := ui.NewSpinner("Waiting for confirmation...")
	sp.Start()
	receipt, err := client.WaitForReceipt(ctx, ctrl.TxHash(), config.TxConfirmTimeout, func() {
		ctrl.HandleConfirming()
	})
	sp.Stop()

	switch {
	case err != nil:
		ctrl.HandleFailure(err)
		return errors.New("confirmation failed")
	case receipt.Succeeded():
		ctrl.HandleSuccess()
		return nil
	default:
		ctrl.HandleFailure(errors.New("transaction reverted"))
		return errors.New("transaction reverted")
	}
}

func init() {
	sendCmd.Flags().StringVar(&sendToFlag, "to", "", "recipient address")
	sendCmd.Flags().StringVar(&sendAmountFlag, "amount", "", "USDC amount, e.g. 1.5")
	sendCmd.Flags().BoolVarP(&sendYesFlag, "yes", "y", false, "skip the approval prompt")
}
