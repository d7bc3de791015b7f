package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/provider"
	"github.com/pablopoggiog/send-it/internal/ui"
	"github.com/pablopoggiog/send-it/internal/wallet"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/pablopoggiog/send-it/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
	rpcURL  string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "send-it",
	Short: "Send USDC on Avalanche Fuji from your terminal",
	Long: `send-it — a small terminal wallet for USDC transfers on Avalanche Fuji.

  Connect a wallet, check AVAX and USDC balances, and send USDC with an
  interactive form or a single scripted command. Transfers are signed
  locally with keys stored in the OS keychain.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if rpcURL != "" {
			cfg.RPCURL = rpcURL
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.Banner())
		cmd.Help() //nolint:errcheck
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// SEND_IT_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("SEND_IT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.send-it)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", "", "override the RPC endpoint for this invocation")

	rootCmd.AddCommand(
		walletCmd,
		connectCmd,
		disconnectCmd,
		statusCmd,
		balanceCmd,
		sendCmd,
		watchCmd,
		checksumCmd,
	)
}

// newWalletManager creates a Manager backed by the config-dir JSON store.
func newWalletManager() *wallet.Manager {
	store := wallet.NewJSONStore(cfg.WalletsPath())
	return wallet.NewManager(wallet.WithStore(store))
}

// newProvider wires the keychain-backed provider used by every command
// that touches the chain.
func newProvider() *provider.Local {
	client := chain.NewClient(cfg.RPCURL)
	return provider.NewLocal(newWalletManager(), client, cfg.DefaultWallet)
}
