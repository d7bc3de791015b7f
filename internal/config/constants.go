package config

import "time"

// Avalanche Fuji (C-Chain testnet) is the only network this tool talks to.
const (
	ChainID         = int64(43113)
	NativeCurrency  = "AVAX"
	DefaultRPCURL   = "https://api.avax-test.network/ext/bc/C/rpc"
	DefaultWSURL    = "wss://api.avax-test.network/ext/bc/C/ws"
	DefaultExplorer = "https://subnets-test.avax.network/c-chain"
)

// USDC on Fuji.
// https://subnets-test.avax.network/c-chain/token/0x5425890298aed601595a70AB815c96711a31Bc65
const (
	USDCTokenAddress = "0x5425890298aed601595a70AB815c96711a31Bc65"
	// USDC has 6 decimal places (not 18 like most ERC-20 tokens).
	USDCDecimals = 6
)

// GasLimitERC20Transfer is the EstimateGas fallback when the node cannot
// simulate the transfer.
const GasLimitERC20Transfer = uint64(60_000)

// Timeouts and intervals.
const (
	TxConfirmTimeout    = 3 * time.Minute        // transaction confirmation wait
	ReceiptPollInterval = 2 * time.Second        // receipt polling cadence
	RPCTimeout          = 15 * time.Second       // per-request HTTP timeout
	EntranceDelay       = 600 * time.Millisecond // cosmetic initial-load skeleton
)

// LowGasThresholdWei is the AVAX balance (0.001 AVAX) below which the UI
// shows a low-balance hint for gas fees.
const LowGasThresholdWei = uint64(1_000_000_000_000_000)
