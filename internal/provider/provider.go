// Package provider abstracts the wallet provider: the account, signing,
// and chain-query capabilities a browser wallet would inject into a page.
// The local implementation is backed by the OS keychain and JSON-RPC.
package provider

import (
	"context"
	"errors"
	"math/big"

	"github.com/pablopoggiog/send-it/internal/chain"
)

// Errors a provider can surface. They map to distinct user-facing
// messages in the session controller.
var (
	// ErrNoProvider means no signing-capable wallet is configured.
	ErrNoProvider = errors.New("no provider was set")
	// ErrRejected means the user declined the wallet prompt.
	ErrRejected = errors.New("user rejected request")
)

// Provider is the capability surface the session and form controllers
// consume.
type Provider interface {
	// RequestAccounts asks the wallet for its accounts, prompting for
	// connection approval where applicable.
	RequestAccounts(ctx context.Context) ([]string, error)

	// NativeBalance returns the AVAX balance (wei) of addr.
	NativeBalance(ctx context.Context, addr string) (*big.Int, error)

	// TokenBalance returns the ERC-20 balance of addr in minor units.
	TokenBalance(ctx context.Context, tokenAddr, addr string) (*big.Int, error)

	// Transfer issues an ERC-20 transfer(to, amount) write and returns
	// the transaction hash once the wallet has accepted and broadcast it.
	Transfer(ctx context.Context, tokenAddr, to string, amount *big.Int) (string, error)

	// TransactionReceipt returns the receipt for hash, or nil while the
	// transaction is pending.
	TransactionReceipt(ctx context.Context, hash string) (*chain.Receipt, error)
}
