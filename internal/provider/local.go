package provider

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/contract"
	"github.com/pablopoggiog/send-it/internal/wallet"
)

// TransferPrompt describes a pending transfer for the approval hook.
type TransferPrompt struct {
	From   string
	To     string
	Token  string
	Amount *big.Int
}

// Local is a Provider backed by a keychain-stored signing wallet and a
// JSON-RPC client. It plays the role of the injected wallet extension.
type Local struct {
	mgr        *wallet.Manager
	client     *chain.Client
	walletName string

	// Approve, when set, is consulted before signing a transfer; a false
	// return surfaces ErrRejected, like a declined wallet prompt.
	Approve func(TransferPrompt) bool
}

// NewLocal creates a local provider for the named wallet. An empty name
// selects the manager's default wallet at request time.
func NewLocal(mgr *wallet.Manager, client *chain.Client, walletName string) *Local {
	return &Local{
		mgr:        mgr,
		client:     client,
		walletName: walletName,
	}
}

// signingWallet resolves the wallet that will sign, or ErrNoProvider.
func (l *Local) signingWallet() (*wallet.Wallet, error) {
	var w *wallet.Wallet
	if l.walletName != "" {
		got, err := l.mgr.Get(l.walletName)
		if err != nil {
			return nil, fmt.Errorf("%w: wallet %q not found", ErrNoProvider, l.walletName)
		}
		w = got
	} else {
		w = l.mgr.Default()
		if w == nil {
			return nil, ErrNoProvider
		}
	}
	if w.Type != wallet.TypeSigning {
		return nil, fmt.Errorf("%w: wallet %q cannot sign", ErrNoProvider, w.Name)
	}
	return w, nil
}

// RequestAccounts returns the signing wallet's address.
func (l *Local) RequestAccounts(ctx context.Context) ([]string, error) {
	w, err := l.signingWallet()
	if err != nil {
		return nil, err
	}
	return []string{w.Address}, nil
}

// NativeBalance returns the AVAX balance of addr.
func (l *Local) NativeBalance(ctx context.Context, addr string) (*big.Int, error) {
	return l.client.Balance(ctx, addr)
}

// TokenBalance returns the ERC-20 balance of addr.
func (l *Local) TokenBalance(ctx context.Context, tokenAddr, addr string) (*big.Int, error) {
	return l.client.TokenBalance(ctx, tokenAddr, addr)
}

// Transfer signs and broadcasts an ERC-20 transfer, returning the tx hash.
func (l *Local) Transfer(ctx context.Context, tokenAddr, to string, amount *big.Int) (string, error) {
	w, err := l.signingWallet()
	if err != nil {
		return "", err
	}

	if l.Approve != nil {
		ok := l.Approve(TransferPrompt{
			From:   w.Address,
			To:     to,
			Token:  tokenAddr,
			Amount: amount,
		})
		if !ok {
			return "", fmt.Errorf("%w: transfer declined", ErrRejected)
		}
	}

	calldata := contract.EncodeTransfer(to, amount)

	gas, err := l.client.EstimateGas(ctx, w.Address, tokenAddr, calldata)
	if err != nil {
		gas = config.GasLimitERC20Transfer
	}

	gasPrice, err := l.client.GasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := l.client.PendingNonce(ctx, w.Address)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	calldataBytes, err := hex.DecodeString(strings.TrimPrefix(calldata, "0x"))
	if err != nil {
		return "", fmt.Errorf("encoding calldata: %w", err)
	}

	chainID := big.NewInt(config.ChainID)
	toAddr := common.HexToAddress(tokenAddr)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &toAddr,
		Value:     big.NewInt(0),
		Data:      calldataBytes,
	})

	signer := wallet.NewSigner(w, l.mgr.Keystore())
	raw, err := signer.SignTx(tx, chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := l.client.SendRawTransaction(ctx, "0x"+hex.EncodeToString(raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	return hash, nil
}

// TransactionReceipt returns the receipt for hash, nil while pending.
func (l *Local) TransactionReceipt(ctx context.Context, hash string) (*chain.Receipt, error) {
	return l.client.TransactionReceipt(ctx, hash)
}

// Describe reports the configured wallet surface the way an injected
// provider announces itself: a resolvable signing wallet carries the
// recognized flag, other stored wallets appear as anonymous entries, and
// an empty manager means no provider at all. Feed it to a Detector.
func (l *Local) Describe() *Info {
	wallets := l.mgr.List()
	if len(wallets) == 0 {
		return nil
	}
	info := &Info{}
	for _, w := range wallets {
		info.Providers = append(info.Providers, Info{IsCore: w.Type == wallet.TypeSigning})
	}
	if w, err := l.signingWallet(); err == nil && w != nil {
		info.IsCore = true
	}
	return info
}
