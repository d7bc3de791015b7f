package integration_test

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/form"
	"github.com/pablopoggiog/send-it/internal/notify"
	"github.com/pablopoggiog/send-it/internal/provider"
	"github.com/pablopoggiog/send-it/internal/session"
	"github.com/pablopoggiog/send-it/internal/wallet"
	"github.com/pablopoggiog/send-it/test/fixtures"
)

const (
	testKey   = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	recipient = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	txHash    = "0xabababababababababababababababababababababababababababababababab"
)

// mockRPCServer mimics the C-Chain JSON-RPC endpoint with canned
// per-method results.
func mockRPCServer(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string        `json:"method"`
			Params []interface{} `json:"params"`
			ID     int           `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck

		resp, ok := responses[req.Method]
		if !ok {
			http.Error(w, "method not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  resp,
		})
	}))
}

func newProviderWithSigner(t *testing.T, url string) *provider.Local {
	t.Helper()
	mgr := wallet.NewManager(wallet.WithKeystore(wallet.NewInMemoryKeystore()))
	require.NoError(t, mgr.AddWithKey("signer", testKey))
	return provider.NewLocal(mgr, chain.NewClient(url), "signer")
}

func TestTransferEndToEnd(t *testing.T) {
	server := mockRPCServer(t, map[string]interface{}{
		// 5 USDC in minor units.
		"eth_call":                  "0x00000000000000000000000000000000000000000000000000000000004c4b40",
		"eth_estimateGas":           "0xcf08",
		"eth_gasPrice":              "0x6fc23ac00",
		"eth_getTransactionCount":   "0x0",
		"eth_sendRawTransaction":    txHash,
		"eth_getTransactionReceipt": fixtures.LoadRPCResponse(t, "receipt_success.json"),
	})
	defer server.Close()

	prov := newProviderWithSigner(t, server.URL)
	client := chain.NewClient(server.URL)

	sess := session.New(prov)
	require.NoError(t, sess.Connect(context.Background()))

	rec := notify.NewRecorder()
	ctrl := form.NewController(rec,
		form.WithTransferFunc(func(ctx context.Context, to string, v *big.Int) (string, error) {
			return prov.Transfer(ctx, config.USDCTokenAddress, to, v)
		}),
	)
	ctrl.SetConnection(sess.Address(), true)

	usdc, err := prov.TokenBalance(context.Background(), config.USDCTokenAddress, sess.Address())
	require.NoError(t, err)
	ctrl.SetBalance(usdc)

	ctrl.SetRecipient(recipient)
	ctrl.SetAmount("1.5")
	require.True(t, ctrl.CanSubmit())
	require.NoError(t, ctrl.Submit(context.Background()))
	require.Equal(t, form.StatusPending, ctrl.Status())
	require.Equal(t, txHash, ctrl.TxHash())

	receipt, err := client.WaitForReceipt(context.Background(), ctrl.TxHash(), 10*time.Second, func() {
		ctrl.HandleConfirming()
	})
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	ctrl.HandleSuccess()
	assert.Equal(t, form.StatusSuccess, ctrl.Status())

	last := rec.Last()
	assert.Equal(t, notify.KindSuccess, last.Kind)
	assert.Contains(t, last.Link, "/tx/"+txHash)

	// Form cleared, success notification still showing.
	assert.Empty(t, ctrl.Recipient())
	assert.Contains(t, rec.Active, last.ID)
}

func TestTransferRevertedEndToEnd(t *testing.T) {
	server := mockRPCServer(t, map[string]interface{}{
		"eth_call":                  "0x00000000000000000000000000000000000000000000000000000000004c4b40",
		"eth_estimateGas":           "0xcf08",
		"eth_gasPrice":              "0x6fc23ac00",
		"eth_getTransactionCount":   "0x0",
		"eth_sendRawTransaction":    txHash,
		"eth_getTransactionReceipt": fixtures.LoadRPCResponse(t, "receipt_reverted.json"),
	})
	defer server.Close()

	prov := newProviderWithSigner(t, server.URL)
	client := chain.NewClient(server.URL)

	rec := notify.NewRecorder()
	ctrl := form.NewController(rec,
		form.WithTransferFunc(func(ctx context.Context, to string, v *big.Int) (string, error) {
			return prov.Transfer(ctx, config.USDCTokenAddress, to, v)
		}),
	)
	addr, err := prov.RequestAccounts(context.Background())
	require.NoError(t, err)
	ctrl.SetConnection(addr[0], true)
	ctrl.SetBalance(big.NewInt(5_000_000))

	ctrl.SetRecipient(recipient)
	ctrl.SetAmount("1.5")
	require.NoError(t, ctrl.Submit(context.Background()))

	receipt, err := client.WaitForReceipt(context.Background(), ctrl.TxHash(), 10*time.Second, nil)
	require.NoError(t, err)
	require.False(t, receipt.Succeeded())

	ctrl.HandleFailure(assertableRevert{})
	assert.Equal(t, form.StatusFailed, ctrl.Status())
	assert.Equal(t, notify.KindError, rec.Last().Kind)
	assert.Equal(t, form.MsgTxFailed, rec.Last().Msg)
}

// assertableRevert is a minimal error whose text lands in the generic
// failure bucket.
type assertableRevert struct{}

func (assertableRevert) Error() string { return "execution reverted" }

