package chain

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
)

// rpcMock creates a test HTTP server that serves a fixed JSON-RPC response
// per method. Pass method→result pairs; any unknown method returns an RPC error.
func rpcMock(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

const testAddr = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"

// ---------------------------------------------------------------------------
// Balance / TokenBalance
// ---------------------------------------------------------------------------

func TestBalance(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getBalance": "0xde0b6b3a7640000", // 1 AVAX
	})
	defer srv.Close()

	bal, err := NewClient(srv.URL).Balance(context.Background(), testAddr)
	require.NoError(t, err)
	expected, _ := new(big.Int).SetString("1000000000000000000", 10)
	assert.Equal(t, expected, bal)
}

func TestTokenBalance(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_call": "0x00000000000000000000000000000000000000000000000000000000000f4240", // 1_000_000
	})
	defer srv.Close()

	bal, err := NewClient(srv.URL).TokenBalance(context.Background(), "0x5425890298aed601595a70AB815c96711a31Bc65", testAddr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), bal)
}

func TestBalanceRPCError(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{})
	defer srv.Close()

	_, err := NewClient(srv.URL).Balance(context.Background(), testAddr)
	assert.ErrorContains(t, err, "method not found")
}

// ---------------------------------------------------------------------------
// Gas / nonce / chain id
// ---------------------------------------------------------------------------

func TestGasPriceAndEstimate(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_gasPrice":    "0x6fc23ac00", // 30 gwei
		"eth_estimateGas": "0xcf08",      // 53000
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	gp, err := c.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30_000_000_000), gp)

	gas, err := c.EstimateGas(context.Background(), testAddr, testAddr, "0xa9059cbb")
	require.NoError(t, err)
	assert.Equal(t, uint64(53000), gas)
}

func TestPendingNonceAndChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionCount": "0x2a",
		"eth_chainId":             "0xa869", // 43113 (Fuji)
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	nonce, err := c.PendingNonce(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), nonce)

	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(43113), id)
}

// ---------------------------------------------------------------------------
// Receipts
// ---------------------------------------------------------------------------

func TestTransactionReceiptPending(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": nil,
	})
	defer srv.Close()

	r, err := NewClient(srv.URL).TransactionReceipt(context.Background(), "0xdead")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestTransactionReceiptMined(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x1",
			"blockNumber": "0x10",
			"gasUsed":     "0xcf08",
		},
	})
	defer srv.Close()

	r, err := NewClient(srv.URL).TransactionReceipt(context.Background(), "0xdead")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, uint64(1), r.Status)
	assert.Equal(t, uint64(16), r.BlockNumber)
	assert.Equal(t, uint64(53000), r.GasUsed)
}

func TestWaitForReceiptTimesOut(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": nil,
	})
	defer srv.Close()

	pinged := 0
	_, err := NewClient(srv.URL).WaitForReceipt(context.Background(), "0xdead", 50*time.Millisecond, func() { pinged++ })
	assert.ErrorContains(t, err, "not mined")
	assert.Equal(t, 1, pinged)
}

func TestWaitForReceiptReturnsMined(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x1",
			"blockNumber": "0x10",
			"gasUsed":     "0xcf08",
		},
	})
	defer srv.Close()

	r, err := NewClient(srv.URL).WaitForReceipt(context.Background(), "0xdead", time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), r.Status)
}

// ---------------------------------------------------------------------------
// Logs
// ---------------------------------------------------------------------------

func TestLogs(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getLogs": []map[string]interface{}{
			{
				"address":         "0x5425890298aed601595a70ab815c96711a31bc65",
				"topics":          []string{"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"},
				"data":            "0x0000000000000000000000000000000000000000000000000000000000000001",
				"transactionHash": "0xfeed",
			},
		},
	})
	defer srv.Close()

	logs, err := NewClient(srv.URL).Logs(context.Background(), "0x5425890298aed601595a70ab815c96711a31bc65", "0x0", "latest")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "0xfeed", logs[0].TxHash)
}

// ---------------------------------------------------------------------------
// Malformed server responses
// ---------------------------------------------------------------------------

func TestBadJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not valid json`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Balance(context.Background(), testAddr)
	assert.ErrorContains(t, err, "parsing response")
}
