package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0", "id": 1, "result": "0xE5E534",
		})
	}))
	defer srv.Close()

	ep, err := HealthCheck(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, ep.Healthy)
	assert.Equal(t, uint64(0xE5E534), ep.BlockNumber)
	assert.Equal(t, srv.URL, ep.URL)
	assert.Positive(t, ep.Latency)
}

func TestHealthCheckUnreachable(t *testing.T) {
	ep, err := HealthCheck(context.Background(), "http://127.0.0.1:1")
	assert.Error(t, err)
	assert.False(t, ep.Healthy)
}
