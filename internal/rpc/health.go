// Package rpc checks the health of the configured C-Chain endpoint.
package rpc

import (
	"context"
	"time"

	"github.com/pablopoggiog/send-it/internal/chain"
)

const healthTimeout = 5 * time.Second

// Endpoint holds the measured attributes of an RPC endpoint.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool
}

// HealthCheck pings an EVM RPC endpoint. It is healthy when it answers a
// block-number query within the timeout.
func HealthCheck(ctx context.Context, url string) (Endpoint, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	c := chain.NewClient(url)
	latency, blockNum, err := c.Ping(timeoutCtx)

	return Endpoint{
		URL:         url,
		Latency:     latency,
		BlockNumber: blockNum,
		Healthy:     err == nil,
	}, err
}
