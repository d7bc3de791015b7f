package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/pablopoggiog/send-it/internal/chain"
)

// LogSubscriber delivers contract event logs as they are emitted.
// Implementations close both channels when the subscription ends.
type LogSubscriber interface {
	SubscribeLogs(ctx context.Context, contract string) (<-chan chain.LogEntry, <-chan error, error)
}

// WSSubscriber streams logs over a WebSocket JSON-RPC endpoint using
// eth_subscribe.
type WSSubscriber struct {
	url    string
	dialer *websocket.Dialer
}

func NewWSSubscriber(url string) *WSSubscriber {
	return &WSSubscriber{url: url, dialer: websocket.DefaultDialer}
}

type wsRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type wsMessage struct {
	ID     int             `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Params struct {
		Subscription string          `json:"subscription"`
		Result       json.RawMessage `json:"result"`
	} `json:"params"`
}

// SubscribeLogs opens the connection, subscribes to logs emitted by the
// contract, and feeds decoded entries into the returned channel until the
// context is cancelled or the stream breaks.
func (s *WSSubscriber) SubscribeLogs(ctx context.Context, contract string) (<-chan chain.LogEntry, <-chan error, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("dialing %s: %w", s.url, err)
	}

	req := wsRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_subscribe",
		Params:  []interface{}{"logs", map[string]string{"address": contract}},
	}
	if err := conn.WriteJSON(req); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("subscribing: %w", err)
	}

	var ack wsMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("reading subscription ack: %w", err)
	}
	if ack.Error != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("subscription refused: %s", ack.Error.Message)
	}

	logs := make(chan chain.LogEntry)
	errs := make(chan error, 1)

	// Cancellation closes the connection, which unblocks the read loop.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(logs)
		defer close(errs)
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if ctx.Err() == nil {
					errs <- err
				}
				return
			}
			if msg.Method != "eth_subscription" {
				continue
			}
			var entry chain.LogEntry
			if err := json.Unmarshal(msg.Params.Result, &entry); err != nil {
				continue
			}
			select {
			case logs <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()

	return logs, errs, nil
}
