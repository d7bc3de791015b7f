// Package session tracks the wallet connection: whether an account is
// connected, which address, and how connection failures read to the user.
package session

import (
	"context"
	"errors"
	"math/big"

	"github.com/pablopoggiog/send-it/internal/provider"
)

// Status is the connection state.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// User-facing connection failure messages. Each known provider error maps
// to its own message; everything else reads as a generic failure.
const (
	MsgConnectionCancelled = "Connection was cancelled"
	MsgNoProvider          = "No wallet provider found"
	MsgConnectFailed       = "Failed to connect wallet"
)

// Session owns the connection state machine:
// disconnected → connecting → connected, back to disconnected on failure
// or on Disconnect. Not safe for concurrent use; drive it from a single
// event loop.
type Session struct {
	prov    provider.Provider
	status  Status
	address string

	// onChange observers are notified after every status transition.
	onChange []func()
}

// New creates a disconnected session over prov.
func New(prov provider.Provider) *Session {
	return &Session{prov: prov}
}

// Subscribe registers a callback invoked after every connection-state
// change. Used by the form controller to reset itself on disconnect.
func (s *Session) Subscribe(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Connect requests accounts from the provider. On failure the session
// returns to disconnected and the error carries a user-facing message via
// FailureMessage.
func (s *Session) Connect(ctx context.Context) error {
	if s.status == StatusConnected {
		return nil
	}
	s.setStatus(StatusConnecting, "")

	accounts, err := s.prov.RequestAccounts(ctx)
	if err != nil {
		s.setStatus(StatusDisconnected, "")
		return err
	}
	if len(accounts) == 0 {
		s.setStatus(StatusDisconnected, "")
		return provider.ErrNoProvider
	}

	s.setStatus(StatusConnected, accounts[0])
	return nil
}

// Disconnect clears the connection unconditionally. Idempotent.
func (s *Session) Disconnect() {
	if s.status == StatusDisconnected && s.address == "" {
		return
	}
	s.setStatus(StatusDisconnected, "")
}

// Status returns the current connection status.
func (s *Session) Status() Status {
	return s.status
}

// IsConnected reports whether an account is connected.
func (s *Session) IsConnected() bool {
	return s.status == StatusConnected
}

// Address returns the connected address, or "" when disconnected.
func (s *Session) Address() string {
	return s.address
}

// NativeBalance returns the AVAX balance of the connected address, or nil
// when disconnected.
func (s *Session) NativeBalance(ctx context.Context) (*big.Int, error) {
	if s.address == "" {
		return nil, nil
	}
	return s.prov.NativeBalance(ctx, s.address)
}

func (s *Session) setStatus(st Status, addr string) {
	s.status = st
	s.address = addr
	for _, fn := range s.onChange {
		fn()
	}
}

// FailureMessage maps a connection error to its user-facing message.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, provider.ErrRejected):
		return MsgConnectionCancelled
	case errors.Is(err, provider.ErrNoProvider):
		return MsgNoProvider
	default:
		return MsgConnectFailed
	}
}
