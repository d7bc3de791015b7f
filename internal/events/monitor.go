package events

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/pablopoggiog/send-it/internal/chain"
)

var ErrAlreadyActive = errors.New("monitor is already active")

// Config describes one watch: the contract whose events to stream, the
// transaction hash to look for, and the callbacks to fire.
type Config struct {
	Contract string
	TxHash   string
	// OnSuccess fires at most once, with the first log matching TxHash.
	OnSuccess func(chain.LogEntry)
	// OnError fires when the stream breaks before a match is seen.
	OnError func(error)
}

// Monitor watches a contract's event stream for a specific transaction
// hash. It is a faster confirmation signal than polling for a receipt; a
// match or a stream error tears the subscription down either way.
type Monitor struct {
	sub LogSubscriber

	mu     sync.Mutex
	cancel context.CancelFunc
	active bool
}

func NewMonitor(sub LogSubscriber) *Monitor {
	return &Monitor{sub: sub}
}

// Start opens the subscription and watches until a match, a stream error,
// or Stop. Only one watch runs at a time.
func (m *Monitor) Start(ctx context.Context, cfg Config) error {
	m.mu.Lock()
	if m.active {
		m.mu.Unlock()
		return ErrAlreadyActive
	}
	watchCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.active = true
	m.mu.Unlock()

	logs, errs, err := m.sub.SubscribeLogs(watchCtx, cfg.Contract)
	if err != nil {
		m.teardown()
		return err
	}

	go m.watch(watchCtx, cfg, logs, errs)
	return nil
}

func (m *Monitor) watch(ctx context.Context, cfg Config, logs <-chan chain.LogEntry, errs <-chan error) {
	defer m.teardown()
	for {
		select {
		case entry, ok := <-logs:
			if !ok {
				return
			}
			if strings.EqualFold(entry.TxHash, cfg.TxHash) {
				if cfg.OnSuccess != nil {
					cfg.OnSuccess(entry)
				}
				return
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			if cfg.OnError != nil {
				cfg.OnError(err)
			}
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels the active watch, if any.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.active = false
}

// Active reports whether a watch is running.
func (m *Monitor) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Monitor) teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.active = false
}
