// Package session maps session keys to ledgers so the journal can serve
// more than one user session at a time. Each key owns exactly one ledger;
// operations within a session stay synchronous.
package session

import (
	"sync"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
)

// Factory builds a fresh ledger for a new session key.
type Factory func() (ledger.Ledger, error)

// Manager owns the session-key to ledger mapping.
type Manager struct {
	mu      sync.RWMutex
	ledgers map[string]ledger.Ledger
	factory Factory
	closed  bool
}

// NewManager creates a Manager that builds ledgers with factory.
func NewManager(factory Factory) *Manager {
	return &Manager{
		ledgers: make(map[string]ledger.Ledger),
		factory: factory,
	}
}

// Get returns the ledger for key, creating it on first use.
func (m *Manager) Get(key string) (ledger.Ledger, error) {
	m.mu.RLock()
	led, ok := m.ledgers[key]
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, apperrors.ErrSessionClosed
	}
	if ok {
		return led, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, apperrors.ErrSessionClosed
	}
	if led, ok := m.ledgers[key]; ok {
		return led, nil
	}
	led, err := m.factory()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create session ledger")
	}
	m.ledgers[key] = led
	return led, nil
}

// Release closes and drops the ledger for key. Unknown keys are a no-op.
func (m *Manager) Release(key string) error {
	m.mu.Lock()
	led, ok := m.ledgers[key]
	delete(m.ledgers, key)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return led.Close()
}

// Close closes every ledger and rejects further Gets.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for key, led := range m.ledgers {
		if err := led.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.ledgers, key)
	}
	m.closed = true
	return firstErr
}
