// Package store provides the in-memory account store. It is the default
// backing for a single process and doubles as the test fixture; durable
// variants live under adapters/.
package store

import (
	"sync"

	"github.com/sorenlabs/soren/core"
)

// Memory implements core.AccountStore with a mutex-guarded copy-on-read map
// of the two storage keys: the account list and the active session.
type Memory struct {
	mu       sync.RWMutex
	accounts []core.Account
	session  *core.Session
}

var _ core.AccountStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListAccounts() ([]core.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Account, len(m.accounts))
	copy(out, m.accounts)
	return out, nil
}

func (m *Memory) SaveAccounts(accounts []core.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts = make([]core.Account, len(accounts))
	copy(m.accounts, accounts)
	return nil
}

func (m *Memory) ActiveSession() (*core.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return nil, nil
	}
	s := *m.session
	return &s, nil
}

func (m *Memory) SetActiveSession(session *core.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session == nil {
		m.session = nil
		return nil
	}
	s := *session
	m.session = &s
	return nil
}
