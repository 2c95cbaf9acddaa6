package session

import (
	"log"
	"sync"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Manager owns the in-memory auth state: bearer token, role, resolved user
// id. It is the only writer of the credential Store, so the persistence side
// effects that were scattered through the original state handlers all funnel
// through here.
type Manager struct {
	store  Store
	logger *log.Logger
	now    func() time.Time

	mu     sync.Mutex
	creds  Credentials
	inited bool

	subMu sync.Mutex
	subs  []func(authenticated bool)
}

func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

// Initialize seeds the session from persisted storage. No network call.
// Calling it again is a no-op.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inited {
		return nil
	}
	m.inited = true

	creds, err := m.store.Load()
	if err != nil {
		m.logger.Printf("session: load credentials: %v", err)
		return err
	}
	m.creds = creds
	return nil
}

// Login installs a fresh session and persists it. The role must come from
// the trusted login response, not from decoding the token.
func (m *Manager) Login(token, role string) {
	userID, _ := ResolveUserID(token)

	m.mu.Lock()
	m.creds = Credentials{Token: token, Role: role, UserID: userID}
	if err := m.store.Save(m.creds); err != nil {
		m.logger.Printf("session: persist credentials: %v", err)
	}
	authed := m.authenticatedLocked()
	m.mu.Unlock()

	m.notify(authed)
}

// Logout clears the session and the store. Safe to call when already logged
// out.
func (m *Manager) Logout() {
	m.mu.Lock()
	wasEmpty := m.creds.Empty()
	m.creds = Credentials{}
	if err := m.store.Clear(); err != nil {
		m.logger.Printf("session: clear credentials: %v", err)
	}
	m.mu.Unlock()

	if !wasEmpty {
		m.notify(false)
	}
}

// SyncFromStore re-reads shared storage, picking up logins and logouts made
// by another process against the same credentials file. Best effort; this is
// the only cross-process sync point.
func (m *Manager) SyncFromStore() {
	creds, err := m.store.Load()
	if err != nil {
		m.logger.Printf("session: sync from store: %v", err)
		return
	}

	m.mu.Lock()
	changed := creds != m.creds
	m.creds = creds
	authed := m.authenticatedLocked()
	m.mu.Unlock()

	if changed {
		m.notify(authed)
	}
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticatedLocked()
}

func (m *Manager) authenticatedLocked() bool {
	return m.creds.Token != "" && tokenUsable(m.creds.Token, m.now())
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds.Token
}

// Role is meaningful only while IsAuthenticated reports true.
func (m *Manager) Role() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds.Role
}

func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds.UserID
}

// OnChange registers a callback invoked whenever the authenticated state may
// have flipped: login, logout, external store sync.
func (m *Manager) OnChange(fn func(authenticated bool)) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify(authenticated bool) {
	m.subMu.Lock()
	subs := make([]func(bool), len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(authenticated)
	}
}
