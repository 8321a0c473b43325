package lrs

import "sync"

// DefaultCredentialKey is the fixed name of the single durable slot holding
// the raw credential string. No other persisted client state belongs to this
// layer.
const DefaultCredentialKey = "token"

// CredentialStore is the process wide holder of a single opaque bearer
// credential. Implementations must be durable across reloads within one
// browser profile (see CookieCredentialStore); MemoryCredentialStore backs
// tests and non HTTP callers.
//
// The store is shared across independently initialized views, but only the
// session Store's Login/Logout write to it, so no write-write race exists
// within a single tab. Cross tab mutation is an explicit non guarantee.
type CredentialStore interface {
	// Get returns the stored credential and whether one is present
	Get() (string, bool)
	// Set stores the credential, replacing any previous value
	Set(credential string) error
	// Clear removes the stored credential; clearing an empty store is a no-op
	Clear() error
}

// MemoryCredentialStore is an in memory CredentialStore safe for concurrent use.
type MemoryCredentialStore struct {
	mu         sync.Mutex
	credential string
	present    bool
}

// NewMemoryCredentialStore returns an empty in memory store
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)

func (m *MemoryCredentialStore) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential, m.present
}

func (m *MemoryCredentialStore) Set(credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = credential
	m.present = true
	return nil
}

func (m *MemoryCredentialStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = ""
	m.present = false
	return nil
}
