package lrs

import (
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// Snapshot is the fully updated session tuple handed to observers. Identity is
// present if and only if the credential is present and decoded successfully.
type Snapshot struct {
	Identity   *Identity
	Credential string
	Loading    bool
}

// Authenticated reports whether the snapshot carries a decoded identity
func (s Snapshot) Authenticated() bool {
	return s.Identity != nil && s.Credential != ""
}

// Store holds the current session: the derived identity, the raw credential,
// and a loading flag that is true only during the initialization window.
//
// Mutations (Initialize, Login, Logout) are applied atomically with respect to
// observers: every subscriber sees a fully updated snapshot, never a partial
// one. The Store does not synchronize across tabs; another tab logging out is
// an explicit non guarantee.
type Store struct {
	mu          sync.Mutex
	credentials CredentialStore
	logger      Logger

	identity    *Identity
	credential  string
	loading     bool
	initialized bool

	nextSubID   int
	subscribers map[int]func(Snapshot)
}

// StoreOption customizes Store construction
type StoreOption func(*Store)

// WithLogger overrides the default logger
func WithLogger(logger Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a session store backed by the given credential store. The
// store reports loading until Initialize has run.
func NewStore(credentials CredentialStore, opts ...StoreOption) *Store {
	s := &Store{
		credentials: credentials,
		logger:      defLogger{},
		loading:     true,
		subscribers: map[int]func(Snapshot){},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Initialize consults the credential store exactly once per application load
// and derives the session from whatever it finds. A credential that fails to
// decode is treated as stale local state: it is cleared so a corrupted stored
// credential cannot permanently lock the user out of the login view.
// Subsequent calls are no-ops.
func (s *Store) Initialize() {
	s.mu.Lock()

	if s.initialized {
		s.mu.Unlock()
		s.logger.Debug("session store already initialized, skipping")
		return
	}
	s.initialized = true

	credential, ok := s.credentials.Get()
	if !ok || credential == "" {
		s.loading = false
		s.notifyLocked()
		return
	}

	identity, err := DecodeIdentity(credential)
	if err != nil {
		s.logger.Error("error decoding stored credential", "error", err)
		if cerr := s.credentials.Clear(); cerr != nil {
			s.logger.Warn("unable to clear stale credential", "error", cerr)
		}
		s.loading = false
		s.notifyLocked()
		return
	}

	s.identity = identity
	s.credential = credential
	s.loading = false
	s.notifyLocked()
}

// Login decodes the credential and, on success, writes it to the credential
// store and populates the session. On decode failure nothing is mutated and
// the error is returned to the caller: the credential was just issued by the
// API, so a bad one indicates a malformed server token rather than stale
// local state, and clearing storage would not self heal it.
func (s *Store) Login(credential string) error {
	identity, err := DecodeIdentity(credential)
	if err != nil {
		s.logger.Error("error decoding credential", "error", err)
		return err
	}

	s.mu.Lock()

	if err := s.credentials.Set(credential); err != nil {
		s.mu.Unlock()
		s.logger.Error("unable to persist credential", "error", err)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to persist credential")
	}

	s.identity = identity
	s.credential = credential
	s.loading = false
	s.notifyLocked()

	return nil
}

// Logout clears the credential store and empties the session. Idempotent:
// calling it twice leaves the same empty state as calling it once.
func (s *Store) Logout() {
	s.mu.Lock()

	if err := s.credentials.Clear(); err != nil {
		s.logger.Warn("unable to clear credential", "error", err)
	}

	s.identity = nil
	s.credential = ""
	s.loading = false
	s.notifyLocked()
}

// Current returns the session tuple as of now
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Identity returns the current identity, nil when unauthenticated
func (s *Store) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// PeekIdentity is the synchronous best effort read used by the navigation
// shell before Initialize has completed: it prefers the canonical session
// state and falls back to decoding straight from the credential store. The
// fallback never mutates session or storage.
func (s *Store) PeekIdentity() (*Identity, bool) {
	s.mu.Lock()

	if s.identity != nil {
		identity := s.identity
		s.mu.Unlock()
		return identity, true
	}

	if s.initialized {
		s.mu.Unlock()
		return nil, false
	}
	s.mu.Unlock()

	credential, ok := s.credentials.Get()
	if !ok || credential == "" {
		return nil, false
	}

	identity, err := DecodeIdentity(credential)
	if err != nil {
		s.logger.Debug("best effort decode failed", "error", err)
		return nil, false
	}

	return identity, true
}

// Subscribe registers an observer notified synchronously on every session
// change. It returns an unsubscribe function. The observer receives a value
// snapshot, so later mutations cannot tear what it sees.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() Snapshot {
	var identity *Identity
	if s.identity != nil {
		copied := *s.identity
		identity = &copied
	}

	return Snapshot{
		Identity:   identity,
		Credential: s.credential,
		Loading:    s.loading,
	}
}

// notifyLocked captures the snapshot and subscriber list under the lock, then
// releases it before invoking callbacks so observers can re-enter the store.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()

	subscribers := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}
