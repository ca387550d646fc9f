// Package session holds the single source of truth for client credentials:
// the signed-in user's access token and per-room guest tokens.
package session

import (
	"maps"
	"sync"

	"github.com/guesswho-dev/guesswho/internal/models"
)

// State is one immutable snapshot of the session. Mutations on the Store
// always replace the whole snapshot, never edit it in place, so subscribers
// observe complete consistent states.
type State struct {
	// AccessToken is the bearer token of the signed-in user. Empty means
	// not signed in as a user.
	AccessToken string

	// User is the signed-in profile. It can be nil while AccessToken is
	// set (session recovery in flight) and vice versa; consumers must not
	// assume one implies the other.
	User *models.User

	// GuestTokensByRoomID maps a room id to the guest bearer token obtained
	// when joining that room via invite. At most one token per room;
	// re-joining overwrites.
	GuestTokensByRoomID map[string]string
}

// clone returns a deep copy so mutations never alias a published snapshot.
func (s State) clone() State {
	s.GuestTokensByRoomID = maps.Clone(s.GuestTokensByRoomID)
	if s.GuestTokensByRoomID == nil {
		s.GuestTokensByRoomID = make(map[string]string)
	}
	return s
}

// Persister saves session snapshots outside the process. Implementations are
// best-effort; the store treats persistence failures as non-fatal.
type Persister interface {
	Save(State) error
	Load() (State, bool, error)
	Clear() error
}

type subscriber struct {
	id int
	fn func()
}

// Store is the process-wide session cache. It is safe for concurrent use;
// every mutation replaces the snapshot and then synchronously notifies all
// subscribers in registration order.
type Store struct {
	mu      sync.RWMutex
	state   State
	subs    []subscriber
	nextSub int
	persist Persister
}

// Option configures a Store.
type Option func(*Store)

// WithPersister restores the initial snapshot from p and saves every
// subsequent snapshot back through it.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

// NewStore creates an empty session store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: State{GuestTokensByRoomID: make(map[string]string)},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.persist != nil {
		if restored, ok, err := s.persist.Load(); err == nil && ok {
			s.state = restored.clone()
		}
	}
	return s
}

// GetState returns the current snapshot. The returned value must be treated
// as read-only; it shares no mutable structure with future snapshots.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers callback to run after every snapshot replacement and
// returns a function that removes it. Removing a callback that is no longer
// registered is a no-op.
func (s *Store) Subscribe(callback func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: callback})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// SetState replaces the entire snapshot and notifies subscribers.
func (s *Store) SetState(next State) {
	s.replace(func(State) State { return next.clone() })
}

// SetSession stores the access token and user together, leaving guest tokens
// untouched. Used after login and after a successful refresh.
func (s *Store) SetSession(accessToken string, user *models.User) {
	s.replace(func(cur State) State {
		cur.AccessToken = accessToken
		cur.User = user
		return cur
	})
}

// ClearUserSession drops the access token and user but keeps guest tokens,
// so a guest identity survives logout and irrecoverable auth failures.
func (s *Store) ClearUserSession() {
	s.replace(func(cur State) State {
		cur.AccessToken = ""
		cur.User = nil
		return cur
	})
}

// SetUser updates only the profile field.
func (s *Store) SetUser(user *models.User) {
	s.replace(func(cur State) State {
		cur.User = user
		return cur
	})
}

// SetGuestToken inserts or overwrites the guest token for a room.
func (s *Store) SetGuestToken(roomID, token string) {
	s.replace(func(cur State) State {
		cur.GuestTokensByRoomID[roomID] = token
		return cur
	})
}

// PlayerToken applies the credential precedence rule: a signed-in user's
// access token always wins, even when a stale guest token exists for the
// room. With no access token, the room's guest token is returned if roomID
// names one. Empty string means no credential.
func (s *Store) PlayerToken(roomID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.AccessToken != "" {
		return s.state.AccessToken
	}
	if roomID != "" {
		return s.state.GuestTokensByRoomID[roomID]
	}
	return ""
}

// replace swaps the snapshot under the write lock, then notifies the
// subscribers registered at swap time, in registration order, before
// returning. Notification runs outside the lock so callbacks may read the
// store.
func (s *Store) replace(mutate func(State) State) {
	s.mu.Lock()
	s.state = mutate(s.state.clone())
	notify := make([]subscriber, len(s.subs))
	copy(notify, s.subs)
	persist := s.persist
	snapshot := s.state
	s.mu.Unlock()

	if persist != nil {
		_ = persist.Save(snapshot)
	}
	for _, sub := range notify {
		sub.fn()
	}
}
