package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "guesswho-cli"
	keyringKey     = "session-v1"
)

// KeyringPersister stores the session snapshot as JSON in the OS
// keychain/credential manager, keyed per API host so sessions against
// different servers do not collide.
type KeyringPersister struct {
	service string
	key     string
}

// NewKeyringPersister creates a persister scoped to host.
func NewKeyringPersister(host string) *KeyringPersister {
	return &KeyringPersister{
		service: keyringService,
		key:     fmt.Sprintf("%s-%s", keyringKey, host),
	}
}

type persistedState struct {
	AccessToken         string            `json:"accessToken,omitempty"`
	User                json.RawMessage   `json:"user,omitempty"`
	GuestTokensByRoomID map[string]string `json:"guestTokensByRoomId,omitempty"`
}

// Save writes the snapshot to the keyring.
func (p *KeyringPersister) Save(state State) error {
	out := persistedState{
		AccessToken:         state.AccessToken,
		GuestTokensByRoomID: state.GuestTokensByRoomID,
	}
	if state.User != nil {
		raw, err := json.Marshal(state.User)
		if err != nil {
			return fmt.Errorf("failed to marshal session user: %w", err)
		}
		out.User = raw
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := keyring.Set(p.service, p.key, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load reads the snapshot back. The second return value is false when no
// session has been saved yet.
func (p *KeyringPersister) Load() (State, bool, error) {
	raw, err := keyring.Get(p.service, p.key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("failed to load session: %w", err)
	}

	var in persistedState
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		// A corrupt entry is treated as absent rather than wedging startup.
		return State{}, false, nil
	}

	state := State{
		AccessToken:         in.AccessToken,
		GuestTokensByRoomID: in.GuestTokensByRoomID,
	}
	if state.GuestTokensByRoomID == nil {
		state.GuestTokensByRoomID = make(map[string]string)
	}
	if len(in.User) > 0 {
		if err := json.Unmarshal(in.User, &state.User); err != nil {
			state.User = nil
		}
	}
	return state, true, nil
}

// Clear removes the saved session. Missing entries are not an error.
func (p *KeyringPersister) Clear() error {
	if err := keyring.Delete(p.service, p.key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
