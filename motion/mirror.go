package motion

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Mirror is a client's copy of the overlay state, updated from server
// events on the network goroutine and read by the renderer.
type Mirror struct {
	mu    sync.RWMutex
	me    string
	users map[string]*User
}

// NewMirror creates an empty mirror
func NewMirror() *Mirror {
	return &Mirror{users: make(map[string]*User)}
}

// Me returns the id assigned by the server, empty before init
func (m *Mirror) Me() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.me
}

// Apply folds one server event into the mirror
func (m *Mirror) Apply(env Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch env.Type {
	case TypeInit:
		var p InitPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("bad init payload: %w", err)
		}
		m.me = p.ID
		m.users = p.State.Users
		if m.users == nil {
			m.users = make(map[string]*User)
		}
	case TypeUserJoined:
		var p JoinedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("bad userJoined payload: %w", err)
		}
		u := p.User
		m.users[p.ID] = &u
	case TypeUserLeft:
		var id string
		if err := json.Unmarshal(env.Data, &id); err != nil {
			return fmt.Errorf("bad userLeft payload: %w", err)
		}
		delete(m.users, id)
	case TypeUserMoved:
		var p MovedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("bad userMoved payload: %w", err)
		}
		// moves for users we never saw join are dropped
		if u, ok := m.users[p.ID]; ok {
			md := p.Motion
			u.DeviceMoves = p.DeviceMoves
			u.MotionData = &md
		}
	default:
		return fmt.Errorf("unknown event type %q", env.Type)
	}
	return nil
}

// SetLocal records our own latest reading so it draws without a round trip
func (m *Mirror) SetLocal(data MotionData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[m.me]; ok && m.me != "" {
		u.DeviceMoves = true
		u.MotionData = &data
	}
}

// Moving returns the readings of every user whose device is reporting
func (m *Mirror) Moving() map[string]MotionData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]MotionData, len(m.users))
	for id, u := range m.users {
		if u.DeviceMoves && u.MotionData != nil {
			out[id] = *u.MotionData
		}
	}
	return out
}

// Len returns the number of known users
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
