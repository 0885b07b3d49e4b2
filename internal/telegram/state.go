package telegram

import (
	"sync"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

type SessionState int

const (
	StateIdle SessionState = iota
	StateChoosingPackage
	StateAwaitingPaymentProof
	StateAwaitingBroadcast
)

// Session is the per-chat conversation state. The payment track (package
// choice, proof upload) and the generation track (pending topic) are
// independent; cancel returns either track to idle. Held in process memory
// with the same lifetime discipline as the platform's own session storage.
type Session struct {
	State   SessionState
	Package models.PackageKind
	Amount  int
	Topic   string
}

type StateManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStateManager() *StateManager {
	return &StateManager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns a snapshot of the chat's session. Callers mutate their copy
// freely; a change takes effect only through Set, so concurrent updates for
// the same chat never share a Session value.
func (m *StateManager) Get(chatID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if session, ok := m.sessions[chatID]; ok {
		snapshot := *session
		return &snapshot
	}
	return &Session{State: StateIdle}
}

func (m *StateManager) Set(chatID int64, session *Session) {
	m.mu.Lock()
	stored := *session
	m.sessions[chatID] = &stored
	m.mu.Unlock()
}

func (m *StateManager) Reset(chatID int64) {
	m.Set(chatID, &Session{State: StateIdle})
}

// SetTopic keeps the pending topic without disturbing the payment track.
func (m *StateManager) SetTopic(chatID int64, topic string) {
	m.mu.Lock()
	session, ok := m.sessions[chatID]
	if !ok {
		session = &Session{State: StateIdle}
		m.sessions[chatID] = session
	}
	session.Topic = topic
	m.mu.Unlock()
}
