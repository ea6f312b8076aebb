package session

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/filedeck/filedeck/internal/shared/id"
)

// Session pins a working directory for relative path resolution
type Session struct {
	ID        string    `json:"id"`
	WorkDir   string    `json:"work_dir"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager handles session lifecycle
type Manager struct {
	sessions    sync.Map
	defaultRoot string
}

// NewManager creates a session manager. Sessions created without an explicit
// working directory fall back to defaultRoot.
func NewManager(defaultRoot string) *Manager {
	return &Manager{defaultRoot: defaultRoot}
}

// Create registers a new session. An empty workDir uses the default root.
func (m *Manager) Create(workDir string) *Session {
	if workDir == "" {
		workDir = m.defaultRoot
	}
	sess := &Session{
		ID:        id.NewSessionID().String(),
		WorkDir:   filepath.Clean(workDir),
		CreatedAt: time.Now(),
	}
	m.sessions.Store(sess.ID, sess)
	return sess
}

// Get retrieves a session by ID
func (m *Manager) Get(sessionID string) (*Session, bool) {
	val, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, false
	}
	return val.(*Session), true
}

// SetWorkDir updates a session's working directory
func (m *Manager) SetWorkDir(sessionID, workDir string) (*Session, bool) {
	val, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, false
	}
	old := val.(*Session)
	updated := &Session{
		ID:        old.ID,
		WorkDir:   filepath.Clean(workDir),
		CreatedAt: old.CreatedAt,
	}
	m.sessions.Store(sessionID, updated)
	return updated, true
}

// Delete removes a session
func (m *Manager) Delete(sessionID string) bool {
	_, ok := m.sessions.LoadAndDelete(sessionID)
	return ok
}

// List returns all active sessions
func (m *Manager) List() []*Session {
	var out []*Session
	m.sessions.Range(func(_, value interface{}) bool {
		out = append(out, value.(*Session))
		return true
	})
	return out
}
