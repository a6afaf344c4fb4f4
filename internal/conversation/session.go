package conversation

import (
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/ppiankov/modassist/internal/classify"
	"github.com/ppiankov/modassist/internal/model"
)

// Session holds everything one conversation owns: the live scenario
// context, the append-only scenario history, and the prior-message window
// used for reference resolution.
type Session struct {
	ID      string
	Context *Context
	History model.ScenarioHistory

	prior  []model.Message
	window int
}

func newSession(id string, window int) *Session {
	return &Session{
		ID:      id,
		Context: NewContext(1),
		window:  window,
	}
}

// Prior returns the retained prior-message window, oldest first
func (s *Session) Prior() []model.Message {
	return s.prior
}

// Remember appends a turn to the prior-message window
func (s *Session) Remember(msg model.Message) {
	s.prior = append(s.prior, msg)
	if s.window > 0 && len(s.prior) > s.window {
		s.prior = s.prior[len(s.prior)-s.window:]
	}
}

// Reset archives the current scenario with its best-available
// classification and starts a fresh context. The scenario number
// increments by exactly 1; history is purely additive.
func (s *Session) Reset(engine *classify.Engine) model.ScenarioRecord {
	record := s.Context.Archive(engine)
	s.History = append(s.History, record)
	s.Context = NewContext(record.ScenarioNumber + 1)
	return record
}

// Finalize archives the current scenario without opening a new one.
// Used when the caller confirms the conversation is finished.
func (s *Session) Finalize(engine *classify.Engine) model.ScenarioRecord {
	record := s.Context.Archive(engine)
	s.History = append(s.History, record)
	return record
}

// Manager hands out sessions keyed by caller-supplied ID. Idle sessions
// are evicted after the configured TTL. Contexts are never shared across
// sessions; the cache only guards its own map.
type Manager struct {
	sessions *gocache.Cache
	cfg      model.SessionConfig
}

// NewManager creates a session manager
func NewManager(cfg model.SessionConfig) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = ttl
	}
	return &Manager{
		sessions: gocache.New(ttl, cleanup),
		cfg:      cfg,
	}
}

// Session returns the session for the given ID, creating it if needed.
// An empty ID gets a generated one; the returned session carries it.
func (m *Manager) Session(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	if v, found := m.sessions.Get(id); found {
		s := v.(*Session)
		m.sessions.SetDefault(id, s) // refresh TTL on access
		return s
	}
	s := newSession(id, m.cfg.ContextWindow)
	m.sessions.SetDefault(id, s)
	return s
}

// Drop removes a session entirely (history included)
func (m *Manager) Drop(id string) {
	m.sessions.Delete(id)
}
