package application

import (
	"sync/atomic"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

// SessionState is shared by the configuration side (writer) and the fetch worker (reader).
// Sessions are swapped whole, so readers never observe a partially updated value.
type SessionState struct {
	current     atomic.Pointer[domain.Session]
	doubleStash atomic.Bool
}

func NewSessionState(initial domain.Session) *SessionState {
	s := &SessionState{}
	s.current.Store(&initial)
	return s
}

func (s *SessionState) Current() domain.Session {
	return *s.current.Load()
}

// Set replaces the session and reports whether it differed from the previous one.
func (s *SessionState) Set(session domain.Session) bool {
	for {
		previous := s.current.Load()
		if *previous == session {
			return false
		}
		if s.current.CompareAndSwap(previous, &session) {
			return true
		}
	}
}

// IsDoubleStash reports the layout seen by the most recent successful fetch.
func (s *SessionState) IsDoubleStash() bool {
	return s.doubleStash.Load()
}

func (s *SessionState) setDoubleStash(value bool) {
	s.doubleStash.Store(value)
}
