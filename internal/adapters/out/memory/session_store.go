// Package memory holds the in-process adapters: the live session store, the
// box catalog read model, a rate cache for runs without Redis, and the no-op
// journal and event sinks used when no database or broker is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/errs"
)

// SessionStore keeps live wizard sessions in process memory. Sessions do not
// survive a restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[kernel.UUID]*wizard.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[kernel.UUID]*wizard.Session)}
}

func (s *SessionStore) Add(_ context.Context, session *wizard.Session) error {
	if session == nil {
		return errs.NewValueIsRequiredError("session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID()]; ok {
		return errs.NewValueIsInvalidErrorWithCause("session",
			fmt.Errorf("session %s already exists", session.ID()))
	}
	s.sessions[session.ID()] = session
	return nil
}

func (s *SessionStore) Get(_ context.Context, id kernel.UUID) (*wizard.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id.String())
	}
	return session, nil
}

// Remove forgets the session. Removing an unknown id is not an error.
func (s *SessionStore) Remove(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) All(_ context.Context) ([]*wizard.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*wizard.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out, nil
}

// Len is the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
