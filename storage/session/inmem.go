package sessionstore

import (
	"context"
	"sync"

	"github.com/Sky-walkerX/Examcell/core/auth"
)

type memoryStore struct {
	mutex sync.RWMutex
	sess  *auth.Session
}

// NewMemoryStore returns a Store that keeps the Session for the lifetime of the process.
func NewMemoryStore() auth.Store {
	return new(memoryStore)
}

func (s *memoryStore) Load(_ context.Context) (auth.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.sess == nil {
		return auth.Session{}, auth.ErrNoSession
	}
	return *s.sess, nil
}

func (s *memoryStore) Save(_ context.Context, sess auth.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sess = &sess
	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sess = nil
	return nil
}
