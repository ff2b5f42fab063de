package credstore

import (
	"context"
	"sync"

	"github.com/pakkurthi/jobquest-client/internal/domain"
)

// MemoryStore holds credentials in process memory. Used for tests and
// ephemeral sessions that should not outlive the process.
type MemoryStore struct {
	mu    sync.Mutex
	creds *domain.Credentials
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, nil
	}
	copied := *s.creds
	if s.creds.Identity != nil {
		identity := *s.creds.Identity
		copied.Identity = &identity
	}
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
