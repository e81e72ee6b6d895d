package tokens

import "sync"

// MemoryStore holds the token pair in process memory. Used by tests and
// by callers that do not want credentials on disk.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Access() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.access != ""
}

func (s *MemoryStore) Refresh() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh, s.refresh != ""
}

func (s *MemoryStore) SetAccess(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
	return nil
}

func (s *MemoryStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
