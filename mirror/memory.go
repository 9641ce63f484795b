package mirror

import (
	"context"
	"encoding/json"
	"sync"

	"grouptracker-backend/models"
)

// MemoryStore is an in-process Store used in tests. It keeps the groups
// slot serialized, so loads exercise the same round trip as the Redis
// implementation.
type MemoryStore struct {
	mu     sync.Mutex
	groups map[string][]byte
	emails map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		groups: make(map[string][]byte),
		emails: make(map[string]string),
	}
}

func (s *MemoryStore) LoadGroups(ctx context.Context, key string) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.groups[key]
	if !ok {
		return []models.Group{}, nil
	}

	var groups []models.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *MemoryStore) SaveGroups(ctx context.Context, key string, groups []models.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[key] = data
	return nil
}

func (s *MemoryStore) LoadEmail(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emails[key], nil
}

func (s *MemoryStore) SaveEmail(ctx context.Context, key, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails[key] = email
	return nil
}
