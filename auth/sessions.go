package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the session registry and pending email
// confirmation codes. A session token is only valid while its id is
// present here, so sign-out actually revokes.
type SessionStore interface {
	PutSession(ctx context.Context, id, email string, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (string, error)
	DeleteSession(ctx context.Context, id string) error
	PutCode(ctx context.Context, code, email string, ttl time.Duration) error
	TakeCode(ctx context.Context, code string) (string, error)
}

// RedisSessions is the production SessionStore.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func sessionKey(id string) string { return "session:" + id }
func codeKey(code string) string  { return "confirm:" + code }

func (s *RedisSessions) PutSession(ctx context.Context, id, email string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(id), email, ttl).Err()
}

func (s *RedisSessions) GetSession(ctx context.Context, id string) (string, error) {
	email, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return email, err
}

func (s *RedisSessions) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func (s *RedisSessions) PutCode(ctx context.Context, code, email string, ttl time.Duration) error {
	return s.client.Set(ctx, codeKey(code), email, ttl).Err()
}

// TakeCode consumes the code: a second exchange with the same code fails.
func (s *RedisSessions) TakeCode(ctx context.Context, code string) (string, error) {
	email, err := s.client.GetDel(ctx, codeKey(code)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return email, err
}

// MemorySessions is an in-process SessionStore used in tests.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]string
	codes    map[string]string
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]string),
		codes:    make(map[string]string),
	}
}

func (s *MemorySessions) PutSession(ctx context.Context, id, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = email
	return nil
}

func (s *MemorySessions) GetSession(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id], nil
}

func (s *MemorySessions) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemorySessions) PutCode(ctx context.Context, code, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = email
	return nil
}

func (s *MemorySessions) TakeCode(ctx context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := s.codes[code]
	delete(s.codes, code)
	return email, nil
}
