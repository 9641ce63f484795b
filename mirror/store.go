// Package mirror persists the client-side read model: a per-user JSON
// snapshot of the group/expense tree plus a plain-text slot for the
// current user's email. Every save is a whole-snapshot overwrite. The
// mirror has no expiration and is not cleared on logout; it is the sole
// read model for rendering.
package mirror

import (
	"context"
	"encoding/json"

	"grouptracker-backend/models"

	"github.com/redis/go-redis/v9"
)

// Store is the persistence boundary for the mirror. Implementations
// must reproduce the two-slot layout: a groups snapshot and an email
// slot, both keyed by client key.
type Store interface {
	LoadGroups(ctx context.Context, key string) ([]models.Group, error)
	SaveGroups(ctx context.Context, key string, groups []models.Group) error
	LoadEmail(ctx context.Context, key string) (string, error)
	SaveEmail(ctx context.Context, key, email string) error
}

// RedisStore keeps the mirror in Redis, one key per slot.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func groupsKey(key string) string { return "mirror:" + key + ":groups" }
func emailKey(key string) string  { return "mirror:" + key + ":userEmail" }

func (s *RedisStore) LoadGroups(ctx context.Context, key string) ([]models.Group, error) {
	data, err := s.client.Get(ctx, groupsKey(key)).Bytes()
	if err == redis.Nil {
		return []models.Group{}, nil
	}
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *RedisStore) SaveGroups(ctx context.Context, key string, groups []models.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	// No expiration: the snapshot outlives any session.
	return s.client.Set(ctx, groupsKey(key), data, 0).Err()
}

func (s *RedisStore) LoadEmail(ctx context.Context, key string) (string, error) {
	email, err := s.client.Get(ctx, emailKey(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *RedisStore) SaveEmail(ctx context.Context, key, email string) error {
	return s.client.Set(ctx, emailKey(key), email, 0).Err()
}
