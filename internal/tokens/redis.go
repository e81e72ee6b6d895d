package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/cache"
)

// RedisStore keeps the token pair in the shared cache layer under fixed
// keys, so a daemon restart resumes the same session. Tokens are stored
// without TTL; expiry is the server's concern and surfaces as a 401.
type RedisStore struct {
	cache cache.Cache
}

func NewRedisStore(c cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var token string
	err := s.cache.Get(ctx, key, &token)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (s *RedisStore) set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.cache.Set(ctx, key, value, 0)
}

func (s *RedisStore) Access() (string, bool) {
	return s.get(accessKey)
}

func (s *RedisStore) Refresh() (string, bool) {
	return s.get(refreshKey)
}

func (s *RedisStore) SetAccess(token string) error {
	return s.set(accessKey, token)
}

func (s *RedisStore) SetPair(access, refresh string) error {
	if err := s.set(accessKey, access); err != nil {
		return err
	}
	return s.set(refreshKey, refresh)
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errAccess := s.cache.Delete(ctx, accessKey)
	errRefresh := s.cache.Delete(ctx, refreshKey)
	return errors.Join(errAccess, errRefresh)
}
