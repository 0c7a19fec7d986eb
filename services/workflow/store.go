package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shootday/models"
	"shootday/utils"

	"github.com/go-redis/redis/v8"
)

// RedisLockStore keeps lock sessions in the lock cache DB. The Redis
// TTL is the exclusivity window: expiry is the only cleanup needed for
// an abandoned lock, which preserves the advisory (not atomic)
// semantics of the flow.
type RedisLockStore struct {
	Client *redis.Client
}

func NewRedisLockStore() *RedisLockStore {
	return &RedisLockStore{Client: utils.GetLockCacheClient()}
}

func (s *RedisLockStore) Save(ctx context.Context, session *models.LockSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal lock session: %w", err)
	}
	if err := s.Client.Set(ctx, utils.LockPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store lock session: %w", err)
	}
	return nil
}

func (s *RedisLockStore) Get(ctx context.Context, id string) (*models.LockSession, error) {
	data, err := s.Client.Get(ctx, utils.LockPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrLockExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lock session: %w", err)
	}
	var session models.LockSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse lock session: %w", err)
	}
	return &session, nil
}

func (s *RedisLockStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, utils.LockPrefix+id).Err()
}

// AcquireGuard takes the in-flight submit guard for a lock. SETNX makes
// the duplicate-submit check atomic across handlers on this node.
func (s *RedisLockStore) AcquireGuard(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return s.Client.SetNX(ctx, utils.InflightPrefix+id, "1", ttl).Result()
}

func (s *RedisLockStore) ReleaseGuard(ctx context.Context, id string) error {
	return s.Client.Del(ctx, utils.InflightPrefix+id).Err()
}
