package myday

import (
	"context"
	"strings"

	"shootday/utils"

	"github.com/go-redis/redis/v8"
)

// RedisFreedStore keeps the freed-booking markers as one
// comma-separated name list per booking ID, mirroring the marker
// format the upstream occasionally echoes back. Last write wins; there
// is no merge across concurrent writers.
type RedisFreedStore struct {
	Client *redis.Client
}

func NewRedisFreedStore() *RedisFreedStore {
	return &RedisFreedStore{Client: utils.GetCacheClient()}
}

func (s *RedisFreedStore) Names(ctx context.Context, bookingID string) ([]string, error) {
	joined, err := s.Client.Get(ctx, utils.FreedPrefix+bookingID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names, nil
}

func (s *RedisFreedStore) Append(ctx context.Context, bookingID, name string) error {
	names, err := s.Names(ctx, bookingID)
	if err != nil {
		return err
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return nil
		}
	}
	names = append(names, name)
	return s.Client.Set(ctx, utils.FreedPrefix+bookingID, strings.Join(names, ", "), 0).Err()
}
