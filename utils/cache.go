// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"shootday/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (client config, freed markers).
	CacheClient *redis.Client
	// SessionCacheClient is the dedicated client for login session caching.
	SessionCacheClient *redis.Client
	// LockCacheClient is the dedicated client for booking lock sessions.
	LockCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitSessionCache initializes the Redis client for login session caching.
func InitSessionCache() {
	SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
}

// GetSessionCacheClient returns the Redis client for login session caching.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitLockCache initializes the Redis client holding booking lock sessions.
func InitLockCache() {
	LockCacheClient = newRedisClient(config.AppConfig.RedisLockDB)
}

// GetLockCacheClient returns the Redis client holding booking lock sessions.
func GetLockCacheClient() *redis.Client {
	if LockCacheClient == nil {
		InitLockCache()
	}
	return LockCacheClient
}

// InitRedis initializes every Redis client eagerly at startup.
func InitRedis() {
	InitCache()
	InitSessionCache()
	InitLockCache()
}
