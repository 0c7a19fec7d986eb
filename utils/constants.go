// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis login session keys.
const SessionCachePrefix = "session:"

// LockPrefix is the prefix used for booking lock session keys.
const LockPrefix = "lock:"

// InflightPrefix is the prefix used for in-flight submit guard keys.
const InflightPrefix = "inflight:"

// FreedPrefix is the prefix used for freed-booking marker keys.
const FreedPrefix = "freed:"

// ClientConfigCacheKey holds the cached client-facing config document.
const ClientConfigCacheKey = "clientConfig"

// LockTTL is the advisory exclusivity window for a booking lock. A lock
// that is not submitted within this window simply expires.
const LockTTL = 90 * time.Second

// SubmitGuardTTL bounds how long a submit attempt can suppress a retry.
const SubmitGuardTTL = 30 * time.Second

// SessionTTL is the lifetime of a login session token.
const SessionTTL = 30 * 24 * time.Hour
