// Package cache provides the layered fetch cache used when pulling outlet
// pages for research context. Pages change slowly relative to sweep
// cadence, so a day-scale disk TTL saves most of the polite-fetch budget.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-value cache with per-entry TTLs.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey derives the cache key for a fetched page URL.
func PageKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "aytt:v1:" + hex.EncodeToString(hash[:])
}
