package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching fetched pages
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Kind namespaces cache keys
type Kind string

// KindPage holds fetched listing pages, keyed by URL
const KindPage Kind = "page"

// CacheKey generates a cache key for an identifier within a kind
func CacheKey(kind Kind, id string) string {
	hash := sha256.Sum256([]byte(id))
	return "attrparse:v1:" + string(kind) + ":" + hex.EncodeToString(hash[:])
}

// Noop is a cache that stores nothing, used when caching is disabled
type Noop struct{}

func (Noop) Get(key string) ([]byte, bool)                         { return nil, false }
func (Noop) Set(key string, value []byte, ttl time.Duration) error { return nil }
func (Noop) Delete(key string) error                               { return nil }
func (Noop) Clear() error                                          { return nil }
