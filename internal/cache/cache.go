package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/ppiankov/claimforge/internal/model"
)

// keyVersion changes whenever the cached report format changes
const keyVersion = "claimforge:v1:"

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a description and the options it is
// generated with. Options are normalised first so equivalent requests share
// a key.
func Key(text string, opts model.GenerateOptions) string {
	opts = opts.Normalize()

	h := sha256.New()
	h.Write([]byte(string(opts.Language)))
	h.Write([]byte{0})
	h.Write([]byte(string(opts.Style)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(opts.Variants)))
	h.Write([]byte{0})
	h.Write([]byte(text))

	return keyVersion + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg, or nil when caching is disabled
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
