// Package cache persists the outcome of the most recent check run. It is a
// convenience cache, not a system of record: loads degrade to empty on any
// failure and saves are best-effort.
package cache

import (
	"encoding/json"
	"time"

	"github.com/mshibata/eliwatch/internal/model"
)

// LastCheckKey is the fixed slot the latest run is stored under. Each run
// overwrites the previous one; no further history is retained.
const LastCheckKey = "last_check"

// Cache is the keyed byte store the run cache sits on.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// RunCache stores CheckRun documents in an underlying Cache.
type RunCache struct {
	inner Cache
}

// NewRunCache wraps a Cache with CheckRun serialization.
func NewRunCache(inner Cache) *RunCache {
	return &RunCache{inner: inner}
}

// LastCheck returns the most recently saved run. Any failure, whether the
// slot is missing, corrupt or unreadable, degrades to (zero, false); the
// caller proceeds as if no history exists.
func (c *RunCache) LastCheck() (model.CheckRun, bool) {
	data, found := c.inner.Get(LastCheckKey)
	if !found {
		return model.CheckRun{}, false
	}

	var run model.CheckRun
	if err := json.Unmarshal(data, &run); err != nil {
		return model.CheckRun{}, false
	}
	return run, true
}

// SaveLastCheck overwrites the last-check slot with this run. The returned
// error is informational; callers log it and continue.
func (c *RunCache) SaveLastCheck(run model.CheckRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return c.inner.Set(LastCheckKey, data, 0)
}
