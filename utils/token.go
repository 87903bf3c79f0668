package utils

import (
	"sync"
	"time"
)

// Blacklist holds revoked token ids until their expiry.
type Blacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewBlacklist() *Blacklist {
	return &Blacklist{entries: make(map[string]time.Time)}
}

func (b *Blacklist) Add(id string, expiry time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[id] = expiry
}

func (b *Blacklist) Contains(id string) bool {
	b.mu.RLock()
	expiry, exists := b.entries[id]
	b.mu.RUnlock()
	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}
	// expired entries are dropped lazily
	b.mu.Lock()
	delete(b.entries, id)
	b.mu.Unlock()
	return false
}

// Cleanup removes expired entries and returns how many were dropped.
func (b *Blacklist) Cleanup() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	n := 0
	for id, expiry := range b.entries {
		if now.After(expiry) {
			delete(b.entries, id)
			n++
		}
	}
	return n
}
