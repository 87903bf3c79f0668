package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Record is the persisted form of a session.
type Record struct {
	Cart    map[uint]int `json:"cart,omitempty"`
	UserID  uint         `json:"user_id,omitempty"`
	Role    string       `json:"role,omitempty"`
	Flashes []string     `json:"flashes,omitempty"`
}

// Store persists session records by id. Load returns ErrNotFound for unknown
// or expired ids.
type Store interface {
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, id string, rec *Record, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

var ErrNotFound = errors.New("session not found")

// ------------------- Memory -------------------

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// MemoryStore keeps sessions in process. Records are stored encoded so callers
// never share maps with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(entry.raw, &rec); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	return &rec, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, rec *Record, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	m.mu.Lock()
	m.entries[id] = memoryEntry{raw: raw, expires: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Prune drops expired sessions and returns how many were removed.
func (m *MemoryStore) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	n := 0
	for id, entry := range m.entries {
		if now.After(entry.expires) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// ------------------- Redis -------------------

const redisKeyPrefix = "foodcourt:session:"

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// ConnectRedis opens a client and verifies it with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return rdb, nil
}

func redisKey(id string) string { return redisKeyPrefix + id }

func (r *RedisStore) Load(ctx context.Context, id string) (*Record, error) {
	raw, err := r.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	return &rec, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, rec *Record, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := r.rdb.Set(ctx, redisKey(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, redisKey(id)).Err()
}
