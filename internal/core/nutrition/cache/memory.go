package cache

import (
	"context"
	"sync"
	"time"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore is an in-process nutrient cache. Entries live for the process
// lifetime; when the store is full the least recently used entry is evicted.
type MemoryStore struct {
	mu      sync.RWMutex
	store   map[string]memoryEntry
	maxSize int
	stats   storeStats
}

type memoryEntry struct {
	entry       Entry
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type storeStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryStore creates an in-memory store bounded to maxSize entries.
func NewMemoryStore(maxSize int) *MemoryStore {
	m := &MemoryStore{
		store:   make(map[string]memoryEntry),
		maxSize: maxSize,
	}

	common.LogInfo("nutrient cache initialized",
		zap.String("backend", "memory"),
		zap.Int("max_size", maxSize),
	)

	return m
}

// Get returns the cached entry for key or common.ErrCacheMiss.
func (m *MemoryStore) Get(ctx context.Context, key string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("nutrient", key)
		return Entry{}, common.ErrCacheMiss
	}

	e.lastAccess = time.Now()
	e.accessCount++
	m.store[key] = e
	m.stats.hits++

	common.LogCacheHit("nutrient", key)
	return e.entry, nil
}

// Set stores entry under key, evicting the least used entry when full.
func (m *MemoryStore) Set(ctx context.Context, key string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && len(m.store) >= m.maxSize {
		m.evictLRU()
	}

	now := time.Now()
	m.store[key] = memoryEntry{
		entry:      entry,
		createdAt:  now,
		lastAccess: now,
	}

	return nil
}

// evictLRU removes the least accessed entry. Caller holds the lock.
func (m *MemoryStore) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, e := range m.store {
		if oldestKey == "" ||
			e.accessCount < lowestAccessCount ||
			(e.accessCount == lowestAccessCount && e.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = e.lastAccess
			lowestAccessCount = e.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("nutrient cache evicted entry",
			zap.String("key", oldestKey),
		)
	}
}

// Stats returns cache counters for the health endpoint.
func (m *MemoryStore) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"backend":   "memory",
		"size":      len(m.store),
		"max_size":  m.maxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
	}
}

// Close clears the store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]memoryEntry)
	common.LogInfo("nutrient cache closed",
		zap.Int64("hits", m.stats.hits),
		zap.Int64("misses", m.stats.misses),
		zap.Int64("evictions", m.stats.evictions),
	)
	return nil
}
