package revocation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memoryStore implements Store in process memory
type memoryStore struct {
	// tokens maps token ID to the time its revocation lapses
	tokens map[string]time.Time

	mu      sync.RWMutex
	maxSize int
	now     func() time.Time
	closed  bool
}

// NewMemoryStore creates an in-memory store holding at most maxSize entries.
// When full, expired entries are dropped first and then the entries closest
// to expiry are evicted.
func NewMemoryStore(maxSize int) Store {
	return newMemoryStore(maxSize, time.Now)
}

func newMemoryStore(maxSize int, now func() time.Time) *memoryStore {
	if maxSize <= 0 {
		maxSize = DefaultConfig().MaxSize
	}
	return &memoryStore{
		tokens:  make(map[string]time.Time, min(maxSize, 1024)),
		maxSize: maxSize,
		now:     now,
	}
}

func (m *memoryStore) Add(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if _, exists := m.tokens[tokenID]; !exists && len(m.tokens) >= m.maxSize {
		m.cleanupExpiredUnsafe(m.now())

		if len(m.tokens) >= m.maxSize {
			m.evictOldestUnsafe(max(m.maxSize/10, 1))
		}
	}

	m.tokens[tokenID] = expiresAt
	return nil
}

func (m *memoryStore) Contains(_ context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}

	expiresAt, exists := m.tokens[tokenID]
	if !exists {
		return false, nil
	}

	// expired entries are left for Cleanup so reads never take the write lock
	return m.now().Before(expiresAt), nil
}

func (m *memoryStore) Remove(_ context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.tokens, tokenID)
	return nil
}

func (m *memoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	return m.cleanupExpiredUnsafe(m.now()), nil
}

func (m *memoryStore) Size(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	return len(m.tokens), nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	m.tokens = nil
	return nil
}

// cleanupExpiredUnsafe must be called with the write lock held
func (m *memoryStore) cleanupExpiredUnsafe(now time.Time) int {
	cleaned := 0
	for tokenID, expiresAt := range m.tokens {
		if !now.Before(expiresAt) {
			delete(m.tokens, tokenID)
			cleaned++
		}
	}
	return cleaned
}

// evictOldestUnsafe must be called with the write lock held
func (m *memoryStore) evictOldestUnsafe(count int) {
	type tokenAge struct {
		tokenID   string
		expiresAt time.Time
	}

	entries := make([]tokenAge, 0, len(m.tokens))
	for tokenID, expiresAt := range m.tokens {
		entries = append(entries, tokenAge{tokenID, expiresAt})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].expiresAt.Before(entries[j].expiresAt)
	})

	for i := 0; i < len(entries) && i < count; i++ {
		delete(m.tokens, entries[i].tokenID)
	}
}
