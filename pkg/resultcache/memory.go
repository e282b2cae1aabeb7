package resultcache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	key     string
	entry   Entry
	expires time.Time
}

// MemoryStore is a thread-safe LRU store. When it reaches its capacity the
// least recently used entry is evicted.
type MemoryStore struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithTTL expires entries d after they are written. Zero keeps them until
// evicted.
func WithTTL(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a store holding at most capacity entries.
// The capacity must be positive, otherwise it panics.
func NewMemoryStore(capacity int, opts ...MemoryOption) *MemoryStore {
	if capacity <= 0 {
		panic("resultcache: memory store capacity must be positive")
	}
	s := &MemoryStore{
		capacity: capacity,
		now:      time.Now,
		items:    make(map[string]*list.Element, capacity),
		eviction: list.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get marks the entry as recently used. Expired entries are dropped.
func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return Entry{}, false, nil
	}
	item := elem.Value.(*memoryItem)
	if !item.expires.IsZero() && !s.now().Before(item.expires) {
		s.removeElement(elem)
		return Entry{}, false, nil
	}
	s.eviction.MoveToFront(elem)
	return item.entry, true, nil
}

// Set adds or replaces the entry under key.
func (s *MemoryStore) Set(_ context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expires time.Time
	if s.ttl > 0 {
		expires = s.now().Add(s.ttl)
	}

	if elem, ok := s.items[key]; ok {
		s.eviction.MoveToFront(elem)
		item := elem.Value.(*memoryItem)
		item.entry, item.expires = e, expires
		return nil
	}

	s.items[key] = s.eviction.PushFront(&memoryItem{key: key, entry: e, expires: expires})
	if s.eviction.Len() > s.capacity {
		if oldest := s.eviction.Back(); oldest != nil {
			s.removeElement(oldest)
		}
	}
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eviction.Len()
}

// Clear removes every entry.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*list.Element, s.capacity)
	s.eviction.Init()
}

// Must be called with lock held.
func (s *MemoryStore) removeElement(elem *list.Element) {
	s.eviction.Remove(elem)
	delete(s.items, elem.Value.(*memoryItem).key)
}
