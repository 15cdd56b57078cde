// Package storage defines the key/value store that backs persisted
// application state (profile, history, favorites).
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Keys under which application state is persisted.
const (
	ProfileKey      = "climate-news-profile"
	HistoryKey      = "climate-news-article-history"
	FavoritesKey    = "climate-news-favorites"
	FavoriteTagsKey = "climate-news-favorite-tags"
)

// Store is a key/value blob store with change notification.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Subscribe registers fn to be called after every Set on key.
	// The returned function removes the subscription.
	Subscribe(key string, fn func(value []byte)) func()
}

// Load decodes the JSON blob stored under key into v.
// It reports false when the key is missing, unreadable, or corrupt;
// v is left untouched in that case.
func Load(s Store, key string, v any) bool {
	data, ok, err := s.Get(key)
	if err != nil {
		log.Printf("Failed to read %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Discarding corrupt %s: %v", key, err)
		return false
	}
	return true
}

// Save encodes v as JSON and stores it under key.
func Save(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Subscribers is a registry of per-key change callbacks. Store
// implementations embed it to provide Subscribe.
type Subscribers struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func([]byte)
}

// Subscribe registers fn for key.
func (s *Subscribers) Subscribe(key string, fn func([]byte)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[string]map[int]func([]byte))
	}
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func([]byte))
	}
	id := s.nextID
	s.nextID++
	s.subs[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

// Notify calls every subscriber of key with value.
// Callbacks run outside the registry lock.
func (s *Subscribers) Notify(key string, value []byte) {
	s.mu.Lock()
	fns := make([]func([]byte), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// Memory is an in-process Store.
type Memory struct {
	Subscribers
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	m.data[key] = v
	m.mu.Unlock()

	m.Notify(key, v)
	return nil
}
