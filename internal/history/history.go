// Package history persists previously analysed articles, newest first.
package history

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/TobiSchelling/climatenews/internal/agent"
	"github.com/TobiSchelling/climatenews/internal/storage"
)

// titleLength is the number of characters of content kept as a title.
const titleLength = 60

// Item is one analysed article.
type Item struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Content     string                  `json:"content"`
	Analysis    *agent.AnalysisResponse `json:"analysis,omitempty"`
	RawAnalysis string                  `json:"rawAnalysis,omitempty"`
	Timestamp   int64                   `json:"timestamp"`
}

// Time returns the item's creation time.
func (i Item) Time() time.Time {
	return time.UnixMilli(i.Timestamp)
}

// Store is the persisted analysis history.
type Store struct {
	mu    sync.Mutex
	store storage.Store
	items []Item
	now   func() time.Time
}

// Open loads the history from s. A missing or corrupt blob yields an
// empty history.
func Open(s storage.Store) *Store {
	h := &Store{store: s, now: time.Now}
	var items []Item
	if storage.Load(s, storage.HistoryKey, &items) {
		h.items = items
	}
	return h
}

// Title derives a display title from article content.
func Title(content string) string {
	if utf8.RuneCountInString(content) <= titleLength {
		return strings.TrimSpace(content)
	}
	runes := []rune(content)
	return strings.TrimSpace(string(runes[:titleLength])) + "..."
}

// Add records a new analysis at the head of the history.
func (h *Store) Add(content string, analysis agent.Field[agent.AnalysisResponse]) (Item, error) {
	item := Item{
		ID:          uuid.NewString(),
		Title:       Title(content),
		Content:     content,
		Analysis:    analysis.Parsed,
		RawAnalysis: analysis.Raw,
		Timestamp:   h.now().UnixMilli(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items := make([]Item, 0, len(h.items)+1)
	items = append(items, item)
	items = append(items, h.items...)
	if err := h.save(items); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Remove deletes the item with id. Unknown ids are ignored.
func (h *Store) Remove(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := make([]Item, 0, len(h.items))
	for _, it := range h.items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return h.save(items)
}

// Clear deletes every item.
func (h *Store) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.save([]Item{})
}

// Get looks up an item by id.
func (h *Store) Get(id string) (Item, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, it := range h.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// List returns the history, newest first.
func (h *Store) List() []Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Item(nil), h.items...)
}

// Len returns the number of items.
func (h *Store) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

func (h *Store) save(items []Item) error {
	if err := storage.Save(h.store, storage.HistoryKey, items); err != nil {
		return err
	}
	h.items = items
	return nil
}
