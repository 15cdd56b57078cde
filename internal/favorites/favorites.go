// Package favorites keeps the user's starred analyses and interest tags.
//
// The two lists are independent: a favorite tag need not belong to any
// favorited article.
package favorites

import (
	"fmt"
	"strings"
	"sync"

	"github.com/TobiSchelling/climatenews/internal/history"
	"github.com/TobiSchelling/climatenews/internal/storage"
)

// TagType classifies a favorite tag.
type TagType string

const (
	TagConcern    TagType = "concern"
	TagCategory   TagType = "category"
	TagGeographic TagType = "geographic"
)

// TagTypes lists the accepted tag types.
var TagTypes = []TagType{TagConcern, TagCategory, TagGeographic}

// Valid reports whether t is a known tag type.
func (t TagType) Valid() bool {
	for _, v := range TagTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParseTagType converts s to a TagType.
func ParseTagType(s string) (TagType, error) {
	t := TagType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid tag type %q (expected concern, category or geographic)", s)
	}
	return t, nil
}

// Tag is a favorite interest keyed by label and type.
type Tag struct {
	Label string  `json:"label"`
	Type  TagType `json:"type"`
}

// Store holds both favorite lists.
type Store struct {
	mu    sync.Mutex
	store storage.Store
	items []history.Item
	tags  []Tag
}

// Open loads both lists from s. Missing or corrupt blobs yield empty lists.
func Open(s storage.Store) *Store {
	f := &Store{store: s}
	var items []history.Item
	if storage.Load(s, storage.FavoritesKey, &items) {
		f.items = items
	}
	var tags []Tag
	if storage.Load(s, storage.FavoriteTagsKey, &tags) {
		f.tags = tags
	}
	return f
}

// Add stars item. Adding an id that is already a favorite is a no-op.
func (f *Store) Add(item history.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, it := range f.items {
		if it.ID == item.ID {
			return nil
		}
	}
	items := make([]history.Item, 0, len(f.items)+1)
	items = append(items, item)
	items = append(items, f.items...)
	return f.saveItems(items)
}

// Remove unstars the item with id.
func (f *Store) Remove(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]history.Item, 0, len(f.items))
	for _, it := range f.items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return f.saveItems(items)
}

// IsFavorite reports whether id is starred.
func (f *Store) IsFavorite(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// List returns the starred items, most recently starred first.
func (f *Store) List() []history.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]history.Item(nil), f.items...)
}

// AddTag records tag. Duplicate (label, type) pairs are ignored.
func (f *Store) AddTag(tag Tag) error {
	if !tag.Type.Valid() {
		return fmt.Errorf("invalid tag type %q", tag.Type)
	}
	tag.Label = strings.TrimSpace(tag.Label)
	if tag.Label == "" {
		return fmt.Errorf("tag label is required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hasTag(tag.Label, tag.Type) {
		return nil
	}
	tags := append(append([]Tag(nil), f.tags...), tag)
	return f.saveTags(tags)
}

// RemoveTag removes the tag matching both label and type.
func (f *Store) RemoveTag(label string, typ TagType) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tags := make([]Tag, 0, len(f.tags))
	for _, t := range f.tags {
		if t.Label != label || t.Type != typ {
			tags = append(tags, t)
		}
	}
	return f.saveTags(tags)
}

// IsTagFavorite reports whether (label, typ) is a favorite tag.
func (f *Store) IsTagFavorite(label string, typ TagType) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasTag(label, typ)
}

// Tags returns every favorite tag in insertion order.
func (f *Store) Tags() []Tag {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Tag(nil), f.tags...)
}

// TagsOfType returns the favorite tags of one type.
func (f *Store) TagsOfType(typ TagType) []Tag {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Tag
	for _, t := range f.tags {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

func (f *Store) hasTag(label string, typ TagType) bool {
	for _, t := range f.tags {
		if t.Label == label && t.Type == typ {
			return true
		}
	}
	return false
}

func (f *Store) saveItems(items []history.Item) error {
	if err := storage.Save(f.store, storage.FavoritesKey, items); err != nil {
		return err
	}
	f.items = items
	return nil
}

func (f *Store) saveTags(tags []Tag) error {
	if err := storage.Save(f.store, storage.FavoriteTagsKey, tags); err != nil {
		return err
	}
	f.tags = tags
	return nil
}
