package favorites

import (
	"testing"

	"github.com/TobiSchelling/climatenews/internal/history"
	"github.com/TobiSchelling/climatenews/internal/storage"
)

func item(id string) history.Item {
	return history.Item{ID: id, Title: "Article " + id, Content: "content " + id}
}

func TestAddIsIdempotent(t *testing.T) {
	f := Open(storage.NewMemory())

	if err := f.Add(item("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Add(item("a"))

	if got := len(f.List()); got != 1 {
		t.Errorf("expected 1 favorite after duplicate add, got %d", got)
	}
	if !f.IsFavorite("a") {
		t.Error("expected 'a' to be a favorite")
	}
}

func TestAddPrepends(t *testing.T) {
	f := Open(storage.NewMemory())
	f.Add(item("a"))
	f.Add(item("b"))

	list := f.List()
	if list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("expected newest favorite first, got %s,%s", list[0].ID, list[1].ID)
	}
}

func TestRemove(t *testing.T) {
	f := Open(storage.NewMemory())
	f.Add(item("a"))
	f.Add(item("b"))

	if err := f.Remove("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.IsFavorite("a") {
		t.Error("expected 'a' to be removed")
	}
	if !f.IsFavorite("b") {
		t.Error("expected 'b' to remain")
	}
}

func TestTags(t *testing.T) {
	f := Open(storage.NewMemory())

	f.AddTag(Tag{Label: "Wildfires", Type: TagConcern})
	f.AddTag(Tag{Label: "Wildfires", Type: TagConcern})
	f.AddTag(Tag{Label: "Wildfires", Type: TagCategory})
	f.AddTag(Tag{Label: "Europe", Type: TagGeographic})

	if got := len(f.Tags()); got != 3 {
		t.Fatalf("expected 3 tags, got %d", got)
	}
	if !f.IsTagFavorite("Wildfires", TagCategory) {
		t.Error("expected category tag to be favorite")
	}

	f.RemoveTag("Wildfires", TagConcern)
	if f.IsTagFavorite("Wildfires", TagConcern) {
		t.Error("expected concern tag removed")
	}
	if !f.IsTagFavorite("Wildfires", TagCategory) {
		t.Error("expected removal to match type as well as label")
	}

	geo := f.TagsOfType(TagGeographic)
	if len(geo) != 1 || geo[0].Label != "Europe" {
		t.Errorf("unexpected geographic tags: %+v", geo)
	}
}

func TestAddTagValidation(t *testing.T) {
	f := Open(storage.NewMemory())

	if err := f.AddTag(Tag{Label: "x", Type: "planet"}); err == nil {
		t.Error("expected error for invalid tag type")
	}
	if err := f.AddTag(Tag{Label: "  ", Type: TagConcern}); err == nil {
		t.Error("expected error for empty label")
	}
	if len(f.Tags()) != 0 {
		t.Error("expected no tags after rejected adds")
	}
}

func TestParseTagType(t *testing.T) {
	got, err := ParseTagType(" Category ")
	if err != nil || got != TagCategory {
		t.Errorf("expected category, got %q (%v)", got, err)
	}
	if _, err := ParseTagType("other"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestListsAreIndependent(t *testing.T) {
	mem := storage.NewMemory()
	f := Open(mem)
	f.AddTag(Tag{Label: "Oceans", Type: TagCategory})

	if len(f.List()) != 0 {
		t.Error("expected tag favorites not to create article favorites")
	}

	reloaded := Open(mem)
	if !reloaded.IsTagFavorite("Oceans", TagCategory) {
		t.Error("expected tag to persist")
	}
}

func TestOpenCorrupt(t *testing.T) {
	mem := storage.NewMemory()
	mem.Set(storage.FavoritesKey, []byte("["))
	mem.Set(storage.FavoriteTagsKey, []byte("{"))

	f := Open(mem)
	if len(f.List()) != 0 || len(f.Tags()) != 0 {
		t.Error("expected empty lists for corrupt blobs")
	}
}
