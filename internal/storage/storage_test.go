package storage

import (
	"testing"
)

func TestLoadMissingKey(t *testing.T) {
	m := NewMemory()
	var v []string
	if Load(m, HistoryKey, &v) {
		t.Error("expected false for missing key")
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := NewMemory()
	if err := Save(m, FavoritesKey, []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var v []string
	if !Load(m, FavoritesKey, &v) {
		t.Fatal("expected stored value to load")
	}
	if len(v) != 2 || v[0] != "a" || v[1] != "b" {
		t.Errorf("unexpected value: %v", v)
	}
}

func TestLoadCorruptBlob(t *testing.T) {
	m := NewMemory()
	m.Set(ProfileKey, []byte("{not json"))

	v := map[string]string{"keep": "me"}
	if Load(m, ProfileKey, &v) {
		t.Error("expected false for corrupt blob")
	}
	if v["keep"] != "me" {
		t.Error("expected target to be left untouched")
	}
}

func TestSubscribe(t *testing.T) {
	m := NewMemory()

	var got []string
	unsubscribe := m.Subscribe(HistoryKey, func(value []byte) {
		got = append(got, string(value))
	})

	m.Set(HistoryKey, []byte("one"))
	m.Set(ProfileKey, []byte("other key"))
	unsubscribe()
	m.Set(HistoryKey, []byte("two"))

	if len(got) != 1 || got[0] != "one" {
		t.Errorf("expected exactly one notification, got %v", got)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	m.Set("k", buf)
	buf[0] = 'z'

	v, ok, _ := m.Get("k")
	if !ok || string(v) != "abc" {
		t.Errorf("expected stored copy 'abc', got %q", v)
	}
}
