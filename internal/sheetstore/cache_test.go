package sheetstore

import (
	"testing"
	"time"
)

func TestCacheServesWithinTTL(t *testing.T) {
	cache := newTableCache(5 * time.Minute)
	current := time.Unix(0, 0)
	cache.now = func() time.Time { return current }

	values := [][]string{{"header"}, {"row"}}
	cache.set("k", values)

	got, ok := cache.get("k")
	if !ok || len(got) != 2 {
		t.Fatalf("get = (%v, %v), want cached values", got, ok)
	}

	current = current.Add(5 * time.Minute)
	if _, ok := cache.get("k"); !ok {
		t.Fatal("entry expired exactly at TTL, want it still served")
	}

	current = current.Add(time.Second)
	if _, ok := cache.get("k"); ok {
		t.Fatal("entry served past TTL")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := newTableCache(time.Minute)
	cache.set("k", [][]string{{"x"}})
	cache.invalidate("k")
	if _, ok := cache.get("k"); ok {
		t.Fatal("invalidated entry still served")
	}
}

func TestCacheDisabledByZeroTTL(t *testing.T) {
	cache := newTableCache(0)
	cache.set("k", [][]string{{"x"}})
	if _, ok := cache.get("k"); ok {
		t.Fatal("zero TTL cache served an entry")
	}
}

func TestCacheKeysAreIndependent(t *testing.T) {
	cache := newTableCache(time.Minute)
	cache.set("a", [][]string{{"a"}})
	cache.set("b", [][]string{{"b"}})
	cache.invalidate("a")
	if _, ok := cache.get("b"); !ok {
		t.Fatal("invalidating one key dropped another")
	}
}
