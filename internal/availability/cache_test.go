package availability

import (
	"fmt"
	"testing"
	"time"
)

func TestSlotCacheGetAndExpiry(t *testing.T) {
	cache := NewSlotCache(10, 50*time.Millisecond)
	defer cache.Stop()

	key := Key("loc1", "2026-08-25", "treat1")
	cache.Set(key, []Slot{{Minute: 540, Start: "09:00"}})

	slots, ok := cache.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(slots) != 1 || slots[0].Start != "09:00" {
		t.Errorf("unexpected cached slots: %+v", slots)
	}

	time.Sleep(60 * time.Millisecond)

	if _, ok := cache.Get(key); ok {
		t.Error("expected entry to expire after TTL")
	}
}

func TestSlotCacheMiss(t *testing.T) {
	cache := NewSlotCache(10, time.Minute)
	defer cache.Stop()

	if _, ok := cache.Get(Key("loc1", "2026-08-25", "treat1")); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestSlotCacheEvictsOldestAtCapacity(t *testing.T) {
	cache := NewSlotCache(3, time.Minute)
	defer cache.Stop()

	for i := 0; i < 3; i++ {
		cache.Set(Key("loc1", fmt.Sprintf("2026-08-%02d", 25+i), "treat1"), []Slot{})
		time.Sleep(2 * time.Millisecond)
	}

	cache.Set(Key("loc2", "2026-08-25", "treat1"), []Slot{})

	if cache.Len() != 3 {
		t.Fatalf("expected cache to stay at capacity 3, got %d", cache.Len())
	}
	if _, ok := cache.Get(Key("loc1", "2026-08-25", "treat1")); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if _, ok := cache.Get(Key("loc2", "2026-08-25", "treat1")); !ok {
		t.Error("expected newest entry to be present")
	}
}

func TestSlotCacheOverwriteDoesNotEvict(t *testing.T) {
	cache := NewSlotCache(2, time.Minute)
	defer cache.Stop()

	keyA := Key("loc1", "2026-08-25", "treat1")
	keyB := Key("loc1", "2026-08-26", "treat1")
	cache.Set(keyA, []Slot{})
	cache.Set(keyB, []Slot{})

	cache.Set(keyA, []Slot{{Minute: 600, Start: "10:00"}})

	if cache.Len() != 2 {
		t.Errorf("expected 2 entries after overwrite, got %d", cache.Len())
	}
	if _, ok := cache.Get(keyB); !ok {
		t.Error("overwrite of an existing key should not evict others")
	}
}

func TestSlotCacheInvalidateByLocation(t *testing.T) {
	cache := NewSlotCache(10, time.Minute)
	defer cache.Stop()

	cache.Set(Key("loc1", "2026-08-25", "treat1"), []Slot{})
	cache.Set(Key("loc1", "2026-08-26", "treat2"), []Slot{})
	cache.Set(Key("loc2", "2026-08-25", "treat1"), []Slot{})

	cache.Invalidate("loc1")

	if _, ok := cache.Get(Key("loc1", "2026-08-25", "treat1")); ok {
		t.Error("expected loc1 entries to be invalidated")
	}
	if _, ok := cache.Get(Key("loc1", "2026-08-26", "treat2")); ok {
		t.Error("expected loc1 entries to be invalidated")
	}
	if _, ok := cache.Get(Key("loc2", "2026-08-25", "treat1")); !ok {
		t.Error("expected loc2 entry to survive")
	}
}
