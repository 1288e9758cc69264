package cache

import (
	"testing"
	"time"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[int](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Errorf("Get(a) = (%d, %v), want (1, true)", got, ok)
	}

	c.Set("a", 2)
	got, _ = c.Get("a")
	if got != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string](2, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // a is now the most recent
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction, want it dropped as least recently used")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was evicted despite being recently used")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c missing right after Set")
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	c := NewLRU[int](4, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry still returned")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired lookup, want 0", c.Len())
	}
}

func TestLRU_Delete(t *testing.T) {
	c := NewLRU[int](4, time.Minute)

	c.Set("a", 1)
	c.Delete("a")
	c.Delete("never-set")

	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still returned")
	}
}

func TestLRU_CleanExpired(t *testing.T) {
	c := NewLRU[int](8, 10*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)

	if got := c.CleanExpired(); got != 2 {
		t.Errorf("CleanExpired() = %d, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d after cleanup, want 1", c.Len())
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("fresh entry removed by cleanup")
	}
}
