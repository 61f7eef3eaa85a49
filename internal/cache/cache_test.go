package cache

import (
	"testing"
	"time"
)

// TestCache_New tests cache creation.
func TestCache_New(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.store == nil {
		t.Error("cache store not initialized")
	}
}

// TestCache_BasicOperations tests Get, Set, and Delete.
func TestCache_BasicOperations(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	t.Run("Set and Get", func(t *testing.T) {
		c.Set("agency|DOJ", "DOJ")

		val, found := c.Get("agency|DOJ")
		if !found {
			t.Error("expected agency|DOJ to be found")
		}
		if val != "DOJ" {
			t.Errorf("expected DOJ, got %v", val)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, found := c.Get("nonexistent"); found {
			t.Error("expected nonexistent key to not be found")
		}
	})

	t.Run("Set and Delete", func(t *testing.T) {
		c.Set("key2", "value2")
		c.Delete("key2")

		if _, found := c.Get("key2"); found {
			t.Error("expected key2 to be deleted")
		}
	})
}

// TestCache_Expiration tests that entries expire after the TTL.
func TestCache_Expiration(t *testing.T) {
	c := New(20*time.Millisecond, time.Minute)
	c.Set("short", "lived")

	time.Sleep(40 * time.Millisecond)
	if _, found := c.Get("short"); found {
		t.Error("expected entry to expire")
	}
}

// TestCache_Stats tests hit and miss accounting.
func TestCache_Stats(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	stats := c.GetStats()
	if stats.ItemCount != 1 || stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	c.Clear()
	if stats := c.GetStats(); stats != (Stats{}) {
		t.Errorf("expected zero stats after Clear, got %+v", stats)
	}
}
