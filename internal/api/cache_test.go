package api

import (
	"testing"

	"github.com/fundmatch/fundmatch/internal/marketplace"
)

func opp(id string) *marketplace.OpportunityRow {
	return &marketplace.OpportunityRow{ID: id, Title: "Opportunity " + id}
}

func TestCatalogCachePutGet(t *testing.T) {
	c := NewCatalogCache(3)

	c.Put("a", opp("a"))
	got := c.Get("a")
	if got == nil || got.ID != "a" {
		t.Fatalf("Get(a) = %v, want opportunity a", got)
	}
	if c.Get("missing") != nil {
		t.Error("Get(missing) should return nil")
	}
}

func TestCatalogCacheEvictsOldest(t *testing.T) {
	c := NewCatalogCache(2)

	c.Put("a", opp("a"))
	c.Put("b", opp("b"))
	c.Put("c", opp("c"))

	if c.Get("a") != nil {
		t.Error("a should have been evicted")
	}
	if c.Get("b") == nil || c.Get("c") == nil {
		t.Error("b and c should still be cached")
	}
}

func TestCatalogCacheGetRefreshesRecency(t *testing.T) {
	c := NewCatalogCache(2)

	c.Put("a", opp("a"))
	c.Put("b", opp("b"))
	c.Get("a") // a is now most recently used
	c.Put("c", opp("c"))

	if c.Get("b") != nil {
		t.Error("b should have been evicted")
	}
	if c.Get("a") == nil {
		t.Error("a should still be cached after recent Get")
	}
}

func TestCatalogCacheInvalidate(t *testing.T) {
	c := NewCatalogCache(3)

	c.Put("a", opp("a"))
	c.Invalidate("a")
	if c.Get("a") != nil {
		t.Error("a should be gone after Invalidate")
	}

	// Invalidating an absent key is a no-op.
	c.Invalidate("missing")
}

func TestCatalogCacheDefaultSize(t *testing.T) {
	c := NewCatalogCache(0)
	if c.maxSize != 20 {
		t.Errorf("maxSize = %d, want 20", c.maxSize)
	}
}
