package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Stats().Capacity != 100 {
		t.Errorf("expected capacity 100, got %d", c.Stats().Capacity)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)

	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected nonexistent key to not exist")
	}

	c.Set("key1", 43)
	if val, _ := c.Get("key1"); val != 43 {
		t.Errorf("expected replaced value 43, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after replace, got %d", c.Len())
	}
}

func TestCacheGetOrLoad(t *testing.T) {
	c := New[string, int](10)
	loads := 0

	val, err := c.GetOrLoad("key1", func() (int, error) {
		loads++
		return 100, nil
	})
	if err != nil || val != 100 {
		t.Errorf("GetOrLoad() = %d, %v, want 100, nil", val, err)
	}

	val, _ = c.GetOrLoad("key1", func() (int, error) {
		loads++
		return 200, nil
	})
	if val != 100 {
		t.Errorf("expected 100 (cached), got %d", val)
	}
	if loads != 1 {
		t.Errorf("expected load called once, got %d", loads)
	}
}

func TestCacheGetOrLoad_Error(t *testing.T) {
	c := New[string, int](10)
	errLoad := errors.New("load failed")

	if _, err := c.GetOrLoad("bad", func() (int, error) { return 0, errLoad }); !errors.Is(err, errLoad) {
		t.Errorf("GetOrLoad() error = %v, want %v", err, errLoad)
	}
	if c.Len() != 0 {
		t.Errorf("failed load was stored: %d entries", c.Len())
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so "b" becomes the oldest.
	c.Get("a")
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to remain", k)
		}
	}
	if st := c.Stats(); st.Len != 3 || st.Evictions != 1 {
		t.Errorf("Stats() = %+v, want Len 3 Evictions 1", st)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 42)
	c.Set("key2", 43)

	if !c.Delete("key1") {
		t.Error("expected Delete to return true for existing key")
	}
	if c.Delete("key1") {
		t.Error("expected Delete to return false for missing key")
	}
	if _, ok := c.Get("key2"); !ok {
		t.Error("expected key2 to survive deleting key1")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](10)
	for i := range 5 {
		c.Set(strconv.Itoa(i), i)
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	c.Set("x", 1)
	if v, ok := c.Get("x"); !ok || v != 1 {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheUnlimited(t *testing.T) {
	c := New[int, int](0)
	for i := range 1000 {
		c.Set(i, i)
	}
	if c.Len() != 1000 {
		t.Errorf("expected 1000 entries, got %d", c.Len())
	}
}

func TestCacheStats_HitsMisses(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	st := c.Stats()
	if st.Hits != 2 || st.Misses != 1 {
		t.Errorf("Hits = %d Misses = %d, want 2 and 1", st.Hits, st.Misses)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := (g*7 + i) % 32
				v, err := c.GetOrLoad(k, func() (int, error) { return k * 2, nil })
				if err != nil || v != k*2 {
					t.Errorf("GetOrLoad(%d) = %d, %v", k, v, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("Len() = %d exceeds capacity 16", c.Len())
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[string, int](1000)
	for i := range 100 {
		c.Set(strconv.Itoa(i), i)
	}

	for b.Loop() {
		c.Get("50")
	}
}
