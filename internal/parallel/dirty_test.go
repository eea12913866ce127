package parallel

import (
	"slices"
	"sync"
	"testing"
)

// =============================================================================
// DirtyRegion Tests
// =============================================================================

func TestDirtyRegion_Create(t *testing.T) {
	tests := []struct {
		name   string
		bins   int
		wantOK bool
	}{
		{"single", 1, true},
		{"one word", 64, true},
		{"two words", 65, true},
		{"zero", 0, false},
		{"negative", -3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr := NewDirtyRegion(tt.bins)
			if (dr != nil) != tt.wantOK {
				t.Fatalf("NewDirtyRegion(%d) nil = %v, want %v", tt.bins, dr == nil, !tt.wantOK)
			}
			if dr != nil && dr.Count() != 0 {
				t.Errorf("new region Count() = %d, want 0", dr.Count())
			}
		})
	}
}

func TestDirtyRegion_MarkAndQuery(t *testing.T) {
	dr := NewDirtyRegion(100)

	dr.Mark(0)
	dr.Mark(63)
	dr.Mark(64)
	dr.Mark(99)
	dr.Mark(99)
	dr.Mark(-1)
	dr.Mark(100)

	if dr.Count() != 4 {
		t.Errorf("Count() = %d, want 4", dr.Count())
	}
	for _, bin := range []int{0, 63, 64, 99} {
		if !dr.IsDirty(bin) {
			t.Errorf("IsDirty(%d) = false, want true", bin)
		}
	}
	for _, bin := range []int{1, 62, 65, -1, 100} {
		if dr.IsDirty(bin) {
			t.Errorf("IsDirty(%d) = true, want false", bin)
		}
	}
}

func TestDirtyRegion_MarkAllClear(t *testing.T) {
	dr := NewDirtyRegion(70)

	dr.MarkAll()
	if dr.Count() != 70 {
		t.Errorf("after MarkAll Count() = %d, want 70", dr.Count())
	}
	dr.Clear()
	if dr.Count() != 0 {
		t.Errorf("after Clear Count() = %d, want 0", dr.Count())
	}
}

func TestDirtyRegion_Drain(t *testing.T) {
	dr := NewDirtyRegion(200)
	want := []int{3, 64, 130, 199}
	for _, b := range slices.Backward(want) {
		dr.Mark(b)
	}

	if dr.Count() != len(want) {
		t.Errorf("Count() = %d, want %d", dr.Count(), len(want))
	}

	var seen []int
	dr.Drain(func(bin int) { seen = append(seen, bin) })
	if !slices.Equal(seen, want) {
		t.Errorf("Drain = %v, want %v", seen, want)
	}
	if dr.Count() != 0 {
		t.Errorf("after Drain Count() = %d, want 0", dr.Count())
	}
}

func TestDirtyRegion_ConcurrentMark(t *testing.T) {
	dr := NewDirtyRegion(1024)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := g; b < 1024; b += 8 {
				dr.Mark(b)
			}
		}()
	}
	wg.Wait()

	if dr.Count() != 1024 {
		t.Errorf("Count() = %d, want 1024", dr.Count())
	}
}
