// Package arena provides the per-draw memory of the rasterization pipeline:
// a typed slab arena reused across draws, stride-aware views over vertex
// records and attribute registers, and the atomic bump allocator that hands
// out triangle slots during primitive assembly.
package arena

import (
	"reflect"
)

// Arena hands out typed slices that live until the next Reset.
//
// Slabs are kept per element type and reused in allocation order, so a
// renderer issuing the same sequence of allocations every draw stops
// allocating after the first frame. An Arena is not safe for concurrent
// use; stages allocate before they fork.
type Arena struct {
	typedSlabs map[reflect.Type]*slabs
}

type slabs struct {
	items []any // []T per allocation slot
	next  int
	bytes func(any) int
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{typedSlabs: make(map[reflect.Type]*slabs)}
}

// NewSlice returns a zeroed slice of n elements owned by a.
// The slice is valid until a.Reset.
func NewSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	typ := reflect.TypeFor[T]()
	ss := a.typedSlabs[typ]
	if ss == nil {
		ss = &slabs{bytes: func(v any) int {
			return cap(v.([]T)) * int(typ.Size())
		}}
		a.typedSlabs[typ] = ss
	}
	if ss.next == len(ss.items) {
		ss.items = append(ss.items, []T(nil))
	}

	s, _ := ss.items[ss.next].([]T)
	if cap(s) < n {
		s = make([]T, n, growCap(cap(s), n))
		ss.items[ss.next] = s
	}
	ss.next++

	s = s[:n]
	clear(s)
	return s
}

func growCap(old, n int) int {
	const growThreshold = 256
	c := old
	if c == 0 {
		return n
	}
	for c < n {
		if c < growThreshold {
			c *= 2
		} else {
			c += c / 4
		}
	}
	return c
}

// Reset makes every slab available again. Slices handed out earlier must
// not be used afterwards.
func (a *Arena) Reset() {
	for _, ss := range a.typedSlabs {
		ss.next = 0
	}
}

// Footprint returns the number of bytes retained by the arena.
func (a *Arena) Footprint() int {
	n := 0
	for _, ss := range a.typedSlabs {
		for _, item := range ss.items {
			n += ss.bytes(item)
		}
	}
	return n
}
