package arena

import (
	"fmt"
	"sync/atomic"
)

// BumpAllocator hands out consecutive slot indices from a fixed capacity
// with a single atomic fetch-and-add.
//
// Concurrent callers receive distinct slots, but which caller gets which
// slot depends on scheduling: the final order of allocated items is not
// deterministic across runs. Exceeding the capacity panics; there is no
// growth.
type BumpAllocator struct {
	next     atomic.Int64
	capacity int
}

// NewBumpAllocator creates an allocator for slots [0, capacity).
func NewBumpAllocator(capacity int) *BumpAllocator {
	return &BumpAllocator{capacity: max(capacity, 0)}
}

// Alloc reserves the next slot and returns its index.
func (b *BumpAllocator) Alloc() int {
	slot := int(b.next.Add(1) - 1)
	if slot >= b.capacity {
		panic(fmt.Sprintf("arena: bump allocator overflow (capacity %d)", b.capacity))
	}
	return slot
}

// Len returns the number of slots handed out.
func (b *BumpAllocator) Len() int {
	return min(int(b.next.Load()), b.capacity)
}

// Reset returns every slot. Not safe to call concurrently with Alloc.
func (b *BumpAllocator) Reset() { b.next.Store(0) }
