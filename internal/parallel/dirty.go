package parallel

import (
	"math/bits"
	"sync/atomic"
)

// DirtyRegion tracks which bins were written using an atomic bitmap.
//
// The pixel stage marks every bin it writes back; a presentation layer
// drains the set to upload only changed tiles. One bit per bin, packed into
// uint64 words. All methods are safe for concurrent use.
type DirtyRegion struct {
	// words is the bitmap. Bit index = bin index.
	words []atomic.Uint64
	bins  int
}

// NewDirtyRegion creates a tracker for a grid of the given bin count.
// All bins start clean. Returns nil if bins is not positive.
func NewDirtyRegion(bins int) *DirtyRegion {
	if bins <= 0 {
		return nil
	}
	return &DirtyRegion{
		words: make([]atomic.Uint64, (bins+63)/64),
		bins:  bins,
	}
}

// Mark marks one bin dirty. Out-of-range indices are ignored.
func (d *DirtyRegion) Mark(bin int) {
	if bin < 0 || bin >= d.bins {
		return
	}
	d.words[bin>>6].Or(1 << (bin & 63))
}

// MarkAll marks every bin dirty.
func (d *DirtyRegion) MarkAll() {
	full := d.bins / 64
	for i := range full {
		d.words[i].Store(^uint64(0))
	}
	if rem := d.bins % 64; rem > 0 {
		d.words[full].Store(uint64(1)<<rem - 1)
	}
}

// Clear marks every bin clean.
func (d *DirtyRegion) Clear() {
	for i := range d.words {
		d.words[i].Store(0)
	}
}

// IsDirty reports whether bin is marked. Out-of-range indices report false.
func (d *DirtyRegion) IsDirty(bin int) bool {
	if bin < 0 || bin >= d.bins {
		return false
	}
	return d.words[bin>>6].Load()&(1<<(bin&63)) != 0
}

// Count returns the number of dirty bins.
func (d *DirtyRegion) Count() int {
	n := 0
	for i := range d.words {
		n += bits.OnesCount64(d.words[i].Load())
	}
	return n
}

// Drain calls fn for every dirty bin in ascending index order and clears
// each word as it is read. Bins marked concurrently are either reported now
// or kept for the next Drain, never lost.
func (d *DirtyRegion) Drain(fn func(bin int)) {
	for w := range d.words {
		visitBits(w, d.words[w].Swap(0), fn)
	}
}

func visitBits(word int, bitsSet uint64, fn func(bin int)) {
	for bitsSet != 0 {
		b := bits.TrailingZeros64(bitsSet)
		fn(word*64 + b)
		bitsSet &^= 1 << b
	}
}
