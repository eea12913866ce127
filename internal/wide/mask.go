package wide

import "math/bits"

// Mask8 holds one bit per lane. Bit i is lane i.
type Mask8 uint8

// AllLanes has every lane active.
const AllLanes Mask8 = 0xFF

// LaneRange returns a mask with lanes [lo, hi] set (inclusive).
// Out-of-range bounds are clamped; an empty range yields 0.
func LaneRange(lo, hi int) Mask8 {
	lo = max(lo, 0)
	hi = min(hi, Lanes-1)
	if lo > hi {
		return 0
	}
	return Mask8((0xFF >> (Lanes - 1 - hi + lo)) << lo)
}

// Active reports whether lane i is set.
func (m Mask8) Active(i int) bool {
	return m&(1<<i) != 0
}

// Count returns the number of active lanes.
func (m Mask8) Count() int {
	return bits.OnesCount8(uint8(m))
}
