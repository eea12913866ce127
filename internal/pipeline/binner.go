package pipeline

import (
	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
)

// CompactedBin is a non-empty bin and its slice of Bins.TriangleIDs.
type CompactedBin struct {
	Bin    uint32
	Offset uint32
	Count  uint32
}

// Bins is the bin-to-triangle table in compressed sparse row form: the
// triangles overlapping bin b are TriangleIDs[Offsets[b] : Offsets[b]+Counts[b]],
// in increasing triangle id.
type Bins struct {
	Grid        parallel.BinGrid
	Counts      []uint32
	Offsets     []uint32
	Compacted   []CompactedBin
	TriangleIDs []uint32
}

// Entries returns the total number of (bin, triangle) pairs.
func (b *Bins) Entries() int { return len(b.TriangleIDs) }

// BinTriangles assigns every triangle to the bins its bounding box
// overlaps. It runs on the calling goroutine: the count and fill passes
// must visit bins in the same order.
func BinTriangles(grid parallel.BinGrid, a *arena.Arena, tris []Triangle) *Bins {
	n := grid.Count()
	counts := arena.NewSlice[uint32](a, n)

	forEachBin(grid, tris, func(_ uint32, bin int) {
		counts[bin]++
	})

	offsets := arena.NewSlice[uint32](a, n)
	var total uint32
	nonEmpty := 0
	for b, c := range counts {
		offsets[b] = total
		total += c
		if c > 0 {
			nonEmpty++
		}
	}

	ids := arena.NewSlice[uint32](a, int(total))
	cursors := arena.NewSlice[uint32](a, n)
	copy(cursors, offsets)
	forEachBin(grid, tris, func(id uint32, bin int) {
		ids[cursors[bin]] = id
		cursors[bin]++
	})

	compacted := arena.NewSlice[CompactedBin](a, nonEmpty)[:0]
	for b, c := range counts {
		if c > 0 {
			compacted = append(compacted, CompactedBin{Bin: uint32(b), Offset: offsets[b], Count: c})
		}
	}

	return &Bins{
		Grid:        grid,
		Counts:      counts,
		Offsets:     offsets,
		Compacted:   compacted,
		TriangleIDs: ids,
	}
}

// forEachBin calls fn for every (triangle, bin) overlap, triangles in id
// order and bins row-major.
func forEachBin(grid parallel.BinGrid, tris []Triangle, fn func(id uint32, bin int)) {
	for i := range tris {
		t := &tris[i]
		tx0, ty0, tx1, ty1, ok := grid.TileRange(int(t.MinX), int(t.MinY), int(t.MaxX), int(t.MaxY))
		if !ok {
			continue
		}
		for ty := ty0; ty <= ty1; ty++ {
			for tx := tx0; tx <= tx1; tx++ {
				fn(uint32(i), grid.Index(tx, ty))
			}
		}
	}
}
