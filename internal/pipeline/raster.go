package pipeline

import (
	"sync/atomic"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
	"github.com/gogpu/raster3d/internal/wide"
)

// TileInfo is the coverage of one triangle in one bin. Bit row*8+col of
// Mask is tile-local pixel (col, row).
type TileInfo struct {
	TriangleID uint32
	Mask       uint64
}

// Rasterize computes the coverage mask of every bin entry. The result is
// parallel to bins.TriangleIDs. Entries rejected by the hierarchical depth
// test get an empty mask; their count is returned as well.
func Rasterize(cfg *Config, pool *parallel.WorkerPool, a *arena.Arena, prims *Primitives, bins *Bins) ([]TileInfo, int) {
	infos := arena.NewSlice[TileInfo](a, bins.Entries())
	var rejected atomic.Int64

	pool.ParallelFor(len(bins.Compacted), binGrain(cfg), func(lo, hi int) {
		var local int64
		for _, cb := range bins.Compacted[lo:hi] {
			bin := int(cb.Bin)
			ox, oy := bins.Grid.Origin(bin)
			valid := bins.Grid.ValidMask(bin)
			tileMin := cfg.Target.TileMin[bin]

			for j := cb.Offset; j < cb.Offset+cb.Count; j++ {
				id := bins.TriangleIDs[j]
				t := &prims.Triangles[id]
				if cfg.hierZRejects(t.MaxDepth, tileMin) {
					infos[j] = TileInfo{TriangleID: id}
					local++
					continue
				}
				infos[j] = TileInfo{TriangleID: id, Mask: coverage(t, ox, oy) & valid}
			}
		}
		rejected.Add(local)
	})
	return infos, int(rejected.Load())
}

// binGrain is the number of bins per parallel chunk.
func binGrain(cfg *Config) int {
	return max(cfg.grain()/parallel.TilePixels, 1)
}

// coverage evaluates the edge functions of t over the tile at pixel origin
// (ox, oy), one 8-lane row at a time, restricted to the bounding box.
func coverage(t *Triangle, ox, oy int) uint64 {
	c0 := int(t.MinX) - ox
	c1 := int(t.MaxX) - ox
	r0 := max(int(t.MinY)-oy, 0)
	r1 := min(int(t.MaxY)-oy, parallel.TileSize-1)
	cols := wide.LaneRange(c0, c1)
	if cols == 0 || r0 > r1 {
		return 0
	}

	var d [3]wide.I64x8
	for k, e := range t.Edges {
		d[k] = wide.RampI64(e.Eval(int64(ox), int64(oy+r0)), e.A<<SubPixelBits)
	}

	var mask uint64
	for r := r0; r <= r1; r++ {
		row := cols
		for k, e := range t.Edges {
			in := d[k].Positive()
			if e.ownsTies() {
				in |= d[k].Zero()
			}
			row &= in
			d[k] = d[k].AddScalar(e.B << SubPixelBits)
		}
		mask |= uint64(row) << (r * parallel.TileSize)
	}
	return mask
}
