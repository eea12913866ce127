package pipeline

import (
	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
)

// AssembleInput gathers the vertex record of every index into a new
// buffer: output record i is a copy of Vertices.Record(Indices[i]).
// An index past the end of the vertex buffer panics.
func AssembleInput(cfg *Config, pool *parallel.WorkerPool, a *arena.Arena) arena.Records {
	stride := cfg.Vertices.Stride()
	out := arena.NewRecords(arena.NewSlice[byte](a, len(cfg.Indices)*stride), stride)
	n := cfg.Vertices.Len()

	pool.ParallelFor(len(cfg.Indices), cfg.grain(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			idx := cfg.Indices[i]
			assert(int(idx) < n, "vertex index out of range")
			copy(out.Record(i), cfg.Vertices.Record(int(idx)))
		}
	})
	return out
}
