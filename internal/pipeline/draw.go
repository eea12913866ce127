package pipeline

import (
	"context"
	"log/slog"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
)

// Stats describes the work done by one draw call.
type Stats struct {
	AssemblyStats

	// InputTriangles is the number of triangles in the index buffer.
	InputTriangles int

	// Triangles is the number of triangles that reached the binner.
	Triangles int

	// Bins is the number of non-empty bins; BinEntries the number of
	// (bin, triangle) pairs.
	Bins       int
	BinEntries int

	// HierZRejected counts bin entries skipped by hierarchical depth.
	HierZRejected int

	// Fragments is the number of pixels written.
	Fragments int
}

// Draw runs every stage of the pipeline for cfg on pool. Intermediate
// buffers come from a; the caller resets it once Draw returns.
func Draw(cfg *Config, pool *parallel.WorkerPool, a *arena.Arena) Stats {
	records := AssembleInput(cfg, pool, a)
	verts := ShadeVertices(cfg, pool, a, records)
	prims := AssemblePrimitives(cfg, pool, a, verts)
	bins := BinTriangles(cfg.Target.Grid, a, prims.Triangles)
	infos, rejected := Rasterize(cfg, pool, a, prims, bins)
	fragments := ShadePixels(cfg, pool, prims, bins, infos)

	st := Stats{
		AssemblyStats:  prims.Stats,
		InputTriangles: cfg.InputTriangles(),
		Triangles:      prims.Len(),
		Bins:           len(bins.Compacted),
		BinEntries:     bins.Entries(),
		HierZRejected:  rejected,
		Fragments:      fragments,
	}
	if log := slogger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("pipeline: draw",
			slog.Int("input", st.InputTriangles),
			slog.Int("triangles", st.Triangles),
			slog.Int("clipped", st.Clipped),
			slog.Int("culled", st.Culled),
			slog.Int("bins", st.Bins),
			slog.Int("entries", st.BinEntries),
			slog.Int("hierz", st.HierZRejected),
			slog.Int("fragments", st.Fragments),
			slog.Int("arena_bytes", a.Footprint()),
		)
	}
	return st
}
