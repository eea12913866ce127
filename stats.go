package raster3d

import "github.com/gogpu/raster3d/internal/pipeline"

// DrawStats describes the work done by one draw call.
type DrawStats struct {
	// InputTriangles is the number of triangles submitted.
	InputTriangles int

	// FrustumRejected counts triangles entirely outside one clip plane.
	FrustumRejected int

	// Clipped counts triangles that crossed a clip plane and were split.
	Clipped int

	// Degenerate counts triangles dropped for zero or sub-pixel area.
	Degenerate int

	// Culled counts triangles dropped by face culling.
	Culled int

	// Triangles is the number of screen-space triangles rasterized.
	Triangles int

	// Bins is the number of tiles touched; BinEntries the number of
	// (tile, triangle) pairs.
	Bins       int
	BinEntries int

	// HierZRejected counts tile/triangle pairs skipped by hierarchical depth.
	HierZRejected int

	// Fragments is the number of pixels that passed the depth test.
	Fragments int
}

func newDrawStats(st pipeline.Stats) DrawStats {
	return DrawStats{
		InputTriangles:  st.InputTriangles,
		FrustumRejected: st.FrustumRejected,
		Clipped:         st.Clipped,
		Degenerate:      st.Degenerate,
		Culled:          st.Culled,
		Triangles:       st.Triangles,
		Bins:            st.Bins,
		BinEntries:      st.BinEntries,
		HierZRejected:   st.HierZRejected,
		Fragments:       st.Fragments,
	}
}

// Add accumulates o into s.
func (s *DrawStats) Add(o DrawStats) {
	s.InputTriangles += o.InputTriangles
	s.FrustumRejected += o.FrustumRejected
	s.Clipped += o.Clipped
	s.Degenerate += o.Degenerate
	s.Culled += o.Culled
	s.Triangles += o.Triangles
	s.Bins += o.Bins
	s.BinEntries += o.BinEntries
	s.HierZRejected += o.HierZRejected
	s.Fragments += o.Fragments
}
