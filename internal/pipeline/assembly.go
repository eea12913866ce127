package pipeline

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
)

// AssemblyStats counts what primitive assembly did with its input.
type AssemblyStats struct {
	// FrustumRejected is the number of input triangles dropped before
	// clipping.
	FrustumRejected int

	// Clipped is the number of input triangles that crossed a clip plane.
	Clipped int

	// Degenerate and Culled count set-up triangles dropped for a
	// sub-pixel area or their facing.
	Degenerate int
	Culled     int
}

// Primitives is the output of primitive assembly. Triangle i owns the
// register blocks Attributes.Triangle(i); register 0 of each holds the
// screen-space position (x, y, depth, 1).
type Primitives struct {
	Triangles  []Triangle
	Attributes arena.Registers
	Stats      AssemblyStats
}

// Len returns the number of set-up triangles.
func (p *Primitives) Len() int { return len(p.Triangles) }

// maxFanTriangles is the most triangles one input can emit: each clip plane
// adds at most one vertex to the polygon, and a fan of k vertices has k-2
// triangles.
const maxFanTriangles = 3 + numPlanes - 2

// triangleCapacity is the number of output slots reserved for n input
// triangles.
func triangleCapacity(n int) int { return maxFanTriangles * n }

// AssemblePrimitives rejects, clips, projects and sets up the triangles of
// the shaded vertex stream. Workers reserve output slots with an atomic
// bump allocator, so the order of the output triangles varies between
// runs.
func AssemblePrimitives(cfg *Config, pool *parallel.WorkerPool, a *arena.Arena, verts arena.Registers) *Primitives {
	n := verts.Len() / 3
	regs := verts.PerItem()
	capacity := triangleCapacity(n)

	tris := arena.NewSlice[Triangle](a, capacity)
	attrs := arena.NewRegisters(arena.NewSlice[mgl32.Vec4](a, capacity*3*regs), regs)
	slots := arena.NewBumpAllocator(capacity)

	var frustum, clipped, degenerate, culled atomic.Int64

	pool.ParallelFor(n, cfg.grain(), func(lo, hi int) {
		var st AssemblyStats
		var poly Polygon

		emit := func(p0, p1, p2 []mgl32.Vec4) {
			screen := [3]mgl32.Vec4{
				toScreen(p0[0], &cfg.Viewport),
				toScreen(p1[0], &cfg.Viewport),
				toScreen(p2[0], &cfg.Viewport),
			}
			t, res := setupTriangle(&screen, cfg)
			switch res {
			case setupDegenerate:
				st.Degenerate++
				return
			case setupCulled:
				st.Culled++
				return
			}

			slot := slots.Alloc()
			tris[slot] = t
			d0, d1, d2 := attrs.Triangle(slot)
			src := [3][]mgl32.Vec4{p0, p1, p2}
			for k, d := range [3][]mgl32.Vec4{d0, d1, d2} {
				copy(d, src[k])
				d[0] = mgl32.Vec4{screen[k][0], screen[k][1], screen[k][2], 1}
			}
		}

		for i := lo; i < hi; i++ {
			v0, v1, v2 := verts.Triangle(i)
			if frustumRejects(v0[0], v1[0], v2[0]) {
				st.FrustumRejected++
				continue
			}
			if insideAll(v0[0]) && insideAll(v1[0]) && insideAll(v2[0]) {
				emit(v0, v1, v2)
				continue
			}

			st.Clipped++
			poly.Reset()
			poly.Push(v0)
			poly.Push(v1)
			poly.Push(v2)
			poly.Clip(regs)
			for k := 1; k+1 < poly.Len; k++ {
				emit(poly.Vertices[0][:regs], poly.Vertices[k][:regs], poly.Vertices[k+1][:regs])
			}
		}

		frustum.Add(int64(st.FrustumRejected))
		clipped.Add(int64(st.Clipped))
		degenerate.Add(int64(st.Degenerate))
		culled.Add(int64(st.Culled))
	})

	count := slots.Len()
	return &Primitives{
		Triangles:  tris[:count],
		Attributes: attrs.Slice(0, count*3),
		Stats: AssemblyStats{
			FrustumRejected: int(frustum.Load()),
			Clipped:         int(clipped.Load()),
			Degenerate:      int(degenerate.Load()),
			Culled:          int(culled.Load()),
		},
	}
}
