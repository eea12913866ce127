package pipeline

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Sub-pixel precision of snapped screen coordinates.
const (
	SubPixelBits  = 4
	SubPixelScale = 1 << SubPixelBits

	// MinArea is the smallest accepted |signed area| in sub-pixel units:
	// one square pixel.
	MinArea = 1 << (2 * SubPixelBits)
)

// depthSlack widens MaxDepth so that rounding in the interpolated depth
// of covered pixels never exceeds it.
const depthSlack = 1e-6

// EdgeFunction is a line equation in sub-pixel fixed point. Evaluated at
// pixel (x, y) it gives A*16x + B*16y + C, positive inside the triangle.
type EdgeFunction struct {
	A, B, C int64
}

// newEdge returns the edge from (x0, y0) to (x1, y1). The result is
// negated for clockwise triangles so that inside is always positive.
func newEdge(x0, y0, x1, y1 int64, negate bool) EdgeFunction {
	a := y0 - y1
	b := x1 - x0
	if negate {
		a, b = -a, -b
	}
	return EdgeFunction{A: a, B: b, C: -a*x0 - b*y0}
}

// Eval returns the signed distance of pixel (px, py) scaled by the edge
// length, in sub-pixel squared units.
func (e EdgeFunction) Eval(px, py int64) int64 {
	return (e.A*px)<<SubPixelBits + (e.B*py)<<SubPixelBits + e.C
}

// Inside reports whether a sample with signed distance d is covered.
// Samples exactly on the edge belong to edges with A > 0, or A == 0 and
// B > 0, so that a pixel on an edge shared by two triangles is covered
// exactly once.
func (e EdgeFunction) Inside(d int64) bool {
	if d != 0 {
		return d > 0
	}
	return e.ownsTies()
}

func (e EdgeFunction) ownsTies() bool {
	if e.A != 0 {
		return e.A > 0
	}
	return e.B > 0
}

// TriangleSetup holds the per-triangle constants of rasterization and
// interpolation. Edges[i] is the edge opposite vertex i.
type TriangleSetup struct {
	Edges       [3]EdgeFunction
	RecipW      [3]float32
	OneOverArea float32
	MaxDepth    float32
}

// Triangle is a set-up screen-space triangle with its inclusive pixel
// bounding box, clamped to the viewport.
type Triangle struct {
	TriangleSetup
	MinX, MinY, MaxX, MaxY int32
}

// Covers reports whether pixel (px, py) lies inside all three edges.
func (t *Triangle) Covers(px, py int64) bool {
	for _, e := range t.Edges {
		if !e.Inside(e.Eval(px, py)) {
			return false
		}
	}
	return true
}

// setupResult classifies the outcome of triangle setup.
type setupResult uint8

const (
	setupAccepted setupResult = iota
	setupDegenerate
	setupCulled
)

// snap converts a screen coordinate to sub-pixel fixed point.
func snap(v float32) int64 {
	return int64(math32.Floor(v*SubPixelScale + 0.5))
}

// toScreen applies the perspective divide and viewport transform to a
// clip-space position. The result holds (x, y, z, 1/w).
func toScreen(p mgl32.Vec4, vp *Viewport) mgl32.Vec4 {
	rw := 1 / p[3]
	x, y, z := p[0]*rw, p[1]*rw, p[2]*rw
	hw, hh := vp.Width/2, vp.Height/2
	return mgl32.Vec4{
		hw*x + hw + vp.X,
		-hh*y + hh + vp.Y,
		(vp.MaxDepth-vp.MinDepth)*z + vp.MinDepth,
		rw,
	}
}

// isCulled applies the face-culling state to a triangle with screen-space
// signed area. Screen y points down, so counter-clockwise triangles in
// normalized device coordinates have negative area.
func isCulled(mode gputypes.CullMode, front gputypes.FrontFace, area int64) bool {
	if mode == gputypes.CullModeNone {
		return false
	}
	isFront := area < 0
	if front == gputypes.FrontFaceCW {
		isFront = area > 0
	}
	switch mode {
	case gputypes.CullModeFront:
		return isFront
	case gputypes.CullModeBack:
		return !isFront
	}
	return false
}

// setupTriangle builds the rasterization state of a triangle given its
// screen positions from toScreen.
func setupTriangle(s *[3]mgl32.Vec4, cfg *Config) (Triangle, setupResult) {
	x0, y0 := snap(s[0][0]), snap(s[0][1])
	x1, y1 := snap(s[1][0]), snap(s[1][1])
	x2, y2 := snap(s[2][0]), snap(s[2][1])

	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if area == 0 || abs64(area) < MinArea {
		return Triangle{}, setupDegenerate
	}
	if isCulled(cfg.CullMode, cfg.FrontFace, area) {
		return Triangle{}, setupCulled
	}

	neg := area < 0
	var t Triangle
	t.Edges[0] = newEdge(x1, y1, x2, y2, neg)
	t.Edges[1] = newEdge(x2, y2, x0, y0, neg)
	t.Edges[2] = newEdge(x0, y0, x1, y1, neg)
	t.OneOverArea = 1 / float32(abs64(area)>>(2*SubPixelBits))
	t.RecipW = [3]float32{s[0][3], s[1][3], s[2][3]}
	t.MaxDepth = max(s[0][2], s[1][2], s[2][2]) + depthSlack

	vp := &cfg.Viewport
	vx0, vy0 := int64(vp.X), int64(vp.Y)
	vx1 := int64(vp.X+vp.Width) - 1
	vy1 := int64(vp.Y+vp.Height) - 1
	t.MinX = int32(max(min(x0, x1, x2)>>SubPixelBits, vx0))
	t.MinY = int32(max(min(y0, y1, y2)>>SubPixelBits, vy0))
	t.MaxX = int32(min(max(x0, x1, x2)>>SubPixelBits+1, vx1))
	t.MaxY = int32(min(max(y0, y1, y2)>>SubPixelBits+1, vy1))
	return t, setupAccepted
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
