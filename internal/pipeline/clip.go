package pipeline

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raster3d/shader"
)

// MaxClipVertices bounds the vertex count of a clipped polygon.
const MaxClipVertices = 16

// Clip planes of the view volume -w <= x <= w, -w <= y <= w, 0 <= z <= w.
const (
	planeLeft = iota
	planeRight
	planeBottom
	planeTop
	planeNear
	planeFar
	numPlanes
)

// planeDistance returns the signed distance of clip-space position p to
// plane; it is non-negative on the inside.
func planeDistance(plane int, p mgl32.Vec4) float32 {
	switch plane {
	case planeLeft:
		return p[0] + p[3]
	case planeRight:
		return p[3] - p[0]
	case planeBottom:
		return p[1] + p[3]
	case planeTop:
		return p[3] - p[1]
	case planeNear:
		return p[2]
	default:
		return p[3] - p[2]
	}
}

// frustumRejects reports whether a triangle is trivially invisible: a
// vertex has w == 0, or all three vertices lie outside the same plane.
func frustumRejects(p0, p1, p2 mgl32.Vec4) bool {
	if p0[3] == 0 || p1[3] == 0 || p2[3] == 0 {
		return true
	}
	for plane := range numPlanes {
		if planeDistance(plane, p0) < 0 &&
			planeDistance(plane, p1) < 0 &&
			planeDistance(plane, p2) < 0 {
			return true
		}
	}
	return false
}

// insideAll reports whether p is inside or on every clip plane.
func insideAll(p mgl32.Vec4) bool {
	for plane := range numPlanes {
		if planeDistance(plane, p) < 0 {
			return false
		}
	}
	return true
}

// ClipVertex holds the output registers of one vertex; register 0 is the
// clip-space position.
type ClipVertex [shader.MaxRegisters]mgl32.Vec4

// Polygon is a convex clip-space polygon. Only the first Len vertices and
// the first regs registers of each vertex are meaningful.
type Polygon struct {
	Vertices [MaxClipVertices]ClipVertex
	Len      int
}

// Reset empties the polygon.
func (p *Polygon) Reset() { p.Len = 0 }

// Push appends a vertex given as a register block. Exceeding
// MaxClipVertices panics.
func (p *Polygon) Push(regs []mgl32.Vec4) {
	assert(p.Len < MaxClipVertices, "clip polygon overflow")
	copy(p.Vertices[p.Len][:], regs)
	p.Len++
}

// Clip clips the polygon against all six planes in place
// (Sutherland-Hodgman). Vertices on a plane count as inside; new vertices
// are only introduced where an edge strictly crosses a plane. The result
// is empty when the polygon is entirely outside.
func (p *Polygon) Clip(regs int) {
	var tmp Polygon
	src, dst := p, &tmp
	for plane := range numPlanes {
		clipByPlane(dst, src, plane, regs)
		src, dst = dst, src
		if src.Len == 0 {
			break
		}
	}
	if src != p {
		p.Len = src.Len
		copy(p.Vertices[:src.Len], src.Vertices[:src.Len])
	}
}

func clipByPlane(dst, src *Polygon, plane, regs int) {
	dst.Reset()
	for i := range src.Len {
		a := &src.Vertices[i]
		b := &src.Vertices[(i+1)%src.Len]
		da := planeDistance(plane, a[0])
		db := planeDistance(plane, b[0])

		if da >= 0 {
			dst.Push(a[:regs])
		}
		if (da > 0 && db < 0) || (da < 0 && db > 0) {
			t := da / (da - db)
			var v ClipVertex
			for r := range regs {
				v[r] = a[r].Mul(1 - t).Add(b[r].Mul(t))
			}
			dst.Push(v[:regs])
		}
	}
}
