package mesh

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Record sizes of the procedural meshes. They match the input strides of
// the built-in vertex shaders.
const (
	// LitStride is position, normal and uv: 8 floats.
	LitStride = 32

	// ColorStride is position (x, y, z, w) in [0, 1] and RGB colour.
	ColorStride = 28

	// ScreenStride is position (x, y, z, w) in [0, 1].
	ScreenStride = 16
)

// SuprematistWidth and SuprematistHeight are the canvas proportions of
// the Suprematist composition.
const (
	SuprematistWidth  = 820
	SuprematistHeight = 1000
)

// SuprematistBackground is the canvas colour of the composition.
var SuprematistBackground = gputypes.Color{R: 227.0 / 255, G: 223.0 / 255, B: 216.0 / 255, A: 1}

func appendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// face is one side of a quad mesh: u x v = normal.
type face struct {
	normal, u, v mgl32.Vec3
}

// appendQuad adds the square centre ± u ± v with counter-clockwise winding
// about u x v.
func appendQuad(m *Mesh, centre mgl32.Vec3, f face, half float32) {
	base := uint32(m.VertexCount())
	corners := [4]struct {
		su, sv float32
		uv     mgl32.Vec2
	}{
		{-1, -1, mgl32.Vec2{0, 0}},
		{1, -1, mgl32.Vec2{1, 0}},
		{1, 1, mgl32.Vec2{1, 1}},
		{-1, 1, mgl32.Vec2{0, 1}},
	}
	for _, c := range corners {
		p := centre.Add(f.u.Mul(c.su * half)).Add(f.v.Mul(c.sv * half))
		m.Vertices = appendFloats(m.Vertices,
			p[0], p[1], p[2],
			f.normal[0], f.normal[1], f.normal[2],
			c.uv[0], c.uv[1])
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
}

// Plane returns a size x size square in the z = 0 plane facing +z, in
// LitStride layout.
func Plane(size float32) *Mesh {
	m := &Mesh{Stride: LitStride}
	appendQuad(m, mgl32.Vec3{}, face{
		normal: mgl32.Vec3{0, 0, 1},
		u:      mgl32.Vec3{1, 0, 0},
		v:      mgl32.Vec3{0, 1, 0},
	}, size/2)
	m.Indices = PadIndices(m.Indices)
	return m
}

var cubeFaces = [6]face{
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 1, 0}, v: mgl32.Vec3{0, 0, 1}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{1, 0, 0}},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{0, 1, 0}, v: mgl32.Vec3{1, 0, 0}},
}

// Cube returns an axis-aligned cube of edge length size centred on the
// origin, with per-face normals and outward counter-clockwise winding, in
// LitStride layout.
func Cube(size float32) *Mesh {
	m := &Mesh{Stride: LitStride}
	half := size / 2
	for _, f := range cubeFaces {
		appendQuad(m, f.normal.Mul(half), f, half)
	}
	m.Indices = PadIndices(m.Indices)
	return m
}

// FullscreenTriangle returns one triangle covering the unit square
// [0, 1]^2, at depth 0, in ScreenStride layout.
func FullscreenTriangle() *Mesh {
	m := &Mesh{Stride: ScreenStride}
	for _, p := range [][2]float32{{0, 0}, {2, 0}, {0, 2}} {
		m.Vertices = appendFloats(m.Vertices, p[0], p[1], 0, 1)
	}
	m.Indices = PadIndices([]uint32{0, 1, 2})
	return m
}

// Suprematist returns a flat composition after Malevich's "Suprematist
// Painting" (1916): three overlapping coloured layers, in ColorStride
// layout. The layer data below is y-down with smaller depth nearer; it is
// flipped to y-up, larger-is-nearer on output. The composition mixes
// windings and is drawn without face culling.
func Suprematist() *Mesh {
	type layer struct {
		corners [][4]float32
		color   [3]float32
	}
	layers := []layer{
		{
			corners: [][4]float32{
				{0.31219, 0.15, 0.5, 1},
				{0.92804, 0.142, 0.5, 1},
				{0.92682, 0.883, 0.5, 1},
				{0.32195, 0.889, 0.5, 1},
			},
			color: [3]float32{0.08627, 0.07450, 0.07058},
		},
		{
			corners: [][4]float32{
				{0.07317, 0.41, 0.25, 1},
				{0.66463, 0.614, 0.25, 1},
				{0.08170, 0.887, 0.25, 1},
			},
			color: [3]float32{0.17647, 0.17254, 0.32549},
		},
		{
			corners: [][4]float32{
				{0, 0, 0.75, 1},
				{1, 0, 0.75, 1},
				{1, 1, 0.75, 1},
				{0, 1, 0.75, 1},
			},
			color: [3]float32{0.89019, 0.87450, 0.84705},
		},
	}

	m := &Mesh{Stride: ColorStride}
	for _, l := range layers {
		for _, p := range l.corners {
			m.Vertices = appendFloats(m.Vertices, p[0], 1-p[1], 1-p[2], p[3], l.color[0], l.color[1], l.color[2])
		}
	}
	m.Indices = PadIndices([]uint32{
		0, 1, 2, 2, 3, 0,
		4, 6, 5,
		7, 8, 9, 9, 10, 7,
	})
	return m
}
