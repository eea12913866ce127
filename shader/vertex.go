package shader

import (
	"github.com/gogpu/raster3d/internal/wide"
	"github.com/gogpu/raster3d/texture"
)

// Vertex record layouts of the built-in shaders.
const (
	// MeshVertexSize is position (3 floats), normal (3), uv (2).
	MeshVertexSize = 32

	// ColorVertexSize is position (4 floats) and colour (3).
	ColorVertexSize = 28

	// ScreenVertexSize is position (4 floats).
	ScreenVertexSize = 16
)

// TransformVS projects mesh vertices with TransformConstants.ClipFromWorld
// and passes the unit normal (register 1) and uv (register 2) through.
type TransformVS struct{}

func (TransformVS) InputStride() int     { return MeshVertexSize }
func (TransformVS) OutputRegisters() int { return 3 }

func (TransformVS) ShadeVertices(in *VertexInput, out *VertexOutput, cb *ConstantBuffers, _ *ResourceViews) {
	c := Constants[TransformConstants](cb, 0)
	out.Registers[0] = worldToClip(in, c)
	out.Registers[1] = in.Vec(12, 3).Normalize3()
	out.Registers[2] = in.Vec(24, 2)
}

// VertexLightingVS projects mesh vertices like TransformVS and lights them
// per vertex from the lat-long environment map in resource slot 0. The
// tonemapped colour goes to register 1, uv to register 2.
type VertexLightingVS struct {
	// Exposure scales the environment radiance. Zero means 1.
	Exposure float32
}

func (VertexLightingVS) InputStride() int     { return MeshVertexSize }
func (VertexLightingVS) OutputRegisters() int { return 3 }

func (s VertexLightingVS) ShadeVertices(in *VertexInput, out *VertexOutput, cb *ConstantBuffers, srv *ResourceViews) {
	c := Constants[TransformConstants](cb, 0)
	env := Resource(srv, 0)

	out.Registers[0] = worldToClip(in, c)
	normal := in.Vec(12, 3).Normalize3()
	out.Registers[1] = tonemap8(env.SampleLatLong8(&normal, wide.LaneRange(0, in.Count-1)), exposure(s.Exposure))
	out.Registers[2] = in.Vec(24, 2)
}

// PassthroughVS maps positions from [0, 1] to clip space [-1, 1] in x and
// y and forwards the vertex colour to register 1 with alpha 1.
type PassthroughVS struct{}

func (PassthroughVS) InputStride() int     { return ColorVertexSize }
func (PassthroughVS) OutputRegisters() int { return 2 }

func (PassthroughVS) ShadeVertices(in *VertexInput, out *VertexOutput, _ *ConstantBuffers, _ *ResourceViews) {
	out.Registers[0] = unitToClip(in.Vec(0, 4))
	color := in.Vec(16, 3)
	color.W = wide.SplatF32(1)
	out.Registers[1] = color
}

// FullscreenVS draws screen-covering geometry given in [0, 1] coordinates
// and outputs the world-space view direction through each vertex in
// register 1, for sky rendering.
type FullscreenVS struct{}

func (FullscreenVS) InputStride() int     { return ScreenVertexSize }
func (FullscreenVS) OutputRegisters() int { return 2 }

func (FullscreenVS) ShadeVertices(in *VertexInput, out *VertexOutput, cb *ConstantBuffers, _ *ResourceViews) {
	c := Constants[EnvironmentConstants](cb, 0)

	pos := unitToClip(in.Vec(0, 4))
	dir := Transform(&c.ViewFromClip, &pos)
	dir.W = wide.F32x8{}
	out.Registers[0] = pos
	out.Registers[1] = Transform(&c.WorldFromView, &dir)
}

func worldToClip(in *VertexInput, c *TransformConstants) Vec4x8 {
	pos := in.Vec(0, 3)
	pos.W = wide.SplatF32(1)
	return Transform(&c.ClipFromWorld, &pos)
}

func unitToClip(p Vec4x8) Vec4x8 {
	two, one := wide.SplatF32(2), wide.SplatF32(1)
	p.X = p.X.MulAdd(two, one.Scale(-1))
	p.Y = p.Y.MulAdd(two, one.Scale(-1))
	return p
}

func exposure(e float32) float32 {
	if e == 0 {
		return 1
	}
	return e
}

func tonemap8(c Vec4x8, exposure float32) Vec4x8 {
	for i := range Lanes {
		c.SetLane(i, texture.Tonemap(c.Lane(i), exposure))
	}
	c.W = wide.SplatF32(1)
	return c
}
