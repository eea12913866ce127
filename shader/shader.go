// Package shader defines the programmable stages of the rasterization
// pipeline and a set of built-in shading strategies.
//
// Shaders run on batches of Lanes items in Structure-of-Arrays form. A
// vertex shader reads packed vertex records through VertexInput and writes
// up to MaxRegisters 4-component registers per vertex; register 0 is the
// clip-space position. A pixel shader receives the interpolated registers
// of up to eight pixels of one tile row plus a mask of the lanes that
// survived the depth test, and returns one colour per lane.
//
// Pixel shaders never see or change depth: depth is fixed by rasterization
// before the shader runs, which is what makes early and hierarchical depth
// rejection safe.
package shader

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raster3d/internal/wide"
	"github.com/gogpu/raster3d/texture"
)

// Binding limits.
const (
	// Lanes is the number of items processed per shader invocation.
	Lanes = wide.Lanes

	// MaxRegisters is the maximum number of output registers per vertex,
	// including the position register.
	MaxRegisters = 8

	// MaxConstantBuffers is the number of constant-buffer slots.
	MaxConstantBuffers = 16

	// MaxResourceViews is the number of shader-resource-view slots.
	MaxResourceViews = 16
)

// Batch register types.
type (
	// Float8 is one scalar per lane.
	Float8 = wide.F32x8

	// Vec4x8 is one 4-component register per lane.
	Vec4x8 = wide.Vec4x8

	// Mask marks the active lanes of a batch.
	Mask = wide.Mask8
)

// ConstantBuffers are the per-draw constant slots. Built-in shaders expect
// a *TransformConstants or *EnvironmentConstants in slot 0.
type ConstantBuffers [MaxConstantBuffers]any

// ResourceViews are the per-draw texture slots.
type ResourceViews [MaxResourceViews]*texture.Texture

// VertexInput is one batch of packed vertex records. Record i occupies
// Data[i*Stride : (i+1)*Stride]; only the first Count records are valid.
type VertexInput struct {
	Data   []byte
	Stride int
	Count  int
}

// Float gathers the little-endian float32 at byte offset off of every
// valid record. Lanes past Count are zero.
func (in *VertexInput) Float(off int) Float8 {
	var r Float8
	for i := range min(in.Count, Lanes) {
		b := in.Data[i*in.Stride+off:]
		r[i] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
	return r
}

// Vec gathers n consecutive floats (1 to 4) starting at byte offset off.
// Missing components are zero.
func (in *VertexInput) Vec(off, n int) Vec4x8 {
	var r Vec4x8
	comps := [4]*Float8{&r.X, &r.Y, &r.Z, &r.W}
	for c := range min(n, 4) {
		*comps[c] = in.Float(off + 4*c)
	}
	return r
}

// VertexOutput receives the registers written by a vertex shader.
type VertexOutput struct {
	Registers [MaxRegisters]Vec4x8
}

// VertexShader transforms batches of vertices.
type VertexShader interface {
	// InputStride returns the size in bytes of one vertex record.
	InputStride() int

	// OutputRegisters returns the number of registers written per vertex,
	// position included. It is between 1 and MaxRegisters.
	OutputRegisters() int

	// ShadeVertices processes one batch.
	ShadeVertices(in *VertexInput, out *VertexOutput, cb *ConstantBuffers, srv *ResourceViews)
}

// PixelInput holds the interpolated registers of one batch of pixels.
// Register 0 is the screen-space position (x, y, depth, 1).
type PixelInput struct {
	Registers [MaxRegisters]Vec4x8
}

// PixelOutput receives the colour written by a pixel shader.
type PixelOutput struct {
	Color Vec4x8
}

// PixelShader colours batches of pixels. Only lanes set in mask are
// written back; values in other lanes are ignored.
type PixelShader interface {
	ShadePixels(in *PixelInput, out *PixelOutput, srv *ResourceViews, mask Mask)
}

// TransformConstants is the constant buffer of the mesh shaders.
type TransformConstants struct {
	ClipFromWorld mgl32.Mat4
}

// EnvironmentConstants is the constant buffer of FullscreenVS.
type EnvironmentConstants struct {
	ClipFromWorld mgl32.Mat4
	ViewFromClip  mgl32.Mat4
	WorldFromView mgl32.Mat4
}

// Constants returns slot of cb as *T. A missing or mistyped binding is a
// programming error and panics.
func Constants[T any](cb *ConstantBuffers, slot int) *T {
	v, ok := cb[slot].(*T)
	if !ok || v == nil {
		var zero T
		panic(fmt.Sprintf("shader: constant buffer %d is %T, want %T", slot, cb[slot], &zero))
	}
	return v
}

// Resource returns texture slot of srv. An unbound slot panics.
func Resource(srv *ResourceViews, slot int) *texture.Texture {
	t := srv[slot]
	if t == nil {
		panic(fmt.Sprintf("shader: resource view %d is not bound", slot))
	}
	return t
}

// Transform multiplies the column-major matrix m with the vector of every
// lane.
func Transform(m *mgl32.Mat4, v *Vec4x8) Vec4x8 {
	var r Vec4x8
	for i := range Lanes {
		x, y, z, w := v.X[i], v.Y[i], v.Z[i], v.W[i]
		r.X[i] = m[0]*x + m[4]*y + m[8]*z + m[12]*w
		r.Y[i] = m[1]*x + m[5]*y + m[9]*z + m[13]*w
		r.Z[i] = m[2]*x + m[6]*y + m[10]*z + m[14]*w
		r.W[i] = m[3]*x + m[7]*y + m[11]*z + m[15]*w
	}
	return r
}
