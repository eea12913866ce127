package shader

import (
	"github.com/gogpu/raster3d/internal/wide"
	"github.com/gogpu/raster3d/texture"
)

// ColorPS outputs register 1 as an opaque colour.
type ColorPS struct{}

func (ColorPS) ShadePixels(in *PixelInput, out *PixelOutput, _ *ResourceViews, _ Mask) {
	out.Color = in.Registers[1]
	out.Color.W = wide.SplatF32(1)
}

// TexturePS samples the texture in resource slot 0 at the uv held in
// register 2.
type TexturePS struct {
	Sampler texture.Sampler
}

func (s TexturePS) ShadePixels(in *PixelInput, out *PixelOutput, srv *ResourceViews, mask Mask) {
	tex := Resource(srv, 0)
	uv := &in.Registers[2]
	out.Color = tex.Sample8(s.Sampler, uv.X, uv.Y, mask)
}

// ModulatedTexturePS multiplies the bilinear texture sample at register 2
// by the colour in register 1.
type ModulatedTexturePS struct{}

func (ModulatedTexturePS) ShadePixels(in *PixelInput, out *PixelOutput, srv *ResourceViews, mask Mask) {
	tex := Resource(srv, 0)
	uv := &in.Registers[2]
	c := tex.Sample8(texture.BilinearClamp, uv.X, uv.Y, mask)
	tint := &in.Registers[1]
	c.X = c.X.Mul(tint.X)
	c.Y = c.Y.Mul(tint.Y)
	c.Z = c.Z.Mul(tint.Z)
	out.Color = c
}

// EnvLightingPS lights pixels from the lat-long environment map in
// resource slot 0 along the direction in register 1: the interpolated
// normal of a mesh, or the view direction of FullscreenVS.
type EnvLightingPS struct {
	// Exposure scales the environment radiance. Zero means 1.
	Exposure float32
}

func (s EnvLightingPS) ShadePixels(in *PixelInput, out *PixelOutput, srv *ResourceViews, mask Mask) {
	env := Resource(srv, 0)
	dir := in.Registers[1].Normalize3()
	out.Color = tonemap8(env.SampleLatLong8(&dir, mask), exposure(s.Exposure))
}

// DepthPS visualises depth: grey level = screen depth from register 0.
type DepthPS struct{}

func (DepthPS) ShadePixels(in *PixelInput, out *PixelOutput, _ *ResourceViews, _ Mask) {
	z := in.Registers[0].Z.Clamp(0, 1)
	out.Color = Vec4x8{X: z, Y: z, Z: z, W: wide.SplatF32(1)}
}
