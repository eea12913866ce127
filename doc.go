// Package raster3d is a CPU tile-based 3-D rasterizer for Go.
//
// # Overview
//
// raster3d turns indexed triangle meshes into a colour and depth
// framebuffer entirely in software. Vertices and pixels are shaded eight at
// a time by programmable shaders (see package shader), and the screen is
// split into 8x8 tiles that are rasterized and shaded in parallel.
//
// # Quick Start
//
//	import "github.com/gogpu/raster3d"
//
//	r := raster3d.NewRenderer()
//	defer r.Close()
//
//	fb := raster3d.NewFramebuffer(800, 600)
//	fb.ClearColor(gputypes.Color{A: 1})
//	fb.ClearDepth(0)
//
//	state := raster3d.DefaultPipelineState(fb)
//	state.IndexBuffer = m.Indices
//	state.VertexBuffer = m.Vertices
//	state.VertexShader = shader.TransformVS{}
//	state.PixelShader = shader.TexturePS{Sampler: texture.BilinearClamp}
//	state.ConstantBuffers[0] = cam.TransformConstants()
//	state.Resources[0] = tex
//
//	stats, err := r.DrawIndexed(state, len(m.Indices))
//
//	fb.SavePNG("output.png")
//
// # Pipeline
//
// Each draw runs six stages, each parallel across the renderer's workers
// with a barrier in between:
//
//  1. Input assembly gathers one vertex record per index.
//  2. The vertex shader writes up to eight registers per vertex; register 0
//     is the clip-space position.
//  3. Primitive assembly rejects, clips against the view frustum, culls
//     and sets up edge functions in 28.4 fixed point.
//  4. The binner lists the triangles overlapping each tile.
//  5. The rasterizer computes a 64-bit coverage mask per tile and triangle,
//     skipping tiles whose stored depth already hides the triangle.
//  6. The pixel stage interpolates registers (perspective-correct), runs
//     the early depth test and the pixel shader, and writes the tile back.
//
// # Conventions
//
//   - Clip space is x, y in [-w, w] and z in [0, w].
//   - Depth is reversed: larger is nearer. Clear depth to 0 and use
//     CompareFunctionGreaterEqual (the default).
//   - Counter-clockwise triangles in normalized device coordinates are
//     front-facing with the default FrontFaceCCW.
//   - Index counts are multiples of 24; see mesh.PadIndices.
//   - Pixel centers are at integer coordinates; the framebuffer origin is
//     the top-left corner with y down.
//
// # Logging
//
// raster3d is silent by default. SetLogger or WithLogger enables
// structured logging through log/slog.
package raster3d
