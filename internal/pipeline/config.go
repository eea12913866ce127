// Package pipeline implements the stages of the tile-based rasterization
// pipeline and the orchestration of one draw call.
//
// A draw runs six fork-join stages with a barrier between each:
//
//	AssembleInput -> ShadeVertices -> AssemblePrimitives -> BinTriangles
//	  -> Rasterize -> ShadePixels
//
// Every stage reads an immutable Config and allocates its outputs from a
// per-draw arena.Arena. Only primitive assembly synchronizes between
// workers (a single atomic slot counter); the binner is single-threaded and
// the tile stages own disjoint framebuffer regions.
package pipeline

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
	"github.com/gogpu/raster3d/shader"
)

// DefaultGrain is the number of work items per parallel chunk when the
// Config does not set one.
const DefaultGrain = 256

// Viewport maps normalized device coordinates to pixels and depth.
type Viewport struct {
	X, Y               float32
	Width, Height      float32
	MinDepth, MaxDepth float32
}

// Target is the colour and depth surface a draw writes to. Colour and depth
// are row-major with Grid.Width() pixels per row. TileMin holds one
// minimum-depth record per bin for hierarchical rejection.
type Target struct {
	Color   []uint32
	Depth   []float32
	TileMin []float32
	Grid    parallel.BinGrid
	Dirty   *parallel.DirtyRegion
}

// Config is the validated state of one draw call. It is built once by the
// caller and never modified while the draw runs.
type Config struct {
	Indices      []uint32
	Vertices     arena.Records
	VertexShader shader.VertexShader
	Registers    int

	Constants shader.ConstantBuffers
	Resources shader.ResourceViews

	Viewport    Viewport
	PixelShader shader.PixelShader

	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace

	// DepthCompare is GreaterEqual, Greater or Always.
	DepthCompare  gputypes.CompareFunction
	HierarchicalZ bool

	// Grain is the parallel-for chunk size in items.
	Grain int

	Target Target
}

// InputTriangles returns the number of triangles in the index buffer.
func (c *Config) InputTriangles() int { return len(c.Indices) / 3 }

func (c *Config) grain() int {
	if c.Grain <= 0 {
		return DefaultGrain
	}
	return c.Grain
}

// depthPasses reports whether a fragment at depth z survives against the
// cached depth. Larger depth is nearer.
func (c *Config) depthPasses(z, cached float32) bool {
	switch c.DepthCompare {
	case gputypes.CompareFunctionGreater:
		return z > cached
	case gputypes.CompareFunctionAlways:
		return true
	default:
		return z >= cached
	}
}

// hierZRejects reports whether a triangle whose nearest depth is maxDepth
// cannot pass the depth test anywhere in a tile whose nearest-cached-depth
// minimum is tileMin.
func (c *Config) hierZRejects(maxDepth, tileMin float32) bool {
	if !c.HierarchicalZ {
		return false
	}
	switch c.DepthCompare {
	case gputypes.CompareFunctionGreater:
		return maxDepth <= tileMin
	case gputypes.CompareFunctionAlways:
		return false
	default:
		return maxDepth < tileMin
	}
}
