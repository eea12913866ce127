package pipeline

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
	"github.com/gogpu/raster3d/internal/wide"
	"github.com/gogpu/raster3d/shader"
)

// ShadeVertices runs the vertex shader over the assembled records in
// batches of wide.Lanes and returns the per-vertex output registers.
func ShadeVertices(cfg *Config, pool *parallel.WorkerPool, a *arena.Arena, in arena.Records) arena.Registers {
	n := in.Len()
	regs := cfg.Registers
	out := arena.NewRegisters(arena.NewSlice[mgl32.Vec4](a, n*regs), regs)

	batches := (n + wide.Lanes - 1) / wide.Lanes
	grain := max(cfg.grain()/wide.Lanes, 1)
	pool.ParallelFor(batches, grain, func(lo, hi int) {
		var batch shader.VertexInput
		var result shader.VertexOutput
		for b := lo; b < hi; b++ {
			first := b * wide.Lanes
			last := min(first+wide.Lanes, n)

			batch = shader.VertexInput{
				Data:   in.Slice(first, last).Bytes(),
				Stride: in.Stride(),
				Count:  last - first,
			}
			result = shader.VertexOutput{}
			cfg.VertexShader.ShadeVertices(&batch, &result, &cfg.Constants, &cfg.Resources)
			wide.Transpose(out.Slice(first, last).Data(), result.Registers[:], regs, last-first)
		}
	})
	return out
}
