// Package wide provides SIMD-friendly 8-lane types for batch vertex and
// pixel processing.
//
// Every type is a fixed-size array (or a struct of fixed-size arrays) that
// the Go compiler can auto-vectorize on supported architectures (SSE, AVX,
// NEON). One lane corresponds to one vertex in the vertex stage and to one
// pixel of a tile row in the pixel stage, so [Lanes] equals the tile width.
//
// # Wide Types
//
// F32x8: 8 float32 values (barycentrics, depth, interpolated attributes).
// I64x8: 8 int64 values (fixed-point edge function evaluation).
// Vec4x8: 4 F32x8 components, one attribute register for 8 items (SoA).
// Mask8: one bit per lane, the active-lane mask passed to shaders.
//
// # Transpose
//
// Shaders work lane-major (one Vec4x8 per register). Downstream stages
// want per-item register blocks. [Transpose] converts between the two with
// a fixed contract: register r of lane l lands at dst[l*regs+r].
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//   - Provide benchmarks to verify SIMD performance gains
//
// # Usage Example
//
//	// Interpolate one register across a row of 8 pixels
//	u := wide.SplatF32(0.25)
//	v := wide.SplatF32(0.5)
//	out := wide.Interpolate(v0, v1, v2, u, v)
package wide
