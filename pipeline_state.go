package raster3d

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/pipeline"
	"github.com/gogpu/raster3d/shader"
)

// Errors returned by PipelineState.Validate and Renderer.DrawIndexed.
var (
	// ErrNilTarget is returned when no framebuffer is bound.
	ErrNilTarget = errors.New("raster3d: nil render target")

	// ErrNilShader is returned when the vertex or pixel shader is missing.
	ErrNilShader = errors.New("raster3d: nil shader")

	// ErrTopology is returned for any topology other than a triangle list.
	ErrTopology = errors.New("raster3d: unsupported primitive topology")

	// ErrIndexCount is returned when the index count is not a positive
	// multiple of 24 (eight lanes of whole triangles) or exceeds the index
	// buffer.
	ErrIndexCount = errors.New("raster3d: invalid index count")

	// ErrStride is returned when the vertex buffer is not a whole number of
	// vertex records.
	ErrStride = errors.New("raster3d: vertex buffer does not match shader stride")

	// ErrRegisterCount is returned when a vertex shader declares fewer than
	// one or more than shader.MaxRegisters output registers.
	ErrRegisterCount = errors.New("raster3d: invalid register count")

	// ErrViewport is returned for empty viewports, viewports outside the
	// target, or depth ranges outside [0, 1].
	ErrViewport = errors.New("raster3d: invalid viewport")

	// ErrDepthCompare is returned for depth functions other than
	// GreaterEqual, Greater and Always.
	ErrDepthCompare = errors.New("raster3d: unsupported depth compare function")
)

// IndexAlignment is the granularity of index counts: whole triangles in
// whole eight-lane batches.
const IndexAlignment = 3 * shader.Lanes

// Viewport maps normalized device coordinates to framebuffer pixels and
// clip-space z in [0, 1] to [MinDepth, MaxDepth].
type Viewport struct {
	X, Y               float32
	Width, Height      float32
	MinDepth, MaxDepth float32
}

// FullViewport returns the viewport covering all of fb with depth [0, 1].
func FullViewport(fb *Framebuffer) Viewport {
	return Viewport{
		Width:    float32(fb.Width()),
		Height:   float32(fb.Height()),
		MaxDepth: 1,
	}
}

// PipelineState is the complete state of one draw call. It is passed by
// value; DrawIndexed snapshots it before any stage runs, so the caller may
// reuse and modify it for the next draw immediately.
//
// Depth is reversed: larger values are nearer and the depth buffer is
// normally cleared to 0.
type PipelineState struct {
	Topology gputypes.PrimitiveTopology

	IndexBuffer  []uint32
	VertexBuffer []byte

	VertexShader    shader.VertexShader
	ConstantBuffers shader.ConstantBuffers
	Resources       shader.ResourceViews

	Viewport    Viewport
	PixelShader shader.PixelShader

	Target *Framebuffer

	CullMode     gputypes.CullMode
	FrontFace    gputypes.FrontFace
	DepthCompare gputypes.CompareFunction
}

// DefaultPipelineState returns a triangle-list state drawing into fb over
// its full extent, culling clockwise (back) faces and keeping fragments
// whose depth is greater than or equal to the stored depth.
func DefaultPipelineState(fb *Framebuffer) PipelineState {
	s := PipelineState{
		Topology:     gputypes.PrimitiveTopologyTriangleList,
		Target:       fb,
		CullMode:     gputypes.CullModeBack,
		FrontFace:    gputypes.FrontFaceCCW,
		DepthCompare: gputypes.CompareFunctionGreaterEqual,
	}
	if fb != nil {
		s.Viewport = FullViewport(fb)
	}
	return s
}

// Validate checks that the state can draw indexCount indices.
func (s *PipelineState) Validate(indexCount int) error {
	if s.Target == nil {
		return ErrNilTarget
	}
	if s.VertexShader == nil || s.PixelShader == nil {
		return ErrNilShader
	}
	if s.Topology != gputypes.PrimitiveTopologyTriangleList {
		return fmt.Errorf("raster3d: topology %v: %w", s.Topology, ErrTopology)
	}
	if indexCount <= 0 || indexCount%IndexAlignment != 0 || indexCount > len(s.IndexBuffer) {
		return fmt.Errorf("raster3d: %d indices of %d: %w", indexCount, len(s.IndexBuffer), ErrIndexCount)
	}

	stride := s.VertexShader.InputStride()
	if stride <= 0 || len(s.VertexBuffer)%stride != 0 {
		return fmt.Errorf("raster3d: %d bytes with stride %d: %w", len(s.VertexBuffer), stride, ErrStride)
	}
	if regs := s.VertexShader.OutputRegisters(); regs < 1 || regs > shader.MaxRegisters {
		return fmt.Errorf("raster3d: %d registers: %w", regs, ErrRegisterCount)
	}

	if err := s.validateViewport(); err != nil {
		return err
	}

	switch s.DepthCompare {
	case gputypes.CompareFunctionGreaterEqual, gputypes.CompareFunctionGreater, gputypes.CompareFunctionAlways:
	default:
		return fmt.Errorf("raster3d: depth compare %v: %w", s.DepthCompare, ErrDepthCompare)
	}
	return nil
}

func (s *PipelineState) validateViewport() error {
	vp := s.Viewport
	w, h := float32(s.Target.Width()), float32(s.Target.Height())
	switch {
	case vp.Width <= 0 || vp.Height <= 0,
		vp.X < 0 || vp.Y < 0,
		vp.X+vp.Width > w || vp.Y+vp.Height > h,
		vp.MinDepth < 0 || vp.MaxDepth > 1 || vp.MinDepth > vp.MaxDepth:
		return fmt.Errorf("raster3d: viewport %+v on %vx%v target: %w", vp, w, h, ErrViewport)
	}
	return nil
}

// config snapshots s as a pipeline configuration. s must be valid.
func (s *PipelineState) config(indexCount int, opts *rendererOptions) pipeline.Config {
	vs := s.VertexShader
	return pipeline.Config{
		Indices:       s.IndexBuffer[:indexCount:indexCount],
		Vertices:      arena.NewRecords(s.VertexBuffer, vs.InputStride()),
		VertexShader:  vs,
		Registers:     vs.OutputRegisters(),
		Constants:     s.ConstantBuffers,
		Resources:     s.Resources,
		Viewport:      pipeline.Viewport(s.Viewport),
		PixelShader:   s.PixelShader,
		CullMode:      s.CullMode,
		FrontFace:     s.FrontFace,
		DepthCompare:  s.DepthCompare,
		HierarchicalZ: opts.hierarchicalZ,
		Grain:         opts.batchSize,
		Target:        s.Target.target(),
	}
}
