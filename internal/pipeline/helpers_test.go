package pipeline

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raster3d/internal/arena"
	"github.com/gogpu/raster3d/internal/parallel"
	"github.com/gogpu/raster3d/internal/wide"
	"github.com/gogpu/raster3d/shader"
)

// clipVS reads a clip-space position and an attribute register.
type clipVS struct{}

func (clipVS) InputStride() int     { return 32 }
func (clipVS) OutputRegisters() int { return 2 }

func (clipVS) ShadeVertices(in *shader.VertexInput, out *shader.VertexOutput, _ *shader.ConstantBuffers, _ *shader.ResourceViews) {
	out.Registers[0] = in.Vec(0, 4)
	out.Registers[1] = in.Vec(16, 4)
}

// recordPS outputs register 1 and remembers every value it shaded.
type recordPS struct {
	mu   sync.Mutex
	seen [][4]float32
}

func (p *recordPS) ShadePixels(in *shader.PixelInput, out *shader.PixelOutput, _ *shader.ResourceViews, mask shader.Mask) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for l := range wide.Lanes {
		if mask.Active(l) {
			p.seen = append(p.seen, in.Registers[1].Lane(l))
		}
	}
	out.Color = in.Registers[1]
}

type vertex struct {
	pos, attr [4]float32
}

func vertexBuffer(vs ...vertex) []byte {
	var out []byte
	for _, v := range vs {
		for _, f := range append(v.pos[:], v.attr[:]...) {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
	}
	return out
}

func newTarget(w, h int) Target {
	grid := parallel.NewBinGrid(w, h)
	return Target{
		Color:   make([]uint32, w*h),
		Depth:   make([]float32, w*h),
		TileMin: make([]float32, grid.Count()),
		Grid:    grid,
		Dirty:   parallel.NewDirtyRegion(grid.Count()),
	}
}

func newConfig(target Target, ps shader.PixelShader, indices []uint32, vs ...vertex) *Config {
	w, h := target.Grid.Width(), target.Grid.Height()
	return &Config{
		Indices:       indices,
		Vertices:      arena.NewRecords(vertexBuffer(vs...), 32),
		VertexShader:  clipVS{},
		Registers:     2,
		Viewport:      Viewport{Width: float32(w), Height: float32(h), MaxDepth: 1},
		PixelShader:   ps,
		CullMode:      gputypes.CullModeBack,
		FrontFace:     gputypes.FrontFaceCCW,
		DepthCompare:  gputypes.CompareFunctionGreaterEqual,
		HierarchicalZ: true,
		Target:        target,
	}
}

func newPool(t *testing.T) *parallel.WorkerPool {
	t.Helper()
	pool := parallel.NewWorkerPool(4)
	t.Cleanup(pool.Close)
	return pool
}

// screenTriangle sets up a triangle from screen-space positions
// (x, y, depth) with w = 1.
func screenTriangle(cfg *Config, p0, p1, p2 [3]float32) (Triangle, setupResult) {
	s := [3]mgl32.Vec4{
		{p0[0], p0[1], p0[2], 1},
		{p1[0], p1[1], p1[2], 1},
		{p2[0], p2[1], p2[2], 1},
	}
	return setupTriangle(&s, cfg)
}

var (
	red   = [4]float32{1, 0, 0, 1}
	green = [4]float32{0, 1, 0, 1}
	blue  = [4]float32{0, 0, 1, 1}
)
