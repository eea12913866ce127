package raster3d

import (
	"image"
	"image/png"
	"os"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/raster3d/internal/parallel"
	"github.com/gogpu/raster3d/internal/pipeline"
)

var _ gpucontext.Texture = (*Framebuffer)(nil)

// Framebuffer is the colour and depth surface draws render into.
//
// Colour is stored row-major as packed 0xAARRGGBB words, which is BGRA8 in
// little-endian memory. Depth is one float32 per pixel, larger is nearer.
// The framebuffer also keeps one minimum-depth record and one dirty bit per
// 8x8 tile.
type Framebuffer struct {
	grid    parallel.BinGrid
	color   []uint32
	depth   []float32
	tileMin []float32
	dirty   *parallel.DirtyRegion
}

// NewFramebuffer creates a framebuffer of the given size, cleared to
// transparent black with depth 0 (farthest). A non-positive dimension
// yields an empty framebuffer that every draw rejects.
func NewFramebuffer(width, height int) *Framebuffer {
	grid := parallel.NewBinGrid(width, height)
	n := grid.Width() * grid.Height()
	return &Framebuffer{
		grid:    grid,
		color:   make([]uint32, n),
		depth:   make([]float32, n),
		tileMin: make([]float32, grid.Count()),
		dirty:   parallel.NewDirtyRegion(grid.Count()),
	}
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int { return f.grid.Width() }

// Height returns the height in pixels.
func (f *Framebuffer) Height() int { return f.grid.Height() }

// Format returns the in-memory colour format.
func (f *Framebuffer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Tiles returns the number of 8x8 tiles.
func (f *Framebuffer) Tiles() int { return f.grid.Count() }

// Color returns the packed colour buffer. The slice aliases the
// framebuffer.
func (f *Framebuffer) Color() []uint32 { return f.color }

// Depth returns the depth buffer. The slice aliases the framebuffer.
// After writing through it, call RecomputeTileDepth so hierarchical depth
// rejection sees the new values.
func (f *Framebuffer) Depth() []float32 { return f.depth }

// RecomputeTileDepth rebuilds the per-tile minimum depth from the depth
// buffer and marks every tile dirty.
func (f *Framebuffer) RecomputeTileDepth() {
	w, h := f.Width(), f.Height()
	for bin := range f.tileMin {
		x0, y0 := f.grid.Origin(bin)
		x1 := min(x0+parallel.TileSize, w)
		y1 := min(y0+parallel.TileSize, h)
		m := f.depth[y0*w+x0]
		for y := y0; y < y1; y++ {
			for _, d := range f.depth[y*w+x0 : y*w+x1] {
				m = min(m, d)
			}
		}
		f.tileMin[bin] = m
	}
	f.markAll()
}

// Pixel returns the packed colour at (x, y).
func (f *Framebuffer) Pixel(x, y int) uint32 { return f.color[y*f.Width()+x] }

// ClearColor fills the colour buffer with c and marks every tile dirty.
func (f *Framebuffer) ClearColor(c gputypes.Color) {
	packed := pipeline.PackColor([4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)})
	for i := range f.color {
		f.color[i] = packed
	}
	f.markAll()
}

// ClearDepth fills the depth buffer and every tile minimum with d and
// marks every tile dirty. Reversed-depth rendering clears to 0.
func (f *Framebuffer) ClearDepth(d float32) {
	for i := range f.depth {
		f.depth[i] = d
	}
	for i := range f.tileMin {
		f.tileMin[i] = d
	}
	f.markAll()
}

// markAll marks every tile dirty. An empty framebuffer has no tiles and
// no dirty region.
func (f *Framebuffer) markAll() {
	if f.dirty != nil {
		f.dirty.MarkAll()
	}
}

// DirtyTiles returns the number of tiles written since the last Drain.
func (f *Framebuffer) DirtyTiles() int {
	if f.dirty == nil {
		return 0
	}
	return f.dirty.Count()
}

// Drain calls fn with the pixel rectangle of every dirty tile and clears
// the dirty set. Presenters use it to upload only what changed.
func (f *Framebuffer) Drain(fn func(r image.Rectangle)) {
	if f.dirty == nil {
		return
	}
	f.dirty.Drain(func(bin int) {
		x, y := f.grid.Origin(bin)
		r := image.Rect(x, y, x+parallel.TileSize, y+parallel.TileSize)
		fn(r.Intersect(f.Bounds()))
	})
}

// Bounds returns the framebuffer rectangle.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width(), f.Height())
}

// Image converts the colour buffer to an image.RGBA.
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for i, c := range f.color {
		img.Pix[4*i+0] = uint8(c >> 16)
		img.Pix[4*i+1] = uint8(c >> 8)
		img.Pix[4*i+2] = uint8(c)
		img.Pix[4*i+3] = uint8(c >> 24)
	}
	return img
}

// Scaled returns the colour buffer enlarged by an integer factor with
// nearest-neighbour filtering. Factors below 2 return Image().
func (f *Framebuffer) Scaled(factor int) *image.RGBA {
	src := f.Image()
	if factor < 2 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, f.Width()*factor, f.Height()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG writes the colour buffer to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	return savePNG(path, f.Image())
}

// SaveScaledPNG writes Scaled(factor) to a PNG file.
func (f *Framebuffer) SaveScaledPNG(path string, factor int) error {
	return savePNG(path, f.Scaled(factor))
}

func savePNG(path string, img image.Image) error {
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	return png.Encode(out, img)
}

// target exposes the buffers to the pipeline.
func (f *Framebuffer) target() pipeline.Target {
	return pipeline.Target{
		Color:   f.color,
		Depth:   f.depth,
		TileMin: f.tileMin,
		Grid:    f.grid,
		Dirty:   f.dirty,
	}
}
