// Package parallel provides the tiling and fork-join infrastructure of the
// rasterization pipeline.
//
// The framebuffer is divided into 8x8 pixel tiles (bins). A tile is the
// unit of work for the rasterizer and pixel stages: every bin owns a
// disjoint pixel region, so bins are shaded concurrently without locks.
// Key pieces:
//
//   - BinGrid maps pixels and pixel rectangles to row-major bin indices
//   - WorkerPool runs fork-join loops with per-worker queues and stealing
//   - DirtyRegion records which bins were written since the last present
//
// Thread safety: BinGrid is immutable after creation. WorkerPool and
// DirtyRegion are safe for concurrent use.
package parallel

// Tile size constants. One tile row is exactly one 8-lane SIMD batch and a
// whole tile fits one uint64 coverage mask.
const (
	// TileSize is the width and height of a tile in pixels.
	TileSize = 8

	// TileShift is log2(TileSize).
	TileShift = 3

	// TilePixels is the number of pixels in a full tile.
	TilePixels = TileSize * TileSize
)

// BinGrid describes the tiling of a width x height pixel surface.
// Bins are numbered row-major: index = ty*TilesX + tx. Edge bins may extend
// past the surface when its size is not a multiple of TileSize.
type BinGrid struct {
	width, height  int
	tilesX, tilesY int
}

// NewBinGrid creates the grid covering a width x height surface.
// Non-positive dimensions produce an empty grid.
func NewBinGrid(width, height int) BinGrid {
	if width <= 0 || height <= 0 {
		return BinGrid{}
	}
	return BinGrid{
		width:  width,
		height: height,
		tilesX: (width + TileSize - 1) >> TileShift,
		tilesY: (height + TileSize - 1) >> TileShift,
	}
}

// Width returns the surface width in pixels.
func (g BinGrid) Width() int { return g.width }

// Height returns the surface height in pixels.
func (g BinGrid) Height() int { return g.height }

// TilesX returns the number of bins per row.
func (g BinGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of bin rows.
func (g BinGrid) TilesY() int { return g.tilesY }

// Count returns the total number of bins.
func (g BinGrid) Count() int { return g.tilesX * g.tilesY }

// Index returns the bin index of tile (tx, ty).
func (g BinGrid) Index(tx, ty int) int { return ty*g.tilesX + tx }

// Coords returns the tile coordinates of bin index.
func (g BinGrid) Coords(index int) (tx, ty int) {
	return index % g.tilesX, index / g.tilesX
}

// Origin returns the pixel coordinates of the top-left corner of bin index.
func (g BinGrid) Origin(index int) (x, y int) {
	tx, ty := g.Coords(index)
	return tx << TileShift, ty << TileShift
}

// TileRange converts an inclusive pixel rectangle into the inclusive range
// of tile coordinates it overlaps, clamped to the grid. ok is false when
// the rectangle is empty or entirely outside the surface.
func (g BinGrid) TileRange(minX, minY, maxX, maxY int) (tx0, ty0, tx1, ty1 int, ok bool) {
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, g.width-1)
	maxY = min(maxY, g.height-1)
	if minX > maxX || minY > maxY {
		return 0, 0, 0, 0, false
	}
	return minX >> TileShift, minY >> TileShift, maxX >> TileShift, maxY >> TileShift, true
}

// ValidMask returns the coverage mask of the pixels of bin index that lie
// inside the surface. Bit row*TileSize+col is tile-local pixel (col, row).
func (g BinGrid) ValidMask(index int) uint64 {
	ox, oy := g.Origin(index)
	cols := min(g.width-ox, TileSize)
	rows := min(g.height-oy, TileSize)
	if cols <= 0 || rows <= 0 {
		return 0
	}
	row := uint64(1)<<cols - 1
	var mask uint64
	for r := range rows {
		mask |= row << (r * TileSize)
	}
	return mask
}
