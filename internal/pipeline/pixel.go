package pipeline

import (
	"sync/atomic"

	"github.com/gogpu/raster3d/internal/parallel"
	"github.com/gogpu/raster3d/internal/wide"
	"github.com/gogpu/raster3d/shader"
)

// tileCache is the bin-local copy of the framebuffer while it is shaded.
type tileCache struct {
	color [parallel.TilePixels]uint32
	depth [parallel.TilePixels]float32
}

// load copies the valid pixels of the tile at (ox, oy) from target.
func (c *tileCache) load(target *Target, ox, oy int, valid uint64) {
	w := target.Grid.Width()
	for r := range parallel.TileSize {
		row := valid >> (r * parallel.TileSize) & 0xFF
		if row == 0 {
			break
		}
		for col := range parallel.TileSize {
			if row&(1<<col) == 0 {
				break
			}
			i := (oy+r)*w + ox + col
			c.color[r*parallel.TileSize+col] = target.Color[i]
			c.depth[r*parallel.TileSize+col] = target.Depth[i]
		}
	}
}

// store writes the valid pixels back and returns their minimum depth.
func (c *tileCache) store(target *Target, ox, oy int, valid uint64) float32 {
	w := target.Grid.Width()
	minDepth := float32(1)
	first := true
	for r := range parallel.TileSize {
		row := valid >> (r * parallel.TileSize) & 0xFF
		if row == 0 {
			break
		}
		for col := range parallel.TileSize {
			if row&(1<<col) == 0 {
				break
			}
			k := r*parallel.TileSize + col
			i := (oy+r)*w + ox + col
			target.Color[i] = c.color[k]
			target.Depth[i] = c.depth[k]
			if first || c.depth[k] < minDepth {
				minDepth = c.depth[k]
				first = false
			}
		}
	}
	return minDepth
}

// ShadePixels shades the covered pixels of every bin and writes them to
// the target. Within a bin, triangles are shaded in bin order; a fragment
// that ties the cached depth replaces it. It returns the number of
// fragments written.
func ShadePixels(cfg *Config, pool *parallel.WorkerPool, prims *Primitives, bins *Bins, infos []TileInfo) int {
	var fragments atomic.Int64
	target := &cfg.Target

	pool.ParallelFor(len(bins.Compacted), binGrain(cfg), func(lo, hi int) {
		var cache tileCache
		var local int64
		for _, cb := range bins.Compacted[lo:hi] {
			bin := int(cb.Bin)
			ox, oy := bins.Grid.Origin(bin)
			valid := bins.Grid.ValidMask(bin)

			cache.load(target, ox, oy, valid)
			written := 0
			for _, info := range infos[cb.Offset : cb.Offset+cb.Count] {
				if info.Mask != 0 {
					written += shadeTriangle(cfg, prims, &cache, info, ox, oy)
				}
			}
			if written == 0 {
				continue
			}
			target.TileMin[bin] = cache.store(target, ox, oy, valid)
			if target.Dirty != nil {
				target.Dirty.Mark(bin)
			}
			local += int64(written)
		}
		fragments.Add(local)
	})
	return int(fragments.Load())
}

// shadeTriangle shades the covered rows of one triangle into the cache
// and returns the number of fragments written.
func shadeTriangle(cfg *Config, prims *Primitives, cache *tileCache, info TileInfo, ox, oy int) int {
	t := &prims.Triangles[info.TriangleID]
	v0, v1, v2 := prims.Attributes.Triangle(int(info.TriangleID))
	regs := prims.Attributes.PerItem()
	e1, e2 := t.Edges[1], t.Edges[2]
	rw0, rw1, rw2 := t.RecipW[0], t.RecipW[1], t.RecipW[2]

	var in shader.PixelInput
	var out shader.PixelOutput
	written := 0
	for r := range parallel.TileSize {
		rowMask := wide.Mask8(info.Mask >> (r * parallel.TileSize))
		if rowMask == 0 {
			continue
		}
		py := int64(oy + r)
		d1 := wide.RampI64(e1.Eval(int64(ox), py), e1.A<<SubPixelBits)
		d2 := wide.RampI64(e2.Eval(int64(ox), py), e2.A<<SubPixelBits)
		u := d1.Shr(2 * SubPixelBits).Float().Scale(t.OneOverArea)
		v := d2.Shr(2 * SubPixelBits).Float().Scale(t.OneOverArea)

		in.Registers[0] = wide.Interpolate(v0[0], v1[0], v2[0], u, v)
		z := in.Registers[0].Z
		base := r * parallel.TileSize

		var live wide.Mask8
		for l := range wide.Lanes {
			if rowMask.Active(l) && cfg.depthPasses(z[l], cache.depth[base+l]) {
				live |= 1 << l
			}
		}
		if live == 0 {
			continue
		}

		if regs > 1 {
			var pu, pv wide.F32x8
			for l := range wide.Lanes {
				den := (1-u[l]-v[l])*rw0 + u[l]*rw1 + v[l]*rw2
				pu[l] = u[l] * rw1 / den
				pv[l] = v[l] * rw2 / den
			}
			for k := 1; k < regs; k++ {
				in.Registers[k] = wide.Interpolate(v0[k], v1[k], v2[k], pu, pv)
			}
		}

		cfg.PixelShader.ShadePixels(&in, &out, &cfg.Resources, live)
		for l := range wide.Lanes {
			if live.Active(l) {
				cache.color[base+l] = PackColor(out.Color.Lane(l))
				cache.depth[base+l] = z[l]
			}
		}
		written += live.Count()
	}
	return written
}
