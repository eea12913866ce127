package texture

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raster3d/internal/wide"
)

// Sampler selects the filter and the addressing of out-of-range texel
// coordinates. The zero value samples with point filtering and clamps to
// the edge.
type Sampler struct {
	Filter  gputypes.FilterMode
	Address gputypes.AddressMode
}

// Common samplers.
var (
	PointClamp    = Sampler{Filter: gputypes.FilterModeNearest, Address: gputypes.AddressModeClampToEdge}
	BilinearClamp = Sampler{Filter: gputypes.FilterModeLinear, Address: gputypes.AddressModeClampToEdge}
)

// Sample returns the filtered colour at texture coordinates (u, v).
// v = 0 addresses the bottom row.
func (t *Texture) Sample(smp Sampler, u, v float32) mgl32.Vec4 {
	if smp.Filter == gputypes.FilterModeLinear {
		return t.bilinear(smp.Address, u, v)
	}
	return t.point(smp.Address, u, v)
}

// Sample8 samples eight coordinates at once. Inactive lanes are zero.
func (t *Texture) Sample8(smp Sampler, u, v wide.F32x8, mask wide.Mask8) wide.Vec4x8 {
	var out wide.Vec4x8
	for i := range wide.Lanes {
		if !mask.Active(i) {
			continue
		}
		out.SetLane(i, t.Sample(smp, u[i], v[i]))
	}
	return out
}

func (t *Texture) point(addr gputypes.AddressMode, u, v float32) mgl32.Vec4 {
	s := int(math32.Floor(float32(t.width) * u))
	tt := int(math32.Floor(float32(t.height) * (1 - v)))
	return t.fetch(addr, s, tt)
}

func (t *Texture) bilinear(addr gputypes.AddressMode, u, v float32) mgl32.Vec4 {
	sf := float32(t.width)*u - 0.5
	tf := float32(t.height)*(1-v) - 0.5
	s0 := math32.Floor(sf)
	t0 := math32.Floor(tf)
	fs := sf - s0
	ft := tf - t0
	s, tt := int(s0), int(t0)

	c00 := t.fetch(addr, s, tt)
	c10 := t.fetch(addr, s+1, tt)
	c01 := t.fetch(addr, s, tt+1)
	c11 := t.fetch(addr, s+1, tt+1)

	top := lerp(c00, c10, fs)
	bottom := lerp(c01, c11, fs)
	return lerp(top, bottom, ft)
}

func (t *Texture) fetch(addr gputypes.AddressMode, s, tt int) mgl32.Vec4 {
	switch addr {
	case gputypes.AddressModeRepeat:
		s = wrap(s, t.width)
		tt = wrap(tt, t.height)
	case gputypes.AddressModeMirrorRepeat:
		s = mirror(s, t.width)
		tt = mirror(tt, t.height)
	}
	return t.Texel(s, tt)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func mirror(i, n int) int {
	i = wrap(i, 2*n)
	if i >= n {
		i = 2*n - 1 - i
	}
	return i
}

func lerp(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// latLongPole is the |cos(theta)| above which a direction is treated as
// pointing at a pole of the environment map.
const latLongPole = 0.99

// SampleLatLong returns the point-sampled texel of an equirectangular
// environment map seen along dir. +Z is the up axis; longitude is measured
// from +X towards +Y. A zero direction samples the +Z pole.
func (t *Texture) SampleLatLong(dir mgl32.Vec3) mgl32.Vec4 {
	u, v := LatLongCoords(dir)
	return t.point(gputypes.AddressModeClampToEdge, u, v)
}

// SampleLatLong8 samples eight directions at once. Inactive lanes are zero.
func (t *Texture) SampleLatLong8(dir *wide.Vec4x8, mask wide.Mask8) wide.Vec4x8 {
	var out wide.Vec4x8
	for i := range wide.Lanes {
		if !mask.Active(i) {
			continue
		}
		d := mgl32.Vec3{dir.X[i], dir.Y[i], dir.Z[i]}
		out.SetLane(i, t.SampleLatLong(d))
	}
	return out
}

// LatLongCoords maps a direction to equirectangular texture coordinates.
func LatLongCoords(dir mgl32.Vec3) (u, v float32) {
	l := dir.Len()
	if l == 0 {
		return 0.5, 1
	}
	cosTheta := dir[2] / l
	switch {
	case cosTheta > latLongPole:
		return 0.5, 1
	case cosTheta < -latLongPole:
		return 0.5, 0
	}

	h := mgl32.Vec2{dir[0], dir[1]}.Normalize()
	u = math32.Acos(clampUnit(h[0])) / (2 * math32.Pi)
	if h[1] < 0 {
		u = 1 - u
	}
	return u, 1 - math32.Acos(clampUnit(cosTheta))/math32.Pi
}

func clampUnit(x float32) float32 {
	return min(max(x, -1), 1)
}

// Tonemap maps a linear HDR colour to display range with an exposure
// curve followed by gamma 2.2. Alpha is passed through.
func Tonemap(c mgl32.Vec4, exposure float32) mgl32.Vec4 {
	for i := range 3 {
		c[i] = math32.Pow(1-math32.Exp(-c[i]*exposure), 1/2.2)
	}
	return c
}
