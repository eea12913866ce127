// Package texture provides the texel storage and sampling used by shaders.
//
// A Texture holds either packed 8-bit RGBA texels (TextureFormatRGBA8Unorm,
// one uint32 per texel with x in the low byte) or four float32 channels per
// texel (TextureFormatRGBA32Float). There is no mip chain: point and
// bilinear filtering sample level 0 directly.
//
// Textures satisfy gpucontext.Texture, gpucontext.TextureUpdater and
// gpucontext.TextureRegionUpdater, so they can be refreshed in place by
// the same code that feeds GPU textures.
package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Texture errors.
var (
	// ErrUnsupportedFormat is returned for texel formats other than
	// RGBA8Unorm and RGBA32Float.
	ErrUnsupportedFormat = errors.New("texture: unsupported format")

	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("texture: invalid size")

	// ErrDataSize is returned when texel data does not match the texture size.
	ErrDataSize = errors.New("texture: data size mismatch")

	// ErrRegionBounds is returned when an update region exceeds the texture.
	ErrRegionBounds = errors.New("texture: region out of bounds")
)

var (
	_ gpucontext.Texture              = (*Texture)(nil)
	_ gpucontext.TextureUpdater       = (*Texture)(nil)
	_ gpucontext.TextureRegionUpdater = (*Texture)(nil)
)

// Texture is a 2-D array of texels.
type Texture struct {
	width  int
	height int
	format gputypes.TextureFormat
	packed []uint32     // RGBA8Unorm
	float  []mgl32.Vec4 // RGBA32Float
}

// New creates a zeroed texture.
func New(width, height int, format gputypes.TextureFormat) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	t := &Texture{width: width, height: height, format: format}
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		t.packed = make([]uint32, width*height)
	case gputypes.TextureFormatRGBA32Float:
		t.float = make([]mgl32.Vec4, width*height)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return t, nil
}

// FromPacked wraps packed RGBA8 texels without copying.
func FromPacked(width, height int, texels []uint32) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if len(texels) != width*height {
		return nil, fmt.Errorf("%w: %d texels for %dx%d", ErrDataSize, len(texels), width, height)
	}
	return &Texture{width: width, height: height, format: gputypes.TextureFormatRGBA8Unorm, packed: texels}, nil
}

// FromFloat wraps float texels without copying.
func FromFloat(width, height int, texels []mgl32.Vec4) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if len(texels) != width*height {
		return nil, fmt.Errorf("%w: %d texels for %dx%d", ErrDataSize, len(texels), width, height)
	}
	return &Texture{width: width, height: height, format: gputypes.TextureFormatRGBA32Float, float: texels}, nil
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// BytesPerTexel returns the size of one texel in UpdateData input.
func (t *Texture) BytesPerTexel() int {
	if t.format == gputypes.TextureFormatRGBA32Float {
		return 16
	}
	return 4
}

// Texel returns the texel at (s, t) clamped to the edge.
func (t *Texture) Texel(s, tt int) mgl32.Vec4 {
	s = min(max(s, 0), t.width-1)
	tt = min(max(tt, 0), t.height-1)
	i := tt*t.width + s
	if t.packed != nil {
		return DecodeRGBA8(t.packed[i])
	}
	return t.float[i]
}

// SetTexel stores c at (s, tt). Out-of-range coordinates are ignored.
func (t *Texture) SetTexel(s, tt int, c mgl32.Vec4) {
	if s < 0 || s >= t.width || tt < 0 || tt >= t.height {
		return
	}
	i := tt*t.width + s
	if t.packed != nil {
		t.packed[i] = EncodeRGBA8(c)
		return
	}
	t.float[i] = c
}

// UpdateData replaces every texel. data holds width*height texels in
// row-major order: RGBA bytes for RGBA8Unorm, little-endian float32 RGBA
// for RGBA32Float.
func (t *Texture) UpdateData(data []byte) error {
	return t.UpdateRegion(0, 0, t.width, t.height, data)
}

// UpdateRegion replaces the w x h texels whose top-left corner is (x, y).
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > t.width || y+h > t.height {
		return fmt.Errorf("%w: (%d,%d) %dx%d in %dx%d", ErrRegionBounds, x, y, w, h, t.width, t.height)
	}
	bpt := t.BytesPerTexel()
	if len(data) != w*h*bpt {
		return fmt.Errorf("%w: %d bytes for %dx%d region", ErrDataSize, len(data), w, h)
	}

	for row := range h {
		src := data[row*w*bpt:]
		dst := (y+row)*t.width + x
		for col := range w {
			texel := src[col*bpt:]
			if t.packed != nil {
				t.packed[dst+col] = binary.LittleEndian.Uint32(texel)
				continue
			}
			t.float[dst+col] = mgl32.Vec4{
				math.Float32frombits(binary.LittleEndian.Uint32(texel[0:])),
				math.Float32frombits(binary.LittleEndian.Uint32(texel[4:])),
				math.Float32frombits(binary.LittleEndian.Uint32(texel[8:])),
				math.Float32frombits(binary.LittleEndian.Uint32(texel[12:])),
			}
		}
	}
	return nil
}

// DecodeRGBA8 unpacks a texel: x is the low byte, w the high byte.
func DecodeRGBA8(v uint32) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(v&0xFF) / 255,
		float32(v>>8&0xFF) / 255,
		float32(v>>16&0xFF) / 255,
		float32(v>>24) / 255,
	}
}

// EncodeRGBA8 packs a colour clamped to [0, 1], x in the low byte.
func EncodeRGBA8(c mgl32.Vec4) uint32 {
	return uint32(unorm8(c[0])) |
		uint32(unorm8(c[1]))<<8 |
		uint32(unorm8(c[2]))<<16 |
		uint32(unorm8(c[3]))<<24
}

func unorm8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
