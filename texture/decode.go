package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrEmptyData is returned when image data is empty.
var ErrEmptyData = errors.New("texture: empty data")

// Load reads an image file and converts it to an RGBA8 texture.
// PNG, JPEG, BMP, TIFF and WebP are recognised by content.
func Load(path string) (*Texture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texture: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes an encoded image held in memory.
func LoadBytes(data []byte) (*Texture, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return FromImage(img)
}

// FromImage converts img to an RGBA8 texture. Row 0 of the image is the
// top row, which Sample addresses with v = 1.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	t, err := New(b.Dx(), b.Dy(), gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	if err := t.UpdateData(rgba.Pix[:4*b.Dx()*b.Dy()]); err != nil {
		return nil, err
	}
	return t, nil
}

// Resized returns a copy of t scaled to width x height with bilinear
// filtering.
func (t *Texture) Resized(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), t.Image(), image.Rect(0, 0, t.width, t.height), draw.Src, nil)

	out, err := New(width, height, t.format)
	if err != nil {
		return nil, err
	}
	for y := range height {
		for x := range width {
			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]
			out.SetTexel(x, y, mgl32.Vec4{
				float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255,
			})
		}
	}
	return out, nil
}

// Image returns the texture as an 8-bit image. Float texels are clamped
// to [0, 1].
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := range t.height {
		for x := range t.width {
			v := t.packed32(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(v)
			img.Pix[i+1] = uint8(v >> 8)
			img.Pix[i+2] = uint8(v >> 16)
			img.Pix[i+3] = uint8(v >> 24)
		}
	}
	return img
}

func (t *Texture) packed32(x, y int) uint32 {
	i := y*t.width + x
	if t.packed != nil {
		return t.packed[i]
	}
	return EncodeRGBA8(t.float[i])
}
