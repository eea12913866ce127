package shader

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raster3d/internal/wide"
	"github.com/gogpu/raster3d/texture"
)

// pack encodes per-vertex float records little-endian.
func pack(records ...[]float32) []byte {
	var out []byte
	for _, r := range records {
		for _, f := range r {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
	}
	return out
}

func batch(stride int, records ...[]float32) *VertexInput {
	return &VertexInput{Data: pack(records...), Stride: stride, Count: len(records)}
}

func TestVertexInput_Float(t *testing.T) {
	in := batch(8, []float32{1, 2}, []float32{3, 4}, []float32{5, 6})

	got := in.Float(4)
	want := Float8{2, 4, 6}
	if got != want {
		t.Errorf("Float(4) = %v, want %v", got, want)
	}
}

func TestVertexInput_Vec(t *testing.T) {
	in := batch(12, []float32{1, 2, 3}, []float32{4, 5, 6})

	v := in.Vec(0, 3)
	if v.Lane(1) != [4]float32{4, 5, 6, 0} {
		t.Errorf("Vec(0,3).Lane(1) = %v, want [4 5 6 0]", v.Lane(1))
	}
	v = in.Vec(4, 1)
	if v.X[0] != 2 || v.Y[0] != 0 {
		t.Errorf("Vec(4,1) lane 0 = %v, want [2 0 0 0]", v.Lane(0))
	}
}

func TestTransform(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	v := wide.SplatVec4([4]float32{1, 1, 1, 1})

	got := Transform(&m, &v)
	want := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	for i := range Lanes {
		if mgl32.Vec4(got.Lane(i)) != want {
			t.Fatalf("lane %d = %v, want %v", i, got.Lane(i), want)
		}
	}
}

func TestConstants(t *testing.T) {
	var cb ConstantBuffers
	tc := &TransformConstants{ClipFromWorld: mgl32.Ident4()}
	cb[0] = tc

	if got := Constants[TransformConstants](&cb, 0); got != tc {
		t.Errorf("Constants() = %p, want %p", got, tc)
	}

	defer func() {
		if recover() == nil {
			t.Error("Constants() with mismatched type did not panic")
		}
	}()
	Constants[EnvironmentConstants](&cb, 0)
}

func TestResource_Unbound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Resource() on an empty slot did not panic")
		}
	}()
	Resource(&ResourceViews{}, 3)
}

func TestTransformVS(t *testing.T) {
	var cb ConstantBuffers
	cb[0] = &TransformConstants{ClipFromWorld: mgl32.Scale3D(2, 3, 4)}

	in := batch(MeshVertexSize,
		[]float32{1, 1, 1, 0, 0, 5, 0.25, 0.75},
		[]float32{-1, 0, 2, 3, 0, 4, 1, 0},
	)
	var out VertexOutput
	var vs VertexShader = TransformVS{}
	vs.ShadeVertices(in, &out, &cb, nil)

	if vs.InputStride() != 32 || vs.OutputRegisters() != 3 {
		t.Errorf("layout = %d/%d, want 32/3", vs.InputStride(), vs.OutputRegisters())
	}
	if got := out.Registers[0].Lane(0); got != [4]float32{2, 3, 4, 1} {
		t.Errorf("position = %v, want [2 3 4 1]", got)
	}
	if got := out.Registers[1].Lane(0); got != [4]float32{0, 0, 1, 0} {
		t.Errorf("normal = %v, want unit +z", got)
	}
	if got := out.Registers[1].Lane(1); !mgl32.Vec4(got).ApproxEqual(mgl32.Vec4{0.6, 0, 0.8, 0}) {
		t.Errorf("normal lane 1 = %v, want [0.6 0 0.8 0]", got)
	}
	if got := out.Registers[2].Lane(0); got != [4]float32{0.25, 0.75, 0, 0} {
		t.Errorf("uv = %v, want [0.25 0.75 0 0]", got)
	}
}

func TestPassthroughVS(t *testing.T) {
	in := batch(ColorVertexSize,
		[]float32{0, 0, 0.5, 1, 1, 0, 0},
		[]float32{1, 0.5, 0.25, 1, 0, 1, 0},
	)
	var out VertexOutput
	PassthroughVS{}.ShadeVertices(in, &out, nil, nil)

	if got := out.Registers[0].Lane(0); got != [4]float32{-1, -1, 0.5, 1} {
		t.Errorf("lane 0 position = %v, want [-1 -1 0.5 1]", got)
	}
	if got := out.Registers[0].Lane(1); got != [4]float32{1, 0, 0.25, 1} {
		t.Errorf("lane 1 position = %v, want [1 0 0.25 1]", got)
	}
	if got := out.Registers[1].Lane(1); got != [4]float32{0, 1, 0, 1} {
		t.Errorf("lane 1 colour = %v, want opaque green", got)
	}
}

func TestFullscreenVS(t *testing.T) {
	var cb ConstantBuffers
	cb[0] = &EnvironmentConstants{
		ViewFromClip:  mgl32.Ident4(),
		WorldFromView: mgl32.HomogRotate3DZ(math.Pi / 2),
	}
	in := batch(ScreenVertexSize, []float32{1, 0.5, 0, 1})

	var out VertexOutput
	FullscreenVS{}.ShadeVertices(in, &out, &cb, nil)

	if got := out.Registers[0].Lane(0); got != [4]float32{1, 0, 0, 1} {
		t.Errorf("position = %v, want [1 0 0 1]", got)
	}
	// View-space +x rotated a quarter turn about z lands on +y; w is dropped.
	if got := mgl32.Vec4(out.Registers[1].Lane(0)); !got.ApproxEqualThreshold(mgl32.Vec4{0, 1, 0, 0}, 1e-6) {
		t.Errorf("direction = %v, want [0 1 0 0]", got)
	}
}

func uniformEnv(t *testing.T, c mgl32.Vec4) *texture.Texture {
	t.Helper()
	env, err := texture.FromFloat(1, 1, []mgl32.Vec4{c})
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func TestVertexLightingVS(t *testing.T) {
	var cb ConstantBuffers
	cb[0] = &TransformConstants{ClipFromWorld: mgl32.Ident4()}
	var srv ResourceViews
	srv[0] = uniformEnv(t, mgl32.Vec4{1, 0, 0, 1})

	in := batch(MeshVertexSize, []float32{0, 0, 0, 0, 0, 1, 0, 0})
	var out VertexOutput
	VertexLightingVS{}.ShadeVertices(in, &out, &cb, &srv)

	want := texture.Tonemap(mgl32.Vec4{1, 0, 0, 1}, 1)
	want[3] = 1
	if got := mgl32.Vec4(out.Registers[1].Lane(0)); !got.ApproxEqual(want) {
		t.Errorf("colour = %v, want %v", got, want)
	}
}

func TestColorPS(t *testing.T) {
	var in PixelInput
	in.Registers[1] = wide.SplatVec4([4]float32{0.1, 0.2, 0.3, 0})

	var out PixelOutput
	ColorPS{}.ShadePixels(&in, &out, nil, wide.AllLanes)
	if got := out.Color.Lane(5); got != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Errorf("colour = %v, want opaque register 1", got)
	}
}

func TestTexturePS(t *testing.T) {
	tex, _ := texture.FromPacked(2, 1, []uint32{0xFF0000FF, 0xFF00FF00})
	var srv ResourceViews
	srv[0] = tex

	var in PixelInput
	in.Registers[2].X = Float8{0.25, 0.75, 0.25, 0.75, 0.25, 0.75, 0.25, 0.75}
	in.Registers[2].Y = wide.SplatF32(0.5)

	var out PixelOutput
	TexturePS{Sampler: texture.PointClamp}.ShadePixels(&in, &out, &srv, wide.LaneRange(0, 1))
	if got := out.Color.Lane(0); got != [4]float32{1, 0, 0, 1} {
		t.Errorf("lane 0 = %v, want red", got)
	}
	if got := out.Color.Lane(1); got != [4]float32{0, 1, 0, 1} {
		t.Errorf("lane 1 = %v, want green", got)
	}
	if got := out.Color.Lane(2); got != [4]float32{} {
		t.Errorf("inactive lane 2 = %v, want zero", got)
	}
}

func TestModulatedTexturePS(t *testing.T) {
	var srv ResourceViews
	srv[0] = uniformEnv(t, mgl32.Vec4{1, 1, 1, 1})

	var in PixelInput
	in.Registers[1] = wide.SplatVec4([4]float32{0.5, 0.25, 1, 1})

	var out PixelOutput
	ModulatedTexturePS{}.ShadePixels(&in, &out, &srv, wide.AllLanes)
	if got := out.Color.Lane(7); got != [4]float32{0.5, 0.25, 1, 1} {
		t.Errorf("colour = %v, want tint", got)
	}
}

func TestEnvLightingPS(t *testing.T) {
	var srv ResourceViews
	srv[0] = uniformEnv(t, mgl32.Vec4{0, 0, 0, 1})

	var in PixelInput
	in.Registers[1] = wide.SplatVec4([4]float32{0, 0, 1, 0})

	var out PixelOutput
	EnvLightingPS{Exposure: 2}.ShadePixels(&in, &out, &srv, wide.AllLanes)
	if got := out.Color.Lane(3); got != [4]float32{0, 0, 0, 1} {
		t.Errorf("colour = %v, want opaque black", got)
	}
}

func TestDepthPS(t *testing.T) {
	var in PixelInput
	in.Registers[0].Z = Float8{-1, 0, 0.25, 0.5, 1, 2}

	var out PixelOutput
	DepthPS{}.ShadePixels(&in, &out, nil, wide.AllLanes)
	want := Float8{0, 0, 0.25, 0.5, 1, 1}
	if out.Color.X != want {
		t.Errorf("grey = %v, want %v", out.Color.X, want)
	}
}
