package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raster3d"
	"github.com/gogpu/raster3d/camera"
	"github.com/gogpu/raster3d/mesh"
	"github.com/gogpu/raster3d/shader"
	"github.com/gogpu/raster3d/texture"
)

const (
	// spinStep is the model or camera rotation between frames.
	spinStep = 3 * math.Pi / 180

	// modelTextureSize is the resolution model textures are resampled to.
	modelTextureSize = 512
)

type sceneOptions struct {
	width, height int
	texture       string
	mesh          string
	library       *texture.Library
}

// scene produces the draw calls of one frame.
type scene struct {
	width, height int
	background    gputypes.Color
	frame         int

	// states returns the draws of the current frame in submission order.
	states func(fb *raster3d.Framebuffer, frame int) []raster3d.PipelineState
}

func (s *scene) advance() { s.frame++ }

func (s *scene) render(r *raster3d.Renderer, fb *raster3d.Framebuffer) (raster3d.DrawStats, error) {
	fb.ClearColor(s.background)
	fb.ClearDepth(0)

	var total raster3d.DrawStats
	for _, state := range s.states(fb, s.frame) {
		st, err := r.DrawIndexed(state, len(state.IndexBuffer))
		if err != nil {
			return total, err
		}
		total.Add(st)
	}
	return total, nil
}

func newScene(name string, opts sceneOptions) (*scene, error) {
	switch name {
	case "suprematist":
		return suprematistScene(opts), nil
	case "cube":
		return cubeScene(opts)
	case "env":
		return envScene(opts)
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}

// suprematistScene draws the flat Malevich composition at the canvas
// aspect ratio, sized by the requested height.
func suprematistScene(opts sceneOptions) *scene {
	m := mesh.Suprematist()
	h := opts.height
	w := h * mesh.SuprematistWidth / mesh.SuprematistHeight

	return &scene{
		width:      w,
		height:     h,
		background: mesh.SuprematistBackground,
		states: func(fb *raster3d.Framebuffer, _ int) []raster3d.PipelineState {
			s := raster3d.DefaultPipelineState(fb)
			s.IndexBuffer = m.Indices
			s.VertexBuffer = m.Vertices
			s.VertexShader = shader.PassthroughVS{}
			s.PixelShader = shader.ColorPS{}
			s.CullMode = gputypes.CullModeNone
			return []raster3d.PipelineState{s}
		},
	}
}

// cubeScene draws a textured model spinning about the vertical axis above
// an environment-lit floor.
func cubeScene(opts sceneOptions) (*scene, error) {
	model, err := loadModel(opts.mesh)
	if err != nil {
		return nil, err
	}
	tex, err := loadTexture(opts.texture, checkerTexture, func(path string) (*texture.Texture, error) {
		return opts.lib().LoadResized(path, modelTextureSize, modelTextureSize)
	})
	if err != nil {
		return nil, err
	}
	sky, err := skyTexture()
	if err != nil {
		return nil, err
	}
	floor := mesh.Plane(8)

	cam := camera.New(float32(opts.width) / float32(opts.height))
	cam.Position = mgl32.Vec3{3.5, 0, 0.6}
	cam.Yaw = 0

	return &scene{
		width:      opts.width,
		height:     opts.height,
		background: gputypes.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
		states: func(fb *raster3d.Framebuffer, frame int) []raster3d.PipelineState {
			clipFromWorld := cam.ClipFromWorld()
			spin := mgl32.HomogRotate3DZ(float32(frame) * spinStep)

			s := raster3d.DefaultPipelineState(fb)
			s.IndexBuffer = model.Indices
			s.VertexBuffer = model.Vertices
			s.VertexShader = shader.TransformVS{}
			s.PixelShader = shader.TexturePS{Sampler: texture.BilinearClamp}
			s.ConstantBuffers[0] = &shader.TransformConstants{ClipFromWorld: clipFromWorld.Mul4(spin)}
			s.Resources[0] = tex

			f := raster3d.DefaultPipelineState(fb)
			f.IndexBuffer = floor.Indices
			f.VertexBuffer = floor.Vertices
			f.VertexShader = shader.TransformVS{}
			f.PixelShader = shader.EnvLightingPS{Exposure: 0.8}
			f.ConstantBuffers[0] = &shader.TransformConstants{
				ClipFromWorld: clipFromWorld.Mul4(mgl32.Translate3D(0, 0, -0.75)),
			}
			f.Resources[0] = sky

			return []raster3d.PipelineState{f, s}
		},
	}, nil
}

// envScene draws the environment as a sky behind a vertex-lit cube while
// the camera turns.
func envScene(opts sceneOptions) (*scene, error) {
	env, err := loadTexture(opts.texture, skyTexture, opts.lib().Load)
	if err != nil {
		return nil, err
	}
	sky := mesh.FullscreenTriangle()
	cube := mesh.Cube(1)
	cam := camera.New(float32(opts.width) / float32(opts.height))

	return &scene{
		width:  opts.width,
		height: opts.height,
		states: func(fb *raster3d.Framebuffer, frame int) []raster3d.PipelineState {
			if frame > 0 {
				cam.Rotate(spinStep, 0)
			}

			bg := raster3d.DefaultPipelineState(fb)
			bg.IndexBuffer = sky.Indices
			bg.VertexBuffer = sky.Vertices
			bg.VertexShader = shader.FullscreenVS{}
			bg.PixelShader = shader.EnvLightingPS{}
			bg.ConstantBuffers[0] = cam.EnvironmentConstants()
			bg.Resources[0] = env

			c := raster3d.DefaultPipelineState(fb)
			c.IndexBuffer = cube.Indices
			c.VertexBuffer = cube.Vertices
			c.VertexShader = shader.VertexLightingVS{}
			c.PixelShader = shader.ColorPS{}
			c.ConstantBuffers[0] = cam.TransformConstants()
			c.Resources[0] = env

			return []raster3d.PipelineState{bg, c}
		},
	}, nil
}

func loadModel(path string) (*mesh.Mesh, error) {
	if path == "" {
		return mesh.Cube(1.2), nil
	}
	m, err := mesh.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if m.Stride != shader.MeshVertexSize {
		return nil, fmt.Errorf("mesh %s: stride %d, want %d", path, m.Stride, shader.MeshVertexSize)
	}
	m.Indices = mesh.PadIndices(m.Indices)
	return m, nil
}

func (o sceneOptions) lib() *texture.Library {
	if o.library == nil {
		return texture.NewLibrary(0)
	}
	return o.library
}

func loadTexture(path string, fallback func() (*texture.Texture, error), load func(string) (*texture.Texture, error)) (*texture.Texture, error) {
	if path == "" {
		return fallback()
	}
	return load(path)
}

// checkerTexture is an 8x8 two-tone checkerboard.
func checkerTexture() (*texture.Texture, error) {
	const n = 64
	light := texture.EncodeRGBA8(mgl32.Vec4{0.95, 0.75, 0.2, 1})
	dark := texture.EncodeRGBA8(mgl32.Vec4{0.2, 0.25, 0.6, 1})

	texels := make([]uint32, n*n)
	for y := range n {
		for x := range n {
			texels[y*n+x] = light
			if (x/8+y/8)%2 == 1 {
				texels[y*n+x] = dark
			}
		}
	}
	return texture.FromPacked(n, n, texels)
}

// skyTexture is a lat-long HDR gradient from a dark ground to a bright
// horizon and a blue zenith.
func skyTexture() (*texture.Texture, error) {
	const w, h = 64, 32
	ground := mgl32.Vec4{0.15, 0.12, 0.1, 1}
	horizon := mgl32.Vec4{2.5, 2.2, 1.8, 1}
	zenith := mgl32.Vec4{0.3, 0.6, 1.6, 1}

	texels := make([]mgl32.Vec4, w*h)
	for y := range h {
		// Row 0 is the zenith.
		t := float32(y) / (h - 1)
		var c mgl32.Vec4
		if t < 0.5 {
			c = lerp(zenith, horizon, t*2)
		} else {
			c = lerp(horizon, ground, t*2-1)
		}
		for x := range w {
			texels[y*w+x] = c
		}
	}
	return texture.FromFloat(w, h, texels)
}

func lerp(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
