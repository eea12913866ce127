package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// approx compares component-wise with an absolute tolerance.
func approx(a, b []float32, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	c := New(820.0 / 1000)
	if c.Position != DefaultPosition || c.Yaw != DefaultYaw || c.Near != DefaultNear {
		t.Errorf("New() = %+v, want default placement", c)
	}
	if !mgl32.FloatEqualThreshold(c.FOV, math32.Pi/2, 1e-6) {
		t.Errorf("FOV = %v, want Pi/2", c.FOV)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name               string
		yaw, pitch         float32
		dYaw, dPitch       float32
		wantYaw, wantPitch float32
	}{
		{"small", 0, 0, 0.5, 0.25, 0.5, 0.25},
		{"wrap positive", 3, 0, 0.5, 0, 3.5 - 2*math32.Pi, 0},
		{"wrap negative", -3, 0, -0.5, 0, -3.5 + 2*math32.Pi, 0},
		{"clamp up", 0, 1, 0, 2, 0, math32.Pi / 2},
		{"clamp down", 0, -1, 0, -2, 0, -math32.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Camera{Yaw: tt.yaw, Pitch: tt.pitch}
			c.Rotate(tt.dYaw, tt.dPitch)
			if !mgl32.FloatEqualThreshold(c.Yaw, tt.wantYaw, 1e-5) || !mgl32.FloatEqualThreshold(c.Pitch, tt.wantPitch, 1e-5) {
				t.Errorf("Rotate() yaw, pitch = %v, %v, want %v, %v", c.Yaw, c.Pitch, tt.wantYaw, tt.wantPitch)
			}
		})
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name                    string
		strafe, ascent, forward float32
		want                    mgl32.Vec3
	}{
		{"forward", 0, 0, 1, mgl32.Vec3{-1, 0, 0}},
		{"up", 0, 1, 0, mgl32.Vec3{0, 0, 1}},
		{"strafe", 1, 0, 0, mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Camera{}
			c.Move(tt.strafe, tt.ascent, tt.forward)
			if !approx(c.Position[:], tt.want[:], 1e-6) {
				t.Errorf("Move() position = %v, want %v", c.Position, tt.want)
			}
		})
	}
}

func TestViewFromWorld_Inverse(t *testing.T) {
	c := New(1.5)
	c.Rotate(0.3, -0.4)
	got, ident := c.ViewFromWorld().Mul4(c.WorldFromView()), mgl32.Ident4()
	if !approx(got[:], ident[:], 1e-5) {
		t.Errorf("ViewFromWorld * WorldFromView = %v, want identity", got)
	}

	origin := c.ViewFromWorld().Mul4x1(c.Position.Vec4(1))
	if want := (mgl32.Vec4{0, 0, 0, 1}); !approx(origin[:], want[:], 1e-5) {
		t.Errorf("camera position in view space = %v, want origin", origin)
	}
}

func TestClipFromView_ReversedDepth(t *testing.T) {
	c := &Camera{FOV: math32.Pi / 2, Aspect: 1, Near: 0.1}
	m := c.ClipFromView()

	tests := []struct {
		z, wantDepth float32
	}{
		{0.1, 1},
		{1, 0.1},
		{100, 0.001},
	}
	for _, tt := range tests {
		p := m.Mul4x1(mgl32.Vec4{0, 0, tt.z, 1})
		if d := p[2] / p[3]; !mgl32.FloatEqualThreshold(d, tt.wantDepth, 1e-6) {
			t.Errorf("depth at z=%v = %v, want %v", tt.z, d, tt.wantDepth)
		}
	}

	// The edge of a 90 degree field of view lands on x = w.
	p := m.Mul4x1(mgl32.Vec4{2, 0, 2, 1})
	if !mgl32.FloatEqualThreshold(p[0]/p[3], 1, 1e-5) {
		t.Errorf("ndc x at the frustum edge = %v, want 1", p[0]/p[3])
	}
}

func TestClipFromWorld_Center(t *testing.T) {
	c := &Camera{FOV: math32.Pi / 2, Aspect: 1, Near: 0.1}
	p := c.ClipFromWorld().Mul4x1(mgl32.Vec4{-5, 0, 0, 1})
	ndc := p.Vec3().Mul(1 / p[3])
	if want := (mgl32.Vec3{0, 0, 0.02}); !approx(ndc[:], want[:], 1e-6) {
		t.Errorf("point ahead of the camera projects to %v, want [0 0 0.02]", ndc)
	}
}

func TestEnvironmentConstants(t *testing.T) {
	c := New(1)
	env := c.EnvironmentConstants()
	got, ident := env.ViewFromClip.Mul4(c.ClipFromView()), mgl32.Ident4()
	if !approx(got[:], ident[:], 1e-5) {
		t.Errorf("ViewFromClip * ClipFromView = %v, want identity", got)
	}
	if c.TransformConstants().ClipFromWorld != env.ClipFromWorld {
		t.Error("TransformConstants and EnvironmentConstants disagree on ClipFromWorld")
	}
}
