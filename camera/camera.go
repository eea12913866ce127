// Package camera provides a yaw/pitch fly camera with a left-handed,
// reversed-Z, infinite-far-plane perspective projection.
//
// View space is left-handed with +x right, +y up and +z forward. World
// space is right-handed with +z up; the camera looks along -x at zero yaw
// and pitch. Projected depth is near/z: 1 on the near plane, approaching 0
// at infinity, which matches the pipeline's greater-is-nearer depth test.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/raster3d/shader"
)

// Defaults of New.
var (
	DefaultPosition = mgl32.Vec3{3.5, 1, 1}
	DefaultYaw      = mgl32.DegToRad(-30)
	DefaultFOV      = mgl32.DegToRad(90)
)

// DefaultNear is the default near-plane distance.
const DefaultNear = 0.1

// changeOfBasis maps view-space axes to world-space axes.
var changeOfBasis = mgl32.Mat4FromRows(
	mgl32.Vec4{0, 0, -1, 0},
	mgl32.Vec4{1, 0, 0, 0},
	mgl32.Vec4{0, 1, 0, 0},
	mgl32.Vec4{0, 0, 0, 1},
)

// Camera is a perspective camera positioned in world space.
type Camera struct {
	Position mgl32.Vec3

	// Yaw and Pitch are in radians. Yaw is kept in (-Pi, Pi] and pitch in
	// [-Pi/2, Pi/2] by Rotate.
	Yaw   float32
	Pitch float32

	// FOV is the vertical field of view in radians.
	FOV    float32
	Aspect float32
	Near   float32
}

// New returns a camera with the default placement for a viewport of the
// given aspect ratio (width / height).
func New(aspect float32) *Camera {
	return &Camera{
		Position: DefaultPosition,
		Yaw:      DefaultYaw,
		FOV:      DefaultFOV,
		Aspect:   aspect,
		Near:     DefaultNear,
	}
}

// Rotate turns the camera by the given yaw and pitch deltas in radians.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	yaw := c.Yaw + dYaw
	if yaw > math32.Pi {
		yaw -= 2 * math32.Pi
	} else if yaw <= -math32.Pi {
		yaw += 2 * math32.Pi
	}
	c.Yaw = yaw
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -math32.Pi/2, math32.Pi/2)
}

// Move translates the camera along its own axes.
func (c *Camera) Move(strafe, ascent, forward float32) {
	d := c.rotation().Mul4x1(mgl32.Vec4{strafe, ascent, forward, 0})
	c.Position = c.Position.Add(d.Vec3())
}

// rotation is WorldFromView without the translation.
func (c *Camera) rotation() mgl32.Mat4 {
	sp, cp := math32.Sincos(-c.Pitch)
	pitch := mgl32.Mat4FromRows(
		mgl32.Vec4{1, 0, 0, 0},
		mgl32.Vec4{0, cp, sp, 0},
		mgl32.Vec4{0, -sp, cp, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
	sy, cy := math32.Sincos(-c.Yaw)
	yaw := mgl32.Mat4FromRows(
		mgl32.Vec4{cy, 0, -sy, 0},
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{sy, 0, cy, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
	return changeOfBasis.Mul4(yaw.Mul4(pitch))
}

// WorldFromView returns the camera-to-world transform.
func (c *Camera) WorldFromView() mgl32.Mat4 {
	m := c.rotation()
	m.SetCol(3, c.Position.Vec4(1))
	return m
}

// ViewFromWorld returns the world-to-camera transform.
func (c *Camera) ViewFromWorld() mgl32.Mat4 {
	return c.WorldFromView().Inv()
}

// ClipFromView returns the reversed-Z infinite projection: a view point
// (x, y, z) maps to clip (sx*x, sy*y, near, z).
func (c *Camera) ClipFromView() mgl32.Mat4 {
	sy := 1 / math32.Tan(c.FOV/2)
	sx := sy / c.Aspect
	return mgl32.Mat4FromRows(
		mgl32.Vec4{sx, 0, 0, 0},
		mgl32.Vec4{0, sy, 0, 0},
		mgl32.Vec4{0, 0, 0, c.Near},
		mgl32.Vec4{0, 0, 1, 0},
	)
}

// ViewFromClip returns the inverse projection.
func (c *Camera) ViewFromClip() mgl32.Mat4 {
	return c.ClipFromView().Inv()
}

// ClipFromWorld returns the combined view-projection transform.
func (c *Camera) ClipFromWorld() mgl32.Mat4 {
	return c.ClipFromView().Mul4(c.ViewFromWorld())
}

// TransformConstants returns the constant buffer of the mesh shaders.
func (c *Camera) TransformConstants() *shader.TransformConstants {
	return &shader.TransformConstants{ClipFromWorld: c.ClipFromWorld()}
}

// EnvironmentConstants returns the constant buffer of the sky shader.
func (c *Camera) EnvironmentConstants() *shader.EnvironmentConstants {
	return &shader.EnvironmentConstants{
		ClipFromWorld: c.ClipFromWorld(),
		ViewFromClip:  c.ViewFromClip(),
		WorldFromView: c.WorldFromView(),
	}
}
