package rast3d

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective look-at camera. The zero value is not usable;
// create cameras with NewCamera.
type Camera struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fovY   float32 // degrees
	aspect float32
	near   float32
	far    float32
}

// NewCamera returns a camera at (0, 0, 5) looking at the origin with a 45
// degree vertical field of view and clip planes at 0.1 and 100.
func NewCamera(aspect float32) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		position: mgl32.Vec3{0, 0, 5},
		up:       mgl32.Vec3{0, 1, 0},
		fovY:     45,
		aspect:   aspect,
		near:     0.1,
		far:      100,
	}
}

// SetPerspective sets the projection. fovY is in degrees.
func (c *Camera) SetPerspective(fovY, aspect, near, far float32) {
	c.fovY, c.aspect, c.near, c.far = fovY, aspect, near, far
}

// SetAspect changes only the aspect ratio.
func (c *Camera) SetAspect(aspect float32) {
	c.aspect = aspect
}

// LookAt places the camera at position facing target.
func (c *Camera) LookAt(position, target mgl32.Vec3) {
	c.position, c.target = position, target
}

// SetUp sets the world up vector used to orient the view.
func (c *Camera) SetUp(up mgl32.Vec3) {
	c.up = up
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Target returns the point the camera looks at.
func (c *Camera) Target() mgl32.Vec3 { return c.target }

// FovY returns the vertical field of view in degrees.
func (c *Camera) FovY() float32 { return c.fovY }

// Clip returns the near and far clip distances.
func (c *Camera) Clip() (near, far float32) { return c.near, c.far }

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.target, c.up)
}

// Projection returns the view-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fovY), c.aspect, c.near, c.far)
}
