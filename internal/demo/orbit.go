package demo

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d"
)

// Pitch limits keep the camera off the poles, where the view up vector
// would be parallel to the view direction.
const (
	minPitch = -1.5
	maxPitch = 1.5

	minDistance = 0.5
)

// Orbit places a camera on a sphere around a target point. Yaw and Pitch
// are in radians; yaw 0 looks down -Z.
type Orbit struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
}

// OrbitFrom returns the orbit that reproduces the camera's current pose.
func OrbitFrom(c *rast3d.Camera) Orbit {
	offset := c.Position().Sub(c.Target())
	d := offset.Len()
	if d == 0 {
		return Orbit{Target: c.Target(), Distance: minDistance}
	}
	return Orbit{
		Target:   c.Target(),
		Distance: d,
		Yaw:      math32.Atan2(offset[0], offset[2]),
		Pitch:    math32.Asin(mgl32.Clamp(offset[1]/d, -1, 1)),
	}
}

// Rotate turns the orbit by the given angles, clamping the pitch.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw += dYaw
	o.Pitch = mgl32.Clamp(o.Pitch+dPitch, minPitch, maxPitch)
}

// Zoom scales the distance by factor.
func (o *Orbit) Zoom(factor float32) {
	o.Distance = math32.Max(o.Distance*factor, minDistance)
}

// Position returns the camera position on the orbit.
func (o *Orbit) Position() mgl32.Vec3 {
	cp := math32.Cos(o.Pitch)
	return o.Target.Add(mgl32.Vec3{
		o.Distance * cp * math32.Sin(o.Yaw),
		o.Distance * math32.Sin(o.Pitch),
		o.Distance * cp * math32.Cos(o.Yaw),
	})
}

// Apply moves c onto the orbit, looking at the target.
func (o *Orbit) Apply(c *rast3d.Camera) {
	c.LookAt(o.Position(), o.Target)
}
