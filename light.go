package rast3d

import "github.com/go-gl/mathgl/mgl32"

// DirectionalLight is a light infinitely far away. Direction points from
// the light into the scene; Color is linear RGB scaled by Intensity.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// NewDirectionalLight returns a white light of intensity 1 shining along dir.
func NewDirectionalLight(dir mgl32.Vec3) DirectionalLight {
	return DirectionalLight{Direction: normalize(dir), Color: mgl32.Vec3{1, 1, 1}, Intensity: 1}
}
