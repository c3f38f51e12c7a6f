package rast3d

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShadowBias is the depth offset applied when comparing against a
// shadow map.
const DefaultShadowBias = 0.005

// ShadowMap is a square depth-only target rendered from a directional
// light, plus the light's view-projection.
type ShadowMap struct {
	frame *frame

	// LightViewProjection maps world space into the map's clip space. It is
	// set by Renderer.RenderShadowMap.
	LightViewProjection mgl32.Mat4
	// Bias is subtracted from a fragment's light-space depth before the
	// comparison to avoid self-shadowing.
	Bias float32
}

// NewShadowMap allocates a size×size shadow map.
func NewShadowMap(size int) (*ShadowMap, error) {
	fb, err := NewDepthFramebuffer(size, size)
	if err != nil {
		return nil, fmt.Errorf("new shadow map: %w", err)
	}
	return &ShadowMap{
		frame:               newFrame(fb, 0, mgl32.Vec4{}, math.MaxFloat32),
		LightViewProjection: mgl32.Ident4(),
		Bias:                DefaultShadowBias,
	}, nil
}

// Size returns the edge length of the map in texels.
func (sm *ShadowMap) Size() int {
	return sm.frame.target.Width()
}

// Depth returns the depth target.
func (sm *ShadowMap) Depth() *Framebuffer {
	return sm.frame.target
}

// Visibility returns 0 when the light-space clip position is behind an
// occluder stored in the map and 1 otherwise. Points outside the map are
// lit.
func (sm *ShadowMap) Visibility(lightClip mgl32.Vec4) float32 {
	w := lightClip[3]
	if w <= 0 {
		return 1
	}
	x, y, z := lightClip[0]/w, lightClip[1]/w, lightClip[2]/w
	if x < -1 || x > 1 || y < -1 || y > 1 || z > 1 {
		return 1
	}
	size := float32(sm.Size())
	px := int(math32.Floor(toScreen(x, size)))
	py := int(math32.Floor(toScreen(y, size)))
	if z-sm.Bias > sm.frame.target.Depth(min(px, sm.Size()-1), min(py, sm.Size()-1)) {
		return 0
	}
	return 1
}

// EnableShadows makes Render draw a size×size shadow map from the scene's
// first light before each frame and hand it to the lit shaders.
func (r *Renderer) EnableShadows(size int) error {
	sm, err := NewShadowMap(size)
	if err != nil {
		return err
	}
	r.shadow = sm
	return nil
}

// DisableShadows turns the shadow pass off.
func (r *Renderer) DisableShadows() {
	r.shadow = nil
}

// ShadowMap returns the shadow map used by Render, or nil.
func (r *Renderer) ShadowMap() *ShadowMap {
	return r.shadow
}

// RenderShadowMap fits an orthographic light projection around the scene,
// then renders the depth of every object with a mesh into sm.
func (r *Renderer) RenderShadowMap(scene *Scene, light DirectionalLight, sm *ShadowMap) {
	f := sm.frame
	f.begin()
	if scene == nil {
		return
	}
	sm.LightViewProjection = LightViewProjection(scene, light)

	shader := ShadowDepthShader{}
	state := RenderState{Flags: DepthTest | DepthWrite}
	for i := range scene.Objects {
		o := &scene.Objects[i]
		if o.Mesh == nil {
			continue
		}
		if o.Material != nil && o.Material.Queue == QueueTransparent {
			continue
		}
		u := f.nextUniforms()
		u.Model = o.Transform
		u.LightSpaceMVP = sm.LightViewProjection.Mul4(o.Transform)
		f.emitMesh(shader, u, &state, o.Mesh, o.Name)
	}

	f.distribute()
	r.pool.ExecuteStriped(f.grid.TileCount(), f.renderTile)
	Logger().Debug("shadow map rendered", "packets", len(f.packets), "size", sm.Size())
}

// LightViewProjection returns an orthographic view-projection looking
// along light.Direction that encloses the bounds of scene.
func LightViewProjection(scene *Scene, light DirectionalLight) mgl32.Mat4 {
	lo, hi, ok := scene.Bounds()
	if !ok {
		return mgl32.Ident4()
	}
	center := lo.Add(hi).Mul(0.5)
	radius := math32.Max(hi.Sub(lo).Len()*0.5, 1e-3)

	dir := normalize(light.Direction)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(up)) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	eye := center.Sub(dir.Mul(2 * radius))
	view := mgl32.LookAtV(eye, center, up)
	proj := mgl32.Ortho(-radius, radius, -radius, radius, 0, 4*radius)
	return proj.Mul4(view)
}
