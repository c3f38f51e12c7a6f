package rast3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d/internal/blend"
)

// RenderFlags is a bit set of fixed-function pipeline switches.
type RenderFlags uint32

const (
	// DepthWrite stores the fragment depth when the fragment is written.
	DepthWrite RenderFlags = 1 << iota
	// DepthTest discards fragments that are not nearer than the stored depth.
	DepthTest
	// Cull skips triangles that wind clockwise on screen.
	Cull
	// Blend combines the fragment with the stored color using its alpha.
	Blend
)

// BlendMode selects how a blended fragment combines with the framebuffer.
type BlendMode = blend.Mode

// Blend modes. The zero value is BlendSourceOver.
const (
	BlendSourceOver = blend.ModeSourceOver
	BlendAdditive   = blend.ModeAdditive
	BlendMultiply   = blend.ModeMultiply
)

// RenderState is the fixed-function state a triangle is drawn with.
// It is copied into every render packet and never changes afterwards.
type RenderState struct {
	Flags     RenderFlags
	BlendMode BlendMode

	// ShadowMap, when set, is sampled by lit shaders to attenuate light.
	ShadowMap *ShadowMap
	// LightViewProjection maps world space into the shadow map's clip space.
	LightViewProjection mgl32.Mat4
}

// OpaqueState returns the state for opaque geometry: depth test, depth
// write and back-face culling.
func OpaqueState() RenderState {
	return RenderState{Flags: DepthTest | DepthWrite | Cull}
}

// TransparentState returns the state for alpha-blended geometry: depth test
// and blending without depth write.
func TransparentState() RenderState {
	return RenderState{Flags: DepthTest | Blend}
}

// Has reports whether every flag in f is enabled.
func (s RenderState) Has(f RenderFlags) bool {
	return s.Flags&f == f
}

// Enable returns a copy of s with the flags in f set.
func (s RenderState) Enable(f RenderFlags) RenderState {
	s.Flags |= f
	return s
}

// Disable returns a copy of s with the flags in f cleared.
func (s RenderState) Disable(f RenderFlags) RenderState {
	s.Flags &^= f
	return s
}
