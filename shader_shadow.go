package rast3d

import "github.com/go-gl/mathgl/mgl32"

// ShadowDepthShaderName is the registry name of ShadowDepthShader.
const ShadowDepthShaderName = "shadow-depth"

// ShadowDepthShader projects geometry with u_light_space_mvp for the shadow
// pass. Only the depth it produces is stored.
type ShadowDepthShader struct{}

// Name implements Shader.
func (ShadowDepthShader) Name() string { return ShadowDepthShaderName }

// VertexShader implements Shader.
func (ShadowDepthShader) VertexShader(in *Vertex, u *Uniforms) Varyings {
	return Varyings{Position: transformPoint(u.LightSpaceMVP, in.Position)}
}

// FragmentShader implements Shader.
func (ShadowDepthShader) FragmentShader(*Varyings, *Uniforms, *RenderState) mgl32.Vec4 {
	return mgl32.Vec4{0, 0, 0, 1}
}
