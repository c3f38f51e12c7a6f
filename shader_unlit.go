package rast3d

import "github.com/go-gl/mathgl/mgl32"

// UnlitShaderName is the registry name of UnlitShader.
const UnlitShaderName = "unlit"

// UnlitShader draws geometry in the flat albedo color, or the albedo
// texture when one is bound. Lights are ignored.
type UnlitShader struct{}

// Name implements Shader.
func (UnlitShader) Name() string { return UnlitShaderName }

// VertexShader implements Shader.
func (UnlitShader) VertexShader(in *Vertex, u *Uniforms) Varyings {
	return Varyings{
		Position: transformPoint(u.MVP, in.Position),
		Color:    u.AlbedoFactor.Vec3(),
		UV:       in.UV,
	}
}

// FragmentShader implements Shader.
func (UnlitShader) FragmentShader(in *Varyings, u *Uniforms, _ *RenderState) mgl32.Vec4 {
	alpha := u.AlbedoFactor.W() * u.Alpha
	if u.AlbedoTexture != nil {
		t := u.AlbedoTexture.Sample(in.UV.X(), in.UV.Y())
		return mgl32.Vec4{t[0] * in.Color[0], t[1] * in.Color[1], t[2] * in.Color[2], t[3] * alpha}
	}
	return in.Color.Vec4(alpha)
}
