package rast3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Registry names of the lit shaders.
const (
	BlinnPhongShaderName = "blinn-phong"
	NormalMapShaderName  = "normal-map"
)

// ambient is the constant ambient term of the lit shaders.
var ambient = mgl32.Vec3{0.3, 0.3, 0.3}

// BlinnPhongShader lights geometry in world space with every directional
// light in u_lights. The first light casts shadows when the render state
// carries a shadow map.
type BlinnPhongShader struct{}

// Name implements Shader.
func (BlinnPhongShader) Name() string { return BlinnPhongShaderName }

// VertexShader implements Shader.
func (BlinnPhongShader) VertexShader(in *Vertex, u *Uniforms) Varyings {
	return Varyings{
		Position:    transformPoint(u.MVP, in.Position),
		WorldPos:    transformPoint(u.Model, in.Position).Vec3(),
		WorldNormal: normalize(transformDir(u.NormalMatrix, in.Normal)),
		UV:          in.UV,
	}
}

// FragmentShader implements Shader.
func (BlinnPhongShader) FragmentShader(in *Varyings, u *Uniforms, state *RenderState) mgl32.Vec4 {
	albedo := sampleAlbedo(in, u)
	n := normalize(in.WorldNormal)
	view := normalize(u.CameraPos.Sub(in.WorldPos))

	lit := ambient
	for i := range u.Lights {
		l := &u.Lights[i]
		f := blinnPhong(n, normalize(l.Direction.Mul(-1)), view, u.Shininess) * l.Intensity
		if i == 0 {
			f *= shadowVisibility(state, in.WorldPos)
		}
		lit = lit.Add(l.Color.Mul(f))
	}
	return shade(lit, albedo, u.Alpha)
}

// NormalMapShader is a Blinn-Phong variant that perturbs the surface normal
// with u_normal_texture. The vertex stage builds a tangent basis from the
// mesh normal and tangent and moves the first light's direction and the
// view direction into tangent space, so only the first light contributes.
type NormalMapShader struct{}

// Name implements Shader.
func (NormalMapShader) Name() string { return NormalMapShaderName }

// VertexShader implements Shader.
func (NormalMapShader) VertexShader(in *Vertex, u *Uniforms) Varyings {
	worldPos := transformPoint(u.Model, in.Position).Vec3()
	n := normalize(transformDir(u.NormalMatrix, in.Normal))
	t := normalize(transformDir(u.Model, in.Tangent.Vec3()))
	// Gram-Schmidt keeps T orthogonal to N after non-uniform scaling.
	t = normalize(t.Sub(n.Mul(n.Dot(t))))
	handedness := in.Tangent.W()
	if handedness == 0 {
		handedness = 1
	}
	b := n.Cross(t).Mul(handedness)

	toTangent := func(v mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{v.Dot(t), v.Dot(b), v.Dot(n)}
	}

	out := Varyings{
		Position:       transformPoint(u.MVP, in.Position),
		WorldPos:       worldPos,
		WorldNormal:    n,
		UV:             in.UV,
		TangentViewDir: toTangent(u.CameraPos.Sub(worldPos)),
	}
	if len(u.Lights) > 0 {
		out.TangentLightDir = toTangent(u.Lights[0].Direction.Mul(-1))
	}
	return out
}

// FragmentShader implements Shader.
func (NormalMapShader) FragmentShader(in *Varyings, u *Uniforms, state *RenderState) mgl32.Vec4 {
	albedo := sampleAlbedo(in, u)
	n := mgl32.Vec3{0, 0, 1}
	if u.NormalTexture != nil {
		s := u.NormalTexture.Sample(in.UV.X(), in.UV.Y())
		n = normalize(mgl32.Vec3{s[0]*2 - 1, s[1]*2 - 1, s[2]*2 - 1})
	}

	lit := ambient
	if len(u.Lights) > 0 {
		l := &u.Lights[0]
		f := blinnPhong(n, normalize(in.TangentLightDir), normalize(in.TangentViewDir), u.Shininess)
		f *= l.Intensity * shadowVisibility(state, in.WorldPos)
		lit = lit.Add(l.Color.Mul(f))
	}
	return shade(lit, albedo, u.Alpha)
}

// blinnPhong returns the diffuse plus specular factor of a unit light.
func blinnPhong(n, lightDir, viewDir mgl32.Vec3, shininess float32) float32 {
	diff := math32.Max(0, n.Dot(lightDir))
	half := normalize(lightDir.Add(viewDir))
	spec := math32.Pow(math32.Max(0, n.Dot(half)), shininess)
	return diff + spec
}

func sampleAlbedo(in *Varyings, u *Uniforms) mgl32.Vec4 {
	if u.AlbedoTexture != nil {
		t := u.AlbedoTexture.Sample(in.UV.X(), in.UV.Y())
		return mgl32.Vec4{t[0] * u.AlbedoFactor[0], t[1] * u.AlbedoFactor[1], t[2] * u.AlbedoFactor[2], t[3] * u.AlbedoFactor[3]}
	}
	return u.AlbedoFactor
}

func shadowVisibility(state *RenderState, worldPos mgl32.Vec3) float32 {
	if state == nil || state.ShadowMap == nil {
		return 1
	}
	return state.ShadowMap.Visibility(transformPoint(state.LightViewProjection, worldPos))
}

func shade(lit mgl32.Vec3, albedo mgl32.Vec4, alpha float32) mgl32.Vec4 {
	return mgl32.Vec4{lit[0] * albedo[0], lit[1] * albedo[1], lit[2] * albedo[2], albedo[3] * alpha}
}
