package rast3d

import "github.com/go-gl/mathgl/mgl32"

// Shader is a programmable vertex and fragment stage.
//
// Both stages receive the uniform set of the object being drawn. The
// renderer calls VertexShader during single-threaded frame setup and
// FragmentShader concurrently from tile workers, so a Shader must not
// mutate its own state from either stage.
type Shader interface {
	// Name returns the registry name of the shader.
	Name() string

	// VertexShader transforms one mesh vertex. The returned Position must
	// be in clip space.
	VertexShader(in *Vertex, u *Uniforms) Varyings

	// FragmentShader shades one covered pixel from interpolated varyings
	// and returns a linear RGBA color.
	FragmentShader(in *Varyings, u *Uniforms, state *RenderState) mgl32.Vec4
}

// transformPoint returns m * (p, 1).
func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec4 {
	return m.Mul4x1(p.Vec4(1))
}

// transformDir returns the xyz of m * (d, 0).
func transformDir(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// normalize returns v scaled to unit length, or v when it has no length.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}
