package rast3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Well-known uniform names. The renderer binds all of them before an
// object's vertices are processed.
const (
	UniformModel         = "u_model"
	UniformView          = "u_view"
	UniformProjection    = "u_projection"
	UniformMVP           = "u_mvp"
	UniformNormalMatrix  = "u_normal_matrix"
	UniformAlbedoFactor  = "u_albedo_factor"
	UniformAlbedoTexture = "u_albedo_texture"
	UniformNormalTexture = "u_normal_texture"
	UniformShininess     = "u_shininess"
	UniformAlpha         = "u_alpha"
	UniformCameraPos     = "u_camera_pos"
	UniformLights        = "u_lights"
	UniformLightSpaceMVP = "u_light_space_mvp"
)

// Uniforms is the parameter set shared by both stages of a Shader while one
// object is drawn.
//
// Every well-known name has a typed field, so built-in shaders never do a
// runtime type check. Shader-defined parameters go to Extra and are read
// with GetUniform. The renderer fills one Uniforms per object during frame
// setup; the value is read-only while tiles are rasterized.
type Uniforms struct {
	Model         mgl32.Mat4
	View          mgl32.Mat4
	Projection    mgl32.Mat4
	MVP           mgl32.Mat4
	NormalMatrix  mgl32.Mat4
	AlbedoFactor  mgl32.Vec4
	AlbedoTexture *Texture
	NormalTexture *Texture
	Shininess     float32
	Alpha         float32
	CameraPos     mgl32.Vec3
	Lights        []DirectionalLight
	LightSpaceMVP mgl32.Mat4

	// Extra holds shader-defined uniforms by name.
	Extra map[string]any
}

// Set stores value under name. Well-known names must carry the type of
// their field; a mismatch is logged, leaves the uniform unchanged and
// returns ErrUniformType. Any other name is stored in Extra.
func (u *Uniforms) Set(name string, value any) error {
	var ok bool
	switch name {
	case UniformModel:
		ok = assign(&u.Model, value)
	case UniformView:
		ok = assign(&u.View, value)
	case UniformProjection:
		ok = assign(&u.Projection, value)
	case UniformMVP:
		ok = assign(&u.MVP, value)
	case UniformNormalMatrix:
		ok = assign(&u.NormalMatrix, value)
	case UniformLightSpaceMVP:
		ok = assign(&u.LightSpaceMVP, value)
	case UniformAlbedoFactor:
		ok = assign(&u.AlbedoFactor, value)
	case UniformAlbedoTexture:
		ok = assign(&u.AlbedoTexture, value)
	case UniformNormalTexture:
		ok = assign(&u.NormalTexture, value)
	case UniformShininess:
		ok = assign(&u.Shininess, value)
	case UniformAlpha:
		ok = assign(&u.Alpha, value)
	case UniformCameraPos:
		ok = assign(&u.CameraPos, value)
	case UniformLights:
		ok = assign(&u.Lights, value)
	default:
		if u.Extra == nil {
			u.Extra = make(map[string]any)
		}
		u.Extra[name] = value
		return nil
	}
	if !ok {
		Logger().Warn("uniform has wrong type", "name", name, "type", fmt.Sprintf("%T", value))
		return fmt.Errorf("%w: %s got %T", ErrUniformType, name, value)
	}
	return nil
}

func assign[T any](dst *T, value any) bool {
	v, ok := value.(T)
	if ok {
		*dst = v
	}
	return ok
}

// Get returns the value stored under name and whether it exists.
func (u *Uniforms) Get(name string) (any, bool) {
	switch name {
	case UniformModel:
		return u.Model, true
	case UniformView:
		return u.View, true
	case UniformProjection:
		return u.Projection, true
	case UniformMVP:
		return u.MVP, true
	case UniformNormalMatrix:
		return u.NormalMatrix, true
	case UniformLightSpaceMVP:
		return u.LightSpaceMVP, true
	case UniformAlbedoFactor:
		return u.AlbedoFactor, true
	case UniformAlbedoTexture:
		return u.AlbedoTexture, true
	case UniformNormalTexture:
		return u.NormalTexture, true
	case UniformShininess:
		return u.Shininess, true
	case UniformAlpha:
		return u.Alpha, true
	case UniformCameraPos:
		return u.CameraPos, true
	case UniformLights:
		return u.Lights, true
	}
	v, ok := u.Extra[name]
	return v, ok
}

// GetUniform returns the uniform stored under name as a T.
// A missing or mistyped uniform is not fatal: it is logged and the zero
// value of T is returned.
func GetUniform[T any](u *Uniforms, name string) T {
	var zero T
	v, ok := u.Get(name)
	if !ok {
		Logger().Warn("uniform not found", "name", name)
		return zero
	}
	t, ok := v.(T)
	if !ok {
		Logger().Warn("uniform has wrong type", "name", name,
			"have", fmt.Sprintf("%T", v), "want", fmt.Sprintf("%T", zero))
		return zero
	}
	return t
}
