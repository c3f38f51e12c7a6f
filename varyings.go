package rast3d

import "github.com/go-gl/mathgl/mgl32"

// Varyings is the per-vertex payload produced by the vertex stage and
// consumed, after interpolation, by the fragment stage.
//
// Position is the clip-space position. After the perspective divide its xyz
// hold NDC coordinates while W keeps the clip-space w, which the rasterizer
// needs for perspective-correct interpolation. A shader may leave any other
// field at its zero value; all fields are interpolated regardless.
type Varyings struct {
	Position        mgl32.Vec4
	WorldPos        mgl32.Vec3
	Color           mgl32.Vec3
	WorldNormal     mgl32.Vec3
	UV              mgl32.Vec2
	TangentLightDir mgl32.Vec3
	TangentViewDir  mgl32.Vec3
}

// InterpolateVaryings linearly interpolates every field of a and b:
// the result is a at t == 0 and b at t == 1.
func InterpolateVaryings(a, b Varyings, t float32) Varyings {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	s := 1 - t
	return Varyings{
		Position:        a.Position.Mul(s).Add(b.Position.Mul(t)),
		WorldPos:        lerp3(a.WorldPos, b.WorldPos, s, t),
		Color:           lerp3(a.Color, b.Color, s, t),
		WorldNormal:     lerp3(a.WorldNormal, b.WorldNormal, s, t),
		UV:              a.UV.Mul(s).Add(b.UV.Mul(t)),
		TangentLightDir: lerp3(a.TangentLightDir, b.TangentLightDir, s, t),
		TangentViewDir:  lerp3(a.TangentViewDir, b.TangentViewDir, s, t),
	}
}

// weightVaryings returns k0*v0 + k1*v1 + k2*v2 for every field.
// The rasterizer passes perspective-corrected weights that sum to one.
func weightVaryings(v *[3]Varyings, k0, k1, k2 float32) Varyings {
	return Varyings{
		Position:        v[0].Position.Mul(k0).Add(v[1].Position.Mul(k1)).Add(v[2].Position.Mul(k2)),
		WorldPos:        sum3(v[0].WorldPos, v[1].WorldPos, v[2].WorldPos, k0, k1, k2),
		Color:           sum3(v[0].Color, v[1].Color, v[2].Color, k0, k1, k2),
		WorldNormal:     sum3(v[0].WorldNormal, v[1].WorldNormal, v[2].WorldNormal, k0, k1, k2),
		UV:              v[0].UV.Mul(k0).Add(v[1].UV.Mul(k1)).Add(v[2].UV.Mul(k2)),
		TangentLightDir: sum3(v[0].TangentLightDir, v[1].TangentLightDir, v[2].TangentLightDir, k0, k1, k2),
		TangentViewDir:  sum3(v[0].TangentViewDir, v[1].TangentViewDir, v[2].TangentViewDir, k0, k1, k2),
	}
}

func lerp3(a, b mgl32.Vec3, s, t float32) mgl32.Vec3 {
	return mgl32.Vec3{a[0]*s + b[0]*t, a[1]*s + b[1]*t, a[2]*s + b[2]*t}
}

func sum3(a, b, c mgl32.Vec3, ka, kb, kc float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0]*ka + b[0]*kb + c[0]*kc,
		a[1]*ka + b[1]*kb + c[1]*kc,
		a[2]*ka + b[2]*kb + c[2]*kc,
	}
}
