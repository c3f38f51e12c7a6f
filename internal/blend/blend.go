// Package blend combines a fragment color with the color already stored in
// the framebuffer. All colors are straight (non-premultiplied) linear RGBA.
package blend

import "github.com/go-gl/mathgl/mgl32"

// Mode represents a blending mode.
type Mode uint8

const (
	// ModeSourceOver is the default alpha blending mode: the fragment alpha
	// weights the source against the destination.
	ModeSourceOver Mode = iota
	// ModeAdditive adds the alpha-weighted source to the destination.
	ModeAdditive
	// ModeMultiply multiplies the destination by the alpha-weighted source.
	ModeMultiply
)

// String returns the mode name as used in scene files.
func (m Mode) String() string {
	switch m {
	case ModeSourceOver:
		return "source-over"
	case ModeAdditive:
		return "additive"
	case ModeMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// ParseMode maps a scene-file name to a Mode. The empty string selects
// ModeSourceOver.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "source-over", "alpha":
		return ModeSourceOver, true
	case "additive", "add":
		return ModeAdditive, true
	case "multiply":
		return ModeMultiply, true
	default:
		return ModeSourceOver, false
	}
}

// Blend blends src over dst using the specified mode.
func Blend(src, dst mgl32.Vec4, mode Mode) mgl32.Vec4 {
	switch mode {
	case ModeAdditive:
		return additive(src, dst)
	case ModeMultiply:
		return multiply(src, dst)
	default:
		return sourceOver(src, dst)
	}
}

// sourceOver: rgb = src*sa + dst*(1-sa), a = sa + da*(1-sa).
func sourceOver(src, dst mgl32.Vec4) mgl32.Vec4 {
	sa := clampUnit(src[3])
	inv := 1 - sa
	return mgl32.Vec4{
		src[0]*sa + dst[0]*inv,
		src[1]*sa + dst[1]*inv,
		src[2]*sa + dst[2]*inv,
		sa + dst[3]*inv,
	}
}

func additive(src, dst mgl32.Vec4) mgl32.Vec4 {
	sa := clampUnit(src[3])
	return mgl32.Vec4{
		dst[0] + src[0]*sa,
		dst[1] + src[1]*sa,
		dst[2] + src[2]*sa,
		mgl32.Clamp(dst[3]+sa, 0, 1),
	}
}

// multiply lerps between dst and dst*src by the source alpha.
func multiply(src, dst mgl32.Vec4) mgl32.Vec4 {
	sa := clampUnit(src[3])
	inv := 1 - sa
	return mgl32.Vec4{
		dst[0] * (src[0]*sa + inv),
		dst[1] * (src[1]*sa + inv),
		dst[2] * (src[2]*sa + inv),
		dst[3],
	}
}

func clampUnit(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}
