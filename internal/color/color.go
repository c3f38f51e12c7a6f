// Package color converts between the linear float colors produced by shaders
// and the packed sRGB pixels stored in a framebuffer.
//
// Shaders work in linear RGB. The framebuffer stores 0xAARRGGBB words whose
// RGB channels are sRGB-encoded and whose alpha channel is linear. Encode and
// Decode are the only conversion pair used by the renderer, so every write
// path and every blend read agree on the encoding.
package color

import "github.com/go-gl/mathgl/mgl32"

// Pack assembles an 0xAARRGGBB pixel word.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits an 0xAARRGGBB pixel word into its channels.
func Unpack(p uint32) (r, g, b, a uint8) {
	//nolint:gosec // G115: each shift leaves the channel in the low byte
	return uint8(p >> 16), uint8(p >> 8), uint8(p), uint8(p >> 24)
}

// Encode converts a linear RGBA color to a packed sRGB pixel.
// Components are clamped to [0,1]; alpha is stored without gamma.
func Encode(c mgl32.Vec4) uint32 {
	return Pack(
		LinearToSRGBFast(c[0]),
		LinearToSRGBFast(c[1]),
		LinearToSRGBFast(c[2]),
		unitToByte(c[3]),
	)
}

// Decode converts a packed sRGB pixel back to a linear RGBA color.
func Decode(p uint32) mgl32.Vec4 {
	r, g, b, a := Unpack(p)
	return mgl32.Vec4{
		SRGBToLinearFast(r),
		SRGBToLinearFast(g),
		SRGBToLinearFast(b),
		float32(a) / 255,
	}
}

// unitToByte clamps v to [0,1] and maps it to [0,255] with rounding.
func unitToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
