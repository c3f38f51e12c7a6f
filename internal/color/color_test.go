package color

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================================
// Transfer function tests
// =============================================================================

func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"mid gray", 0.5, float32(math.Pow((0.5+0.055)/1.055, 2.4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if !floatNear(got, tt.want, 1e-5) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinearToSRGBEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.0031308, 0.0031308 * 12.92},
		{"mid gray linear", 0.21404, float32(1.055*math.Pow(0.21404, 1.0/2.4) - 0.055)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToSRGB(tt.input)
			if !floatNear(got, tt.want, 1e-5) {
				t.Errorf("LinearToSRGB(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// =============================================================================
// LUT tests
// =============================================================================

func TestLUTMatchesTransferFunction(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := SRGBToLinear(float32(i) / 255)
		if got := SRGBToLinearFast(uint8(i)); !floatNear(got, want, 1e-6) {
			t.Errorf("SRGBToLinearFast(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestLinearToSRGBFastClamps(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  uint8
	}{
		{"negative", -1, 0},
		{"zero", 0, 0},
		{"one", 1, 255},
		{"above one", 4, 255},
		{"nan", float32(math.NaN()), 0},
		{"mid gray", 0.5, 188},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearToSRGBFast(tt.input); got != tt.want {
				t.Errorf("LinearToSRGBFast(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		got := LinearToSRGBFast(SRGBToLinearFast(uint8(i)))
		diff := int(got) - i
		if diff < -1 || diff > 1 {
			t.Errorf("round trip %d -> %d (error=%d)", i, got, diff)
		}
	}
}

// =============================================================================
// Pixel encoding tests
// =============================================================================

func TestPackUnpack(t *testing.T) {
	p := Pack(0x11, 0x22, 0x33, 0x44)
	if p != 0x44112233 {
		t.Fatalf("Pack = %#08x, want 0x44112233", p)
	}
	r, g, b, a := Unpack(p)
	if r != 0x11 || g != 0x22 || b != 0x33 || a != 0x44 {
		t.Errorf("Unpack(%#08x) = (%#x,%#x,%#x,%#x)", p, r, g, b, a)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := float32(i) / 100
		c := mgl32.Vec4{v, 1 - v, v * v, v}
		got := Decode(Encode(c))
		for ch := 0; ch < 4; ch++ {
			if !floatNear(got[ch], c[ch], 0.01) {
				t.Errorf("Decode(Encode(%v))[%d] = %v, want %v", c, ch, got[ch], c[ch])
			}
		}
	}
}

func TestDecodeEncodeStable(t *testing.T) {
	// Re-encoding a decoded pixel must stay within one quantization step.
	for i := 0; i < 256; i++ {
		p := Pack(uint8(i), uint8(255-i), uint8(i/2), uint8(i))
		r0, g0, b0, a0 := Unpack(p)
		r1, g1, b1, a1 := Unpack(Encode(Decode(p)))
		for _, d := range []int{int(r1) - int(r0), int(g1) - int(g0), int(b1) - int(b0), int(a1) - int(a0)} {
			if d < -1 || d > 1 {
				t.Errorf("Encode(Decode(%#08x)) drifted by %d", p, d)
			}
		}
	}
}

func TestEncodeAlphaIsLinear(t *testing.T) {
	_, _, _, a := Unpack(Encode(mgl32.Vec4{0, 0, 0, 0.5}))
	if a != 128 {
		t.Errorf("alpha byte = %d, want 128", a)
	}
}

func floatNear(a, b, epsilon float32) bool {
	return float32(math.Abs(float64(a-b))) <= epsilon
}
