package rast3d

import (
	"errors"
	"image"
	stdcolor "image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// solidImage returns a 2x2 opaque image of one color.
func solidImage(r, g, b uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.SetNRGBA(x, y, stdcolor.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

func TestCheckerTexture_Sample(t *testing.T) {
	a := mgl32.Vec4{1, 1, 1, 1}
	b := mgl32.Vec4{0, 0, 0, 1}
	tex := NewCheckerTexture(4, 2, a, b)

	tests := []struct {
		name string
		u, v float32
		want mgl32.Vec4
	}{
		{"bottom-left", 0.1, 0.1, a},
		{"bottom-right", 0.6, 0.1, b},
		{"top-left", 0.1, 0.6, b},
		{"top-right", 0.6, 0.6, a},
		{"wrap positive", 1.1, 0.1, a},
		{"wrap negative", -0.4, 0.1, b},
		{"wrap v", 0.1, 2.6, b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Sample(tt.u, tt.v); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
	if tex.Width() != 4 || tex.Height() != 4 {
		t.Errorf("size = %dx%d, want 4x4", tex.Width(), tex.Height())
	}
}

func TestTexture_VFlip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, stdcolor.NRGBA{R: 255, A: 255}) // top row
	img.SetNRGBA(0, 1, stdcolor.NRGBA{G: 255, A: 255}) // bottom row
	tex := NewLinearTexture(img)

	if got := tex.Sample(0.5, 0.25); got != (mgl32.Vec4{0, 1, 0, 1}) {
		t.Errorf("v=0.25 = %v, want the bottom row (green)", got)
	}
	if got := tex.Sample(0.5, 0.75); got != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("v=0.75 = %v, want the top row (red)", got)
	}
}

func TestTexture_MissingSamplesMagenta(t *testing.T) {
	var nilTex *Texture
	if got := nilTex.Sample(0.5, 0.5); got != missingTexel {
		t.Errorf("nil texture = %v, want magenta", got)
	}
	if got := (&Texture{}).Sample(0.5, 0.5); got != missingTexel {
		t.Errorf("empty texture = %v, want magenta", got)
	}
}

func TestTexture_ColorSpace(t *testing.T) {
	img := solidImage(188, 188, 188)

	srgb := NewTexture(img).Sample(0, 0)
	if srgb[0] < 0.49 || srgb[0] > 0.51 {
		t.Errorf("sRGB 188 decoded to %v, want about 0.5", srgb[0])
	}
	if srgb[3] != 1 {
		t.Errorf("alpha = %v, want 1", srgb[3])
	}

	linear := NewLinearTexture(img).Sample(0, 0)
	if want := float32(188) / 255; linear[0] != want {
		t.Errorf("linear 188 = %v, want %v", linear[0], want)
	}
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, solidImage(255, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Errorf("size = %dx%d, want 2x2", tex.Width(), tex.Height())
	}
	if got := tex.Sample(0.5, 0.5); !got.ApproxEqualThreshold(mgl32.Vec4{1, 0, 0, 1}, 1e-3) {
		t.Errorf("texel = %v, want red", got)
	}

	if _, err := LoadLinearTexture(path); err != nil {
		t.Errorf("LoadLinearTexture: %v", err)
	}
}

func TestLoadTexture_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadTexture(filepath.Join(dir, "missing.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v, want fs.ErrNotExist", err)
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(junk); err == nil {
		t.Error("undecodable file loaded without error")
	}
}

func TestTexture_Resize(t *testing.T) {
	tex := NewLinearTexture(solidImage(51, 102, 204))
	big, err := tex.Resize(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if big.Width() != 8 || big.Height() != 4 {
		t.Fatalf("size = %dx%d, want 8x4", big.Width(), big.Height())
	}
	want := tex.Sample(0, 0)
	for _, uv := range [][2]float32{{0, 0}, {0.5, 0.5}, {0.9, 0.1}} {
		if got := big.Sample(uv[0], uv[1]); !got.ApproxEqualThreshold(want, 2e-3) {
			t.Errorf("Sample(%v) = %v, want %v", uv, got, want)
		}
	}

	if _, err := tex.Resize(0, 4); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 4) err = %v, want ErrInvalidSize", err)
	}
}
