package rast3d

import (
	"fmt"
	"image"
	"os"

	// Decoders for LoadTexture.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/rast3d/internal/color"
)

// missingTexel is returned when sampling a texture without data.
var missingTexel = mgl32.Vec4{1, 0, 1, 1}

// Texture is an immutable grid of linear RGBA texels sampled with nearest
// filtering and repeat addressing.
type Texture struct {
	width, height int
	texels        []mgl32.Vec4
}

// NewTexture converts a color image to a texture. RGB channels are
// decoded from sRGB to linear; alpha is kept as is.
func NewTexture(img image.Image) *Texture {
	return newTexture(img, true)
}

// NewLinearTexture converts an image holding non-color data, such as a
// normal map, without any transfer function.
func NewLinearTexture(img image.Image) *Texture {
	return newTexture(img, false)
}

func newTexture(img image.Image, srgb bool) *Texture {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	t := &Texture{
		width:  b.Dx(),
		height: b.Dy(),
		texels: make([]mgl32.Vec4, b.Dx()*b.Dy()),
	}
	for i := range t.texels {
		p := rgba.Pix[i*4 : i*4+4 : i*4+4]
		if srgb {
			t.texels[i] = mgl32.Vec4{
				color.SRGBToLinearFast(p[0]),
				color.SRGBToLinearFast(p[1]),
				color.SRGBToLinearFast(p[2]),
				float32(p[3]) / 255,
			}
		} else {
			t.texels[i] = mgl32.Vec4{
				float32(p[0]) / 255,
				float32(p[1]) / 255,
				float32(p[2]) / 255,
				float32(p[3]) / 255,
			}
		}
	}
	return t
}

// LoadTexture decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file as a color
// texture.
func LoadTexture(path string) (*Texture, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}
	Logger().Debug("texture loaded", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return NewTexture(img), nil
}

// LoadLinearTexture decodes an image file as a data texture.
func LoadLinearTexture(path string) (*Texture, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return NewLinearTexture(img), nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the scene description
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode texture %s (%s): %w", path, format, ErrInvalidSize)
	}
	return img, nil
}

// NewCheckerTexture returns a size×size texture of cells×cells squares
// alternating between the linear colors a and b, starting with a at the
// bottom-left.
func NewCheckerTexture(size, cells int, a, b mgl32.Vec4) *Texture {
	if size <= 0 {
		size = 1
	}
	if cells <= 0 {
		cells = 1
	}
	t := &Texture{width: size, height: size, texels: make([]mgl32.Vec4, size*size)}
	for y := range size {
		for x := range size {
			cx := x * cells / size
			cy := (size - 1 - y) * cells / size
			c := a
			if (cx+cy)%2 == 1 {
				c = b
			}
			t.texels[y*size+x] = c
		}
	}
	return t
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Sample returns the texel nearest to (u, v). Coordinates wrap, and v = 0
// is the bottom row of the image. A nil or empty texture samples magenta.
func (t *Texture) Sample(u, v float32) mgl32.Vec4 {
	if t == nil || len(t.texels) == 0 {
		return missingTexel
	}
	u -= math32.Floor(u)
	v = 1 - (v - math32.Floor(v))

	x := min(max(int(u*float32(t.width)), 0), t.width-1)
	y := min(max(int(v*float32(t.height)), 0), t.height-1)
	return t.texels[y*t.width+x]
}

// Resize returns a copy of t scaled to width×height with Catmull-Rom
// filtering. The texels are resampled as stored, in linear space.
func (t *Texture) Resize(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize texture to %dx%d: %w", width, height, ErrInvalidSize)
	}
	src := image.NewNRGBA64(image.Rect(0, 0, t.width, t.height))
	for i, c := range t.texels {
		putNRGBA64(src.Pix[i*8:i*8+8:i*8+8], c)
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := &Texture{width: width, height: height, texels: make([]mgl32.Vec4, width*height)}
	for i := range out.texels {
		p := dst.Pix[i*8 : i*8+8 : i*8+8]
		out.texels[i] = mgl32.Vec4{
			float32(uint16(p[0])<<8|uint16(p[1])) / 0xffff,
			float32(uint16(p[2])<<8|uint16(p[3])) / 0xffff,
			float32(uint16(p[4])<<8|uint16(p[5])) / 0xffff,
			float32(uint16(p[6])<<8|uint16(p[7])) / 0xffff,
		}
	}
	return out, nil
}

func putNRGBA64(p []byte, c mgl32.Vec4) {
	for k := range 4 {
		v := uint16(mgl32.Clamp(c[k], 0, 1)*0xffff + 0.5)
		p[2*k] = byte(v >> 8)
		p[2*k+1] = byte(v)
	}
}
