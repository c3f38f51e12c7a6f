package rast3d

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d/internal/blend"
	"github.com/gogpu/rast3d/internal/color"
)

// Framebuffer is a render target: a packed color buffer and a depth buffer
// of the same size.
//
// Screen coordinates have their origin at the bottom-left corner with y
// pointing up. Storage is row-major from the top row down, so Pixels can be
// handed to an image or a window without flipping.
//
// Colors are stored as 0xAARRGGBB words with sRGB-encoded RGB and linear
// alpha; every method taking or returning mgl32.Vec4 works in linear space.
// Depth is smaller-is-nearer.
//
// Framebuffer is not safe for concurrent use except that goroutines may
// write disjoint pixels concurrently.
type Framebuffer struct {
	width, height int
	color         []uint32 // nil for depth-only targets
	depth         []float32
}

// NewFramebuffer allocates a color and depth target.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer %dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Framebuffer{
		width:  width,
		height: height,
		color:  make([]uint32, width*height),
		depth:  make([]float32, width*height),
	}, nil
}

// NewDepthFramebuffer allocates a depth-only target, cleared to the largest
// float32. Color writes to it are ignored.
func NewDepthFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("depth framebuffer %dx%d: %w", width, height, ErrInvalidSize)
	}
	fb := &Framebuffer{
		width:  width,
		height: height,
		depth:  make([]float32, width*height),
	}
	fb.ClearDepth(math.MaxFloat32)
	return fb, nil
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// HasColor reports whether the target has a color buffer.
func (fb *Framebuffer) HasColor() bool { return fb.color != nil }

// index returns the storage index of screen pixel (x, y), or -1.
func (fb *Framebuffer) index(x, y int) int {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return -1
	}
	return (fb.height-1-y)*fb.width + x
}

// ClearColor fills the color buffer with c.
func (fb *Framebuffer) ClearColor(c mgl32.Vec4) {
	if fb.color == nil {
		return
	}
	p := color.Encode(c)
	for i := range fb.color {
		fb.color[i] = p
	}
}

// ClearDepth fills the depth buffer with d.
func (fb *Framebuffer) ClearDepth(d float32) {
	for i := range fb.depth {
		fb.depth[i] = d
	}
}

// SetPixel writes a shaded fragment at screen pixel (x, y).
//
// Writes outside the target are ignored. With DepthTest the fragment is
// dropped unless depth is smaller than the stored depth. With Blend the
// fragment is combined with the stored color using state.BlendMode;
// otherwise it replaces it. The depth is stored iff DepthWrite is set.
func (fb *Framebuffer) SetPixel(x, y int, depth float32, c mgl32.Vec4, state *RenderState) {
	i := fb.index(x, y)
	if i < 0 {
		return
	}
	if state.Has(DepthTest) && !(depth < fb.depth[i]) {
		return
	}

	if fb.color != nil {
		if state.Has(Blend) {
			fb.color[i] = color.Encode(blend.Blend(c, color.Decode(fb.color[i]), state.BlendMode))
		} else {
			fb.color[i] = color.Encode(c)
		}
	}
	if state.Has(DepthWrite) {
		fb.depth[i] = depth
	}
}

// SetDepth stores depth at screen pixel (x, y) without any test.
func (fb *Framebuffer) SetDepth(x, y int, depth float32) {
	if i := fb.index(x, y); i >= 0 {
		fb.depth[i] = depth
	}
}

// Depth returns the stored depth at screen pixel (x, y), or +Inf outside
// the target.
func (fb *Framebuffer) Depth(x, y int) float32 {
	i := fb.index(x, y)
	if i < 0 {
		return float32(math.Inf(1))
	}
	return fb.depth[i]
}

// Pixel returns the packed color at screen pixel (x, y), or 0 outside the
// target or for a depth-only target.
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	i := fb.index(x, y)
	if i < 0 || fb.color == nil {
		return 0
	}
	return fb.color[i]
}

// Color returns the linear color at screen pixel (x, y).
func (fb *Framebuffer) Color(x, y int) mgl32.Vec4 {
	return color.Decode(fb.Pixel(x, y))
}

// Pixels returns the packed color buffer, top row first. The slice aliases
// the framebuffer and is overwritten by the next frame.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.color
}

// ToImage copies the color buffer into a new image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.ReadPixels(img.Pix)
	return img
}

// ReadPixels writes the color buffer into dst as non-premultiplied RGBA
// bytes, top row first. dst must hold at least 4*Width*Height bytes.
func (fb *Framebuffer) ReadPixels(dst []byte) {
	for i, p := range fb.color {
		r, g, b, a := color.Unpack(p)
		dst[i*4+0] = r
		dst[i*4+1] = g
		dst[i*4+2] = b
		dst[i*4+3] = a
	}
}

// SavePNG writes the color buffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, fb.ToImage())
}
