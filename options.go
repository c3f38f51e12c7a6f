package rast3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d/internal/parallel"
)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r, err := rast3d.NewRenderer(800, 600,
//	    rast3d.WithTileSize(32),
//	    rast3d.WithClearColor(mgl32.Vec4{0, 0, 0, 1}),
//	)
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	tileSize   int
	workers    int
	clearColor mgl32.Vec4
	clearDepth float32
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		tileSize:   parallel.DefaultTileSize,
		workers:    parallel.DefaultWorkers(),
		clearColor: DefaultClearColor,
		clearDepth: 1,
	}
}

// DefaultClearColor is the background a frame is cleared to.
var DefaultClearColor = mgl32.Vec4{0.1, 0.1, 0.1, 1}

// WithTileSize sets the edge length of the square screen tiles.
// Non-positive values keep the default of 64.
func WithTileSize(size int) RendererOption {
	return func(o *rendererOptions) {
		if size > 0 {
			o.tileSize = size
		}
	}
}

// WithWorkers sets the number of rasterizer goroutines.
// Non-positive values keep the default of max(GOMAXPROCS, 4).
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithClearColor sets the linear background color.
func WithClearColor(c mgl32.Vec4) RendererOption {
	return func(o *rendererOptions) {
		o.clearColor = c
	}
}

// WithClearDepth sets the depth every frame starts from.
func WithClearDepth(d float32) RendererOption {
	return func(o *rendererOptions) {
		o.clearDepth = d
	}
}
