// Command rast3d renders a scene file, or a built-in demo scene, to PNG.
//
// With -frames N the camera orbits the scene once and N numbered images
// are written; encoding runs in parallel with rendering the next frame.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/chewxy/math32"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/rast3d"
	"github.com/gogpu/rast3d/internal/demo"
	"github.com/gogpu/rast3d/sceneio"
)

type options struct {
	scene   string
	width   int
	height  int
	output  string
	frames  int
	workers int
	tile    int
	shadows int
	overlay bool
	verbose bool
}

func main() {
	var o options
	flag.StringVar(&o.scene, "scene", "", "YAML scene file (default: built-in demo scene)")
	flag.IntVar(&o.width, "width", 800, "image width")
	flag.IntVar(&o.height, "height", 600, "image height")
	flag.StringVar(&o.output, "output", "out.png", "output file; with -frames, a number is inserted before the extension")
	flag.IntVar(&o.frames, "frames", 1, "number of frames on a full camera orbit")
	flag.IntVar(&o.workers, "workers", 0, "rasterizer workers (default: GOMAXPROCS, at least 4)")
	flag.IntVar(&o.tile, "tile", 0, "tile size in pixels (default: 64)")
	flag.IntVar(&o.shadows, "shadows", 0, "shadow map size; 0 disables shadows")
	flag.BoolVar(&o.overlay, "stats", false, "draw frame statistics into the image")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	rast3d.SetLogger(logger)

	if err := run(&o, logger); err != nil {
		fmt.Fprintf(os.Stderr, "rast3d: %v\n", err)
		os.Exit(1)
	}
}

func run(o *options, logger *slog.Logger) error {
	if o.frames < 1 {
		return fmt.Errorf("-frames must be at least 1, got %d", o.frames)
	}
	aspect := float32(o.width) / float32(max(o.height, 1))

	var sc *rast3d.Scene
	if o.scene != "" {
		var err error
		if sc, err = sceneio.Load(o.scene, rast3d.DefaultShaderRegistry()); err != nil {
			return err
		}
		sc.Camera.SetAspect(aspect)
	} else {
		sc = demo.Scene(aspect)
	}

	r, err := rast3d.NewRenderer(o.width, o.height,
		rast3d.WithWorkers(o.workers),
		rast3d.WithTileSize(o.tile))
	if err != nil {
		return err
	}
	defer r.Close()
	if o.shadows > 0 {
		if err := r.EnableShadows(o.shadows); err != nil {
			return err
		}
	}

	if o.frames == 1 {
		r.Render(sc)
		img := r.Framebuffer().ToImage()
		if o.overlay {
			drawStats(img, r.Stats(), r.Workers())
		}
		if err := writePNG(o.output, img); err != nil {
			return err
		}
		logger.Info("frame written", "path", o.output, "packets", r.Stats().Packets)
		return nil
	}
	return renderOrbit(o, r, sc, logger)
}

// renderOrbit renders o.frames frames around the camera target. The
// renderer is single-threaded from the caller's side, so frames are copied
// out and encoded by a bounded group of goroutines.
func renderOrbit(o *options, r *rast3d.Renderer, sc *rast3d.Scene, logger *slog.Logger) error {
	orbit := demo.OrbitFrom(sc.Camera)
	step := 2 * math32.Pi / float32(o.frames)

	bar := progressbar.Default(int64(o.frames), "rendering")
	defer bar.Close()

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range o.frames {
		orbit.Apply(sc.Camera)
		r.Render(sc)
		img := r.Framebuffer().ToImage()
		if o.overlay {
			drawStats(img, r.Stats(), r.Workers())
		}

		path := framePath(o.output, i, o.frames)
		g.Go(func() error {
			if err := writePNG(path, img); err != nil {
				return err
			}
			return bar.Add(1)
		})
		orbit.Rotate(step, 0)
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("frames written", "count", o.frames, "pattern", framePath(o.output, 0, o.frames))
	return nil
}

// framePath inserts a zero-padded frame number before the extension.
func framePath(output string, i, n int) string {
	ext := filepath.Ext(output)
	if ext == "" {
		ext = ".png"
	}
	digits := len(fmt.Sprint(n - 1))
	return fmt.Sprintf("%s_%0*d%s", strings.TrimSuffix(output, filepath.Ext(output)), digits, i, ext)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // G304: output path comes from the command line
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
