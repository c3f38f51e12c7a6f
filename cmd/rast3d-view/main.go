// Command rast3d-view shows a scene in a window, re-rendering it on the CPU
// every frame. Drag with the left mouse button to orbit, scroll to zoom,
// press S to toggle shadows and R to reload the scene file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/rast3d"
	"github.com/gogpu/rast3d/internal/demo"
	"github.com/gogpu/rast3d/sceneio"
)

const (
	// radiansPerPixel converts mouse drag distance to orbit rotation.
	radiansPerPixel = 0.01
	// zoomPerNotch is the distance factor of one scroll wheel notch.
	zoomPerNotch = 0.9

	shadowMapSize = 1024
)

func main() {
	var (
		scenePath = flag.String("scene", "", "YAML scene file (default: built-in demo scene)")
		width     = flag.Int("width", 640, "framebuffer width")
		height    = flag.Int("height", 480, "framebuffer height")
		scale     = flag.Int("scale", 1, "window pixels per framebuffer pixel")
		shadows   = flag.Bool("shadows", true, "render shadows")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	rast3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*scenePath, *width, *height, *scale, *shadows); err != nil {
		fmt.Fprintf(os.Stderr, "rast3d-view: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string, width, height, scale int, shadows bool) error {
	g, err := newViewer(scenePath, width, height, shadows)
	if err != nil {
		return err
	}
	defer g.renderer.Close()

	ebiten.SetWindowTitle("rast3d")
	ebiten.SetWindowSize(width*max(scale, 1), height*max(scale, 1))
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

// viewer implements ebiten.Game around a renderer.
type viewer struct {
	renderer  *rast3d.Renderer
	scene     *rast3d.Scene
	orbit     demo.Orbit
	loader    *sceneio.Loader
	scenePath string

	dragging      bool
	lastX, lastY  int
	pixels        []byte
	frame         *ebiten.Image
	width, height int
}

func newViewer(scenePath string, width, height int, shadows bool) (*viewer, error) {
	loader := sceneio.NewLoader(rast3d.DefaultShaderRegistry(), 0)
	sc, err := loadScene(loader, scenePath, width, height)
	if err != nil {
		return nil, err
	}

	r, err := rast3d.NewRenderer(width, height)
	if err != nil {
		return nil, err
	}
	if shadows {
		if err := r.EnableShadows(shadowMapSize); err != nil {
			r.Close()
			return nil, err
		}
	}
	return &viewer{
		renderer:  r,
		scene:     sc,
		orbit:     demo.OrbitFrom(sc.Camera),
		loader:    loader,
		scenePath: scenePath,
		pixels:    make([]byte, 4*width*height),
		width:     width,
		height:    height,
	}, nil
}

func loadScene(loader *sceneio.Loader, path string, width, height int) (*rast3d.Scene, error) {
	aspect := float32(width) / float32(max(height, 1))
	if path == "" {
		return demo.Scene(aspect), nil
	}
	sc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	sc.Camera.SetAspect(aspect)
	return sc, nil
}

// Update implements ebiten.Game.
func (v *viewer) Update() error {
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if v.dragging {
			v.orbit.Rotate(-float32(x-v.lastX)*radiansPerPixel, float32(y-v.lastY)*radiansPerPixel)
		}
		v.dragging = true
	} else {
		v.dragging = false
	}
	v.lastX, v.lastY = x, y

	if _, dy := ebiten.Wheel(); dy != 0 {
		factor := float32(zoomPerNotch)
		if dy < 0 {
			factor = 1 / factor
		}
		v.orbit.Zoom(factor)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if v.renderer.ShadowMap() != nil {
			v.renderer.DisableShadows()
		} else if err := v.renderer.EnableShadows(shadowMapSize); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && v.scenePath != "" {
		// A broken edit keeps the previous scene on screen.
		sc, err := loadScene(v.loader, v.scenePath, v.width, v.height)
		if err != nil {
			rast3d.Logger().Warn("reload failed", "path", v.scenePath, "err", err)
		} else {
			v.scene = sc
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *viewer) Draw(screen *ebiten.Image) {
	v.orbit.Apply(v.scene.Camera)
	v.renderer.Render(v.scene)
	v.renderer.Framebuffer().ReadPixels(v.pixels)

	if v.frame == nil {
		v.frame = ebiten.NewImage(v.width, v.height)
	}
	// The color buffer is opaque after a clear with alpha 1, so the
	// straight alpha bytes are also valid premultiplied pixels.
	v.frame.WritePixels(v.pixels)
	screen.DrawImage(v.frame, nil)
}

// Layout implements ebiten.Game.
func (v *viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}
