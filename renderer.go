package rast3d

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d/internal/parallel"
)

// FrameStats describes the work done by the last Render call.
type FrameStats struct {
	// Objects is the number of scene objects that produced geometry.
	Objects int
	// Skipped counts objects missing a mesh, material or shader.
	Skipped int
	// Packets is the number of triangles left after clipping.
	Packets int
	// Clipped counts triangles removed entirely by clipping.
	Clipped int
	// TileBindings is the number of (packet, tile) pairs rasterized.
	TileBindings int
	// Tiles is the number of screen tiles.
	Tiles int
}

// Renderer draws scenes into its framebuffer using a persistent pool of
// goroutines, each owning a disjoint stripe of screen tiles.
//
// A frame runs in two phases. Setup is single-threaded: it binds the
// uniforms of each object, runs the vertex stage, clips, divides by w and
// records render packets, then bins the packets into tiles. Rasterization
// then runs on the pool; every tile is written by exactly one job, so no
// pixel is shared between goroutines.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	opts  rendererOptions
	fb    *Framebuffer
	main  *frame
	pool  *parallel.WorkerPool
	stats FrameStats

	shadow *ShadowMap
}

// NewRenderer creates a renderer with a width×height framebuffer.
// Call Close to stop its worker goroutines.
func NewRenderer(width, height int, opts ...RendererOption) (*Renderer, error) {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}

	r := &Renderer{
		opts: o,
		fb:   fb,
		main: newFrame(fb, o.tileSize, o.clearColor, o.clearDepth),
		pool: parallel.NewWorkerPool(o.workers),
	}
	Logger().Debug("renderer created",
		"width", width, "height", height,
		"tiles", r.main.grid.TileCount(), "workers", r.pool.Workers())
	return r, nil
}

// Render draws scene into the framebuffer and returns when the image is
// complete. If shadows are enabled and the scene has a light, the shadow
// map is rendered first.
func (r *Renderer) Render(scene *Scene) {
	if r.shadow != nil && scene != nil && len(scene.Lights) > 0 {
		r.RenderShadowMap(scene, scene.Lights[0], r.shadow)
	}
	r.SetupFrame(scene)
	r.DistributePacketsToTiles()
	r.RenderTiles()

	Logger().Debug("frame rendered",
		"objects", r.stats.Objects, "skipped", r.stats.Skipped,
		"packets", r.stats.Packets, "clipped", r.stats.Clipped,
		"bindings", r.stats.TileBindings)
}

// SetupFrame clears the framebuffer and builds the render packets of scene.
func (r *Renderer) SetupFrame(scene *Scene) {
	f := r.main
	f.begin()
	r.stats = FrameStats{Tiles: f.grid.TileCount()}

	if scene == nil || scene.Camera == nil {
		Logger().Warn("scene has no camera, nothing drawn")
		return
	}

	view := scene.Camera.View()
	proj := scene.Camera.Projection()
	viewProj := proj.Mul4(view)
	camPos := scene.Camera.Position()

	var lightVP mgl32.Mat4
	if r.shadow != nil {
		lightVP = r.shadow.LightViewProjection
	}

	for i := range scene.Objects {
		o := &scene.Objects[i]
		shader, ok := r.objectShader(scene, o)
		if !ok {
			r.stats.Skipped++
			continue
		}
		m := o.Material

		u := f.nextUniforms()
		u.Model = o.Transform
		u.View = view
		u.Projection = proj
		u.MVP = viewProj.Mul4(o.Transform)
		u.NormalMatrix = normalMatrix(o.Transform, o.Name)
		u.AlbedoFactor = m.AlbedoFactor
		u.AlbedoTexture = scene.Resources.Texture(m.AlbedoTexture)
		u.NormalTexture = scene.Resources.Texture(m.NormalTexture)
		u.Shininess = m.Shininess
		u.Alpha = m.Alpha
		u.CameraPos = camPos
		u.Lights = scene.Lights
		for name, v := range m.Params {
			if err := u.Set(name, v); err != nil {
				Logger().Warn("material parameter ignored", "object", o.Name, "material", m.Name, "err", err)
			}
		}

		state := m.State
		if r.shadow != nil {
			u.LightSpaceMVP = lightVP.Mul4(o.Transform)
			state.ShadowMap = r.shadow
			state.LightViewProjection = lightVP
		}

		f.emitMesh(shader, u, &state, o.Mesh, o.Name)
		r.stats.Objects++
	}
	r.stats.Packets = len(f.packets)
	r.stats.Clipped = f.culled
}

// objectShader returns the shader of o, logging why o is skipped if it
// cannot be drawn.
func (r *Renderer) objectShader(scene *Scene, o *Object) (Shader, bool) {
	switch {
	case o.Mesh == nil:
		Logger().Warn("object skipped: no mesh", "object", o.Name)
	case o.Material == nil:
		Logger().Warn("object skipped: no material", "object", o.Name)
	default:
		if s := scene.Resources.Shader(o.Material.Shader); s != nil {
			return s, true
		}
		Logger().Warn("object skipped: no shader", "object", o.Name, "material", o.Material.Name)
	}
	return nil, false
}

// DistributePacketsToTiles bins the packets built by SetupFrame into the
// tiles their screen bounding boxes overlap.
func (r *Renderer) DistributePacketsToTiles() {
	r.main.distribute()
	r.stats.TileBindings = r.main.binnings
}

// RenderTiles rasterizes every tile on the worker pool and blocks until
// all tiles are done.
func (r *Renderer) RenderTiles() {
	r.pool.ExecuteStriped(r.main.grid.TileCount(), r.main.renderTile)
}

// Framebuffer returns the render target. Its contents are valid after
// Render returns and until the next frame starts.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Packets returns the render packets of the current frame. The slice is
// owned by the renderer.
func (r *Renderer) Packets() []RenderPacket {
	return r.main.packets
}

// TileCount returns the number of screen tiles.
func (r *Renderer) TileCount() int {
	return r.main.grid.TileCount()
}

// Workers returns the number of rasterizer goroutines.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Stats returns statistics of the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Close stops the worker goroutines. A closed renderer still renders, on
// the calling goroutine. Close is safe to call multiple times.
func (r *Renderer) Close() {
	r.pool.Close()
}

// normalMatrix returns the inverse transpose of model, or the identity when
// model is singular.
func normalMatrix(model mgl32.Mat4, name string) mgl32.Mat4 {
	if math32.Abs(model.Det()) < 1e-12 {
		Logger().Debug("singular model matrix, using identity normal matrix", "object", name)
		return mgl32.Ident4()
	}
	return model.Inv().Transpose()
}
