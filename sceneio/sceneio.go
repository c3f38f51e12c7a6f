// Package sceneio loads rast3d scenes from YAML files.
//
// A scene file lists a camera, directional lights, named textures and
// materials, and objects that reference them by name:
//
//	camera:
//	  position: [0, 2, 6]
//	  target: [0, 0, 0]
//	  fov: 45
//	lights:
//	  - direction: [-1, -2, -1]
//	textures:
//	  - name: tiles
//	    checker: {size: 64, cells: 8, a: [1, 1, 1], b: [0.2, 0.2, 0.2]}
//	materials:
//	  - name: floor
//	    shader: blinn-phong
//	    albedo_texture: tiles
//	objects:
//	  - name: ground
//	    mesh: plane
//	    size: 10
//	    material: floor
package sceneio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/rast3d"
	"github.com/gogpu/rast3d/internal/blend"
	"github.com/gogpu/rast3d/internal/cache"
)

var (
	// ErrUnknownMaterial is returned when an object names a material the
	// file does not define.
	ErrUnknownMaterial = errors.New("sceneio: unknown material")

	// ErrUnknownTexture is returned when a material names a texture the
	// file does not define.
	ErrUnknownTexture = errors.New("sceneio: unknown texture")

	// ErrUnknownMesh is returned for a mesh that is neither a built-in
	// primitive nor an .obj file.
	ErrUnknownMesh = errors.New("sceneio: unknown mesh")

	// ErrInvalidValue is returned for an unknown queue or blend mode name.
	ErrInvalidValue = errors.New("sceneio: invalid value")
)

// defaultShader is used by materials that do not name a shader.
const defaultShader = rast3d.BlinnPhongShaderName

// DefaultCacheSize is the number of textures and of meshes a Loader keeps.
const DefaultCacheSize = 64

// Loader decodes scene files and keeps the texture and mesh files they
// reference, so reloading a scene or loading scenes that share assets
// decodes each file once. A Loader is safe for concurrent use.
type Loader struct {
	registry *rast3d.ShaderRegistry
	textures *cache.Cache[textureKey, *rast3d.Texture]
	meshes   *cache.Cache[string, *rast3d.Mesh]
}

type textureKey struct {
	path   string
	linear bool
}

// NewLoader returns a loader creating shaders from registry and caching up
// to cacheSize textures and cacheSize meshes. A nil registry means
// rast3d.DefaultShaderRegistry; a cacheSize of 0 or less means
// DefaultCacheSize.
func NewLoader(registry *rast3d.ShaderRegistry, cacheSize int) *Loader {
	if registry == nil {
		registry = rast3d.DefaultShaderRegistry()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Loader{
		registry: registry,
		textures: cache.New[textureKey, *rast3d.Texture](cacheSize),
		meshes:   cache.New[string, *rast3d.Mesh](cacheSize),
	}
}

// Load reads the scene file at path with a fresh Loader.
func Load(path string, registry *rast3d.ShaderRegistry) (*rast3d.Scene, error) {
	return NewLoader(registry, 0).Load(path)
}

// Decode reads a scene document from r with a fresh Loader.
func Decode(r io.Reader, dir string, registry *rast3d.ShaderRegistry) (*rast3d.Scene, error) {
	return NewLoader(registry, 0).Decode(r, dir)
}

// Load reads the scene file at path. Texture and mesh paths are resolved
// relative to the file's directory.
func (l *Loader) Load(path string) (*rast3d.Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	sc, err := l.Decode(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return sc, nil
}

// Decode reads a scene document from r. dir is the base directory for
// relative texture and mesh paths. Objects are returned sorted by render
// queue.
func (l *Loader) Decode(r io.Reader, dir string) (*rast3d.Scene, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	b := &builder{
		loader:    l,
		file:      &f,
		dir:       dir,
		scene:     rast3d.NewScene(1),
		textures:  make(map[string]rast3d.TextureHandle),
		shaders:   make(map[string]rast3d.ShaderHandle),
		materials: make(map[string]*rast3d.Material),
		meshes:    make(map[string]*rast3d.Mesh),
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	b.scene.SortByQueue()
	rast3d.Logger().Debug("scene loaded",
		"objects", len(b.scene.Objects),
		"lights", len(b.scene.Lights),
		"materials", len(b.materials),
		"textures", len(b.textures))
	return b.scene, nil
}

// builder turns a parsed File into a Scene, sharing shaders and meshes
// between the objects that use them.
type builder struct {
	loader *Loader
	file   *File
	dir    string
	scene  *rast3d.Scene

	textures  map[string]rast3d.TextureHandle
	shaders   map[string]rast3d.ShaderHandle
	materials map[string]*rast3d.Material
	meshes    map[string]*rast3d.Mesh
}

func (b *builder) build() error {
	b.camera()
	for _, l := range b.file.Lights {
		light := rast3d.NewDirectionalLight(mgl32.Vec3(l.Direction))
		if l.Color != nil {
			light.Color = mgl32.Vec3(*l.Color)
		}
		if l.Intensity != nil {
			light.Intensity = *l.Intensity
		}
		b.scene.Lights = append(b.scene.Lights, light)
	}
	for i := range b.file.Textures {
		if err := b.texture(&b.file.Textures[i]); err != nil {
			return err
		}
	}
	for i := range b.file.Materials {
		if err := b.material(&b.file.Materials[i]); err != nil {
			return err
		}
	}
	for i := range b.file.Objects {
		if err := b.object(&b.file.Objects[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) camera() {
	c := b.scene.Camera
	spec := b.file.Camera
	pos, target := c.Position(), c.Target()
	if spec.Position != nil {
		pos = mgl32.Vec3(*spec.Position)
	}
	if spec.Target != nil {
		target = mgl32.Vec3(*spec.Target)
	}
	c.LookAt(pos, target)
	if spec.Up != nil {
		c.SetUp(mgl32.Vec3(*spec.Up))
	}

	fov := c.FovY()
	near, far := c.Clip()
	if spec.Fov > 0 {
		fov = spec.Fov
	}
	if spec.Near > 0 {
		near = spec.Near
	}
	if spec.Far > near {
		far = spec.Far
	}
	c.SetPerspective(fov, 1, near, far)
}

func (b *builder) texture(spec *TextureSpec) error {
	var tex *rast3d.Texture
	switch {
	case spec.Checker != nil:
		ch := spec.Checker
		tex = rast3d.NewCheckerTexture(ch.Size, ch.Cells, mgl32.Vec4(ch.A), mgl32.Vec4(ch.B))
	case spec.File != "":
		key := textureKey{path: b.resolve(spec.File), linear: spec.Linear}
		var err error
		tex, err = b.loader.textures.GetOrLoad(key, func() (*rast3d.Texture, error) {
			if key.linear {
				return rast3d.LoadLinearTexture(key.path)
			}
			return rast3d.LoadTexture(key.path)
		})
		if err != nil {
			return fmt.Errorf("texture %q: %w", spec.Name, err)
		}
	default:
		return fmt.Errorf("texture %q: %w: needs a file or a checker", spec.Name, ErrInvalidValue)
	}
	b.textures[spec.Name] = b.scene.Resources.AddTexture(tex)
	return nil
}

func (b *builder) shader(name string) (rast3d.ShaderHandle, error) {
	if name == "" {
		name = defaultShader
	}
	if h, ok := b.shaders[name]; ok {
		return h, nil
	}
	s, err := b.loader.registry.Create(name)
	if err != nil {
		return 0, err
	}
	h := b.scene.Resources.AddShader(s)
	b.shaders[name] = h
	return h, nil
}

func (b *builder) textureHandle(material, name string) (rast3d.TextureHandle, error) {
	if name == "" {
		return 0, nil
	}
	h, ok := b.textures[name]
	if !ok {
		return 0, fmt.Errorf("material %q: %w %q", material, ErrUnknownTexture, name)
	}
	return h, nil
}

func (b *builder) material(spec *MaterialSpec) error {
	sh, err := b.shader(spec.Shader)
	if err != nil {
		return fmt.Errorf("material %q: %w", spec.Name, err)
	}
	m := rast3d.NewMaterial(sh)
	m.Name = spec.Name
	m.Params = spec.Params

	queue, ok := rast3d.ParseRenderQueue(spec.Queue)
	if !ok {
		return fmt.Errorf("material %q: %w: queue %q", spec.Name, ErrInvalidValue, spec.Queue)
	}
	m.Queue = queue
	if queue == rast3d.QueueTransparent {
		m.State = rast3d.TransparentState()
	}

	if spec.Color != nil {
		m.AlbedoFactor = mgl32.Vec4(*spec.Color)
	}
	if spec.Shininess != nil {
		m.Shininess = *spec.Shininess
	}
	if spec.Alpha != nil {
		m.Alpha = *spec.Alpha
	}
	if m.AlbedoTexture, err = b.textureHandle(spec.Name, spec.AlbedoTexture); err != nil {
		return err
	}
	if m.NormalTexture, err = b.textureHandle(spec.Name, spec.NormalTexture); err != nil {
		return err
	}

	if spec.Blend != nil {
		mode, ok := blend.ParseMode(*spec.Blend)
		if !ok {
			return fmt.Errorf("material %q: %w: blend mode %q", spec.Name, ErrInvalidValue, *spec.Blend)
		}
		m.State = m.State.Enable(rast3d.Blend)
		m.State.BlendMode = mode
	}
	m.State = setFlag(m.State, rast3d.DepthTest, spec.DepthTest)
	m.State = setFlag(m.State, rast3d.DepthWrite, spec.DepthWrite)
	m.State = setFlag(m.State, rast3d.Cull, spec.Cull)

	b.materials[spec.Name] = m
	return nil
}

func setFlag(s rast3d.RenderState, f rast3d.RenderFlags, on *bool) rast3d.RenderState {
	switch {
	case on == nil:
		return s
	case *on:
		return s.Enable(f)
	default:
		return s.Disable(f)
	}
}

func (b *builder) object(spec *ObjectSpec) error {
	m, ok := b.materials[spec.Material]
	if !ok {
		return fmt.Errorf("object %q: %w %q", spec.Name, ErrUnknownMaterial, spec.Material)
	}
	mesh, err := b.mesh(spec)
	if err != nil {
		return fmt.Errorf("object %q: %w", spec.Name, err)
	}
	b.scene.AddObject(rast3d.Object{
		Name:      spec.Name,
		Transform: transform(spec),
		Mesh:      mesh,
		Material:  m,
	})
	return nil
}

func (b *builder) mesh(spec *ObjectSpec) (*rast3d.Mesh, error) {
	key := spec.Mesh
	if key == "plane" {
		key = fmt.Sprintf("plane/%g/%d", spec.Size, spec.Divisions)
	}
	if m, ok := b.meshes[key]; ok {
		return m, nil
	}

	var m *rast3d.Mesh
	switch spec.Mesh {
	case "triangle":
		m = rast3d.NewTriangleMesh()
	case "quad":
		m = rast3d.NewQuadMesh()
	case "cube":
		m = rast3d.NewCubeMesh()
	case "plane":
		size := spec.Size
		if size <= 0 {
			size = 1
		}
		m = rast3d.NewPlaneMesh(size, spec.Divisions)
	default:
		if !strings.EqualFold(filepath.Ext(spec.Mesh), ".obj") {
			return nil, fmt.Errorf("%w %q", ErrUnknownMesh, spec.Mesh)
		}
		path := b.resolve(spec.Mesh)
		var err error
		if m, err = b.loader.meshes.GetOrLoad(path, func() (*rast3d.Mesh, error) { return LoadOBJ(path) }); err != nil {
			return nil, err
		}
	}
	b.meshes[key] = m
	return m, nil
}

func (b *builder) resolve(path string) string {
	if filepath.IsAbs(path) || b.dir == "" {
		return path
	}
	return filepath.Join(b.dir, path)
}

// transform builds translate * rotate * scale from an object spec.
func transform(spec *ObjectSpec) mgl32.Mat4 {
	scale := mgl32.Vec3{1, 1, 1}
	if spec.Scale != nil {
		scale = mgl32.Vec3(*spec.Scale)
	}
	r := spec.Rotation
	rot := mgl32.HomogRotate3DZ(mgl32.DegToRad(r[2])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(r[1]))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(r[0])))
	return mgl32.Translate3D(spec.Position[0], spec.Position[1], spec.Position[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}
