package rast3d

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Resources owns the textures and shaders of a scene. Materials refer to
// them by handle, so they live exactly as long as the scene.
type Resources struct {
	textures []*Texture
	shaders  []Shader
}

// AddTexture stores t and returns its handle.
func (r *Resources) AddTexture(t *Texture) TextureHandle {
	r.textures = append(r.textures, t)
	return TextureHandle(len(r.textures))
}

// Texture returns the texture for h, or nil for the zero or an unknown
// handle.
func (r *Resources) Texture(h TextureHandle) *Texture {
	if h == 0 || int(h) > len(r.textures) {
		return nil
	}
	return r.textures[h-1]
}

// AddShader stores s and returns its handle.
func (r *Resources) AddShader(s Shader) ShaderHandle {
	r.shaders = append(r.shaders, s)
	return ShaderHandle(len(r.shaders))
}

// Shader returns the shader for h, or nil for the zero or an unknown handle.
func (r *Resources) Shader(h ShaderHandle) Shader {
	if h == 0 || int(h) > len(r.shaders) {
		return nil
	}
	return r.shaders[h-1]
}

// Object is one drawable instance in a scene.
type Object struct {
	Name      string
	Transform mgl32.Mat4
	Mesh      *Mesh
	Material  *Material
}

// Scene is the snapshot rendered by a Renderer.
type Scene struct {
	Camera    *Camera
	Lights    []DirectionalLight
	Objects   []Object
	Resources Resources
}

// NewScene returns an empty scene with a default camera.
func NewScene(aspect float32) *Scene {
	return &Scene{Camera: NewCamera(aspect)}
}

// AddObject appends an object and returns its index.
func (s *Scene) AddObject(o Object) int {
	s.Objects = append(s.Objects, o)
	return len(s.Objects) - 1
}

// SortByQueue stably orders objects by their material's render queue, so
// opaque geometry is drawn before transparent geometry. Objects without a
// material sort with the opaque queue.
func (s *Scene) SortByQueue() {
	queue := func(i int) RenderQueue {
		if m := s.Objects[i].Material; m != nil {
			return m.Queue
		}
		return QueueOpaque
	}
	sort.SliceStable(s.Objects, func(i, j int) bool {
		return queue(i) < queue(j)
	})
}

// Bounds returns the world-space bounding box of every object with a mesh.
// ok is false when the scene has no geometry.
func (s *Scene) Bounds() (lo, hi mgl32.Vec3, ok bool) {
	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Mesh == nil || len(o.Mesh.Vertices) == 0 {
			continue
		}
		mlo, mhi := o.Mesh.Bounds()
		for c := range 8 {
			corner := mgl32.Vec3{mlo[0], mlo[1], mlo[2]}
			if c&1 != 0 {
				corner[0] = mhi[0]
			}
			if c&2 != 0 {
				corner[1] = mhi[1]
			}
			if c&4 != 0 {
				corner[2] = mhi[2]
			}
			p := transformPoint(o.Transform, corner).Vec3()
			if !ok {
				lo, hi, ok = p, p, true
				continue
			}
			for k := range 3 {
				lo[k] = math32.Min(lo[k], p[k])
				hi[k] = math32.Max(hi[k], p[k])
			}
		}
	}
	return lo, hi, ok
}
