package rast3d

import "github.com/go-gl/mathgl/mgl32"

// RenderQueue orders materials for drawing. Lower queues draw first.
type RenderQueue int

const (
	QueueOpaque RenderQueue = iota
	QueueSkybox
	QueueTransparent
)

// String returns the queue name used in scene files.
func (q RenderQueue) String() string {
	switch q {
	case QueueOpaque:
		return "opaque"
	case QueueSkybox:
		return "skybox"
	case QueueTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// ParseRenderQueue parses a queue name; the empty string is QueueOpaque.
func ParseRenderQueue(s string) (RenderQueue, bool) {
	switch s {
	case "", "opaque":
		return QueueOpaque, true
	case "skybox":
		return QueueSkybox, true
	case "transparent":
		return QueueTransparent, true
	}
	return QueueOpaque, false
}

// TextureHandle references a texture in a scene's Resources. The zero
// handle means no texture.
type TextureHandle uint32

// ShaderHandle references a shader in a scene's Resources. The zero handle
// means no shader.
type ShaderHandle uint32

// Material describes how an object's surface is shaded.
type Material struct {
	Name string

	AlbedoFactor  mgl32.Vec4
	AlbedoTexture TextureHandle
	NormalTexture TextureHandle
	Shininess     float32
	Alpha         float32

	Queue  RenderQueue
	Shader ShaderHandle
	State  RenderState

	// Params are bound as shader-defined uniforms.
	Params map[string]any
}

// NewMaterial returns an opaque white material drawn with shader.
func NewMaterial(shader ShaderHandle) *Material {
	return &Material{
		AlbedoFactor: mgl32.Vec4{1, 1, 1, 1},
		Shininess:    32,
		Alpha:        1,
		Queue:        QueueOpaque,
		Shader:       shader,
		State:        OpaqueState(),
	}
}
