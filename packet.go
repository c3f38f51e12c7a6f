package rast3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d/internal/parallel"
)

// RenderPacket is one clipped, perspective-divided triangle ready for
// rasterization.
//
// V holds NDC positions in Position.XYZ with the clip-space w kept in
// Position.W. Uniforms points at the uniform set bound for the packet's
// object. Packets are built during frame setup and read-only afterwards.
type RenderPacket struct {
	V        [3]Varyings
	Shader   Shader
	Uniforms *Uniforms
	State    RenderState
}

// frame is one render target with the per-frame working set that feeds it.
type frame struct {
	target     *Framebuffer
	grid       *parallel.TileGrid
	clearColor mgl32.Vec4
	clearDepth float32

	packets  []RenderPacket
	uniforms []*Uniforms
	bound    int

	clip     clipper
	clipped  []Varyings
	culled   int
	binnings int
}

func newFrame(target *Framebuffer, tileSize int, clearColor mgl32.Vec4, clearDepth float32) *frame {
	return &frame{
		target:     target,
		grid:       parallel.NewTileGrid(target.Width(), target.Height(), tileSize),
		clearColor: clearColor,
		clearDepth: clearDepth,
	}
}

// begin clears the target and forgets the previous frame's packets.
func (f *frame) begin() {
	f.target.ClearColor(f.clearColor)
	f.target.ClearDepth(f.clearDepth)
	clear(f.packets)
	f.packets = f.packets[:0]
	f.bound = 0
	f.culled, f.binnings = 0, 0
}

// nextUniforms returns a reset uniform set for the next object. Sets are
// reused across frames; each object of a frame gets its own.
func (f *frame) nextUniforms() *Uniforms {
	if f.bound == len(f.uniforms) {
		f.uniforms = append(f.uniforms, &Uniforms{})
	}
	u := f.uniforms[f.bound]
	f.bound++

	extra := u.Extra
	clear(extra)
	*u = Uniforms{Extra: extra}
	return u
}

// emitTriangle runs the vertex stage on three vertices, clips the result
// and appends one packet per surviving triangle.
func (f *frame) emitTriangle(shader Shader, u *Uniforms, state *RenderState, a, b, c *Vertex) {
	v0 := shader.VertexShader(a, u)
	v1 := shader.VertexShader(b, u)
	v2 := shader.VertexShader(c, u)

	f.clipped = f.clip.clip(f.clipped[:0], v0, v1, v2)
	if len(f.clipped) == 0 {
		f.culled++
		return
	}
	for i := 0; i+2 < len(f.clipped); i += 3 {
		p := RenderPacket{Shader: shader, Uniforms: u, State: *state}
		for k := range 3 {
			p.V[k] = perspectiveDivide(f.clipped[i+k])
		}
		f.packets = append(f.packets, p)
	}
}

// perspectiveDivide maps the clip-space position to NDC, keeping w.
func perspectiveDivide(v Varyings) Varyings {
	p := v.Position
	inv := 1 / p[3]
	v.Position = mgl32.Vec4{p[0] * inv, p[1] * inv, p[2] * inv, p[3]}
	return v
}

// emitMesh emits every triangle of m. Triangles with an index outside the
// vertex array are dropped.
func (f *frame) emitMesh(shader Shader, u *Uniforms, state *RenderState, m *Mesh, name string) {
	n := uint32(len(m.Vertices))
	bad := 0
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			bad++
			continue
		}
		f.emitTriangle(shader, u, state, &m.Vertices[i0], &m.Vertices[i1], &m.Vertices[i2])
	}
	if bad > 0 {
		Logger().Warn("mesh has out-of-range indices", "object", name, "triangles", bad)
	}
}
