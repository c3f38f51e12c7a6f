package rast3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh vertex as consumed by the vertex stage.
// Tangent.W holds the handedness of the bitangent (+1 or -1).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Tangent  mgl32.Vec4
}

// Mesh is an indexed triangle list. len(Indices) must be a multiple of 3
// and every index must address Vertices.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], p[k])
			hi[k] = math32.Max(hi[k], p[k])
		}
	}
	return lo, hi
}

// ComputeTangents derives per-vertex tangents from positions and UVs,
// averaging over the triangles that share a vertex. Vertices whose UV
// mapping is degenerate get a tangent perpendicular to their normal.
func (m *Mesh) ComputeTangents() {
	tan := make([]mgl32.Vec3, len(m.Vertices))
	bitan := make([]mgl32.Vec3, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := &m.Vertices[i0], &m.Vertices[i1], &m.Vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		du1, dv1 := v1.UV[0]-v0.UV[0], v1.UV[1]-v0.UV[1]
		du2, dv2 := v2.UV[0]-v0.UV[0], v2.UV[1]-v0.UV[1]

		det := du1*dv2 - du2*dv1
		if math32.Abs(det) < 1e-12 {
			continue
		}
		r := 1 / det
		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))
		for _, idx := range [3]uint32{i0, i1, i2} {
			tan[idx] = tan[idx].Add(t)
			bitan[idx] = bitan[idx].Add(b)
		}
	}

	for i := range m.Vertices {
		v := &m.Vertices[i]
		n := normalize(v.Normal)
		t := tan[i].Sub(n.Mul(n.Dot(tan[i])))
		if t.Len() < 1e-6 {
			t = perpendicular(n)
		}
		t = normalize(t)
		w := float32(1)
		if n.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		v.Tangent = t.Vec4(w)
	}
}

// perpendicular returns a unit vector orthogonal to n.
func perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if math32.Abs(n[0]) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return normalize(axis.Sub(n.Mul(n.Dot(axis))))
}

// NewTriangleMesh returns a unit triangle in the XY plane centered on the
// origin, wound counter-clockwise when seen from +Z.
func NewTriangleMesh() *Mesh {
	n := mgl32.Vec3{0, 0, 1}
	m := &Mesh{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: n, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: n, UV: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{0, 0.5, 0}, Normal: n, UV: mgl32.Vec2{0.5, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	m.ComputeTangents()
	return m
}

// NewQuadMesh returns a unit square in the XY plane facing +Z.
func NewQuadMesh() *Mesh {
	n := mgl32.Vec3{0, 0, 1}
	m := &Mesh{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: n, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: n, UV: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: n, UV: mgl32.Vec2{1, 1}},
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: n, UV: mgl32.Vec2{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.ComputeTangents()
	return m
}

// NewPlaneMesh returns a size×size plane in the XZ plane facing +Y, split
// into divisions×divisions quads. UVs repeat once per quad.
func NewPlaneMesh(size float32, divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}
	m := &Mesh{}
	step := size / float32(divisions)
	half := size / 2
	for z := 0; z <= divisions; z++ {
		for x := 0; x <= divisions; x++ {
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{-half + float32(x)*step, 0, half - float32(z)*step},
				Normal:   mgl32.Vec3{0, 1, 0},
				UV:       mgl32.Vec2{float32(x), float32(z)},
			})
		}
	}
	row := uint32(divisions + 1)
	for z := uint32(0); z < uint32(divisions); z++ {
		for x := uint32(0); x < uint32(divisions); x++ {
			a := z*row + x
			b, c, d := a+1, a+row+1, a+row
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	m.ComputeTangents()
	return m
}

// NewCubeMesh returns a unit cube centered on the origin with one normal
// and UV set per face.
func NewCubeMesh() *Mesh {
	faces := [6]struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	corners := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := &Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			p := f.n.Mul(0.5).Add(f.u.Mul(c[0] - 0.5)).Add(f.v.Mul(c[1] - 0.5))
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: f.n, UV: c})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeTangents()
	return m
}
