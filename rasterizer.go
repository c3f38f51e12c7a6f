package rast3d

import (
	"math"

	"github.com/gogpu/rast3d/internal/parallel"
)

// Screen positions are snapped to a fixed-point grid so that edge functions
// are exact integers and shared edges are evaluated identically by both
// triangles.
const (
	subpixelBits  = 8
	subpixelScale = 1 << subpixelBits
	subpixelHalf  = subpixelScale / 2
)

// renderTile rasterizes every packet bound to tile ti. Only pixels inside
// the tile are touched.
func (f *frame) renderTile(ti int) {
	tile := f.grid.Tile(ti)
	for _, pi := range f.grid.Items(ti) {
		f.rasterize(&f.packets[pi], tile)
	}
}

// edge is an edge function E(p) = A*px + B*py + C evaluated at pixel
// centers. E is positive on the interior side of a counter-clockwise
// triangle.
type edge struct {
	a, b, c int64
	bias    int64 // 0 on top-left edges, -1 otherwise
}

func newEdge(x0, y0, x1, y1 int64) edge {
	dx, dy := x1-x0, y1-y0
	e := edge{a: -dy, b: dx, c: dy*x0 - dx*y0, bias: -1}
	// With y up and counter-clockwise winding, left edges run downward and
	// top edges run right to left.
	if dy < 0 || (dy == 0 && dx < 0) {
		e.bias = 0
	}
	return e
}

func (e *edge) at(x, y int64) int64 {
	return e.a*x + e.b*y + e.c
}

// rasterize scans one packet over the part of its bounding box inside tile.
func (f *frame) rasterize(p *RenderPacket, tile parallel.Tile) {
	w, h := f.target.Width(), f.target.Height()

	var xs, ys [3]int64
	for k := range 3 {
		xs[k] = snap(p.V[k].Position[0], w)
		ys[k] = snap(p.V[k].Position[1], h)
	}

	area := (xs[1]-xs[0])*(ys[2]-ys[0]) - (ys[1]-ys[0])*(xs[2]-xs[0])
	if area == 0 {
		return
	}
	// order maps rasterizer vertex k to packet vertex order[k].
	order := [3]int{0, 1, 2}
	if area < 0 {
		if p.State.Has(Cull) {
			return
		}
		order[1], order[2] = 2, 1
		area = -area
	}
	x0, y0 := xs[order[0]], ys[order[0]]
	x1, y1 := xs[order[1]], ys[order[1]]
	x2, y2 := xs[order[2]], ys[order[2]]

	px0, py0, px1, py1, ok := tile.Clamp(
		pixelCeil(min(x0, x1, x2)), pixelCeil(min(y0, y1, y2)),
		pixelFloor(max(x0, x1, x2)), pixelFloor(max(y0, y1, y2)),
	)
	if !ok {
		return
	}

	// e0 is opposite vertex 0 and yields its weight, and so on.
	e0 := newEdge(x1, y1, x2, y2)
	e1 := newEdge(x2, y2, x0, y0)
	e2 := newEdge(x0, y0, x1, y1)

	v := [3]Varyings{p.V[order[0]], p.V[order[1]], p.V[order[2]]}
	invW := [3]float32{1 / v[0].Position[3], 1 / v[1].Position[3], 1 / v[2].Position[3]}
	invArea := 1 / float32(area)
	depthOnly := !f.target.HasColor()

	cx := int64(px0)*subpixelScale + subpixelHalf
	cy := int64(py0)*subpixelScale + subpixelHalf
	row0, row1, row2 := e0.at(cx, cy), e1.at(cx, cy), e2.at(cx, cy)

	for y := py0; y <= py1; y++ {
		w0, w1, w2 := row0, row1, row2
		for x := px0; x <= px1; x++ {
			if w0+e0.bias >= 0 && w1+e1.bias >= 0 && w2+e2.bias >= 0 {
				f.shade(p, &v, &invW, float32(w0)*invArea, float32(w1)*invArea, float32(w2)*invArea, x, y, depthOnly)
			}
			w0 += e0.a * subpixelScale
			w1 += e1.a * subpixelScale
			w2 += e2.a * subpixelScale
		}
		row0 += e0.b * subpixelScale
		row1 += e1.b * subpixelScale
		row2 += e2.b * subpixelScale
	}
}

// shade interpolates one covered pixel and writes it to the target.
// b0, b1, b2 are screen-space barycentric weights.
func (f *frame) shade(p *RenderPacket, v *[3]Varyings, invW *[3]float32, b0, b1, b2 float32, x, y int, depthOnly bool) {
	k0, k1, k2 := perspectiveWeights(invW, b0, b1, b2)
	depth := k0*v[0].Position[2] + k1*v[1].Position[2] + k2*v[2].Position[2]

	if depthOnly {
		if p.State.Has(DepthTest) && !(depth < f.target.Depth(x, y)) {
			return
		}
		if p.State.Has(DepthWrite) {
			f.target.SetDepth(x, y, depth)
		}
		return
	}

	in := weightVaryings(v, k0, k1, k2)
	c := p.Shader.FragmentShader(&in, p.Uniforms, &p.State)
	f.target.SetPixel(x, y, depth, c, &p.State)
}

// perspectiveWeights turns screen-space barycentrics into weights for
// clip-space attributes: k_i = (b_i / w_i) * w_interp with
// 1/w_interp = sum of b_j / w_j. At a vertex the result is exactly
// (1, 0, 0) up to permutation.
func perspectiveWeights(invW *[3]float32, b0, b1, b2 float32) (k0, k1, k2 float32) {
	k0, k1, k2 = b0*invW[0], b1*invW[1], b2*invW[2]
	s := k0 + k1 + k2
	return k0 / s, k1 / s, k2 / s
}

// snap applies the viewport transform to an NDC coordinate and rounds it
// to the subpixel grid.
func snap(ndc float32, size int) int64 {
	return int64(math.Round(float64(toScreen(ndc, float32(size))) * subpixelScale))
}

// pixelCeil returns the first pixel whose center is at or after v.
func pixelCeil(v int64) int {
	return int(floorDiv(v-subpixelHalf+subpixelScale-1, subpixelScale))
}

// pixelFloor returns the last pixel whose center is at or before v.
func pixelFloor(v int64) int {
	return int(floorDiv(v-subpixelHalf, subpixelScale))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
