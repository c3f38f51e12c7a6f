package rast3d

// clipEpsilon is the smallest w a clipped vertex may keep.
const clipEpsilon = 1e-4

// clipPlane is one half-space of the homogeneous view volume. dist is
// positive inside; strict planes also reject a distance of exactly zero.
type clipPlane struct {
	dist   func(p *Varyings) float32
	strict bool
}

// clipPlanes are tested in order: w first, so later planes never see a
// vertex behind the eye.
var clipPlanes = [...]clipPlane{
	{func(v *Varyings) float32 { return v.Position[3] - clipEpsilon }, true},
	{func(v *Varyings) float32 { return v.Position[3] - v.Position[0] }, false},
	{func(v *Varyings) float32 { return v.Position[3] + v.Position[0] }, false},
	{func(v *Varyings) float32 { return v.Position[3] - v.Position[1] }, false},
	{func(v *Varyings) float32 { return v.Position[3] + v.Position[1] }, false},
	{func(v *Varyings) float32 { return v.Position[3] - v.Position[2] }, false},
	{func(v *Varyings) float32 { return v.Position[3] + v.Position[2] }, false},
}

func (p *clipPlane) inside(d float32) bool {
	if p.strict {
		return d > 0
	}
	return d >= 0
}

// ClipTriangle clips a clip-space triangle against the view volume and
// returns the surviving area as a triangle list: len is a multiple of 3 and
// is zero when the triangle is entirely outside.
func ClipTriangle(v0, v1, v2 Varyings) []Varyings {
	var c clipper
	return c.clip(nil, v0, v1, v2)
}

// clipper holds the scratch polygons of one clipping goroutine.
type clipper struct {
	in, out []Varyings
}

// clip appends the triangles of the clipped polygon to dst.
func (c *clipper) clip(dst []Varyings, v0, v1, v2 Varyings) []Varyings {
	poly := append(c.in[:0], v0, v1, v2)
	out := c.out[:0]
	for i := range clipPlanes {
		out = clipAgainst(out[:0], poly, &clipPlanes[i])
		poly, out = out, poly
		if len(poly) < 3 {
			c.in, c.out = poly, out
			return dst
		}
	}
	c.in, c.out = poly, out

	for i := 1; i+1 < len(poly); i++ {
		dst = append(dst, poly[0], poly[i], poly[i+1])
	}
	return dst
}

// clipAgainst runs one Sutherland-Hodgman pass, appending the clipped
// polygon to dst.
func clipAgainst(dst, poly []Varyings, p *clipPlane) []Varyings {
	prev := &poly[len(poly)-1]
	dPrev := p.dist(prev)
	for i := range poly {
		cur := &poly[i]
		dCur := p.dist(cur)
		inCur, inPrev := p.inside(dCur), p.inside(dPrev)
		if inCur != inPrev {
			dst = append(dst, InterpolateVaryings(*prev, *cur, dPrev/(dPrev-dCur)))
		}
		if inCur {
			dst = append(dst, *cur)
		}
		prev, dPrev = cur, dCur
	}
	return dst
}
