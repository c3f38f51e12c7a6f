package rast3d

import "github.com/chewxy/math32"

// distribute rebuilds the tile bins from the frame's packets. It runs on
// one goroutine before any tile is rasterized.
func (f *frame) distribute() {
	f.grid.ResetBins()
	w := float32(f.target.Width())
	h := float32(f.target.Height())

	for i := range f.packets {
		v := &f.packets[i].V
		minX, maxX := ndcRange(v[0].Position[0], v[1].Position[0], v[2].Position[0])
		minY, maxY := ndcRange(v[0].Position[1], v[1].Position[1], v[2].Position[1])
		f.binnings += f.grid.BinRect(
			toScreen(minX, w), toScreen(minY, h),
			toScreen(maxX, w), toScreen(maxY, h),
			i,
		)
	}
}

func ndcRange(a, b, c float32) (lo, hi float32) {
	return math32.Min(a, math32.Min(b, c)), math32.Max(a, math32.Max(b, c))
}

// toScreen applies the viewport transform to one NDC coordinate.
func toScreen(ndc, size float32) float32 {
	return (ndc + 1) * 0.5 * size
}
