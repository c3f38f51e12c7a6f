// Package parallel provides the tile-based parallel rendering infrastructure
// for rast3d.
//
// The framebuffer is divided into square tiles (64x64 pixels by default) that
// are rasterized independently. Key pieces:
//
//   - Tile: a half-open screen rectangle, the unit of write ownership
//   - TileGrid: the static tile partition plus per-tile bins of work items
//   - WorkerPool: persistent goroutines executing striped per-frame jobs
//
// Thread safety: TileGrid is NOT thread-safe. Bins must be filled before any
// job that reads them is submitted to the WorkerPool.
package parallel

// DefaultTileSize is the edge length of a tile in pixels.
// 64 pixels matches vello/tiny-skia and keeps a tile's color and depth
// rows (32KB together) close to L1 size.
const DefaultTileSize = 64

// Tile is the screen rectangle [MinX,MaxX) x [MinY,MaxY).
//
// Edge tiles may be smaller than the grid's tile size when the framebuffer
// is not evenly divisible by it.
type Tile struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the tile width in pixels.
func (t Tile) Width() int {
	return t.MaxX - t.MinX
}

// Height returns the tile height in pixels.
func (t Tile) Height() int {
	return t.MaxY - t.MinY
}

// Area returns the number of pixels covered by the tile.
func (t Tile) Area() int {
	return t.Width() * t.Height()
}

// Contains reports whether pixel (x, y) belongs to the tile.
func (t Tile) Contains(x, y int) bool {
	return x >= t.MinX && x < t.MaxX && y >= t.MinY && y < t.MaxY
}

// Overlaps reports whether the closed screen-space box [minX,maxX]x[minY,maxY]
// touches the tile. The test is conservative: a box ending exactly on the
// tile's low edge counts as overlapping.
func (t Tile) Overlaps(minX, minY, maxX, maxY float32) bool {
	return maxX >= float32(t.MinX) && minX < float32(t.MaxX) &&
		maxY >= float32(t.MinY) && minY < float32(t.MaxY)
}

// Clamp intersects the inclusive pixel range [x0,x1]x[y0,y1] with the tile.
// ok is false when the intersection is empty.
func (t Tile) Clamp(x0, y0, x1, y1 int) (cx0, cy0, cx1, cy1 int, ok bool) {
	cx0 = max(x0, t.MinX)
	cy0 = max(y0, t.MinY)
	cx1 = min(x1, t.MaxX-1)
	cy1 = min(y1, t.MaxY-1)
	return cx0, cy0, cx1, cy1, cx0 <= cx1 && cy0 <= cy1
}
