package parallel

import "github.com/chewxy/math32"

// TileGrid is a static partition of a framebuffer into tiles, plus one bin of
// work-item indices per tile.
//
// Tiles are stored in row-major order: index = ty*TilesX() + tx. Their union
// is exactly [0,width)x[0,height) and no two tiles overlap. The partition never
// changes after construction; only the bins are rebuilt, once per frame.
//
// Thread safety: TileGrid is NOT thread-safe. Fill the bins first, then hand
// read-only access to the workers.
type TileGrid struct {
	// tiles is a flat slice of all tiles (row-major order).
	tiles []Tile

	// bins holds the work-item indices bound to each tile.
	bins [][]int

	tilesX, tilesY int
	tileSize       int
	width, height  int
}

// NewTileGrid creates the tile partition for a width x height framebuffer.
// A tileSize <= 0 selects DefaultTileSize. Edge tiles are clamped to the
// framebuffer. A non-positive width or height yields an empty grid.
func NewTileGrid(width, height, tileSize int) *TileGrid {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	g := &TileGrid{tileSize: tileSize}
	if width <= 0 || height <= 0 {
		return g
	}

	g.width = width
	g.height = height
	g.tilesX = (width + tileSize - 1) / tileSize
	g.tilesY = (height + tileSize - 1) / tileSize
	g.tiles = make([]Tile, 0, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			g.tiles = append(g.tiles, Tile{
				MinX: tx * tileSize,
				MinY: ty * tileSize,
				MaxX: min((tx+1)*tileSize, width),
				MaxY: min((ty+1)*tileSize, height),
			})
		}
	}
	g.bins = make([][]int, len(g.tiles))
	return g
}

// ResetBins empties every bin, keeping the allocated capacity for the next
// frame.
func (g *TileGrid) ResetBins() {
	for i := range g.bins {
		g.bins[i] = g.bins[i][:0]
	}
}

// BinRect appends item to the bin of every tile overlapped by the closed
// screen-space box [minX,maxX]x[minY,maxY]. It returns the number of tiles
// the item was bound to.
func (g *TileGrid) BinRect(minX, minY, maxX, maxY float32, item int) int {
	if len(g.tiles) == 0 || maxX < 0 || maxY < 0 ||
		minX >= float32(g.width) || minY >= float32(g.height) {
		return 0
	}
	if math32.IsNaN(minX) || math32.IsNaN(minY) || math32.IsNaN(maxX) || math32.IsNaN(maxY) {
		return 0
	}

	// Candidate tile range; every candidate is still tested for overlap.
	tx0 := g.tileCoord(minX, g.tilesX)
	ty0 := g.tileCoord(minY, g.tilesY)
	tx1 := g.tileCoord(maxX, g.tilesX)
	ty1 := g.tileCoord(maxY, g.tilesY)

	n := 0
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			i := ty*g.tilesX + tx
			if g.tiles[i].Overlaps(minX, minY, maxX, maxY) {
				g.bins[i] = append(g.bins[i], item)
				n++
			}
		}
	}
	return n
}

// tileCoord converts a screen coordinate to a tile column/row in [0, count).
func (g *TileGrid) tileCoord(v float32, count int) int {
	c := int(math32.Floor(v)) / g.tileSize
	return min(max(c, 0), count-1)
}

// Items returns the work items bound to tile i. The slice must not be
// modified and is only valid until the next ResetBins.
func (g *TileGrid) Items(i int) []int {
	return g.bins[i]
}

// Tile returns the tile at index i.
func (g *TileGrid) Tile(i int) Tile {
	return g.tiles[i]
}

// TileIndexAt returns the index of the tile containing pixel (px, py),
// or -1 when the pixel is outside the framebuffer.
func (g *TileGrid) TileIndexAt(px, py int) int {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return -1
	}
	return (py/g.tileSize)*g.tilesX + px/g.tileSize
}

// Tiles returns all tiles in row-major order.
// The returned slice should not be modified.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// TileSize returns the nominal tile edge length in pixels.
func (g *TileGrid) TileSize() int {
	return g.tileSize
}

// Width returns the framebuffer width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the framebuffer height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}
