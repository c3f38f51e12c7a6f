package parallel

import "testing"

// =============================================================================
// Tile Tests
// =============================================================================

func TestTile_Dimensions(t *testing.T) {
	tile := Tile{MinX: 64, MinY: 128, MaxX: 100, MaxY: 192}
	if tile.Width() != 36 || tile.Height() != 64 || tile.Area() != 36*64 {
		t.Errorf("Width/Height/Area = %d/%d/%d, want 36/64/%d",
			tile.Width(), tile.Height(), tile.Area(), 36*64)
	}
}

func TestTile_Contains(t *testing.T) {
	tile := Tile{MinX: 64, MinY: 64, MaxX: 128, MaxY: 128}

	tests := []struct {
		name   string
		cx, cy int
		want   bool
	}{
		{"inside", 96, 96, true},
		{"top-left corner", 64, 64, true},
		{"bottom-right inside", 127, 127, true},
		{"outside left", 63, 96, false},
		{"outside right", 128, 96, false},
		{"outside top", 96, 63, false},
		{"outside bottom", 96, 128, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tile.Contains(tt.cx, tt.cy); got != tt.want {
				t.Errorf("Contains(%d,%d) = %v, want %v", tt.cx, tt.cy, got, tt.want)
			}
		})
	}
}

func TestTile_Clamp(t *testing.T) {
	tile := Tile{MinX: 0, MinY: 0, MaxX: 64, MaxY: 64}

	x0, y0, x1, y1, ok := tile.Clamp(-10, 10, 100, 20)
	if !ok || x0 != 0 || y0 != 10 || x1 != 63 || y1 != 20 {
		t.Errorf("Clamp = (%d,%d,%d,%d,%v), want (0,10,63,20,true)", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok := tile.Clamp(70, 0, 80, 10); ok {
		t.Error("Clamp of disjoint range reported ok")
	}
}

// =============================================================================
// TileGrid Tests
// =============================================================================

func TestTileGrid_Coverage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
	}{
		{"exact multiple", 128, 128, 64},
		{"ragged edges", 130, 70, 64},
		{"smaller than tile", 10, 5, 64},
		{"odd tile size", 101, 99, 7},
		{"single pixel tiles", 5, 3, 1},
		{"default tile size", 800, 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTileGrid(tt.width, tt.height, tt.tileSize)

			// Every pixel is covered by exactly one tile.
			cover := make([]int, tt.width*tt.height)
			area := 0
			for i, tile := range g.Tiles() {
				if tile.Width() <= 0 || tile.Height() <= 0 {
					t.Fatalf("tile %d is empty: %+v", i, tile)
				}
				area += tile.Area()
				for y := tile.MinY; y < tile.MaxY; y++ {
					for x := tile.MinX; x < tile.MaxX; x++ {
						if x < 0 || x >= tt.width || y < 0 || y >= tt.height {
							t.Fatalf("tile %d extends outside framebuffer: %+v", i, tile)
						}
						cover[y*tt.width+x]++
					}
				}
			}
			for i, c := range cover {
				if c != 1 {
					t.Fatalf("pixel (%d,%d) covered %d times", i%tt.width, i/tt.width, c)
				}
			}
			if area != tt.width*tt.height {
				t.Errorf("total tile area = %d, want %d", area, tt.width*tt.height)
			}
			if g.TileCount() != g.TilesX()*g.TilesY() {
				t.Errorf("TileCount = %d, want %d", g.TileCount(), g.TilesX()*g.TilesY())
			}
		})
	}
}

func TestTileGrid_EmptyFramebuffer(t *testing.T) {
	g := NewTileGrid(0, 100, 64)
	if g.TileCount() != 0 {
		t.Errorf("TileCount = %d, want 0", g.TileCount())
	}
	if n := g.BinRect(0, 0, 10, 10, 0); n != 0 {
		t.Errorf("BinRect on empty grid bound %d tiles", n)
	}
}

func TestTileGrid_TileIndexAt(t *testing.T) {
	g := NewTileGrid(130, 70, 64)
	tests := []struct {
		px, py int
		want   int
	}{
		{0, 0, 0},
		{64, 0, 1},
		{129, 0, 2},
		{0, 64, 3},
		{129, 69, 5},
		{130, 0, -1},
		{-1, 0, -1},
	}
	for _, tt := range tests {
		if got := g.TileIndexAt(tt.px, tt.py); got != tt.want {
			t.Errorf("TileIndexAt(%d,%d) = %d, want %d", tt.px, tt.py, got, tt.want)
		}
		if tt.want >= 0 && !g.Tile(tt.want).Contains(tt.px, tt.py) {
			t.Errorf("tile %d does not contain (%d,%d)", tt.want, tt.px, tt.py)
		}
	}
}

func TestTileGrid_BinRect(t *testing.T) {
	g := NewTileGrid(256, 128, 64) // 4x2 tiles

	tests := []struct {
		name                   string
		minX, minY, maxX, maxY float32
		wantTiles              []int
	}{
		{"inside one tile", 10, 10, 20, 20, []int{0}},
		{"spans two columns", 60, 10, 70, 20, []int{0, 1}},
		{"spans four tiles", 60, 60, 70, 70, []int{0, 1, 4, 5}},
		{"whole screen", 0, 0, 256, 128, []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{"ends on tile edge", 10, 10, 64, 20, []int{0, 1}},
		{"left of screen", -50, 10, -1, 20, nil},
		{"below screen", 10, 128, 20, 140, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.ResetBins()
			n := g.BinRect(tt.minX, tt.minY, tt.maxX, tt.maxY, 7)
			if n != len(tt.wantTiles) {
				t.Fatalf("BinRect bound %d tiles, want %d", n, len(tt.wantTiles))
			}
			want := make(map[int]bool)
			for _, i := range tt.wantTiles {
				want[i] = true
			}
			for i := range g.TileCount() {
				items := g.Items(i)
				if want[i] && (len(items) != 1 || items[0] != 7) {
					t.Errorf("tile %d items = %v, want [7]", i, items)
				}
				if !want[i] && len(items) != 0 {
					t.Errorf("tile %d items = %v, want none", i, items)
				}
			}
		})
	}
}

func TestTileGrid_ResetBinsKeepsPartition(t *testing.T) {
	g := NewTileGrid(128, 128, 64)
	before := append([]Tile(nil), g.Tiles()...)

	g.BinRect(0, 0, 128, 128, 1)
	g.BinRect(0, 0, 128, 128, 2)
	g.ResetBins()

	for i := range g.TileCount() {
		if len(g.Items(i)) != 0 {
			t.Errorf("tile %d still has items after ResetBins", i)
		}
		if g.Tile(i) != before[i] {
			t.Errorf("tile %d changed: %+v -> %+v", i, before[i], g.Tile(i))
		}
	}
}
