package nav

import "math"

// DefaultCellSize is the edge length of a cell in world pixels.
const DefaultCellSize = 16

// Cell addresses one grid square by column and row.
type Cell struct {
	Col int
	Row int
}

// Add returns the cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Footprint is a rectangular block of cells occupied by a structure.
type Footprint struct {
	Origin Cell // top-left cell
	W, H   int  // size in cells
}

// Contains reports whether the cell lies inside the footprint.
func (f Footprint) Contains(c Cell) bool {
	return c.Col >= f.Origin.Col && c.Col < f.Origin.Col+f.W &&
		c.Row >= f.Origin.Row && c.Row < f.Origin.Row+f.H
}

// Overlaps reports whether two footprints share at least one cell.
func (f Footprint) Overlaps(o Footprint) bool {
	return f.Origin.Col < o.Origin.Col+o.W && o.Origin.Col < f.Origin.Col+f.W &&
		f.Origin.Row < o.Origin.Row+o.H && o.Origin.Row < f.Origin.Row+f.H
}

// Grid is the navigability grid: terrain plus a blocked mask rebuilt from
// structure footprints. The dimensions never change after construction.
type Grid struct {
	cols     int
	rows     int
	cellSize int
	terrain  *TerrainMap
	blocked  []bool // true = impassable
}

// NewGrid builds a grid over the terrain map with no structures placed.
func NewGrid(terrain *TerrainMap, cellSize int) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	g := &Grid{
		cols:     terrain.Cols,
		rows:     terrain.Rows,
		cellSize: cellSize,
		terrain:  terrain,
		blocked:  make([]bool, terrain.Cols*terrain.Rows),
	}
	g.Rebuild(nil)
	return g
}

// Rebuild recomputes passability: a cell is blocked when its terrain is
// water or any footprint covers it. Footprints reaching past the grid edge
// are clipped.
func (g *Grid) Rebuild(footprints []Footprint) {
	for i := range g.blocked {
		c := Cell{Col: i % g.cols, Row: i / g.cols}
		g.blocked[i] = terrainBlocksMovement(g.terrain.At(c))
	}
	for _, f := range footprints {
		cMinX := max(0, f.Origin.Col)
		cMinY := max(0, f.Origin.Row)
		cMaxX := min(g.cols-1, f.Origin.Col+f.W-1)
		cMaxY := min(g.rows-1, f.Origin.Row+f.H-1)
		for cy := cMinY; cy <= cMaxY; cy++ {
			for cx := cMinX; cx <= cMaxX; cx++ {
				g.blocked[cy*g.cols+cx] = true
			}
		}
	}
}

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < g.cols && c.Row < g.rows
}

// IsPassable returns true if the cell is walkable. Out-of-bounds is never passable.
func (g *Grid) IsPassable(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return !g.blocked[c.Row*g.cols+c.Col]
}

// Terrain returns the terrain class under a cell.
func (g *Grid) Terrain(c Cell) Terrain {
	return g.terrain.At(c)
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// CellSize returns the cell edge length in pixels.
func (g *Grid) CellSize() int {
	return g.cellSize
}

// Bounds returns the playable rectangle in world pixels.
func (g *Grid) Bounds() (w, h float64) {
	return float64(g.cols * g.cellSize), float64(g.rows * g.cellSize)
}

// WorldToCell converts world pixel coordinates to the containing cell.
// Points left of or above the grid map to negative cells.
func (g *Grid) WorldToCell(wx, wy float64) Cell {
	cs := float64(g.cellSize)
	return Cell{Col: int(math.Floor(wx / cs)), Row: int(math.Floor(wy / cs))}
}

// CellCenter converts a cell to the world pixel position of its centre.
func (g *Grid) CellCenter(c Cell) (float64, float64) {
	cs := float64(g.cellSize)
	return float64(c.Col)*cs + cs/2, float64(c.Row)*cs + cs/2
}

// CellOrigin converts a cell to the world pixel position of its top-left corner.
func (g *Grid) CellOrigin(c Cell) (float64, float64) {
	return float64(c.Col * g.cellSize), float64(c.Row * g.cellSize)
}

// ClampCell returns the in-bounds cell nearest to c.
func (g *Grid) ClampCell(c Cell) Cell {
	return Cell{
		Col: min(max(c.Col, 0), g.cols-1),
		Row: min(max(c.Row, 0), g.rows-1),
	}
}

// FootprintInBounds reports whether every cell of f lies inside the grid.
func (g *Grid) FootprintInBounds(f Footprint) bool {
	return f.W > 0 && f.H > 0 &&
		g.InBounds(f.Origin) &&
		g.InBounds(Cell{Col: f.Origin.Col + f.W - 1, Row: f.Origin.Row + f.H - 1})
}

// FootprintTouches reports whether any cell of f carries the terrain class.
func (g *Grid) FootprintTouches(f Footprint, t Terrain) bool {
	for r := f.Origin.Row; r < f.Origin.Row+f.H; r++ {
		for c := f.Origin.Col; c < f.Origin.Col+f.W; c++ {
			if g.terrain.At(Cell{Col: c, Row: r}) == t {
				return true
			}
		}
	}
	return false
}
