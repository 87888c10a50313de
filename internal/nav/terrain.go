package nav

import "fmt"

// Terrain identifies the base surface class of a cell.
type Terrain uint8

const (
	TerrainOpen  Terrain = iota // default walkable ground
	TerrainWater                // river / lake, never passable
	terrainCount                // sentinel
)

func (t Terrain) String() string {
	switch t {
	case TerrainOpen:
		return "open"
	case TerrainWater:
		return "water"
	default:
		return "unknown"
	}
}

// terrainBlocksMovement returns true if the terrain class is impassable on its own.
func terrainBlocksMovement(t Terrain) bool {
	return t == TerrainWater
}

// Layout runes understood by ParseTerrain.
const (
	runeOpen  = '.'
	runeWater = '~'
)

// TerrainMap is the static terrain layer of a map, one class per cell.
// Row-major: index = row*Cols + col.
type TerrainMap struct {
	Cols  int
	Rows  int
	cells []Terrain
}

// NewTerrainMap creates a cols×rows map of open ground.
func NewTerrainMap(cols, rows int) *TerrainMap {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &TerrainMap{
		Cols:  cols,
		Rows:  rows,
		cells: make([]Terrain, cols*rows),
	}
}

// ParseTerrain builds a TerrainMap from an ASCII layout where '.' is open
// ground and '~' is water. All rows must have the same width.
func ParseTerrain(rows []string) (*TerrainMap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("terrain layout is empty")
	}
	cols := len(rows[0])
	tm := NewTerrainMap(cols, len(rows))
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("terrain row %d has width %d, want %d", r, len(line), cols)
		}
		for c, ch := range line {
			switch ch {
			case runeOpen:
				tm.Set(Cell{Col: c, Row: r}, TerrainOpen)
			case runeWater:
				tm.Set(Cell{Col: c, Row: r}, TerrainWater)
			default:
				return nil, fmt.Errorf("terrain row %d col %d: unknown rune %q", r, c, ch)
			}
		}
	}
	return tm, nil
}

func (tm *TerrainMap) inBounds(c Cell) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < tm.Cols && c.Row < tm.Rows
}

// At returns the terrain class of a cell. Out-of-bounds cells read as water.
func (tm *TerrainMap) At(c Cell) Terrain {
	if !tm.inBounds(c) {
		return TerrainWater
	}
	return tm.cells[c.Row*tm.Cols+c.Col]
}

// Set changes the terrain class of a cell. Out-of-bounds writes are ignored.
func (tm *TerrainMap) Set(c Cell, t Terrain) {
	if !tm.inBounds(c) || t >= terrainCount {
		return
	}
	tm.cells[c.Row*tm.Cols+c.Col] = t
}

// FillRect sets every cell of the rectangle [col, col+w) × [row, row+h).
func (tm *TerrainMap) FillRect(col, row, w, h int, t Terrain) {
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			tm.Set(Cell{Col: c, Row: r}, t)
		}
	}
}

// Count returns how many cells carry the given terrain class.
func (tm *TerrainMap) Count(t Terrain) int {
	n := 0
	for _, v := range tm.cells {
		if v == t {
			n++
		}
	}
	return n
}
