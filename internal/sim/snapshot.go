package sim

import (
	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/nav"
)

// EntityView is a read-only copy of one entity for renderers.
type EntityView struct {
	ID     EntityID
	Kind   Kind
	Type   string
	Name   string
	Label  string
	X, Y   float64 // structure: top-left px; agent: centre px
	W, H   float64 // bounds in px
	HP     float64
	MaxHP  float64
	State  State
	Target EntityID
	Path   []nav.Cell
	Dest   *nav.Cell
	Elite  bool
}

// Snapshot is an immutable copy of the world taken between ticks. Hosts draw
// from it and never touch the World directly.
type Snapshot struct {
	Tick       int
	Time       float64
	Cols, Rows int
	CellSize   int
	Water      []nav.Cell
	Structures []EntityView
	Agents     []EntityView
	Resources  catalog.Amounts
	Rates      catalog.Amounts // per second at the current multipliers
	Wave       int             // next wave number
	WaveIn     float64         // s until the next wave
	Messages   []Message
}

// Snapshot copies the renderable state.
func (w *World) Snapshot() Snapshot {
	cols, rows := w.grid.Size()
	cs := float64(w.cfg.CellSize)
	counts := w.StructureCounts()

	s := Snapshot{
		Tick:      w.tick,
		Time:      w.now,
		Cols:      cols,
		Rows:      rows,
		CellSize:  w.cfg.CellSize,
		Resources: w.pool.Amounts(),
		Rates:     make(catalog.Amounts, len(catalog.Resources)),
		Wave:      w.waves.Number,
		WaveIn:    w.waves.Remaining(),
		Messages:  w.msgs.Active(),
	}
	for _, r := range catalog.Resources {
		s.Rates[r] = w.economy.RatePerSecond(r, counts)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := nav.Cell{Col: c, Row: r}
			if w.grid.Terrain(cell) == nav.TerrainWater {
				s.Water = append(s.Water, cell)
			}
		}
	}
	for _, e := range w.entities {
		if !e.Alive() {
			continue
		}
		v := EntityView{
			ID:     e.ID,
			Kind:   e.Kind,
			Type:   e.Type,
			Name:   e.Name,
			Label:  e.Label,
			X:      e.X,
			Y:      e.Y,
			HP:     e.HP,
			MaxHP:  e.MaxHP,
			State:  e.State,
			Target: e.Target,
			Elite:  e.Profile.Elite,
		}
		if len(e.Path) > 0 {
			v.Path = append([]nav.Cell(nil), e.Path...)
		}
		if e.Dest != nil {
			d := *e.Dest
			v.Dest = &d
		}
		if e.Kind == KindStructure {
			v.W, v.H = float64(e.Footprint.W)*cs, float64(e.Footprint.H)*cs
			s.Structures = append(s.Structures, v)
			continue
		}
		size := cs * e.Profile.Scale
		v.W, v.H = size, size
		s.Agents = append(s.Agents, v)
	}
	return s
}

// Find returns the view with the given ID.
func (s Snapshot) Find(id EntityID) (EntityView, bool) {
	for _, v := range s.Structures {
		if v.ID == id {
			return v, true
		}
	}
	for _, v := range s.Agents {
		if v.ID == id {
			return v, true
		}
	}
	return EntityView{}, false
}

// At returns the topmost live entity covering the world point (x, y): an
// agent within half its size, else a structure whose footprint contains it.
func (s Snapshot) At(x, y float64) (EntityView, bool) {
	for i := len(s.Agents) - 1; i >= 0; i-- {
		a := s.Agents[i]
		if x >= a.X-a.W/2 && x <= a.X+a.W/2 && y >= a.Y-a.H/2 && y <= a.Y+a.H/2 {
			return a, true
		}
	}
	for _, b := range s.Structures {
		if x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H {
			return b, true
		}
	}
	return EntityView{}, false
}
