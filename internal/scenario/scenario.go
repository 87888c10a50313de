// Package scenario builds the stock maps and opening positions shared by the
// window, terminal and batch hosts.
package scenario

import (
	"fmt"
	"sort"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/nav"
	"github.com/Garsondee/holdfast/internal/sim"
)

// Map dimensions of the stock scenarios, in cells.
const (
	DemoCols = 48
	DemoRows = 36
)

// Scenario describes one playable setup.
type Scenario struct {
	Name        string
	Description string
	Terrain     func() *nav.TerrainMap
	Opening     func(w *sim.World) error
}

var registry = map[string]Scenario{
	"river-fort": {
		Name:        "river-fort",
		Description: "castle on the west bank of a river with two fords",
		Terrain:     RiverTerrain,
		Opening:     riverFortOpening,
	},
	"open-field": {
		Name:        "open-field",
		Description: "open ground, castle and barracks only",
		Terrain:     func() *nav.TerrainMap { return nav.NewTerrainMap(DemoCols, DemoRows) },
		Opening:     openFieldOpening,
	},
}

// Names lists the registered scenarios in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named scenario.
func Lookup(name string) (Scenario, bool) {
	s, ok := registry[name]
	return s, ok
}

// Build creates a World for the named scenario and applies its opening.
func Build(name string, cat *catalog.Catalog, cfg sim.Config) (*sim.World, error) {
	s, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
	w, err := sim.NewWorld(s.Terrain(), cat, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Opening(w); err != nil {
		return nil, fmt.Errorf("scenario %s opening: %w", name, err)
	}
	return w, nil
}

// RiverTerrain is a river two cells wide running north to south at column
// 32, crossable at two fords, with a pond in the north-west.
func RiverTerrain() *nav.TerrainMap {
	tm := nav.NewTerrainMap(DemoCols, DemoRows)
	tm.FillRect(32, 0, 2, DemoRows, nav.TerrainWater)
	tm.FillRect(32, 8, 2, 2, nav.TerrainOpen)
	tm.FillRect(32, 26, 2, 2, nav.TerrainOpen)
	tm.FillRect(4, 3, 5, 3, nav.TerrainWater)
	tm.FillRect(5, 6, 3, 1, nav.TerrainWater)
	return tm
}

type placement struct {
	typ      string
	col, row int
}

func place(w *sim.World, ps []placement) error {
	for _, p := range ps {
		if _, err := w.PlaceStructureFree(p.typ, nav.Cell{Col: p.col, Row: p.row}); err != nil {
			return err
		}
	}
	return nil
}

type garrison struct {
	typ  string
	x, y float64
}

func station(w *sim.World, gs []garrison) error {
	for _, g := range gs {
		if _, err := w.SpawnAlly(g.typ, g.x, g.y); err != nil {
			return err
		}
	}
	return nil
}

func riverFortOpening(w *sim.World) error {
	if err := place(w, []placement{
		{"Castle", 20, 16},
		{"Barracks", 24, 14},
		{"Stable", 24, 19},
		{"Farm", 16, 20},
		{"House", 17, 13},
		{"Market", 15, 16},
	}); err != nil {
		return err
	}
	return station(w, []garrison{
		{"Swordsman", 29*16 + 8, 8*16 + 8},
		{"Swordsman", 29*16 + 8, 27*16 + 8},
		{"Archer", 27*16 + 8, 17*16 + 8},
	})
}

func openFieldOpening(w *sim.World) error {
	if err := place(w, []placement{
		{"Castle", 23, 17},
		{"Barracks", 26, 17},
	}); err != nil {
		return err
	}
	return station(w, []garrison{
		{"Swordsman", 22*16 + 8, 20*16 + 8},
		{"Archer", 26*16 + 8, 20*16 + 8},
	})
}
