package sim

import (
	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/nav"
)

// TestWorld is a headless driver around a World used by tests and the batch
// runner. It supports deterministic seeding, direct entity placement and
// fixed-step ticking.
type TestWorld struct {
	World *World
	Log   *EventLog
	DT    float64 // seconds per tick

	cols, rows int
	layout     []string
	cfg        Config
	cat        *catalog.Catalog
	resources  catalog.Amounts
	verbose    bool
	queued     []Command
}

// worldOptionKind controls the pass in which an option is applied.
type worldOptionKind int

const (
	worldOptInfra  worldOptionKind = iota // map, catalog, config, seed; applied first
	worldOptEntity                        // structures and agents; applied once the world exists
)

// WorldOption is a builder function applied to a TestWorld during construction.
type WorldOption struct {
	kind worldOptionKind
	fn   func(*TestWorld) error
}

// WithMapSize sets an all-open map of cols×rows cells.
func WithMapSize(cols, rows int) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		tw.cols, tw.rows = cols, rows
		tw.layout = nil
		return nil
	}}
}

// WithTerrain uses an ASCII layout ('.' open, '~' water) as the map.
func WithTerrain(rows ...string) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		tw.layout = rows
		return nil
	}}
}

// WithSeed sets the spawn RNG seed for deterministic runs.
func WithSeed(seed int64) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		tw.cfg.Seed = seed
		return nil
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		tw.verbose = v
		return nil
	}}
}

// WithConfig edits the world config before construction.
func WithConfig(edit func(*Config)) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		edit(&tw.cfg)
		return nil
	}}
}

// WithCatalog replaces the default catalog.
func WithCatalog(cat *catalog.Catalog) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		tw.cat = cat
		return nil
	}}
}

// WithResources replaces the starting stockpile.
func WithResources(a catalog.Amounts) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		tw.resources = a
		return nil
	}}
}

// WithDT sets the fixed tick length in seconds.
func WithDT(dt float64) WorldOption {
	return WorldOption{worldOptInfra, func(tw *TestWorld) error {
		tw.DT = dt
		return nil
	}}
}

// WithStructure places a structure with its top-left at (col, row), free of
// cost, cooldown and collision checks.
func WithStructure(typ string, col, row int) WorldOption {
	return WorldOption{worldOptEntity, func(tw *TestWorld) error {
		_, err := tw.World.PlaceStructureFree(typ, nav.Cell{Col: col, Row: row})
		return err
	}}
}

// WithAlly adds an ally centred at (x, y).
func WithAlly(typ string, x, y float64) WorldOption {
	return WorldOption{worldOptEntity, func(tw *TestWorld) error {
		_, err := tw.World.SpawnAlly(typ, x, y)
		return err
	}}
}

// WithHostile adds a hostile centred at (x, y). Its target is resolved when
// the option is applied, so list it after the entities it should see.
func WithHostile(typ string, x, y float64) WorldOption {
	return WorldOption{worldOptEntity, func(tw *TestWorld) error {
		_, err := tw.World.SpawnHostile(typ, x, y)
		return err
	}}
}

// NewTestWorld constructs a TestWorld from the given options in ordered passes:
//  1. Infrastructure (map, catalog, config, seed, verbose)
//  2. Build the World
//  3. Entities, in option order
func NewTestWorld(opts ...WorldOption) (*TestWorld, error) {
	tw := &TestWorld{
		DT:   1.0 / 30,
		cols: 48,
		rows: 36,
		cfg:  DefaultConfig(),
	}
	for _, o := range opts {
		if o.kind == worldOptInfra {
			if err := o.fn(tw); err != nil {
				return nil, err
			}
		}
	}

	terrain := nav.NewTerrainMap(tw.cols, tw.rows)
	if tw.layout != nil {
		var err error
		if terrain, err = nav.ParseTerrain(tw.layout); err != nil {
			return nil, err
		}
	}
	w, err := NewWorld(terrain, tw.cat, tw.cfg)
	if err != nil {
		return nil, err
	}
	if tw.resources != nil {
		w.pool = NewPool(tw.resources)
	}
	tw.Log = NewEventLog(tw.verbose)
	w.SetLog(tw.Log)
	tw.World = w

	for _, o := range opts {
		if o.kind == worldOptEntity {
			if err := o.fn(tw); err != nil {
				return nil, err
			}
		}
	}
	w.rebuildGrid()
	return tw, nil
}

// Queue adds commands to be drained by the next tick.
func (tw *TestWorld) Queue(cmds ...Command) {
	tw.queued = append(tw.queued, cmds...)
}

// Step runs one tick with the queued commands plus cmds.
func (tw *TestWorld) Step(cmds ...Command) []Event {
	batch := append(tw.queued, cmds...)
	tw.queued = nil
	return tw.World.Tick(tw.DT, batch)
}

// RunTicks advances the simulation n ticks.
func (tw *TestWorld) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tw.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tw *TestWorld) RunUntil(predicate func(*TestWorld) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tw.Step()
		if predicate(tw) {
			return tw.World.TickCount()
		}
	}
	return -1
}

// ByKind returns the live entities of kind in creation order.
func (tw *TestWorld) ByKind(kind Kind) []*Entity {
	var out []*Entity
	for _, e := range tw.World.entities {
		if e.Kind == kind && e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// TotalHP sums the hit points of every live entity.
func (tw *TestWorld) TotalHP() float64 {
	total := 0.0
	for _, e := range tw.World.entities {
		if e.Alive() {
			total += e.HP
		}
	}
	return total
}
