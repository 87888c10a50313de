package sim

import (
	"fmt"
	"math"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/nav"
)

// Death records one entity removal, in the order deaths happened.
type Death struct {
	Tick  int
	ID    EntityID
	Label string
	Kind  Kind
	Type  string
}

// World owns every piece of simulation state: the entity arena, the grid, the
// pool, the scheduler and the message board. It is driven by Tick from a
// single goroutine; hosts only hand it commands.
type World struct {
	cfg     Config
	cat     *catalog.Catalog
	terrain *nav.TerrainMap
	grid    *nav.Grid

	pool    *Pool
	economy *Economy
	waves   *WaveScheduler
	combat  CombatResolver
	msgs    *MessageBoard
	log     *EventLog

	entities []*Entity // creation order
	byID     map[EntityID]*Entity
	nextID   EntityID
	pending  []EntityID // died this tick, death order
	deaths   []Death

	tick          int
	now           float64 // s of simulated time
	buildCooldown float64
	stats         Stats
}

// NewWorld builds a World over terrain with the given catalog and config. The
// catalog must validate and the elite rule must compile.
func NewWorld(terrain *nav.TerrainMap, cat *catalog.Catalog, cfg Config) (*World, error) {
	if terrain == nil || terrain.Cols <= 0 || terrain.Rows <= 0 {
		return nil, fmt.Errorf("world needs a non-empty terrain map")
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	cfg = cfg.withDefaults()

	grid := nav.NewGrid(terrain, cfg.CellSize)
	width, height := grid.Bounds()
	waves, err := NewWaveScheduler(cfg, cat, width, height)
	if err != nil {
		return nil, err
	}
	return &World{
		cfg:     cfg,
		cat:     cat,
		terrain: terrain,
		grid:    grid,
		pool:    NewPool(cat.Economy.Starting),
		economy: NewEconomy(cat),
		waves:   waves,
		msgs:    NewMessageBoard(cfg.MessageDuration),
		log:     NewEventLog(false),
		byID:    make(map[EntityID]*Entity),
	}, nil
}

// Tick advances the simulation by dt seconds, applying cmds first, and
// returns the events recorded during the tick. Phase order is fixed:
// commands, grid rebuild, accrual, cooldowns, target selection, planning,
// movement, combat, death sweep, waves, message expiry.
func (w *World) Tick(dt float64, cmds []Command) []Event {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	mark := w.log.Len()
	w.tick++
	w.now += dt

	for _, c := range cmds {
		_ = w.Apply(c) // rejections are surfaced as messages and events
	}

	w.rebuildGrid()
	w.economy.Accrue(w.pool, w.StructureCounts(), dt)
	w.decrementTimers(dt)

	for _, e := range w.entities {
		w.selectTarget(e)
	}
	for _, e := range w.entities {
		w.planAgent(e)
	}
	for _, e := range w.entities {
		w.moveAgent(e, dt)
	}

	w.combat.Resolve(w)
	w.sweep()

	spawned := w.waves.Tick(dt, w.spawnHostile)
	if len(spawned) > 0 {
		w.log.Add(w.tick, "--", "--", CatWave, "spawn",
			fmt.Sprintf("wave %d: %d hostiles", w.waves.Number-1, len(spawned)), float64(len(spawned)))
		w.post(fmt.Sprintf("Wave %d is coming!", w.waves.Number-1))
		for _, h := range spawned {
			w.selectTarget(h)
		}
	}

	w.msgs.Expire(w.now)
	return w.log.Since(mark)
}

func (w *World) rebuildGrid() {
	var fps []nav.Footprint
	for _, e := range w.entities {
		if e.Kind == KindStructure && e.Alive() {
			fps = append(fps, e.Footprint)
		}
	}
	w.grid.Rebuild(fps)
}

func (w *World) decrementTimers(dt float64) {
	if w.buildCooldown > 0 {
		w.buildCooldown = math.Max(0, w.buildCooldown-dt)
	}
	for _, e := range w.entities {
		if !e.IsAgent() || !e.Alive() {
			continue
		}
		if e.Cooldown > 0 {
			e.Cooldown = math.Max(0, e.Cooldown-dt)
		}
		if e.backoff > 0 {
			e.backoff = math.Max(0, e.backoff-dt)
		}
	}
}

// post adds a message to the board and records it when it is new.
func (w *World) post(text string) {
	if w.msgs.Post(text, w.now) {
		w.log.Add(w.tick, "--", "--", CatMessage, "post", text, 0)
	}
}

// --- Entity arena ---

func (w *World) add(e *Entity) *Entity {
	w.nextID++
	e.ID = w.nextID
	e.Label = labelFor(e.Kind, e.ID)
	w.entities = append(w.entities, e)
	w.byID[e.ID] = e
	return e
}

func (w *World) newStructure(typ string, cell nav.Cell) *Entity {
	st := w.cat.Structures[typ]
	x, y := w.grid.CellOrigin(cell)
	return w.add(&Entity{
		Kind:      KindStructure,
		Type:      typ,
		Name:      st.Name,
		X:         x,
		Y:         y,
		Footprint: nav.Footprint{Origin: cell, W: st.Size, H: st.Size},
		HP:        st.HP,
		MaxHP:     st.HP,
	})
}

func (w *World) newAlly(typ string, x, y float64) *Entity {
	at := w.cat.Allies[typ]
	return w.add(&Entity{
		Kind:  KindAlly,
		Type:  typ,
		Name:  at.Name,
		X:     x,
		Y:     y,
		HP:    at.HP,
		MaxHP: at.HP,
		Profile: Profile{
			Speed:    at.Speed,
			Damage:   at.Damage,
			Range:    at.Range,
			Cooldown: at.Cooldown,
			Acquire:  at.Acquire,
			Scale:    1,
		},
	})
}

func (w *World) newHostile(typ string, x, y float64) *Entity {
	ht := w.cat.Hostiles[typ]
	scale := ht.Scale
	if scale <= 0 {
		scale = 1
	}
	return w.add(&Entity{
		Kind:  KindHostile,
		Type:  typ,
		Name:  ht.Name,
		X:     x,
		Y:     y,
		HP:    ht.HP,
		MaxHP: ht.HP,
		Profile: Profile{
			Speed:    ht.Speed,
			Damage:   ht.Damage,
			Range:    ht.Range,
			Cooldown: ht.Cooldown,
			Priority: ht.Priority,
			Elite:    ht.Elite,
			Scale:    scale,
		},
	})
}

// spawnHostile is the SpawnFunc handed to the wave scheduler.
func (w *World) spawnHostile(typ string, x, y float64) *Entity {
	if _, ok := w.cat.Hostiles[typ]; !ok {
		return nil
	}
	e := w.newHostile(typ, x, y)
	w.stats.Spawned++
	w.log.Add(w.tick, e.Label, e.side(), CatWave, "hostile",
		fmt.Sprintf("%s at (%.0f,%.0f)", e.Name, x, y), 0)
	return e
}

// PlaceStructureFree places a structure without cost, cooldown or collision
// checks. Scenario setup and tests use it; the footprint must still fit.
func (w *World) PlaceStructureFree(typ string, cell nav.Cell) (*Entity, error) {
	st, ok := w.cat.Structures[typ]
	if !ok {
		return nil, fmt.Errorf("%w: unknown structure type %s", ErrInvalidCommand, typ)
	}
	if !w.grid.FootprintInBounds(nav.Footprint{Origin: cell, W: st.Size, H: st.Size}) {
		return nil, fmt.Errorf("%w: %s at (%d,%d) is outside the map", ErrInvalidCommand, typ, cell.Col, cell.Row)
	}
	e := w.newStructure(typ, cell)
	w.rebuildGrid()
	return e, nil
}

// SpawnHostile places a hostile of typ centred at (x, y) outside the wave
// schedule. Scenario setup and tests use it.
func (w *World) SpawnHostile(typ string, x, y float64) (*Entity, error) {
	if _, ok := w.cat.Hostiles[typ]; !ok {
		return nil, fmt.Errorf("%w: unknown hostile type %s", ErrInvalidCommand, typ)
	}
	e := w.spawnHostile(typ, x, y)
	w.selectTarget(e)
	return e, nil
}

// SpawnAlly places an ally of typ centred at (x, y) without cost.
func (w *World) SpawnAlly(typ string, x, y float64) (*Entity, error) {
	if _, ok := w.cat.Allies[typ]; !ok {
		return nil, fmt.Errorf("%w: unknown ally type %s", ErrInvalidCommand, typ)
	}
	return w.newAlly(typ, x, y), nil
}

// --- Queries ---

// Entity returns the live entity with the given ID, or nil.
func (w *World) Entity(id EntityID) *Entity {
	return w.byID[id]
}

// Entities returns the arena in creation order. Callers must not modify it.
func (w *World) Entities() []*Entity {
	return w.entities
}

// CountKind returns the number of live entities of kind.
func (w *World) CountKind(kind Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.Kind == kind && e.Alive() {
			n++
		}
	}
	return n
}

func (w *World) countStructures(typ string) int {
	n := 0
	for _, e := range w.entities {
		if e.Kind == KindStructure && e.Type == typ && e.Alive() {
			n++
		}
	}
	return n
}

// StructureCounts returns live structures per type.
func (w *World) StructureCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range w.entities {
		if e.Kind == KindStructure && e.Alive() {
			counts[e.Type]++
		}
	}
	return counts
}

// Grid returns the navigability grid as of the last rebuild.
func (w *World) Grid() *nav.Grid { return w.grid }

// Pool returns the resource pool.
func (w *World) Pool() *Pool { return w.pool }

// Economy returns the accrual model.
func (w *World) Economy() *Economy { return w.economy }

// Waves returns the wave scheduler.
func (w *World) Waves() *WaveScheduler { return w.waves }

// Messages returns the message board.
func (w *World) Messages() *MessageBoard { return w.msgs }

// Log returns the event log.
func (w *World) Log() *EventLog { return w.log }

// SetLog swaps the event log, e.g. for a verbose one.
func (w *World) SetLog(el *EventLog) { w.log = el }

// Catalog returns the tables the world was built with.
func (w *World) Catalog() *catalog.Catalog { return w.cat }

// Config returns the effective configuration.
func (w *World) Config() Config { return w.cfg }

// TickCount returns the number of ticks run.
func (w *World) TickCount() int { return w.tick }

// Now returns the simulated time in seconds.
func (w *World) Now() float64 { return w.now }

// Deaths returns every removal so far, in death order.
func (w *World) Deaths() []Death { return w.deaths }

// Stats returns run counters.
func (w *World) Stats() Stats {
	s := w.stats
	s.Attacks = w.combat.Attacks
	s.Kills = w.combat.Kills
	return s
}
