package sim

import (
	"fmt"
	"math"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/nav"
)

// --- Target acquisition ---

// validTarget returns the live entity behind id, or nil.
func (w *World) validTarget(id EntityID) *Entity {
	if id == 0 {
		return nil
	}
	t := w.byID[id]
	if t == nil || !t.Alive() {
		return nil
	}
	return t
}

// nearest returns the closest live entity of kind to (x, y) within radius
// (0 = unlimited). Ties go to the lower ID.
func (w *World) nearest(x, y float64, kind Kind, radius float64) *Entity {
	var best *Entity
	bestD := math.Inf(1)
	for _, o := range w.entities {
		if o.Kind != kind || !o.Alive() {
			continue
		}
		d := o.DistanceFrom(x, y, w.cfg.CellSize)
		if radius > 0 && d > radius {
			continue
		}
		if d < bestD {
			best, bestD = o, d
		}
	}
	return best
}

// findTarget applies the targeting rule of e's kind. Allies take the nearest
// hostile inside their acquisition radius. Hostiles take the nearest entity of
// their preferred class and fall back to the other class.
func (w *World) findTarget(e *Entity) *Entity {
	switch e.Kind {
	case KindAlly:
		return w.nearest(e.X, e.Y, KindHostile, e.Profile.Acquire)
	case KindHostile:
		first, second := KindStructure, KindAlly
		if e.Profile.Priority == catalog.PriorityUnit {
			first, second = KindAlly, KindStructure
		}
		if t := w.nearest(e.X, e.Y, first, 0); t != nil {
			return t
		}
		return w.nearest(e.X, e.Y, second, 0)
	}
	return nil
}

// selectTarget re-validates e's target slot and acquires a new target when
// the slot is empty.
func (w *World) selectTarget(e *Entity) {
	if !e.IsAgent() || !e.Alive() {
		return
	}
	if e.Target != 0 && w.validTarget(e.Target) == nil {
		e.clearTarget()
		w.setState(e, StateIdle)
	}
	if e.Dest != nil || e.Target != 0 || e.backoff > 0 {
		return
	}
	t := w.findTarget(e)
	if t == nil {
		if e.State != StateIdle {
			w.setState(e, StateIdle)
		}
		return
	}
	e.Target = t.ID
	e.Path = nil
	w.log.Add(w.tick, e.Label, e.side(), CatTarget, "acquire",
		fmt.Sprintf("%s → %s", e.Name, t.Name), float64(t.ID))
	w.setState(e, StateSeeking)
}

// --- Path planning ---

// inRange reports whether t is within e's attack range.
func (w *World) inRange(e, t *Entity) bool {
	return t.DistanceFrom(e.X, e.Y, w.cfg.CellSize) <= e.Profile.Range
}

// needsPlan applies the replanning policy: keep the current path unless it is
// exhausted, the target changed, or the target drifted past ReplanDistance
// from where it stood when the path was planned.
func (w *World) needsPlan(e, t *Entity) bool {
	if len(e.Path) == 0 || e.planTarget != t.ID {
		return true
	}
	tx, ty := t.Center(w.cfg.CellSize)
	return math.Hypot(tx-e.planX, ty-e.planY) > w.cfg.ReplanDistance
}

// goalCell picks the cell to plan toward. Agents are chased to the nearest
// passable cell at or around their own. Structures are approached via the
// passable cell bordering the footprint nearest to the chaser.
func (w *World) goalCell(e, t *Entity) (nav.Cell, bool) {
	if t.Kind == KindStructure {
		return w.borderCell(t.Footprint, e.X, e.Y)
	}
	c := w.grid.ClampCell(w.grid.WorldToCell(t.X, t.Y))
	if w.grid.IsPassable(c) {
		return c, true
	}
	return w.borderCell(nav.Footprint{Origin: c, W: 1, H: 1}, e.X, e.Y)
}

// borderCell returns the passable cell in the ring around f nearest to
// (x, y). Ties go to the first cell in row-major order.
func (w *World) borderCell(f nav.Footprint, x, y float64) (nav.Cell, bool) {
	var best nav.Cell
	found := false
	bestD := math.Inf(1)
	for r := f.Origin.Row - 1; r <= f.Origin.Row+f.H; r++ {
		for c := f.Origin.Col - 1; c <= f.Origin.Col+f.W; c++ {
			cell := nav.Cell{Col: c, Row: r}
			if f.Contains(cell) || !w.grid.IsPassable(cell) {
				continue
			}
			cx, cy := w.grid.CellCenter(cell)
			if d := math.Hypot(cx-x, cy-y); d < bestD {
				best, bestD, found = cell, d, true
			}
		}
	}
	return best, found
}

// plan computes a path for e toward t and stores it. A failure wraps
// ErrPathNotFound.
func (w *World) plan(e, t *Entity) error {
	goal, ok := w.goalCell(e, t)
	if !ok {
		return fmt.Errorf("%w: %s has no open approach", ErrPathNotFound, t.Name)
	}
	here := w.grid.WorldToCell(e.X, e.Y)
	start := w.grid.ClampCell(here)

	var opts []nav.Option
	if w.cfg.MaxExpansions > 0 {
		opts = append(opts, nav.WithMaxExpansions(w.cfg.MaxExpansions))
	}
	path, err := nav.FindPath(w.grid, start, goal, opts...)
	if err != nil {
		return fmt.Errorf("%w: %s to %s: %v", ErrPathNotFound, e.Name, t.Name, err)
	}
	// Inside the grid the agent already stands in the start cell. Off-grid
	// spawns walk to it first.
	if here == start && len(path) > 0 {
		path = path[1:]
	}
	e.Path = path
	e.planTarget = t.ID
	e.planX, e.planY = t.Center(w.cfg.CellSize)
	return nil
}

// planAgent drives the Seeking/Moving/Attacking transitions that depend on
// range and path state.
func (w *World) planAgent(e *Entity) {
	if !e.IsAgent() || !e.Alive() {
		return
	}
	if e.Dest != nil {
		w.setState(e, StateMoving)
		return
	}
	t := w.validTarget(e.Target)
	if t == nil {
		return
	}
	if w.inRange(e, t) {
		e.Path = nil
		w.setState(e, StateAttacking)
		return
	}
	if e.State == StateAttacking {
		w.log.Add(w.tick, e.Label, e.side(), CatTarget, "rechase",
			fmt.Sprintf("%s left range", t.Name), 0)
	}
	if w.needsPlan(e, t) {
		if err := w.plan(e, t); err != nil {
			w.noPath(e, t, err)
			return
		}
		w.log.AddVerbose(w.tick, e.Label, e.side(), CatPath, "planned",
			fmt.Sprintf("%d waypoints to %s", len(e.Path), t.Name), float64(len(e.Path)))
	}
	w.setState(e, StateMoving)
}

// noPath reverts e to Idle and holds off acquisition for NoPathBackoff.
func (w *World) noPath(e, t *Entity, err error) {
	w.log.Add(w.tick, e.Label, e.side(), CatPath, "no_path", err.Error(), 0)
	w.post(fmt.Sprintf("%s found no path to %s", e.Name, t.Name))
	e.clearTarget()
	e.backoff = w.cfg.NoPathBackoff
	w.setState(e, StateIdle)
}

// --- Movement ---

// stepToward advances e toward (tx, ty) by up to travel pixels and reports
// whether it arrived. Arrival snaps to the point.
func stepToward(e *Entity, tx, ty, travel float64) bool {
	dx, dy := tx-e.X, ty-e.Y
	dist := math.Hypot(dx, dy)
	if dist <= travel {
		e.X, e.Y = tx, ty
		return true
	}
	e.X += dx / dist * travel
	e.Y += dy / dist * travel
	return false
}

// moveAgent integrates one tick of movement for a Moving agent: along its
// explicit destination, its path, or, once the path is spent, straight at
// the target's nearest point.
func (w *World) moveAgent(e *Entity, dt float64) {
	if !e.IsAgent() || !e.Alive() || e.State != StateMoving {
		return
	}
	travel := e.Profile.Speed * dt
	if travel <= 0 {
		return
	}
	if e.Dest != nil {
		tx, ty := w.grid.CellCenter(*e.Dest)
		if stepToward(e, tx, ty, travel) {
			w.log.Add(w.tick, e.Label, e.side(), CatState, "arrived",
				fmt.Sprintf("(%d,%d)", e.Dest.Col, e.Dest.Row), 0)
			e.Dest = nil
			w.setState(e, StateIdle)
		}
		return
	}
	if len(e.Path) > 0 {
		tx, ty := w.grid.CellCenter(e.Path[0])
		if stepToward(e, tx, ty, travel) {
			e.Path = e.Path[1:]
		}
		w.log.AddVerbose(w.tick, e.Label, e.side(), CatState, "position",
			fmt.Sprintf("(%.1f,%.1f)", e.X, e.Y), 0)
		return
	}
	t := w.validTarget(e.Target)
	if t == nil {
		return
	}
	tx, ty := closestPoint(t, e.X, e.Y, w.cfg.CellSize)
	stepToward(e, tx, ty, math.Min(travel, math.Max(0, t.DistanceFrom(e.X, e.Y, w.cfg.CellSize)-e.Profile.Range)))
}

// closestPoint returns the point of t nearest to (x, y).
func closestPoint(t *Entity, x, y float64, cellSize int) (float64, float64) {
	if t.Kind != KindStructure {
		return t.X, t.Y
	}
	x0, y0, x1, y1 := t.Rect(cellSize)
	return math.Max(x0, math.Min(x, x1)), math.Max(y0, math.Min(y, y1))
}

// setState changes e's state and records the transition.
func (w *World) setState(e *Entity, s State) {
	if e.State == s {
		return
	}
	w.log.Add(w.tick, e.Label, e.side(), CatState, "change",
		fmt.Sprintf("%s → %s", e.State, s), 0)
	e.State = s
}
