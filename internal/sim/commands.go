package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Garsondee/holdfast/internal/nav"
)

var (
	// ErrPlacementRejected covers collisions, affordability, the build
	// cooldown and unique-type limits. State is left unchanged.
	ErrPlacementRejected = errors.New("placement rejected")
	// ErrInvalidCommand covers unknown types, unknown or dead entities and
	// out-of-bounds cells.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrPathNotFound is recorded when an agent cannot reach its target.
	ErrPathNotFound = fmt.Errorf("path not found: %w", nav.ErrNoPath)
)

// Command is an input intent applied at the start of a tick.
type Command interface {
	fmt.Stringer
	command()
}

// PlaceStructure asks for a structure of Type with its top-left at Cell.
type PlaceStructure struct {
	Type string
	Cell nav.Cell
}

// TrainAgent asks a structure to produce its trainable ally type.
type TrainAgent struct {
	Structure EntityID
}

// MoveAgent orders an ally straight to the centre of Cell.
type MoveAgent struct {
	Agent EntityID
	Cell  nav.Cell
}

func (PlaceStructure) command() {}
func (TrainAgent) command()     {}
func (MoveAgent) command()      {}

func (c PlaceStructure) String() string {
	return fmt.Sprintf("place %s at (%d,%d)", c.Type, c.Cell.Col, c.Cell.Row)
}

func (c TrainAgent) String() string {
	return fmt.Sprintf("train at #%d", c.Structure)
}

func (c MoveAgent) String() string {
	return fmt.Sprintf("move #%d to (%d,%d)", c.Agent, c.Cell.Col, c.Cell.Row)
}

// Apply validates and applies one command immediately. A rejected command
// posts its message, records a command event and returns an error wrapping
// ErrPlacementRejected or ErrInvalidCommand.
func (w *World) Apply(cmd Command) error {
	var err error
	switch c := cmd.(type) {
	case PlaceStructure:
		_, err = w.placeStructure(c)
	case TrainAgent:
		_, err = w.trainAgent(c)
	case MoveAgent:
		err = w.orderMove(c)
	case nil:
		err = fmt.Errorf("%w: nil command", ErrInvalidCommand)
	default:
		err = fmt.Errorf("%w: unsupported command %T", ErrInvalidCommand, cmd)
	}
	if err != nil {
		w.log.Add(w.tick, "--", "--", CatCommand, "rejected", err.Error(), 0)
		return err
	}
	w.log.Add(w.tick, "--", "--", CatCommand, "applied", cmd.String(), 0)
	return nil
}

// reject posts msg and returns it wrapped in kind.
func (w *World) reject(kind error, msg string) error {
	w.post(msg)
	return fmt.Errorf("%w: %s", kind, msg)
}

func (w *World) placeStructure(c PlaceStructure) (*Entity, error) {
	st, ok := w.cat.Structures[c.Type]
	if !ok {
		return nil, w.reject(ErrInvalidCommand, fmt.Sprintf("Unknown structure type %s", c.Type))
	}
	fp := nav.Footprint{Origin: c.Cell, W: st.Size, H: st.Size}
	if !w.grid.FootprintInBounds(fp) {
		return nil, w.reject(ErrInvalidCommand, fmt.Sprintf("Cannot build %s outside the map", st.Name))
	}
	if w.buildCooldown > 0 {
		return nil, w.reject(ErrPlacementRejected, "Wait before building again")
	}
	if st.Unique && w.countStructures(c.Type) > 0 {
		return nil, w.reject(ErrPlacementRejected, fmt.Sprintf("Only one %s can be built.", strings.ToLower(st.Name)))
	}
	if w.grid.FootprintTouches(fp, nav.TerrainWater) {
		return nil, w.reject(ErrPlacementRejected, fmt.Sprintf("Cannot build %s on water", st.Name))
	}
	for _, e := range w.entities {
		if !e.Alive() {
			continue
		}
		var blocked bool
		if e.Kind == KindStructure {
			blocked = e.Footprint.Overlaps(fp)
		} else {
			blocked = fp.Contains(w.grid.WorldToCell(e.X, e.Y))
		}
		if blocked {
			return nil, w.reject(ErrPlacementRejected, fmt.Sprintf("Cannot build %s there, the site is occupied", st.Name))
		}
	}
	if !w.pool.Spend(st.Cost) {
		return nil, w.reject(ErrPlacementRejected, fmt.Sprintf("Not enough resources to build %s", st.Name))
	}

	e := w.newStructure(c.Type, c.Cell)
	w.buildCooldown = w.cfg.BuildCooldown
	w.stats.Built++
	w.post(fmt.Sprintf("Built %s", st.Name))
	w.log.Add(w.tick, e.Label, e.side(), CatBuild, "place",
		fmt.Sprintf("%s at (%d,%d)", st.Name, c.Cell.Col, c.Cell.Row), 0)
	return e, nil
}

func (w *World) trainAgent(c TrainAgent) (*Entity, error) {
	s := w.byID[c.Structure]
	if s == nil || s.Kind != KindStructure || !s.Alive() {
		return nil, w.reject(ErrInvalidCommand, "No such structure")
	}
	trains := w.cat.Structures[s.Type].Trains
	if trains == "" {
		return nil, w.reject(ErrInvalidCommand, fmt.Sprintf("%s cannot train units", s.Name))
	}
	at := w.cat.Allies[trains]
	sx, sy := s.Center(w.cfg.CellSize)
	cell, ok := w.borderCell(s.Footprint, sx, sy+1)
	if !ok {
		return nil, w.reject(ErrPlacementRejected, fmt.Sprintf("No room to train %s", at.Name))
	}
	if !w.pool.Spend(at.Cost) {
		return nil, w.reject(ErrPlacementRejected, fmt.Sprintf("Not enough resources to train %s", at.Name))
	}

	x, y := w.grid.CellCenter(cell)
	e := w.newAlly(trains, x, y)
	w.stats.Trained++
	w.post(fmt.Sprintf("Trained %s", at.Name))
	w.log.Add(w.tick, e.Label, e.side(), CatTrain, "spawn",
		fmt.Sprintf("%s from %s", at.Name, s.Label), 0)
	return e, nil
}

func (w *World) orderMove(c MoveAgent) error {
	a := w.byID[c.Agent]
	if a == nil || a.Kind != KindAlly || !a.Alive() {
		return w.reject(ErrInvalidCommand, "No such unit")
	}
	if !w.grid.InBounds(c.Cell) {
		return w.reject(ErrInvalidCommand, "Destination is outside the map")
	}
	if !w.grid.IsPassable(c.Cell) {
		return w.reject(ErrInvalidCommand, "Destination is blocked")
	}
	a.clearTarget()
	a.backoff = 0
	dest := c.Cell
	a.Dest = &dest
	w.setState(a, StateMoving)
	w.post(fmt.Sprintf("Moving %s", a.Name))
	return nil
}
