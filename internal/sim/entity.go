package sim

import (
	"fmt"
	"math"

	"github.com/Garsondee/holdfast/internal/nav"
)

// EntityID is a non-owning handle into the World's entity arena. Zero means
// "none". IDs are never reused within a World.
type EntityID uint32

// Kind tags what an entity is.
type Kind int

const (
	KindStructure Kind = iota
	KindAlly
	KindHostile
)

func (k Kind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindAlly:
		return "ally"
	case KindHostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// State is the agent behaviour state. Structures stay Idle until they die.
type State int

const (
	StateIdle      State = iota // no target, no destination
	StateSeeking                // target acquired, path pending
	StateMoving                 // following a path or a direct destination
	StateAttacking              // target in range
	StateDead                   // terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeeking:
		return "seeking"
	case StateMoving:
		return "moving"
	case StateAttacking:
		return "attacking"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Profile is the capability table of an agent, copied from its catalog type.
type Profile struct {
	Speed    float64 // px/s
	Damage   float64
	Range    float64 // px
	Cooldown float64 // s between attacks
	Acquire  float64 // ally acquisition radius, px; 0 = unlimited
	Priority string  // hostile target preference
	Elite    bool
	Scale    float64
}

// Entity is the single record shared by structures and agents. Behaviour
// differences are branches on Kind, not separate types.
type Entity struct {
	ID    EntityID
	Kind  Kind
	Type  string // catalog key
	Name  string // display name
	Label string // short log label, e.g. "S3"

	// Structures: top-left pixel of the footprint. Agents: centre point.
	X, Y float64

	Footprint nav.Footprint // structures only

	HP    float64
	MaxHP float64
	State State

	Profile Profile

	Target   EntityID
	Path     []nav.Cell // remaining waypoints, next first
	Cooldown float64    // s until the next attack is allowed
	Dest     *nav.Cell  // explicit move order, bypasses pathfinding

	planTarget EntityID
	planX      float64 // target position the current path was planned for
	planY      float64
	backoff    float64 // s before target acquisition resumes
}

// Alive reports whether the entity still takes part in the simulation.
func (e *Entity) Alive() bool {
	return e.State != StateDead && e.HP > 0
}

// IsAgent reports whether the entity can move and fight.
func (e *Entity) IsAgent() bool {
	return e.Kind == KindAlly || e.Kind == KindHostile
}

// Center returns the entity's centre in world pixels.
func (e *Entity) Center(cellSize int) (float64, float64) {
	if e.Kind != KindStructure {
		return e.X, e.Y
	}
	cs := float64(cellSize)
	return e.X + float64(e.Footprint.W)*cs/2, e.Y + float64(e.Footprint.H)*cs/2
}

// Rect returns the footprint rectangle of a structure in world pixels.
func (e *Entity) Rect(cellSize int) (x0, y0, x1, y1 float64) {
	cs := float64(cellSize)
	return e.X, e.Y, e.X + float64(e.Footprint.W)*cs, e.Y + float64(e.Footprint.H)*cs
}

// DistanceFrom returns the distance from (px, py) to the entity: to the centre
// of an agent, or to the nearest point of a structure's footprint.
func (e *Entity) DistanceFrom(px, py float64, cellSize int) float64 {
	if e.Kind != KindStructure {
		return math.Hypot(e.X-px, e.Y-py)
	}
	x0, y0, x1, y1 := e.Rect(cellSize)
	nx := math.Max(x0, math.Min(px, x1))
	ny := math.Max(y0, math.Min(py, y1))
	return math.Hypot(nx-px, ny-py)
}

func (e *Entity) clearTarget() {
	e.Target = 0
	e.Path = nil
	e.planTarget = 0
}

func (e *Entity) side() string {
	return e.Kind.String()
}

func labelFor(kind Kind, id EntityID) string {
	switch kind {
	case KindStructure:
		return fmt.Sprintf("B%d", id)
	case KindAlly:
		return fmt.Sprintf("A%d", id)
	default:
		return fmt.Sprintf("H%d", id)
	}
}
