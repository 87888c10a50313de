package sim

import (
	"fmt"
	"math/rand"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/pkg/logger"
)

// WaveEnv is the environment the elite rule is evaluated against.
type WaveEnv struct {
	Wave      int // number of the wave about to spawn
	SpawnRate int
}

// SpawnFunc creates a hostile of the given type centred at (x, y).
type SpawnFunc func(typ string, x, y float64) *Entity

// WaveScheduler releases hostiles on a fixed interval. Wave n spawns
// n·SpawnRate regular hostiles, unless the elite rule holds for n, in which
// case exactly one elite spawns instead.
type WaveScheduler struct {
	Number    int     // next wave to spawn, starts at 1
	Timer     float64 // s since the last spawn
	Interval  float64 // s
	SpawnRate int

	rule    *vm.Program
	ruleSrc string
	regular []string
	elite   []string

	width, height float64 // playable rect in px
	margin        float64 // how far outside the edge spawns land
	rng           *rand.Rand
}

// NewWaveScheduler compiles the elite rule and indexes the hostile tables.
func NewWaveScheduler(cfg Config, cat *catalog.Catalog, width, height float64) (*WaveScheduler, error) {
	ws := &WaveScheduler{
		Number:    1,
		Interval:  cfg.WaveInterval,
		SpawnRate: cfg.SpawnRate,
		ruleSrc:   cfg.EliteRule,
		regular:   cat.HostileNames(false),
		elite:     cat.HostileNames(true),
		width:     width,
		height:    height,
		margin:    float64(cfg.CellSize) / 2,
		rng:       rand.New(rand.NewSource(cfg.Seed)), // #nosec G404 -- gameplay randomness
	}
	if len(ws.regular) == 0 {
		return nil, fmt.Errorf("wave scheduler: no regular hostile types")
	}
	if cfg.EliteRule != "" {
		prog, err := expr.Compile(cfg.EliteRule, expr.Env(WaveEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile elite rule %q: %w", cfg.EliteRule, err)
		}
		ws.rule = prog
	}
	return ws, nil
}

// IsElite reports whether wave n is an elite wave. Without elite types or a
// rule every wave is regular.
func (ws *WaveScheduler) IsElite(n int) bool {
	if ws.rule == nil || len(ws.elite) == 0 {
		return false
	}
	result, err := vm.Run(ws.rule, WaveEnv{Wave: n, SpawnRate: ws.SpawnRate})
	if err != nil {
		logger.Component("waves").WithError(err).WithField("rule", ws.ruleSrc).Warn("elite rule failed")
		return false
	}
	match, ok := result.(bool)
	return ok && match
}

// Remaining returns the seconds until the next wave.
func (ws *WaveScheduler) Remaining() float64 {
	if r := ws.Interval - ws.Timer; r > 0 {
		return r
	}
	return 0
}

// Tick advances the timer by dt and, once it reaches the interval, spawns the
// current wave through spawn and returns the new hostiles.
func (ws *WaveScheduler) Tick(dt float64, spawn SpawnFunc) []*Entity {
	ws.Timer += dt
	if ws.Timer < ws.Interval {
		return nil
	}
	n := ws.Number
	var out []*Entity
	if ws.IsElite(n) {
		typ := ws.elite[ws.rng.Intn(len(ws.elite))]
		x, y := ws.SpawnPoint()
		if e := spawn(typ, x, y); e != nil {
			out = append(out, e)
		}
	} else {
		for i := 0; i < n*ws.SpawnRate; i++ {
			typ := ws.regular[ws.rng.Intn(len(ws.regular))]
			x, y := ws.SpawnPoint()
			if e := spawn(typ, x, y); e != nil {
				out = append(out, e)
			}
		}
	}
	ws.Timer = 0
	ws.Number++

	logger.Component("waves").WithFields(logrus.Fields{
		"wave":    n,
		"spawned": len(out),
		"elite":   ws.IsElite(n),
	}).Info("wave released")
	return out
}

// SpawnPoint picks a random point half a cell outside one of the four map
// edges, so it lies strictly outside the playable rectangle.
func (ws *WaveScheduler) SpawnPoint() (float64, float64) {
	along := func(length float64) float64 {
		if length <= 2*ws.margin {
			return length / 2
		}
		return ws.margin + ws.rng.Float64()*(length-2*ws.margin)
	}
	switch ws.rng.Intn(4) {
	case 0: // left
		return -ws.margin, along(ws.height)
	case 1: // right
		return ws.width + ws.margin, along(ws.height)
	case 2: // top
		return along(ws.width), -ws.margin
	default: // bottom
		return along(ws.width), ws.height + ws.margin
	}
}
