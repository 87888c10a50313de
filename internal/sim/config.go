package sim

import "github.com/Garsondee/holdfast/internal/nav"

// --- Tuning defaults ---

const (
	defaultMessageDuration = 3.0  // s a message stays active
	defaultBuildCooldown   = 1.0  // s between successful placements
	defaultWaveInterval    = 30.0 // s between waves
	defaultSpawnRate       = 1    // hostiles per wave number
	defaultReplanCells     = 2.0  // target drift, in cells, that forces a replan
	defaultNoPathBackoff   = 1.0  // s an agent waits after a failed plan
	defaultEliteRule       = "Wave % 5 == 0"
)

// Config carries the tunables of a World. Zero fields fall back to the
// defaults when passed through withDefaults.
type Config struct {
	CellSize        int     // px per cell
	MessageDuration float64 // s
	BuildCooldown   float64 // s
	WaveInterval    float64 // s
	SpawnRate       int     // hostiles spawned per wave number
	EliteRule       string  // boolean expression over Wave; empty disables elites
	ReplanDistance  float64 // px of target drift before a path is replanned
	NoPathBackoff   float64 // s
	MaxExpansions   int     // A* cap per plan; 0 uses the grid default
	Seed            int64   // spawn RNG seed
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		CellSize:        nav.DefaultCellSize,
		MessageDuration: defaultMessageDuration,
		BuildCooldown:   defaultBuildCooldown,
		WaveInterval:    defaultWaveInterval,
		SpawnRate:       defaultSpawnRate,
		EliteRule:       defaultEliteRule,
		ReplanDistance:  defaultReplanCells * nav.DefaultCellSize,
		NoPathBackoff:   defaultNoPathBackoff,
		Seed:            1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CellSize <= 0 {
		c.CellSize = d.CellSize
	}
	if c.MessageDuration <= 0 {
		c.MessageDuration = d.MessageDuration
	}
	if c.BuildCooldown < 0 {
		c.BuildCooldown = 0
	}
	if c.WaveInterval <= 0 {
		c.WaveInterval = d.WaveInterval
	}
	if c.SpawnRate < 0 {
		c.SpawnRate = 0
	}
	if c.ReplanDistance <= 0 {
		c.ReplanDistance = defaultReplanCells * float64(c.CellSize)
	}
	if c.NoPathBackoff < 0 {
		c.NoPathBackoff = 0
	}
	return c
}
