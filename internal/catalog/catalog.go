// Package catalog holds the static data tables for structure, ally and
// hostile types together with the economy rates. Tables are plain values:
// the simulation copies what it needs and never mutates a Catalog.
package catalog

import (
	"fmt"
	"sort"
)

// Resource names one stockpile in the economy.
type Resource string

const (
	Gold   Resource = "gold"
	Wood   Resource = "wood"
	Stone  Resource = "stone"
	Food   Resource = "food"
	People Resource = "people"
)

// Resources lists every resource in display order.
var Resources = []Resource{Gold, Wood, Stone, Food, People}

func (r Resource) valid() bool {
	for _, x := range Resources {
		if r == x {
			return true
		}
	}
	return false
}

// Amounts maps resources to quantities. Missing keys read as zero.
type Amounts map[Resource]float64

// Target priorities for hostile types.
const (
	PriorityBuilding = "building"
	PriorityUnit     = "unit"
)

// StructureType describes a placeable building.
type StructureType struct {
	Name   string  `json:"name"`
	HP     float64 `json:"hp"`
	Size   int     `json:"size"` // footprint edge in cells
	Cost   Amounts `json:"cost"`
	Trains string  `json:"trains,omitempty"` // ally type produced, if any
	Unique bool    `json:"unique,omitempty"` // at most one may stand at a time
	Boosts Amounts `json:"boosts,omitempty"` // per-instance accrual multiplier bonus
}

// AllyType describes a trainable friendly agent.
type AllyType struct {
	Name     string  `json:"name"`
	Speed    float64 `json:"speed"`    // px/s
	HP       float64 `json:"hp"`
	Damage   float64 `json:"damage"`
	Range    float64 `json:"range"`    // px
	Cooldown float64 `json:"cooldown"` // s
	Acquire  float64 `json:"acquire"`  // target acquisition radius, px
	Cost     Amounts `json:"cost"`
}

// HostileType describes an enemy spawned by the wave scheduler.
type HostileType struct {
	Name     string  `json:"name"`
	Speed    float64 `json:"speed"`
	HP       float64 `json:"hp"`
	Damage   float64 `json:"damage"`
	Range    float64 `json:"range"`
	Cooldown float64 `json:"cooldown"`
	Priority string  `json:"priority"` // PriorityBuilding or PriorityUnit
	Elite    bool    `json:"elite,omitempty"`
	Scale    float64 `json:"scale,omitempty"` // draw size multiplier, 0 means 1
}

// Economy holds base accrual rates per second and the starting stockpile.
type Economy struct {
	Rates    Amounts `json:"rates"`
	Starting Amounts `json:"starting"`
}

// Catalog bundles every table the simulation reads.
type Catalog struct {
	Structures map[string]StructureType `json:"structures"`
	Allies     map[string]AllyType      `json:"allies"`
	Hostiles   map[string]HostileType   `json:"hostiles"`
	Economy    Economy                  `json:"economy"`
}

// StructureNames returns structure type keys in sorted order.
func (c *Catalog) StructureNames() []string { return sortedKeys(c.Structures) }

// AllyNames returns ally type keys in sorted order.
func (c *Catalog) AllyNames() []string { return sortedKeys(c.Allies) }

// HostileNames returns hostile type keys in sorted order, optionally
// restricted to elite or non-elite types.
func (c *Catalog) HostileNames(elite bool) []string {
	var out []string
	for _, k := range sortedKeys(c.Hostiles) {
		if c.Hostiles[k].Elite == elite {
			out = append(out, k)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks internal consistency: positive stats, known resources,
// trainable types that exist, valid hostile priorities.
func (c *Catalog) Validate() error {
	if len(c.Structures) == 0 {
		return fmt.Errorf("catalog has no structure types")
	}
	if len(c.HostileNames(false)) == 0 {
		return fmt.Errorf("catalog has no regular hostile types")
	}
	for _, k := range c.StructureNames() {
		s := c.Structures[k]
		if s.HP <= 0 || s.Size <= 0 {
			return fmt.Errorf("structure %q: hp and size must be positive", k)
		}
		if err := checkAmounts(s.Cost); err != nil {
			return fmt.Errorf("structure %q cost: %w", k, err)
		}
		if err := checkAmounts(s.Boosts); err != nil {
			return fmt.Errorf("structure %q boosts: %w", k, err)
		}
		if s.Trains != "" {
			if _, ok := c.Allies[s.Trains]; !ok {
				return fmt.Errorf("structure %q trains unknown ally %q", k, s.Trains)
			}
		}
	}
	for _, k := range c.AllyNames() {
		a := c.Allies[k]
		if a.HP <= 0 || a.Speed <= 0 || a.Range <= 0 || a.Cooldown <= 0 {
			return fmt.Errorf("ally %q: hp, speed, range and cooldown must be positive", k)
		}
		if err := checkAmounts(a.Cost); err != nil {
			return fmt.Errorf("ally %q cost: %w", k, err)
		}
	}
	for _, k := range sortedKeys(c.Hostiles) {
		h := c.Hostiles[k]
		if h.HP <= 0 || h.Speed <= 0 || h.Range <= 0 || h.Cooldown <= 0 {
			return fmt.Errorf("hostile %q: hp, speed, range and cooldown must be positive", k)
		}
		if h.Priority != PriorityBuilding && h.Priority != PriorityUnit {
			return fmt.Errorf("hostile %q: unknown priority %q", k, h.Priority)
		}
	}
	if err := checkAmounts(c.Economy.Rates); err != nil {
		return fmt.Errorf("economy rates: %w", err)
	}
	if err := checkAmounts(c.Economy.Starting); err != nil {
		return fmt.Errorf("economy starting: %w", err)
	}
	return nil
}

func checkAmounts(a Amounts) error {
	for r, v := range a {
		if !r.valid() {
			return fmt.Errorf("unknown resource %q", r)
		}
		if v < 0 {
			return fmt.Errorf("%s is negative", r)
		}
	}
	return nil
}
