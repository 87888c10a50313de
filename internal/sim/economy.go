package sim

import "github.com/Garsondee/holdfast/internal/catalog"

// Economy turns elapsed time into resources. Rates are per second; each
// standing structure adds its type's boost to the multiplier of the boosted
// resource.
type Economy struct {
	rates  catalog.Amounts
	boosts map[string]catalog.Amounts // structure type → boosts
	order  []string                   // boosting types, sorted, for a stable sum
}

// NewEconomy reads rates and per-type boosts from the catalog.
func NewEconomy(cat *catalog.Catalog) *Economy {
	e := &Economy{
		rates:  catalog.Amounts{},
		boosts: make(map[string]catalog.Amounts, len(cat.Structures)),
	}
	for r, v := range cat.Economy.Rates {
		e.rates[r] = v
	}
	for _, name := range cat.StructureNames() {
		if st := cat.Structures[name]; len(st.Boosts) > 0 {
			e.boosts[name] = st.Boosts
			e.order = append(e.order, name)
		}
	}
	return e
}

// Multiplier returns 1 + Σ count(type)·boost(type, r).
func (e *Economy) Multiplier(r catalog.Resource, counts map[string]int) float64 {
	m := 1.0
	for _, name := range e.order {
		if n := counts[name]; n > 0 {
			m += float64(n) * e.boosts[name][r]
		}
	}
	return m
}

// Accrue credits base·multiplier·dt of every resource to the pool.
func (e *Economy) Accrue(p *Pool, counts map[string]int, dt float64) {
	if dt <= 0 {
		return
	}
	for _, r := range catalog.Resources {
		base := e.rates[r]
		if base == 0 {
			continue
		}
		p.Add(r, base*e.Multiplier(r, counts)*dt)
	}
}

// RatePerSecond reports the current accrual rate of r, for HUD display.
func (e *Economy) RatePerSecond(r catalog.Resource, counts map[string]int) float64 {
	return e.rates[r] * e.Multiplier(r, counts)
}
