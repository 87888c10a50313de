package sim

import "github.com/Garsondee/holdfast/internal/catalog"

// Pool is the shared stockpile. Amounts never go negative and Spend is
// all-or-nothing.
type Pool struct {
	amounts catalog.Amounts
}

// NewPool creates a pool holding a copy of start.
func NewPool(start catalog.Amounts) *Pool {
	p := &Pool{amounts: catalog.Amounts{}}
	for r, v := range start {
		p.Add(r, v)
	}
	return p
}

// Get returns the amount held of r.
func (p *Pool) Get(r catalog.Resource) float64 {
	return p.amounts[r]
}

// Add credits v of r. Negative deltas are clamped so the amount stays ≥ 0.
func (p *Pool) Add(r catalog.Resource, v float64) {
	n := p.amounts[r] + v
	if n < 0 {
		n = 0
	}
	p.amounts[r] = n
}

// CanAfford reports whether every entry of cost is covered.
func (p *Pool) CanAfford(cost catalog.Amounts) bool {
	for r, v := range cost {
		if p.amounts[r] < v {
			return false
		}
	}
	return true
}

// Spend deducts cost when the pool covers all of it and reports whether it
// did. On failure nothing is deducted.
func (p *Pool) Spend(cost catalog.Amounts) bool {
	if !p.CanAfford(cost) {
		return false
	}
	for r, v := range cost {
		p.amounts[r] -= v
	}
	return true
}

// Amounts returns a copy of the current stockpile.
func (p *Pool) Amounts() catalog.Amounts {
	out := make(catalog.Amounts, len(catalog.Resources))
	for _, r := range catalog.Resources {
		out[r] = p.amounts[r]
	}
	return out
}
