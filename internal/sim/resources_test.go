package sim

import (
	"math"
	"testing"

	"github.com/Garsondee/holdfast/internal/catalog"
)

func TestPool_SpendIsAtomic(t *testing.T) {
	p := NewPool(catalog.Amounts{catalog.Gold: 75, catalog.Wood: 49, catalog.Stone: 100})
	before := p.Amounts()

	if p.Spend(catalog.Amounts{catalog.Gold: 75, catalog.Wood: 50, catalog.Stone: 100}) {
		t.Fatal("spend should fail when wood is short")
	}
	after := p.Amounts()
	for _, r := range catalog.Resources {
		if before[r] != after[r] {
			t.Fatalf("%s changed from %.1f to %.1f on a failed spend", r, before[r], after[r])
		}
	}

	if !p.Spend(catalog.Amounts{catalog.Gold: 70, catalog.Wood: 49}) {
		t.Fatal("covered spend should succeed")
	}
	if p.Get(catalog.Gold) != 5 || p.Get(catalog.Wood) != 0 || p.Get(catalog.Stone) != 100 {
		t.Fatalf("unexpected pool after spend: %v", p.Amounts())
	}
}

func TestPool_NeverNegative(t *testing.T) {
	p := NewPool(catalog.Amounts{catalog.Food: 3, catalog.People: -2})
	if p.Get(catalog.People) != 0 {
		t.Fatalf("negative start should clamp to 0, got %.1f", p.Get(catalog.People))
	}
	p.Add(catalog.Food, -10)
	if p.Get(catalog.Food) != 0 {
		t.Fatalf("expected food clamped to 0, got %.1f", p.Get(catalog.Food))
	}
}

func TestEconomy_Multiplier(t *testing.T) {
	e := NewEconomy(catalog.Default())
	counts := map[string]int{"Market": 2, "Castle": 1, "Barracks": 3}
	if got := e.Multiplier(catalog.Gold, counts); math.Abs(got-1.4) > 1e-9 {
		t.Fatalf("gold multiplier %.4f, want 1.4", got)
	}
	if got := e.Multiplier(catalog.Wood, counts); math.Abs(got-1.1) > 1e-9 {
		t.Fatalf("wood multiplier %.4f, want 1.1", got)
	}
	if got := e.Multiplier(catalog.Food, nil); got != 1 {
		t.Fatalf("no structures should give multiplier 1, got %.4f", got)
	}
}

func TestEconomy_AccrualLinearInDT(t *testing.T) {
	e := NewEconomy(catalog.Default())
	counts := map[string]int{"Farm": 2, "Quarry": 1, "House": 4}

	for _, dt := range []float64{0.01, 1.0 / 30, 0.5, 3} {
		one := NewPool(nil)
		two := NewPool(nil)
		e.Accrue(one, counts, dt)
		e.Accrue(two, counts, 2*dt)
		for _, r := range catalog.Resources {
			if math.Abs(two.Get(r)-2*one.Get(r)) > 1e-9 {
				t.Fatalf("dt=%.3f %s: 2·dt accrued %.6f, want %.6f", dt, r, two.Get(r), 2*one.Get(r))
			}
		}
	}

	p := NewPool(nil)
	e.Accrue(p, counts, 1)
	// food: 1/s · (1 + 2·0.2)
	if math.Abs(p.Get(catalog.Food)-1.4) > 1e-9 {
		t.Fatalf("food after 1s %.4f, want 1.4", p.Get(catalog.Food))
	}
}

func TestEconomy_NonPositiveDTAccruesNothing(t *testing.T) {
	e := NewEconomy(catalog.Default())
	p := NewPool(nil)
	e.Accrue(p, nil, 0)
	e.Accrue(p, nil, -1)
	for _, r := range catalog.Resources {
		if p.Get(r) != 0 {
			t.Fatalf("%s accrued %.3f with dt ≤ 0", r, p.Get(r))
		}
	}
}
