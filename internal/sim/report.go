package sim

import (
	"fmt"
	"strings"

	"github.com/Garsondee/holdfast/internal/catalog"
)

// Stats counts what happened over a run.
type Stats struct {
	Built   int
	Trained int
	Spawned int
	Attacks int
	Kills   int
}

// Outcome classifies the state of a defence.
type Outcome int

const (
	OutcomeInconclusive Outcome = iota // nothing was ever built
	OutcomeHolding                     // defenders stand, hostiles remain
	OutcomeCleared                     // defenders stand, no hostiles alive
	OutcomeOverrun                     // no structure or ally left
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHolding:
		return "holding"
	case OutcomeCleared:
		return "cleared"
	case OutcomeOverrun:
		return "overrun"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// OutcomeReason is an Outcome with the counts behind it.
type OutcomeReason struct {
	Outcome     Outcome
	Structures  int
	Allies      int
	Hostiles    int
	Description string
}

// DetermineOutcome inspects the live collections.
func DetermineOutcome(w *World) OutcomeReason {
	r := OutcomeReason{
		Structures: w.CountKind(KindStructure),
		Allies:     w.CountKind(KindAlly),
		Hostiles:   w.CountKind(KindHostile),
	}
	switch {
	case w.stats.Built == 0 && r.Structures == 0:
		r.Outcome = OutcomeInconclusive
		r.Description = "no structures were placed"
	case r.Structures == 0 && r.Allies == 0:
		r.Outcome = OutcomeOverrun
		r.Description = fmt.Sprintf("all defences lost to %d hostiles", r.Hostiles)
	case r.Hostiles == 0:
		r.Outcome = OutcomeCleared
		r.Description = fmt.Sprintf("%d structures and %d allies stand, no hostiles alive", r.Structures, r.Allies)
	default:
		r.Outcome = OutcomeHolding
		r.Description = fmt.Sprintf("%d structures and %d allies hold against %d hostiles", r.Structures, r.Allies, r.Hostiles)
	}
	return r
}

// Summary returns a short human-readable summary of the world state.
func Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%.1fs) ---\n", w.tick, w.now)

	counts := w.StructureCounts()
	fmt.Fprintf(&sb, "Structures: ")
	for _, name := range w.cat.StructureNames() {
		if n := counts[name]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", name, n)
		}
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Alive: allies=%d  hostiles=%d\n", w.CountKind(KindAlly), w.CountKind(KindHostile))

	fmt.Fprintf(&sb, "Resources: ")
	for _, r := range catalog.Resources {
		fmt.Fprintf(&sb, "%s=%.1f  ", r, w.pool.Get(r))
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Wave: next=%d in %.1fs\n", w.waves.Number, w.waves.Remaining())

	st := w.Stats()
	fmt.Fprintf(&sb, "Stats: built=%d trained=%d spawned=%d attacks=%d kills=%d\n",
		st.Built, st.Trained, st.Spawned, st.Attacks, st.Kills)

	fmt.Fprintf(&sb, "Outcome: %s\n", DetermineOutcome(w).Outcome)
	return sb.String()
}
