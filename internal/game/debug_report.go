package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/holdfast/internal/sim"
)

// debugReport renders a plain-text report of the world and, when an entity
// is selected, its recent event timeline. lastTicks bounds the timeline.
func debugReport(w *sim.World, scenario string, selected sim.EntityID, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := w.TickCount()
	fromTick := max(toTick-lastTicks+1, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "--- holdfast debug report ---\n")
	fmt.Fprintf(&b, "scenario=%s seed=%d tick_range=[%d..%d]\n\n", scenario, w.Config().Seed, fromTick, toTick)
	b.WriteString(sim.Summary(w))

	e := w.Entity(selected)
	if e == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "\n== %s %s (%s) ==\n", e.Label, e.Name, e.Kind)
	fmt.Fprintf(&b, "pos=(%.1f,%.1f) hp=%.1f/%.1f state=%s\n", e.X, e.Y, e.HP, e.MaxHP, e.State)
	if t := w.Entity(e.Target); t != nil {
		fmt.Fprintf(&b, "target=%s %s hp=%.1f\n", t.Label, t.Name, t.HP)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, "path=%d cells next=(%d,%d)\n", len(e.Path), e.Path[0].Col, e.Path[0].Row)
	}

	var lines int
	for _, ev := range w.Log().FilterEntity(e.Label) {
		if ev.Tick < fromTick {
			continue
		}
		b.WriteString(ev.String())
		b.WriteByte('\n')
		lines++
	}
	if lines == 0 {
		b.WriteString("(no events in range)\n")
	}
	return b.String()
}
