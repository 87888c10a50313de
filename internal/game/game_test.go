package game

import (
	"math"
	"strings"
	"testing"

	"github.com/Garsondee/holdfast/internal/nav"
	"github.com/Garsondee/holdfast/internal/sim"
)

func testWorld(t *testing.T) *sim.TestWorld {
	t.Helper()
	tw, err := sim.NewTestWorld(
		sim.WithMapSize(20, 20),
		sim.WithStructure("Barracks", 5, 5),
		sim.WithAlly("Swordsman", 200, 200),
		sim.WithHostile("Goblin", 300, 40),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tw
}

func byKind(t *testing.T, snap sim.Snapshot, kind sim.Kind) sim.EntityView {
	t.Helper()
	for _, v := range append(snap.Structures, snap.Agents...) {
		if v.Kind == kind {
			return v
		}
	}
	t.Fatalf("no %s in snapshot", kind)
	return sim.EntityView{}
}

func TestResolveClick_PlacesArmedStructure(t *testing.T) {
	snap := testWorld(t).World.Snapshot()
	res := resolveClick(snap, "House", 0, 40, 72, false)
	cmd, ok := res.cmd.(sim.PlaceStructure)
	if !ok {
		t.Fatalf("expected PlaceStructure, got %#v", res.cmd)
	}
	if cmd.Type != "House" || cmd.Cell != (nav.Cell{Col: 2, Row: 4}) {
		t.Fatalf("unexpected command %+v", cmd)
	}
}

func TestResolveClick_SelectsAndMoves(t *testing.T) {
	snap := testWorld(t).World.Snapshot()
	ally := byKind(t, snap, sim.KindAlly)

	res := resolveClick(snap, "", 0, ally.X, ally.Y, false)
	if res.cmd != nil || res.selected != ally.ID {
		t.Fatalf("left click on the ally should select it, got %+v", res)
	}

	res = resolveClick(snap, "", ally.ID, 24, 24, true)
	mv, ok := res.cmd.(sim.MoveAgent)
	if !ok || mv.Agent != ally.ID || mv.Cell != (nav.Cell{Col: 1, Row: 1}) {
		t.Fatalf("right click should move the selected ally, got %#v", res.cmd)
	}
}

func TestResolveClick_IgnoresHostilesAndStructureMoves(t *testing.T) {
	snap := testWorld(t).World.Snapshot()
	hostile := byKind(t, snap, sim.KindHostile)
	barracks := byKind(t, snap, sim.KindStructure)

	if res := resolveClick(snap, "", 0, hostile.X, hostile.Y, false); res.selected != 0 {
		t.Fatal("hostiles are not selectable")
	}
	res := resolveClick(snap, "", barracks.ID, 24, 24, true)
	if res.cmd != nil {
		t.Fatalf("structures cannot be moved, got %#v", res.cmd)
	}
	if res.selected != barracks.ID {
		t.Fatal("right click should keep the selection")
	}
}

func TestNextSpeed(t *testing.T) {
	cases := []struct {
		cur  float64
		dir  int
		want float64
	}{
		{1, +1, 2},
		{1, -1, 0.5},
		{0, -1, 0},
		{4, +1, 4},
		{0, +1, 0.5},
	}
	for _, c := range cases {
		if got := nextSpeed(c.cur, c.dir); got != c.want {
			t.Fatalf("nextSpeed(%v,%d)=%v want %v", c.cur, c.dir, got, c.want)
		}
	}
}

func TestCamera_ToWorldAtFitZoom(t *testing.T) {
	c := newCamera(768, 576, 1.5)
	wx, wy := c.toWorld(0, 0)
	if math.Abs(wx) > 1e-9 || math.Abs(wy) > 1e-9 {
		t.Fatalf("viewport origin should map to world origin, got (%.2f,%.2f)", wx, wy)
	}
	wx, wy = c.toWorld(c.vpW, c.vpH)
	if math.Abs(wx-768) > 1e-9 || math.Abs(wy-576) > 1e-9 {
		t.Fatalf("viewport corner should map to world corner, got (%.2f,%.2f)", wx, wy)
	}
}

func TestCamera_ZoomClampsToMap(t *testing.T) {
	c := newCamera(768, 576, 1.5)
	c.zoomBy(0.1)
	if c.zoom != 1.5 {
		t.Fatalf("zoom below fit should clamp, got %.2f", c.zoom)
	}
	c.zoomBy(100)
	if c.zoom != zoomMax {
		t.Fatalf("zoom should cap at %.1f, got %.2f", zoomMax, c.zoom)
	}
	c.pan(-1e6, -1e6)
	wx, wy := c.toWorld(0, 0)
	if wx < -1e-9 || wy < -1e-9 {
		t.Fatalf("panning should stop at the map edge, top-left shows (%.1f,%.1f)", wx, wy)
	}
}

func TestThoughtLog_RingBuffer(t *testing.T) {
	tl := NewThoughtLog()
	for i := 0; i < logMaxEntries+5; i++ {
		tl.Add(i, "A1", "ally", "x")
	}
	got := tl.Recent()
	if len(got) != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != logMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", logMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestThoughtLog_AddEventsFilters(t *testing.T) {
	tl := NewThoughtLog()
	tl.AddEvents([]sim.Event{
		{Tick: 1, Entity: "--", Category: sim.CatCommand, Key: "applied", Value: "place"},
		{Tick: 1, Entity: "--", Category: sim.CatCommand, Key: "rejected", Value: "no gold"},
		{Tick: 2, Entity: "H3", Category: sim.CatCombat, Key: "attack"},
		{Tick: 3, Entity: "H3", Category: sim.CatDeath, Key: "hostile", Value: "Goblin"},
		{Tick: 4, Entity: "--", Category: sim.CatWave, Key: "hostile"},
		{Tick: 4, Entity: "--", Category: sim.CatWave, Key: "spawn", Value: "wave 1"},
	})
	got := tl.Recent()
	if len(got) != 3 {
		t.Fatalf("expected rejection, death and wave lines, got %+v", got)
	}
	if !strings.Contains(got[0].Message, "no gold") || got[1].Label != "H3" || got[2].Tick != 4 {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestDebugReport_IncludesSelectedTimeline(t *testing.T) {
	tw := testWorld(t)
	tw.RunTicks(30)
	ally := tw.ByKind(sim.KindAlly)[0]

	report := debugReport(tw.World, "test", ally.ID, 300)
	for _, want := range []string{"holdfast debug report", "Summary", ally.Label, "Swordsman"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}

	plain := debugReport(tw.World, "test", 0, 0)
	if strings.Contains(plain, "== ") {
		t.Fatalf("report without selection should have no timeline:\n%s", plain)
	}
}

func TestHUDLines_MarksArmedStructure(t *testing.T) {
	snap := testWorld(t).World.Snapshot()
	lines := hudLines(snap, []string{"Barracks", "House"}, "House", 0, "")
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[2]* House") || !strings.Contains(joined, "[1]  Barracks") {
		t.Fatalf("armed marker wrong:\n%s", joined)
	}
	if !strings.Contains(joined, "PAUSED") {
		t.Fatalf("paused speed should show:\n%s", joined)
	}
}
