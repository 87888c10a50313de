package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/sim"
)

func TestDetectStalemate_TrueWhenDefencesHoldAndKillsStall(t *testing.T) {
	rs := runStats{
		structuresStart: 6,
		structuresEnd:   6,
		alliesEnd:       3,
		hostilesEnd:     4,
		stats:           sim.Stats{Attacks: 80, Kills: 1},
	}

	isStalemate, reason := detectStalemate(rs)
	if !isStalemate {
		t.Fatalf("expected stalemate=true, got false (reason=%s)", reason)
	}
	if !strings.Contains(reason, "low_kill_rate") {
		t.Fatalf("expected reason to mention low_kill_rate, got: %s", reason)
	}
}

func TestDetectStalemate_FalseWhenHostilesCleared(t *testing.T) {
	rs := runStats{
		structuresStart: 6,
		structuresEnd:   6,
		alliesEnd:       3,
		hostilesEnd:     0,
		stats:           sim.Stats{Attacks: 80, Kills: 1},
	}
	if ok, reason := detectStalemate(rs); ok || reason != "hostiles_cleared" {
		t.Fatalf("expected hostiles_cleared, got %v (%s)", ok, reason)
	}
}

func TestDetectStalemate_FalseWhenOverrun(t *testing.T) {
	rs := runStats{structuresStart: 6, hostilesEnd: 5}
	if ok, reason := detectStalemate(rs); ok || reason != "defences_overrun" {
		t.Fatalf("expected defences_overrun, got %v (%s)", ok, reason)
	}
}

func TestDetectStalemate_FalseWhenAttritionDecisive(t *testing.T) {
	rs := runStats{
		structuresStart: 6,
		structuresEnd:   2,
		alliesEnd:       1,
		hostilesEnd:     1,
		stats:           sim.Stats{Attacks: 80, Kills: 12},
	}
	if ok, reason := detectStalemate(rs); ok {
		t.Fatalf("expected stalemate=false under decisive attrition (reason=%s)", reason)
	}
}

func TestRunScenario_CollectsCounters(t *testing.T) {
	rs, err := runScenario("river-fort", catalog.Default(), 1, 42, 30*65)
	if err != nil {
		t.Fatal(err)
	}
	if rs.wavesReleased != 2 {
		t.Fatalf("expected 2 waves in 65s, got %d", rs.wavesReleased)
	}
	if rs.stats.Spawned != 3 {
		t.Fatalf("expected 3 hostiles spawned, got %d", rs.stats.Spawned)
	}
	if rs.structuresStart == 0 || rs.alliesStart == 0 {
		t.Fatal("opening should be counted")
	}
}

func TestJoinCounts_Sorted(t *testing.T) {
	if got := joinCounts(map[string]int{"b": 2, "a": 1}); got != "a=1 b=2" {
		t.Fatalf("got %q", got)
	}
	if got := joinCounts(nil); got != "none" {
		t.Fatalf("got %q", got)
	}
}
