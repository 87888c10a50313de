package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/scenario"
	"github.com/Garsondee/holdfast/internal/sim"
	"github.com/Garsondee/holdfast/pkg/logger"
)

// tickDT matches the test harness step.
const tickDT = 1.0 / 30

type runStats struct {
	runIndex int
	seed     int64

	firstAttackTick  int
	firstDeathTick   int
	firstNoPathTick  int
	firstEliteTick   int
	wavesReleased    int
	noPathEvents     int
	rechaseEvents    int
	rejectedCommands int

	stats sim.Stats

	structuresStart int
	structuresEnd   int
	alliesStart     int
	alliesEnd       int
	hostilesEnd     int

	losses  map[string]int // type name -> deaths
	outcome sim.OutcomeReason
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenarioName string
	var catalogPath string
	var copyOut bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 5400, "ticks per run (30 per simulated second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenarioName, "scenario", "river-fort", "scenario name ("+strings.Join(scenario.Names(), ", ")+")")
	flag.StringVar(&catalogPath, "catalog", "", "JSON catalog overriding the built-in tables")
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.Parse()

	logger.InitTo(os.Stderr)

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if _, ok := scenario.Lookup(scenarioName); !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenarioName, strings.Join(scenario.Names(), ", "))
		return
	}
	cat := catalog.Default()
	if catalogPath != "" {
		var err error
		if cat, err = catalog.Load(catalogPath); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	var b strings.Builder
	out := io.MultiWriter(os.Stdout, &b)

	fmt.Fprintf(out, "=== Headless Siege Report ===\n")
	fmt.Fprintf(out, "scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenarioName, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runScenario(scenarioName, cat, i+1, seed, ticks)
		if err != nil {
			fmt.Fprintf(out, "error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, rs)
		printRun(out, rs)
	}
	printAggregate(out, all)

	if copyOut {
		if err := clipboard.WriteAll(b.String()); err != nil {
			fmt.Fprintf(os.Stderr, "copy failed: %v\n", err)
		}
	}
}

func runScenario(name string, cat *catalog.Catalog, runIndex int, seed int64, ticks int) (runStats, error) {
	cfg := sim.DefaultConfig()
	cfg.Seed = seed
	w, err := scenario.Build(name, cat, cfg)
	if err != nil {
		return runStats{}, err
	}
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		structuresStart: w.CountKind(sim.KindStructure),
		alliesStart:     w.CountKind(sim.KindAlly),
	}
	for i := 0; i < ticks; i++ {
		w.Tick(tickDT, nil)
	}
	return collect(w, rs), nil
}

// collect fills the end-of-run fields from the world and its event log.
func collect(w *sim.World, rs runStats) runStats {
	el := w.Log()
	entries := el.Entries()
	rs.firstAttackTick = firstTick(entries, sim.CatCombat, "attack", "")
	rs.firstDeathTick = -1
	if d := w.Deaths(); len(d) > 0 {
		rs.firstDeathTick = d[0].Tick
	}
	rs.firstNoPathTick = firstTick(entries, sim.CatPath, "no_path", "")
	rs.firstEliteTick = -1
	for _, e := range entries {
		if e.Category != sim.CatWave || e.Key != "hostile" {
			continue
		}
		for _, h := range w.Catalog().HostileNames(true) {
			if strings.HasPrefix(e.Value, w.Catalog().Hostiles[h].Name+" ") {
				rs.firstEliteTick = e.Tick
				break
			}
		}
		if rs.firstEliteTick >= 0 {
			break
		}
	}
	rs.wavesReleased = el.CountCategory(sim.CatWave, "spawn")
	rs.noPathEvents = el.CountCategory(sim.CatPath, "no_path")
	rs.rechaseEvents = el.CountCategory(sim.CatTarget, "rechase")
	rs.rejectedCommands = el.CountCategory(sim.CatCommand, "rejected")
	rs.stats = w.Stats()
	rs.structuresEnd = w.CountKind(sim.KindStructure)
	rs.alliesEnd = w.CountKind(sim.KindAlly)
	rs.hostilesEnd = w.CountKind(sim.KindHostile)
	rs.losses = map[string]int{}
	for _, d := range w.Deaths() {
		if d.Kind != sim.KindHostile {
			rs.losses[d.Type]++
		}
	}
	rs.outcome = sim.DetermineOutcome(w)
	return rs
}

func firstTick(entries []sim.Event, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStalemate flags runs where both sides are still standing and the
// fighting has stopped converting attacks into kills.
func detectStalemate(rs runStats) (bool, string) {
	if rs.hostilesEnd == 0 {
		return false, "hostiles_cleared"
	}
	if rs.structuresEnd == 0 && rs.alliesEnd == 0 {
		return false, "defences_overrun"
	}
	var reasons []string
	if rs.structuresStart > 0 && float64(rs.structuresEnd)/float64(rs.structuresStart) >= 0.75 {
		reasons = append(reasons, "defences_mostly_intact")
	}
	if rs.hostilesEnd >= 3 {
		reasons = append(reasons, fmt.Sprintf("hostiles_lingering=%d", rs.hostilesEnd))
	}
	if rs.stats.Attacks >= 20 && float64(rs.stats.Kills)/float64(rs.stats.Attacks) < 0.05 {
		reasons = append(reasons, "low_kill_rate")
	}
	if rs.noPathEvents > rs.stats.Spawned {
		reasons = append(reasons, "path_starved")
	}
	if len(reasons) < 2 {
		return false, "decisive"
	}
	return true, strings.Join(reasons, ",")
}

func printRun(out io.Writer, rs runStats) {
	fmt.Fprintf(out, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(out, "phase_markers: first_attack=%d first_death=%d first_no_path=%d first_elite=%d\n",
		rs.firstAttackTick, rs.firstDeathTick, rs.firstNoPathTick, rs.firstEliteTick)
	fmt.Fprintf(out, "event_totals: waves=%d spawned=%d attacks=%d kills=%d no_path=%d rechase=%d rejected=%d\n",
		rs.wavesReleased, rs.stats.Spawned, rs.stats.Attacks, rs.stats.Kills, rs.noPathEvents, rs.rechaseEvents, rs.rejectedCommands)
	fmt.Fprintf(out, "survival: structures=%d/%d allies=%d/%d hostiles_alive=%d\n",
		rs.structuresEnd, rs.structuresStart, rs.alliesEnd, rs.alliesStart, rs.hostilesEnd)
	fmt.Fprintf(out, "losses: %s\n", joinCounts(rs.losses))
	stale, reason := detectStalemate(rs)
	fmt.Fprintf(out, "outcome: %s (%s) stalemate=%v reason=%s\n\n", rs.outcome.Outcome, rs.outcome.Description, stale, reason)
}

func printAggregate(out io.Writer, all []runStats) {
	var totalAttacks, totalKills, totalSpawned, totalNoPath, totalWaves int
	attackTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	outcomes := map[string]int{}
	losses := map[string]int{}
	stalemates := 0

	for _, rs := range all {
		totalAttacks += rs.stats.Attacks
		totalKills += rs.stats.Kills
		totalSpawned += rs.stats.Spawned
		totalNoPath += rs.noPathEvents
		totalWaves += rs.wavesReleased
		if rs.firstAttackTick >= 0 {
			attackTicks = append(attackTicks, rs.firstAttackTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		outcomes[rs.outcome.Outcome.String()]++
		for k, v := range rs.losses {
			losses[k] += v
		}
		if ok, _ := detectStalemate(rs); ok {
			stalemates++
		}
	}

	fmt.Fprintln(out, "=== Aggregate ===")
	fmt.Fprintf(out, "runs=%d\n", len(all))
	fmt.Fprintf(out, "avg_per_run: waves=%.1f spawned=%.1f attacks=%.1f kills=%.1f no_path=%.1f\n",
		avg(totalWaves, len(all)), avg(totalSpawned, len(all)), avg(totalAttacks, len(all)), avg(totalKills, len(all)), avg(totalNoPath, len(all)))
	fmt.Fprintf(out, "phase_marker_avg_ticks: first_attack=%s first_death=%s\n",
		avgTickString(attackTicks), avgTickString(deathTicks))
	fmt.Fprintf(out, "outcomes: %s\n", joinCounts(outcomes))
	fmt.Fprintf(out, "losses: %s\n", joinCounts(losses))
	fmt.Fprintf(out, "stalemates=%d/%d\n", stalemates, len(all))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
