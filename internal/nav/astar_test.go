package nav

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func blockCells(t *testing.T, cols, rows int, blocked ...Cell) *Grid {
	t.Helper()
	g := NewGrid(NewTerrainMap(cols, rows), DefaultCellSize)
	fps := make([]Footprint, 0, len(blocked))
	for _, c := range blocked {
		fps = append(fps, Footprint{Origin: c, W: 1, H: 1})
	}
	g.Rebuild(fps)
	return g
}

// checkPath verifies adjacency, passability and endpoints of a returned path.
func checkPath(t *testing.T, g *Grid, path []Cell, start, goal Cell) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if path[0] != start {
		t.Fatalf("path starts at %v, want %v", path[0], start)
	}
	if path[len(path)-1] != goal {
		t.Fatalf("path ends at %v, want %v", path[len(path)-1], goal)
	}
	for i, c := range path {
		if i > 0 && !g.IsPassable(c) {
			t.Fatalf("path cell %d %v is impassable", i, c)
		}
		if i == 0 {
			continue
		}
		dc := c.Col - path[i-1].Col
		dr := c.Row - path[i-1].Row
		if dc < -1 || dc > 1 || dr < -1 || dr > 1 || (dc == 0 && dr == 0) {
			t.Fatalf("path step %v → %v is not a single move", path[i-1], c)
		}
	}
}

func TestFindPath_DiagonalAroundTwoObstacles(t *testing.T) {
	g := blockCells(t, 4, 4, Cell{1, 1}, Cell{2, 2})
	start, goal := Cell{0, 0}, Cell{3, 3}

	path, err := FindPath(g, start, goal)
	if err != nil {
		t.Fatalf("expected a path, got %v", err)
	}
	checkPath(t, g, path, start, goal)
	if len(path) != 5 {
		t.Fatalf("expected 5 cells, got %d: %v", len(path), path)
	}
	for _, c := range path {
		if c == (Cell{1, 1}) || c == (Cell{2, 2}) {
			t.Fatalf("path %v passes through an obstacle", path)
		}
	}
	want := 2 + 2*math.Sqrt2
	if got := PathCost(path); math.Abs(got-want) > 1e-9 {
		t.Fatalf("path cost %.4f, want %.4f", got, want)
	}
}

func TestFindPath_OpenGridIsOctileOptimal(t *testing.T) {
	g := NewGrid(NewTerrainMap(20, 15), DefaultCellSize)
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test only
	for i := 0; i < 200; i++ {
		start := Cell{rng.Intn(20), rng.Intn(15)}
		goal := Cell{rng.Intn(20), rng.Intn(15)}
		path, err := FindPath(g, start, goal)
		if err != nil {
			t.Fatalf("open grid %v→%v: %v", start, goal, err)
		}
		checkPath(t, g, path, start, goal)
		if got, want := PathCost(path), Octile(start, goal); math.Abs(got-want) > 1e-9 {
			t.Fatalf("%v→%v cost %.4f, want octile %.4f", start, goal, got, want)
		}
	}
}

// reachable floods from start over passable cells with 8-neighbour moves.
func reachable(g *Grid, start, goal Cell) bool {
	if !g.IsPassable(goal) {
		return false
	}
	seen := map[Cell]bool{start: true}
	queue := []Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == goal {
			return true
		}
		for _, d := range dirs {
			n := c.Add(d[0], d[1])
			if seen[n] || !g.IsPassable(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return false
}

func TestFindPath_RandomGridsNeverCrossObstacles(t *testing.T) {
	rng := rand.New(rand.NewSource(99)) // #nosec G404 -- test only
	for trial := 0; trial < 100; trial++ {
		cols, rows := 8+rng.Intn(12), 8+rng.Intn(12)
		tm := NewTerrainMap(cols, rows)
		for i := 0; i < cols*rows/4; i++ {
			tm.Set(Cell{rng.Intn(cols), rng.Intn(rows)}, TerrainWater)
		}
		var fps []Footprint
		for i := 0; i < 4; i++ {
			fps = append(fps, Footprint{Origin: Cell{rng.Intn(cols), rng.Intn(rows)}, W: 1 + rng.Intn(3), H: 1 + rng.Intn(3)})
		}
		g := NewGrid(tm, DefaultCellSize)
		g.Rebuild(fps)

		start := Cell{rng.Intn(cols), rng.Intn(rows)}
		goal := Cell{rng.Intn(cols), rng.Intn(rows)}
		path, err := FindPath(g, start, goal)
		want := reachable(g, start, goal)
		if want != (err == nil) {
			t.Fatalf("trial %d: reachable=%v but FindPath err=%v", trial, want, err)
		}
		if err == nil {
			checkPath(t, g, path, start, goal)
		}
	}
}

func TestFindPath_ClearingBlockersRestoresPath(t *testing.T) {
	g := NewGrid(NewTerrainMap(10, 10), DefaultCellSize)
	wall := []Footprint{{Origin: Cell{5, 0}, W: 1, H: 10}}
	g.Rebuild(wall)

	if _, err := FindPath(g, Cell{0, 5}, Cell{9, 5}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath across a full wall, got %v", err)
	}

	g.Rebuild(nil)
	path, err := FindPath(g, Cell{0, 5}, Cell{9, 5})
	if err != nil {
		t.Fatalf("expected a path once the wall is gone: %v", err)
	}
	checkPath(t, g, path, Cell{0, 5}, Cell{9, 5})
}

func TestFindPath_WaterSplitsMapWithoutBridge(t *testing.T) {
	tm, err := ParseTerrain([]string{
		"...~...",
		"...~...",
		"...~...",
	})
	if err != nil {
		t.Fatal(err)
	}
	g := NewGrid(tm, DefaultCellSize)
	if _, err := FindPath(g, Cell{0, 1}, Cell{6, 1}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("river should block the crossing, got %v", err)
	}
	tm.Set(Cell{3, 2}, TerrainOpen)
	g.Rebuild(nil)
	if _, err := FindPath(g, Cell{0, 1}, Cell{6, 1}); err != nil {
		t.Fatalf("ford at (3,2) should open a path: %v", err)
	}
}

func TestFindPath_CornerCuttingAllowed(t *testing.T) {
	// (1,0) and (0,1) blocked: the diagonal (0,0)→(1,1) squeezes between them.
	g := blockCells(t, 3, 3, Cell{1, 0}, Cell{0, 1})
	path, err := FindPath(g, Cell{0, 0}, Cell{1, 1})
	if err != nil {
		t.Fatalf("diagonal squeeze should be allowed: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("expected direct diagonal, got %v", path)
	}
}

func TestFindPath_GoalBlocked(t *testing.T) {
	g := blockCells(t, 5, 5, Cell{4, 4})
	if _, err := FindPath(g, Cell{0, 0}, Cell{4, 4}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("blocked goal should give ErrNoPath, got %v", err)
	}
}

func TestFindPath_StartBlockedStillEscapes(t *testing.T) {
	g := blockCells(t, 5, 5, Cell{2, 2})
	path, err := FindPath(g, Cell{2, 2}, Cell{4, 2})
	if err != nil {
		t.Fatalf("agent on a blocked cell should still find a way out: %v", err)
	}
	checkPath(t, g, path, Cell{2, 2}, Cell{4, 2})
}

func TestFindPath_OutOfBoundsStart(t *testing.T) {
	g := NewGrid(NewTerrainMap(5, 5), DefaultCellSize)
	if _, err := FindPath(g, Cell{-1, 0}, Cell{4, 4}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("out-of-bounds start should give ErrNoPath, got %v", err)
	}
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	g := NewGrid(NewTerrainMap(5, 5), DefaultCellSize)
	path, err := FindPath(g, Cell{2, 2}, Cell{2, 2})
	if err != nil || len(path) != 1 {
		t.Fatalf("expected single-cell path, got %v (%v)", path, err)
	}
}

func TestFindPath_SearchLimit(t *testing.T) {
	g := NewGrid(NewTerrainMap(50, 50), DefaultCellSize)
	_, err := FindPath(g, Cell{0, 0}, Cell{49, 49}, WithMaxExpansions(3))
	if !errors.Is(err, ErrSearchLimit) || !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrSearchLimit wrapping ErrNoPath, got %v", err)
	}
	if _, err := FindPath(g, Cell{0, 0}, Cell{49, 49}, WithMaxExpansions(0)); err != nil {
		t.Fatalf("zero cap should keep the default: %v", err)
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	g := blockCells(t, 30, 20, Cell{10, 5}, Cell{10, 6}, Cell{10, 7}, Cell{11, 7})
	p1, err1 := FindPath(g, Cell{0, 6}, Cell{29, 6})
	p2, err2 := FindPath(g, Cell{0, 6}, Cell{29, 6})
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if len(p1) != len(p2) {
		t.Fatalf("path lengths differ between identical calls: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("paths diverge at step %d: %v vs %v", i, p1[i], p2[i])
		}
	}
}
