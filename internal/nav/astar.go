package nav

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoPath is returned when the goal cannot be reached from the start.
	ErrNoPath = errors.New("no path")
	// ErrSearchLimit is returned when the expansion cap is hit before the
	// search finishes. It wraps ErrNoPath.
	ErrSearchLimit = fmt.Errorf("%w: search limit reached", ErrNoPath)
)

// searchLimitFactor scales the default expansion cap with grid area. Without
// reopening a cell is expanded at most once, so the cap only guards against
// stale heap entries and never truncates a search on a valid grid.
const searchLimitFactor = 4

type searchOptions struct {
	maxExpansions int
}

// Option tunes a single FindPath call.
type Option func(*searchOptions)

// WithMaxExpansions caps the number of nodes popped from the open set.
// Zero or negative keeps the default.
func WithMaxExpansions(n int) Option {
	return func(o *searchOptions) {
		if n > 0 {
			o.maxExpansions = n
		}
	}
}

// --- A* pathfinding ---

type pathNode struct {
	idx   int
	f     float64
	seq   uint64 // insertion order, breaks f ties FIFO
	index int    // heap index
}

type openList []*pathNode

func (ol openList) Len() int { return len(ol) }
func (ol openList) Less(i, j int) bool {
	if ol[i].f != ol[j].f {
		return ol[i].f < ol[j].f
	}
	return ol[i].seq < ol[j].seq
}
func (ol openList) Swap(i, j int) { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x interface{}) {
	n := x.(*pathNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// dirs lists orthogonal neighbours first, then diagonals. The order is part
// of the deterministic tie-break.
var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Octile returns the octile distance between two cells: the exact cost of the
// cheapest 8-directional route on an empty grid.
func Octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.Col - b.Col))
	dy := math.Abs(float64(a.Row - b.Row))
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

// stepCost returns 1 for orthogonal and √2 for diagonal moves.
func stepCost(a, b Cell) float64 {
	if a.Col != b.Col && a.Row != b.Row {
		return math.Sqrt2
	}
	return 1
}

// FindPath runs A* from start to goal and returns the cells of the path,
// start and goal included. Cells whose diagonal corners are both blocked are
// still traversable. A blocked start is allowed; a blocked or out-of-bounds
// goal, or an out-of-bounds start, yields ErrNoPath.
func FindPath(g *Grid, start, goal Cell, opts ...Option) ([]Cell, error) {
	so := searchOptions{maxExpansions: searchLimitFactor * g.cols * g.rows}
	for _, o := range opts {
		o(&so)
	}

	if !g.InBounds(start) || !g.IsPassable(goal) {
		return nil, ErrNoPath
	}
	if start == goal {
		return []Cell{start}, nil
	}

	n := g.cols * g.rows
	key := func(c Cell) int { return c.Row*g.cols + c.Col }
	gScore := make([]float64, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	closed := make([]bool, n)

	var seq uint64
	sk := key(start)
	gScore[sk] = 0
	ol := &openList{}
	heap.Push(ol, &pathNode{idx: sk, f: Octile(start, goal), seq: seq})

	gk := key(goal)
	expansions := 0
	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if closed[cur.idx] {
			continue
		}
		if cur.idx == gk {
			return buildPath(g, parent, gk), nil
		}
		expansions++
		if expansions > so.maxExpansions {
			return nil, ErrSearchLimit
		}
		closed[cur.idx] = true

		cc := Cell{Col: cur.idx % g.cols, Row: cur.idx / g.cols}
		for _, d := range dirs {
			nc := cc.Add(d[0], d[1])
			if !g.IsPassable(nc) {
				continue
			}
			nk := key(nc)
			if closed[nk] {
				continue
			}
			tentative := gScore[cur.idx] + stepCost(cc, nc)
			if tentative >= gScore[nk] {
				continue
			}
			gScore[nk] = tentative
			parent[nk] = cur.idx
			seq++
			heap.Push(ol, &pathNode{idx: nk, f: tentative + Octile(nc, goal), seq: seq})
		}
	}
	return nil, ErrNoPath
}

func buildPath(g *Grid, parent []int, end int) []Cell {
	var cells []Cell
	for k := end; k != -1; k = parent[k] {
		cells = append(cells, Cell{Col: k % g.cols, Row: k / g.cols})
	}
	// Reverse
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// PathCost sums the step costs along a path of adjacent cells.
func PathCost(path []Cell) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += stepCost(path[i-1], path[i])
	}
	return total
}
