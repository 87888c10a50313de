package game

import (
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/holdfast/internal/nav"
	"github.com/Garsondee/holdfast/internal/sim"
)

var buildKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var speeds = []float64{0, 0.5, 1, 2, 4}

// clickResult is what a mouse click turns into: a command to queue, a new
// selection, or both empty when the click hit nothing useful.
type clickResult struct {
	cmd      sim.Command
	selected sim.EntityID
}

// resolveClick maps a click at world point (wx, wy) to an action. A left
// click places the armed structure, or selects whatever is under the cursor.
// A right click sends the selected ally to the clicked cell.
func resolveClick(snap sim.Snapshot, build string, selected sim.EntityID, wx, wy float64, right bool) clickResult {
	cs := float64(snap.CellSize)
	cell := nav.Cell{Col: int(math.Floor(wx / cs)), Row: int(math.Floor(wy / cs))}

	if right {
		if v, ok := snap.Find(selected); ok && v.Kind == sim.KindAlly {
			return clickResult{cmd: sim.MoveAgent{Agent: selected, Cell: cell}, selected: selected}
		}
		return clickResult{selected: selected}
	}
	if build != "" {
		return clickResult{cmd: sim.PlaceStructure{Type: build, Cell: cell}, selected: selected}
	}
	if v, ok := snap.At(wx, wy); ok && v.Kind != sim.KindHostile {
		return clickResult{selected: v.ID}
	}
	return clickResult{}
}

// nextSpeed steps through the speed table; dir is +1 or -1.
func nextSpeed(cur float64, dir int) float64 {
	idx := 0
	for i, s := range speeds {
		if s <= cur {
			idx = i
		}
	}
	idx = min(max(idx+dir, 0), len(speeds)-1)
	return speeds[idx]
}

// pressed reports a key going down this frame and records it for the next.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

// handleInput processes keypresses (edge-triggered) and mouse clicks.
func (g *Game) handleInput() {
	cur := map[ebiten.Key]bool{}

	for i, k := range buildKeys {
		if g.pressed(cur, k) && i < len(g.buildTypes) {
			if g.buildIdx == i {
				g.buildIdx = -1
			} else {
				g.buildIdx = i
			}
		}
	}
	if g.pressed(cur, ebiten.KeyEscape) {
		g.buildIdx = -1
		g.selected = 0
	}
	if g.pressed(cur, ebiten.KeyT) && g.selected != 0 {
		if v, ok := g.snap.Find(g.selected); ok && v.Kind == sim.KindStructure {
			g.queue(sim.TrainAgent{Structure: g.selected})
		}
	}
	if g.pressed(cur, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(cur, ebiten.KeyC) {
		g.copyReport()
	}

	// Camera pan: WASD or arrow keys.
	const panSpeed = 6.0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.cam.pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.cam.pan(0, panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.cam.pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.cam.pan(panSpeed, 0)
	}

	// Camera zoom: mouse wheel or =/- keys.
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.zoomBy(math.Pow(1.12, wy))
	}
	if g.pressed(cur, ebiten.KeyEqual) {
		g.cam.zoomBy(1.25)
	}
	if g.pressed(cur, ebiten.KeyMinus) {
		g.cam.zoomBy(1 / 1.25)
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if g.pressed(cur, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.pressed(cur, ebiten.KeyComma) {
		g.simSpeed = nextSpeed(g.simSpeed, -1)
	}
	if g.pressed(cur, ebiten.KeyPeriod) {
		g.simSpeed = nextSpeed(g.simSpeed, +1)
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if (left && !g.prevMouseLeft) || (right && !g.prevMouseRight) {
		mx, my := ebiten.CursorPosition()
		vx, vy := float64(mx-g.offX), float64(my-g.offY)
		if g.cam.inViewport(vx, vy) {
			wx, wy := g.cam.toWorld(vx, vy)
			res := resolveClick(g.snap, g.buildType(), g.selected, wx, wy, right && !left)
			g.selected = res.selected
			if res.cmd != nil {
				g.queue(res.cmd)
			}
		}
	}
	g.prevMouseLeft = left
	g.prevMouseRight = right

	g.prevKeys = cur
}

// copyReport puts the debug report for the current selection on the clipboard.
func (g *Game) copyReport() {
	report := debugReport(g.world, g.scenario, g.selected, 300)
	if err := clipboard.WriteAll(report); err != nil {
		g.status = "clipboard unavailable"
		g.log.WithError(err).Warn("copy report")
		return
	}
	g.status = "report copied"
}
