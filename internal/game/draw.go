package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/sim"
)

var (
	groundColor    = color.RGBA{R: 52, G: 78, B: 44, A: 255}
	gridColor      = color.RGBA{R: 60, G: 88, B: 52, A: 255}
	waterColor     = color.RGBA{R: 40, G: 80, B: 150, A: 255}
	structureColor = color.RGBA{R: 150, G: 120, B: 80, A: 255}
	allyColor      = color.RGBA{R: 70, G: 110, B: 210, A: 255}
	hostileColor   = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	eliteColor     = color.RGBA{R: 240, G: 140, B: 30, A: 255}
	selectColor    = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	pathColor      = color.RGBA{R: 255, G: 255, B: 255, A: 90}
)

// drawWorld renders the snapshot in world space onto the world buffer.
func (g *Game) drawWorld(dst *ebiten.Image) {
	s := g.snap
	cs := float32(s.CellSize)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)

	vector.FillRect(dst, 0, 0, gw, gh, groundColor, false)
	for c := 0; c <= s.Cols; c++ {
		x := float32(c) * cs
		vector.StrokeLine(dst, x, 0, x, gh, 1.0, gridColor, false)
	}
	for r := 0; r <= s.Rows; r++ {
		y := float32(r) * cs
		vector.StrokeLine(dst, 0, y, gw, y, 1.0, gridColor, false)
	}
	for _, c := range s.Water {
		vector.FillRect(dst, float32(c.Col)*cs, float32(c.Row)*cs, cs, cs, waterColor, false)
	}

	for _, b := range s.Structures {
		x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
		vector.FillRect(dst, x+1, y+1, w-2, h-2, structureColor, false)
		if b.ID == g.selected {
			vector.StrokeRect(dst, x, y, w, h, 2.0, selectColor, false)
		}
		drawHPBar(dst, x, y-4, w, b.HP, b.MaxHP)
	}

	if v, ok := s.Find(g.selected); ok && v.Kind == sim.KindAlly {
		g.drawPath(dst, v)
	}

	for _, a := range s.Agents {
		col := allyColor
		if a.Kind == sim.KindHostile {
			col = hostileColor
			if a.Elite {
				col = eliteColor
			}
		}
		r := float32(a.W) / 2
		x, y := float32(a.X), float32(a.Y)
		vector.FillCircle(dst, x, y, r*0.8, col, true)
		if a.ID == g.selected {
			vector.StrokeCircle(dst, x, y, r, 1.5, selectColor, true)
		}
		if a.State == sim.StateAttacking {
			if t, ok := s.Find(a.Target); ok {
				tx, ty := viewCenter(t)
				vector.StrokeLine(dst, x, y, float32(tx), float32(ty), 1.0, color.RGBA{R: col.R, G: col.G, B: col.B, A: 110}, true)
			}
		}
		drawHPBar(dst, x-r, y-r-4, 2*r, a.HP, a.MaxHP)
	}

	if bt := g.buildType(); bt != "" {
		g.drawGhost(dst, bt)
	}
}

func (g *Game) drawPath(dst *ebiten.Image, v sim.EntityView) {
	cs := float64(g.snap.CellSize)
	px, py := v.X, v.Y
	for _, c := range v.Path {
		cx, cy := float64(c.Col)*cs+cs/2, float64(c.Row)*cs+cs/2
		vector.StrokeLine(dst, float32(px), float32(py), float32(cx), float32(cy), 1.0, pathColor, false)
		px, py = cx, cy
	}
	if v.Dest != nil {
		dx, dy := float64(v.Dest.Col)*cs+cs/2, float64(v.Dest.Row)*cs+cs/2
		vector.StrokeCircle(dst, float32(dx), float32(dy), float32(cs/3), 1.0, selectColor, true)
	}
}

// drawGhost outlines the armed structure's footprint under the cursor.
func (g *Game) drawGhost(dst *ebiten.Image, typ string) {
	st, ok := g.world.Catalog().Structures[typ]
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	vx, vy := float64(mx-g.offX), float64(my-g.offY)
	if !g.cam.inViewport(vx, vy) {
		return
	}
	wx, wy := g.cam.toWorld(vx, vy)
	cell := g.world.Grid().WorldToCell(wx, wy)
	x, y := g.world.Grid().CellOrigin(cell)
	size := float32(st.Size * g.snap.CellSize)
	ghost := color.RGBA{R: 220, G: 220, B: 220, A: 160}
	if !g.world.Pool().CanAfford(st.Cost) {
		ghost = color.RGBA{R: 220, G: 80, B: 80, A: 160}
	}
	vector.StrokeRect(dst, float32(x), float32(y), size, size, 1.5, ghost, false)
}

func viewCenter(v sim.EntityView) (float64, float64) {
	if v.Kind == sim.KindStructure {
		return v.X + v.W/2, v.Y + v.H/2
	}
	return v.X, v.Y
}

func drawHPBar(dst *ebiten.Image, x, y, w float32, hp, maxHP float64) {
	if maxHP <= 0 || hp >= maxHP {
		return
	}
	frac := float32(hp / maxHP)
	vector.FillRect(dst, x, y, w, 2, color.RGBA{R: 40, G: 20, B: 20, A: 200}, false)
	vector.FillRect(dst, x, y, w*frac, 2, color.RGBA{R: 90, G: 220, B: 90, A: 230}, false)
}

// drawFrame draws the battlefield border at screen coords.
func (g *Game) drawFrame(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.cam.vpW), float32(g.cam.vpH)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)
}

// drawMessages renders the active message board centred along the top edge.
func (g *Game) drawMessages(screen *ebiten.Image) {
	y := float64(g.offY + 8)
	cx := float64(g.offX) + g.cam.vpW/2
	for _, m := range g.snap.Messages {
		w, _ := text.Measure(m.Text, g.face, 0)
		vector.FillRect(screen, float32(cx-w/2-6), float32(y-2), float32(w+12), 17, color.RGBA{R: 0, G: 0, B: 0, A: 170}, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx-w/2, y)
		op.ColorScale.ScaleWithColor(color.RGBA{R: 250, G: 240, B: 200, A: 255})
		text.Draw(screen, m.Text, g.face, op)
		y += 19
	}
}

// hudLines builds the HUD text from a snapshot.
func hudLines(s sim.Snapshot, buildTypes []string, armed string, speed float64, status string) []string {
	lines := []string{
		fmt.Sprintf("T=%d  %.1fs  SIM: %s  P=pause  ,/. speed", s.Tick, s.Time, speedLabel(speed)),
		fmt.Sprintf("Wave %d in %.0fs", s.Wave, s.WaveIn),
	}
	for _, r := range catalog.Resources {
		lines = append(lines, fmt.Sprintf("  %-6s %7.1f  +%.2f/s", r, s.Resources[r], s.Rates[r]))
	}
	lines = append(lines, "Build:")
	for i, name := range buildTypes {
		mark := " "
		if name == armed {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("  [%d]%s %s", i+1, mark, name))
	}
	lines = append(lines,
		"click=place/select  right=move  T=train",
		"C=copy report  Esc=clear  H=HUD",
	)
	if status != "" {
		lines = append(lines, status)
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := hudLines(g.snap, g.buildTypes, g.buildType(), g.simSpeed, g.status)

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(g.offX/hudScale + 4)
	by := float32(g.height/hudScale) - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}
