// Package game is the ebiten window host. It turns mouse and keyboard input
// into sim commands, ticks the world and draws its snapshots.
package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/scenario"
	"github.com/Garsondee/holdfast/internal/sim"
	"github.com/Garsondee/holdfast/pkg/logger"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// tickDT is the simulated time per sim tick; ebiten calls Update 60 times a second.
const tickDT = 1.0 / 60

// Options selects what the window plays.
type Options struct {
	Scenario string
	Catalog  *catalog.Catalog // nil uses the built-in tables
	Config   sim.Config
}

// Game implements ebiten.Game around one sim.World.
type Game struct {
	width      int
	height     int
	gameWidth  int // playfield width in world px
	gameHeight int
	offX       int
	offY       int

	world    *sim.World
	scenario string
	snap     sim.Snapshot
	pending  []sim.Command
	log      *logrus.Entry

	thoughtLog *ThoughtLog

	buildTypes []string
	buildIdx   int // index into buildTypes, -1 when not placing
	selected   sim.EntityID

	showHUD        bool
	prevKeys       map[ebiten.Key]bool
	prevMouseLeft  bool
	prevMouseRight bool

	cam camera

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64

	worldBuf *ebiten.Image
	hudBuf   *ebiten.Image
	face     *text.GoXFace

	status string // last host-side notice, e.g. clipboard result
}

// New builds the world for the chosen scenario and sizes the window to fit.
func New(opts Options) (*Game, error) {
	if opts.Scenario == "" {
		opts.Scenario = "river-fort"
	}
	w, err := scenario.Build(opts.Scenario, opts.Catalog, opts.Config)
	if err != nil {
		return nil, err
	}
	bw, bh := w.Grid().Bounds()
	g := &Game{
		gameWidth:  int(bw),
		gameHeight: int(bh),
		offX:       borderWidth,
		offY:       borderWidth,
		world:      w,
		scenario:   opts.Scenario,
		log:        logger.Component("game"),
		thoughtLog: NewThoughtLog(),
		buildTypes: w.Catalog().StructureNames(),
		buildIdx:   -1,
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		simSpeed:   1,
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
	g.cam = newCamera(float64(g.gameWidth), float64(g.gameHeight), 1.5)
	g.width = borderWidth + int(float64(g.gameWidth)*g.cam.zoom) + borderWidth + logPanelWidth
	g.height = borderWidth + int(float64(g.gameHeight)*g.cam.zoom) + borderWidth
	g.worldBuf = ebiten.NewImage(g.gameWidth, g.gameHeight)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.snap = w.Snapshot()
	g.log.WithFields(logrus.Fields{
		"scenario": opts.Scenario,
		"cols":     g.snap.Cols,
		"rows":     g.snap.Rows,
	}).Info("world ready")
	return g, nil
}

// WindowSize returns the preferred window size in pixels.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// Update handles input and runs as many sim ticks as the speed setting asks for.
func (g *Game) Update() error {
	g.handleInput()

	if g.simSpeed > 0 {
		g.tickAccum += g.simSpeed
		for g.tickAccum >= 1.0 {
			g.tickAccum -= 1.0
			g.simTick()
		}
	}
	g.snap = g.world.Snapshot()
	return nil
}

// simTick runs one world tick with the commands queued since the last one.
func (g *Game) simTick() {
	cmds := g.pending
	g.pending = nil
	events := g.world.Tick(tickDT, cmds)
	g.thoughtLog.AddEvents(events)
	if g.selected != 0 && g.world.Entity(g.selected) == nil {
		g.selected = 0
	}
}

// queue stores a command for the next tick.
func (g *Game) queue(cmd sim.Command) {
	g.pending = append(g.pending, cmd)
	g.log.WithField("command", cmd.String()).Debug("queued")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM = g.cam.geoM()
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.worldBuf, &blit)

	g.drawFrame(screen)

	logX := g.width - logPanelWidth
	g.thoughtLog.Draw(screen, logX, g.height)

	g.drawMessages(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// buildType returns the structure type armed for placement, or "".
func (g *Game) buildType() string {
	if g.buildIdx < 0 || g.buildIdx >= len(g.buildTypes) {
		return ""
	}
	return g.buildTypes[g.buildIdx]
}

func speedLabel(s float64) string {
	switch s {
	case 0:
		return "PAUSED"
	case 1, 2, 4:
		return fmt.Sprintf("%.0fx", s)
	default:
		return fmt.Sprintf("%.1fx", s)
	}
}
