package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/nav"
	"github.com/Garsondee/holdfast/internal/sim"
	"github.com/Garsondee/holdfast/pkg/logger"
)

// frame is the wall-clock interval between ticks.
const frame = 33 * time.Millisecond

// App drives a World from a tcell screen.
type App struct {
	screen tcell.Screen
	world  *sim.World
	sound  *Sound
	log    *logrus.Entry

	cursor     nav.Cell
	buildTypes []string
	buildIdx   int
	selected   sim.EntityID
	paused     bool
	pending    []sim.Command
}

// NewApp wraps an initialised screen. sound may be nil.
func NewApp(screen tcell.Screen, w *sim.World, sound *Sound) *App {
	cols, rows := w.Grid().Size()
	return &App{
		screen:     screen,
		world:      w,
		sound:      sound,
		log:        logger.Component("term"),
		cursor:     nav.Cell{Col: cols / 2, Row: rows / 2},
		buildTypes: w.Catalog().StructureNames(),
		buildIdx:   -1,
	}
}

// Run polls input on its own goroutine and ticks the world on a fixed
// ticker until the player quits.
func (a *App) Run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return
			}
			a.draw()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !a.paused {
				a.Step(dt)
			}
			a.draw()
		}
	}
}

// Step ticks the world once with the queued commands and plays any cues.
func (a *App) Step(dt float64) []sim.Event {
	cmds := a.pending
	a.pending = nil
	evs := a.world.Tick(dt, cmds)
	if a.sound != nil {
		for _, c := range CuesFor(evs) {
			a.sound.Play(c)
		}
	}
	if a.selected != 0 && a.world.Entity(a.selected) == nil {
		a.selected = 0
	}
	return evs
}

func (a *App) queue(cmd sim.Command) {
	a.pending = append(a.pending, cmd)
	a.log.WithField("command", cmd.String()).Debug("queued")
}

// HandleEvent applies one input event. It returns false when the player quits.
//
//	arrows/hjkl  move cursor      1-9    arm structure type
//	enter/space  place or select  t      train at selected structure
//	m            move selected    p      pause
//	esc          clear            q      quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			a.buildIdx = -1
			a.selected = 0
		case tcell.KeyUp:
			a.moveCursor(0, -1)
		case tcell.KeyDown:
			a.moveCursor(0, 1)
		case tcell.KeyLeft:
			a.moveCursor(-1, 0)
		case tcell.KeyRight:
			a.moveCursor(1, 0)
		case tcell.KeyEnter:
			a.activate()
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch {
	case r == 'q':
		return false
	case r == 'h':
		a.moveCursor(-1, 0)
	case r == 'j':
		a.moveCursor(0, 1)
	case r == 'k':
		a.moveCursor(0, -1)
	case r == 'l':
		a.moveCursor(1, 0)
	case r == ' ':
		a.activate()
	case r == 'p':
		a.paused = !a.paused
	case r == 't':
		if e := a.world.Entity(a.selected); e != nil && e.Kind == sim.KindStructure {
			a.queue(sim.TrainAgent{Structure: e.ID})
		}
	case r == 'm':
		if e := a.world.Entity(a.selected); e != nil && e.Kind == sim.KindAlly {
			a.queue(sim.MoveAgent{Agent: e.ID, Cell: a.cursor})
		}
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i < len(a.buildTypes) {
			if a.buildIdx == i {
				a.buildIdx = -1
			} else {
				a.buildIdx = i
			}
		}
	}
	return true
}

func (a *App) moveCursor(dc, dr int) {
	a.cursor = a.world.Grid().ClampCell(a.cursor.Add(dc, dr))
}

// activate places the armed structure at the cursor, or selects the
// structure or ally under it.
func (a *App) activate() {
	if a.buildIdx >= 0 {
		a.queue(sim.PlaceStructure{Type: a.buildTypes[a.buildIdx], Cell: a.cursor})
		return
	}
	x, y := a.world.Grid().CellCenter(a.cursor)
	if v, ok := a.world.Snapshot().At(x, y); ok && v.Kind != sim.KindHostile {
		a.selected = v.ID
		return
	}
	a.selected = 0
}

func (a *App) draw() {
	s := a.world.Snapshot()
	a.screen.Clear()
	for r, row := range Render(s, a.selected) {
		for c, g := range row {
			st := g.Style
			if c == a.cursor.Col && r == a.cursor.Row {
				st = st.Reverse(true)
			}
			a.screen.SetContent(c, r+1, g.Rune, nil, st)
		}
	}
	for i, line := range a.statusLines(s) {
		a.putString(0, s.Rows+1+i, line)
	}
	a.screen.Show()
}

func (a *App) statusLines(s sim.Snapshot) []string {
	header := fmt.Sprintf("T=%d %.0fs  wave %d in %.0fs", s.Tick, s.Time, s.Wave, s.WaveIn)
	if a.paused {
		header += "  [PAUSED]"
	}
	res := ""
	for _, r := range catalog.Resources {
		res += fmt.Sprintf("%s %.0f  ", r, s.Resources[r])
	}
	build := "build:"
	for i, name := range a.buildTypes {
		mark := " "
		if i == a.buildIdx {
			mark = "*"
		}
		build += fmt.Sprintf(" %d%s%s", i+1, mark, name)
	}
	lines := []string{header, res, build}
	if v, ok := s.Find(a.selected); ok {
		lines = append(lines, fmt.Sprintf("selected %s %s hp %.0f/%.0f %s", v.Label, v.Name, v.HP, v.MaxHP, v.State))
	}
	for _, m := range s.Messages {
		lines = append(lines, "> "+m.Text)
	}
	return lines
}

func (a *App) putString(x, y int, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}
