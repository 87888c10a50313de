// Package term is the terminal host: one character per map cell, drawn with
// tcell, with short tones for deaths and waves.
package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/holdfast/internal/sim"
)

// Glyph is one rendered map cell.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

var (
	styleGround    = tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)
	styleWater     = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue).Background(tcell.ColorNavy)
	styleStructure = tcell.StyleDefault.Foreground(tcell.ColorBurlyWood).Bold(true)
	styleAlly      = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleHostile   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleElite     = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true).Blink(true)
	stylePath      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// glyphFor picks the character for an entity: structures and hostiles by the
// upper-case initial of their name, allies by the lower-case initial.
func glyphFor(v sim.EntityView) Glyph {
	initial := '?'
	for _, r := range v.Name {
		initial = r
		break
	}
	switch v.Kind {
	case sim.KindStructure:
		return Glyph{Rune: unicode.ToUpper(initial), Style: styleStructure}
	case sim.KindAlly:
		return Glyph{Rune: unicode.ToLower(initial), Style: styleAlly}
	default:
		if v.Elite {
			return Glyph{Rune: unicode.ToUpper(initial), Style: styleElite}
		}
		return Glyph{Rune: unicode.ToUpper(initial), Style: styleHostile}
	}
}

// Render rasterises the snapshot into rows of glyphs. Agents are drawn over
// structures, and the selected ally's path is drawn under both.
func Render(s sim.Snapshot, selected sim.EntityID) [][]Glyph {
	out := make([][]Glyph, s.Rows)
	for r := range out {
		out[r] = make([]Glyph, s.Cols)
		for c := range out[r] {
			out[r][c] = Glyph{Rune: '.', Style: styleGround}
		}
	}
	put := func(col, row int, g Glyph) {
		if row >= 0 && row < s.Rows && col >= 0 && col < s.Cols {
			out[row][col] = g
		}
	}
	for _, c := range s.Water {
		put(c.Col, c.Row, Glyph{Rune: '~', Style: styleWater})
	}
	if v, ok := s.Find(selected); ok && v.Kind == sim.KindAlly {
		for _, c := range v.Path {
			put(c.Col, c.Row, Glyph{Rune: '·', Style: stylePath})
		}
	}
	cs := float64(s.CellSize)
	for _, b := range s.Structures {
		g := glyphFor(b)
		col0, row0 := int(b.X/cs), int(b.Y/cs)
		for r := 0; r < int(b.H/cs); r++ {
			for c := 0; c < int(b.W/cs); c++ {
				put(col0+c, row0+r, g)
			}
		}
	}
	for _, a := range s.Agents {
		if a.X < 0 || a.Y < 0 {
			continue
		}
		put(int(a.X/cs), int(a.Y/cs), glyphFor(a))
	}
	return out
}
