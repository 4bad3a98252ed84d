package termui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/ecs/system"
)

const dialogueRows = 5

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleWall    = styleDefault.Foreground(tcell.ColorDarkGray)
	styleFloor   = styleDefault.Foreground(tcell.ColorGray)
	styleExit    = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePlayer  = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleNPC     = styleDefault.Foreground(tcell.ColorGreen)
	styleInRange = styleNPC.Reverse(true)
	styleSpeaker = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHint    = styleDefault.Foreground(tcell.ColorGray)
)

// Renderer draws a snapshot centered on the camera, one scene tile per
// terminal cell, with a dialogue box along the bottom.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	screen.SetStyle(styleDefault)
	return &Renderer{screen: screen}
}

func (r *Renderer) Render(w *ecs.World, snap system.Snapshot) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	mapRows := rows - dialogueRows
	if mapRows < 1 {
		mapRows = rows
	}

	if snap.Phase == system.PhaseLoading.String() {
		r.text(0, 0, "Loading...", styleDefault)
		r.screen.Show()
		return
	}

	var grid *component.CollisionGrid
	if w != nil {
		if e, ok := w.First(component.CollisionGridComponent.Kind()); ok {
			grid, _ = ecs.Get(w, e, component.CollisionGridComponent.Kind())
		}
	}
	if grid == nil {
		r.text(0, 0, "no scene", styleDefault)
		r.screen.Show()
		return
	}

	camX, camY := grid.WorldToCell(snap.Camera.X, snap.Camera.Y)
	left, top := camX-cols/2, camY-mapRows/2
	toScreen := func(cx, cy int) (int, int, bool) {
		x, y := cx-left, cy-top
		return x, y, x >= 0 && y >= 0 && x < cols && y < mapRows
	}

	for y := 0; y < mapRows; y++ {
		for x := 0; x < cols; x++ {
			cx, cy := left+x, top+y
			if cx < 0 || cy < 0 || cx >= grid.Width || cy >= grid.Height {
				continue
			}
			if grid.IsWalkable(cx, cy) {
				r.screen.SetContent(x, y, '.', nil, styleFloor)
			} else {
				r.screen.SetContent(x, y, '#', nil, styleWall)
			}
		}
	}

	ecs.ForEach(w, component.SceneExitComponent.Kind(), func(_ ecs.Entity, exit *component.SceneExit) {
		if x, y, ok := toScreen(exit.CellX, exit.CellY); ok {
			r.screen.SetContent(x, y, '>', nil, styleExit)
		}
	})

	prompt := ""
	for _, a := range snap.Actors {
		cx, cy := grid.WorldToCell(a.X, a.Y)
		x, y, ok := toScreen(cx, cy)
		if !ok {
			continue
		}
		switch {
		case a.Player:
			r.screen.SetContent(x, y, '@', nil, stylePlayer)
		case a.InRange:
			r.screen.SetContent(x, y, glyph(a.Name), nil, styleInRange)
			if prompt == "" {
				prompt = fmt.Sprintf("%s: %s", a.Name, a.Prompt)
			}
		default:
			r.screen.SetContent(x, y, glyph(a.Name), nil, styleNPC)
		}
	}

	base := mapRows
	if d := snap.Dialogue; d != nil {
		r.fill(base, cols, '─', styleHint)
		r.text(0, base+1, d.Speaker, styleSpeaker)
		for i, line := range wrap(d.Text, cols) {
			if i >= dialogueRows-3 {
				break
			}
			r.text(0, base+2+i, line, styleDefault)
		}
		hint := fmt.Sprintf("%d/%d", d.Line+1, d.TotalLines)
		if d.LineComplete {
			hint += "  [space] next"
		}
		hint += "  [esc] leave"
		r.text(0, base+dialogueRows-1, hint, styleHint)
	} else {
		r.text(0, base+1, prompt, styleDefault)
		r.text(0, base+dialogueRows-1, fmt.Sprintf("%s · %s   [wasd] move  [e] talk  [q] quit", snap.Scene, snap.Phase), styleHint)
	}
	r.screen.Show()
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func (r *Renderer) fill(y, cols int, ch rune, style tcell.Style) {
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func glyph(name string) rune {
	for _, ch := range name {
		if unicode.IsLetter(ch) {
			return unicode.ToUpper(ch)
		}
	}
	return '?'
}

// wrap breaks s into lines of at most width runes on spaces.
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		wr := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(wr) > width {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, wr...)
		for len(cur) > width {
			lines = append(lines, string(cur[:width]))
			cur = append([]rune(nil), cur[width:]...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
