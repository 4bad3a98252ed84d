// Package termui is a terminal front-end: a tcell action source and a
// renderer that draws one tile per terminal cell.
package termui

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/townfolk/ecs/component"
)

// moveHoldFrames keeps a direction held between key repeats, which terminals
// deliver as separate presses with no release event.
const moveHoldFrames = 6

// Source turns terminal key events into per-frame actions. Feed may be called
// from any goroutine; Actions runs on the game loop.
type Source struct {
	events chan tcell.Event
	quit   atomic.Bool

	moveX, moveY float64
	hold         int
}

func NewSource() *Source {
	return &Source{events: make(chan tcell.Event, 64)}
}

// Feed queues an event, dropping it if the game loop is far behind.
func (s *Source) Feed(ev tcell.Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// Poll forwards screen events until the screen is finalized.
func (s *Source) Poll(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		s.Feed(ev)
	}
}

func (s *Source) Quit() bool { return s.quit.Load() }

func (s *Source) Actions() component.Input {
	var in component.Input
	moved := false

	for {
		var ev tcell.Event
		select {
		case ev = <-s.events:
		default:
		}
		if ev == nil {
			break
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		dx, dy, act := s.classify(key)
		if dx != 0 || dy != 0 {
			if !moved {
				s.moveX, s.moveY = 0, 0
				moved = true
			}
			if dx != 0 {
				s.moveX = dx
			}
			if dy != 0 {
				s.moveY = dy
			}
			s.hold = moveHoldFrames
		}
		switch act {
		case 'e':
			in.Interact = true
		case 'a':
			in.Advance = true
		case 'c':
			in.Cancel = true
		}
	}

	if s.hold > 0 {
		in.MoveX, in.MoveY = s.moveX, s.moveY
		s.hold--
	} else {
		s.moveX, s.moveY = 0, 0
	}
	return in
}

// classify maps a key to a move or an action: 'e' interact, 'a' advance,
// 'c' cancel.
func (s *Source) classify(key *tcell.EventKey) (float64, float64, rune) {
	switch key.Key() {
	case tcell.KeyUp:
		return 0, -1, 0
	case tcell.KeyDown:
		return 0, 1, 0
	case tcell.KeyLeft:
		return -1, 0, 0
	case tcell.KeyRight:
		return 1, 0, 0
	case tcell.KeyEnter:
		return 0, 0, 'a'
	case tcell.KeyEscape:
		return 0, 0, 'c'
	case tcell.KeyCtrlC:
		s.quit.Store(true)
		return 0, 0, 0
	case tcell.KeyRune:
	default:
		return 0, 0, 0
	}

	switch key.Rune() {
	case 'w', 'W':
		return 0, -1, 0
	case 's', 'S':
		return 0, 1, 0
	case 'a', 'A':
		return -1, 0, 0
	case 'd', 'D':
		return 1, 0, 0
	case 'e', 'E':
		return 0, 0, 'e'
	case ' ':
		return 0, 0, 'a'
	case 'q', 'Q':
		s.quit.Store(true)
	}
	return 0, 0, 0
}
