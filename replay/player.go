package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/ecs/system"
)

var ErrBadRecording = errors.New("replay: bad recording")

// maxLoadingFrames bounds how long Drive waits for a scene to load.
const maxLoadingFrames = 600

// Player feeds recorded input back as an action source.
type Player struct {
	header  Header
	frames  []Frame
	next    int
	current component.Input
}

func Open(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("replay: zstd: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	p := &Player{}
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			if err := json.Unmarshal(sc.Bytes(), &p.header); err != nil {
				return nil, fmt.Errorf("%w: header: %v", ErrBadRecording, err)
			}
			if p.header.Type != "header" || p.header.Version != Version {
				return nil, fmt.Errorf("%w: header type %q version %d", ErrBadRecording, p.header.Type, p.header.Version)
			}
			continue
		}
		var fr Frame
		if err := json.Unmarshal(sc.Bytes(), &fr); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecording, line, err)
		}
		if fr.Type != "frame" {
			continue
		}
		p.frames = append(p.frames, fr)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	if line == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrBadRecording)
	}
	return p, nil
}

func (p *Player) Header() Header { return p.header }

func (p *Player) Len() int { return len(p.frames) }

func (p *Player) Done() bool { return p.next >= len(p.frames) }

// Next loads the next frame's input and returns its delta.
func (p *Player) Next() (float64, bool) {
	if p.Done() {
		p.current = component.Input{}
		return 0, false
	}
	fr := p.frames[p.next]
	p.next++
	p.current = fr.Input.Input()
	return fr.DT, true
}

func (p *Player) Actions() component.Input { return p.current }

// Drive replays every frame through m. The machine's input source must be
// p. Loading frames are run with a zero delta and consume no input, the
// same way they were skipped while recording.
func (p *Player) Drive(w *ecs.World, m *system.SceneMachine) error {
	if m.Scene() == "" && m.Pending() == "" {
		m.ChangeScene(w, p.header.Scene)
	}
	stalled := 0
	for {
		if m.Phase() == system.PhaseLoading {
			stalled++
			if stalled > maxLoadingFrames {
				return fmt.Errorf("replay: scene %q never loaded", m.Pending())
			}
			w.Tick(0)
			m.Update(w)
			continue
		}
		stalled = 0
		dt, ok := p.Next()
		if !ok {
			return nil
		}
		w.Tick(dt)
		m.Update(w)
	}
}
