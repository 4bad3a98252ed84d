// Package replay records the per-frame actions of a play session to a
// zstd-compressed JSONL file and plays them back.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

const Version = 1

// Header is the first line of a recording.
type Header struct {
	Type           string  `json:"type"`
	Version        int     `json:"version"`
	Scene          string  `json:"scene"`
	RevealInterval float64 `json:"reveal_interval"`
}

// Frame is one recorded input frame.
type Frame struct {
	Type  string      `json:"type"`
	Frame uint64      `json:"frame"`
	DT    float64     `json:"dt"`
	Input InputRecord `json:"input"`
}

type InputRecord struct {
	MoveX    float64 `json:"move_x,omitempty"`
	MoveY    float64 `json:"move_y,omitempty"`
	Interact bool    `json:"interact,omitempty"`
	Advance  bool    `json:"advance,omitempty"`
	Cancel   bool    `json:"cancel,omitempty"`
}

func recordInput(in component.Input) InputRecord {
	return InputRecord{MoveX: in.MoveX, MoveY: in.MoveY, Interact: in.Interact, Advance: in.Advance, Cancel: in.Cancel}
}

func (r InputRecord) Input() component.Input {
	return component.Input{MoveX: r.MoveX, MoveY: r.MoveY, Interact: r.Interact, Advance: r.Advance, Cancel: r.Cancel}
}

// Recorder is a system that appends the player's input each frame it runs.
// Schedule it right after input so it sees this frame's actions.
type Recorder struct {
	mu     sync.Mutex
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
	err    error
	frames int
	logger *log.Logger
}

func NewRecorder(path string, header Header, logger *log.Logger) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("replay: mkdir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: create %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("replay: zstd: %w", err)
	}
	r := &Recorder{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024), logger: logger}

	header.Type = "header"
	header.Version = Version
	if err := r.writeLine(header); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Recorder) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	in, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil || r.w == nil {
		return
	}
	err := r.writeLineLocked(Frame{Type: "frame", Frame: w.Frame(), DT: w.Delta(), Input: recordInput(*in)})
	if err != nil {
		r.err = err
		if r.logger != nil {
			r.logger.Printf("warn: replay: recording stopped: %v", err)
		}
		return
	}
	r.frames++
}

func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) writeLine(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLineLocked(v)
}

func (r *Recorder) writeLineLocked(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("replay: marshal: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	return r.w.WriteByte('\n')
}

// Close flushes and closes the file. It is safe to call twice.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	if r.w != nil {
		first = r.w.Flush()
		r.w = nil
	}
	if r.enc != nil {
		if err := r.enc.Close(); err != nil && first == nil {
			first = err
		}
		r.enc = nil
	}
	if r.f != nil {
		if err := r.f.Close(); err != nil && first == nil {
			first = err
		}
		r.f = nil
	}
	return first
}
