package dialogue

import "github.com/google/uuid"

// DefaultRevealInterval is the typewriter speed in seconds per character.
const DefaultRevealInterval = 0.03

type State int

const (
	StateIdle State = iota
	StateRevealing
	StateLineComplete
)

func (s State) String() string {
	switch s {
	case StateRevealing:
		return "revealing"
	case StateLineComplete:
		return "line_complete"
	default:
		return "idle"
	}
}

// Input holds the just-pressed dialogue actions for one frame.
type Input struct {
	Advance bool
	Cancel  bool
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCompleted
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Session is the live conversation. Cursor counts revealed runes of the
// current line.
type Session struct {
	ID     uuid.UUID
	Script Script
	Line   int
	Cursor int
	Timer  float64
	State  State

	// CharsRevealed and Elapsed accumulate over the whole session.
	CharsRevealed int
	Elapsed       float64
	LinesShown    int
}

// NewSession validates script and positions the session at the start of
// line 0.
func NewSession(script Script) (*Session, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		ID:         uuid.New(),
		Script:     script.Clone(),
		State:      StateRevealing,
		LinesShown: 1,
	}, nil
}

func (s *Session) lineRunes() []rune {
	if s == nil || s.Line < 0 || s.Line >= len(s.Script.Lines) {
		return nil
	}
	return []rune(s.Script.Lines[s.Line])
}

// Step advances a session by one frame and returns the next session value.
// The input session is not modified. Once the returned outcome is not
// OutcomeNone the returned session is nil.
//
// Cancel is handled before advance. A frame whose input changed state does
// not also run the reveal timer.
func Step(s *Session, in Input, dt, interval float64) (*Session, Outcome) {
	if s == nil || s.State == StateIdle {
		return nil, OutcomeNone
	}
	if dt < 0 {
		dt = 0
	}
	next := *s
	next.Elapsed += dt

	if in.Cancel {
		return nil, OutcomeCancelled
	}

	line := next.lineRunes()
	if in.Advance {
		switch next.State {
		case StateRevealing:
			next.CharsRevealed += len(line) - next.Cursor
			next.Cursor = len(line)
			next.Timer = 0
			next.State = StateLineComplete
			return &next, OutcomeNone
		case StateLineComplete:
			if next.Line+1 >= len(next.Script.Lines) {
				return nil, OutcomeCompleted
			}
			next.Line++
			next.LinesShown++
			next.Cursor = 0
			next.Timer = 0
			next.State = StateRevealing
			return &next, OutcomeNone
		}
	}

	if next.State != StateRevealing {
		return &next, OutcomeNone
	}
	if interval <= 0 {
		next.CharsRevealed += len(line) - next.Cursor
		next.Cursor = len(line)
	} else {
		next.Timer += dt
		for next.Timer >= interval && next.Cursor < len(line) {
			next.Timer -= interval
			next.Cursor++
			next.CharsRevealed++
		}
	}
	if next.Cursor >= len(line) {
		next.Cursor = len(line)
		next.Timer = 0
		next.State = StateLineComplete
	}
	return &next, OutcomeNone
}

// View is what a renderer needs to draw the dialogue box.
type View struct {
	Speaker      string
	Text         string
	Portrait     string
	HasPortrait  bool
	LineComplete bool
	Line         int
	TotalLines   int
}

func (s *Session) View() View {
	if s == nil {
		return View{}
	}
	speaker := s.Script.Speaker
	if speaker == "" {
		speaker = "Unknown"
	}
	line := s.lineRunes()
	cursor := s.Cursor
	if cursor > len(line) {
		cursor = len(line)
	}
	if cursor < 0 {
		cursor = 0
	}
	return View{
		Speaker:      speaker,
		Text:         string(line[:cursor]),
		Portrait:     s.Script.Portrait,
		HasPortrait:  s.Script.Portrait != "",
		LineComplete: s.State == StateLineComplete,
		Line:         s.Line,
		TotalLines:   len(s.Script.Lines),
	}
}
