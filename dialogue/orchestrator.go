package dialogue

import (
	"log"

	"github.com/google/uuid"
)

// Summary describes a session that just ended.
type Summary struct {
	ID            uuid.UUID
	Speaker       string
	Outcome       Outcome
	LinesShown    int
	TotalLines    int
	CharsRevealed int
	Elapsed       float64
}

// ReadingSpeed is characters revealed per second of session time.
func (s Summary) ReadingSpeed() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.CharsRevealed) / s.Elapsed
}

// Orchestrator owns the single live session.
type Orchestrator struct {
	Interval float64
	Logger   *log.Logger
	Debug    bool

	session *Session
}

func NewOrchestrator(interval float64, logger *log.Logger, debug bool) *Orchestrator {
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{Interval: interval, Logger: logger, Debug: debug}
}

func (o *Orchestrator) debugf(format string, args ...any) {
	if o.Debug {
		o.Logger.Printf("debug: "+format, args...)
	}
}

// Active reports whether a session is live.
func (o *Orchestrator) Active() bool {
	return o != nil && o.session != nil
}

// Session returns the live session, or nil.
func (o *Orchestrator) Session() *Session {
	if o == nil {
		return nil
	}
	return o.session
}

// Start opens a session for script. It is only valid while idle.
func (o *Orchestrator) Start(script Script) (*Session, error) {
	if o.session != nil {
		o.debugf("dialogue: start rejected, session %s active", o.session.ID)
		return nil, ErrSessionActive
	}
	s, err := NewSession(script)
	if err != nil {
		return nil, err
	}
	o.session = s
	o.debugf("dialogue: session %s started speaker=%q lines=%d", s.ID, s.Script.Speaker, len(s.Script.Lines))
	return s, nil
}

// Step advances the live session by dt. When the session ends the returned
// Summary is non-nil.
func (o *Orchestrator) Step(in Input, dt float64) (Outcome, *Summary) {
	if o.session == nil {
		if in.Advance || in.Cancel {
			o.debugf("dialogue: input ignored, no active session")
		}
		return OutcomeNone, nil
	}
	prev := o.session
	next, outcome := Step(prev, in, dt, o.Interval)
	if outcome == OutcomeNone {
		o.session = next
		return outcome, nil
	}
	o.session = nil
	sum := &Summary{
		ID:            prev.ID,
		Speaker:       prev.View().Speaker,
		Outcome:       outcome,
		LinesShown:    prev.LinesShown,
		TotalLines:    len(prev.Script.Lines),
		CharsRevealed: prev.CharsRevealed,
		Elapsed:       prev.Elapsed + max(dt, 0),
	}
	o.debugf("dialogue: session %s %s after %d/%d lines", sum.ID, outcome, sum.LinesShown, sum.TotalLines)
	return outcome, sum
}

// Cancel ends any live session immediately.
func (o *Orchestrator) Cancel() *Summary {
	_, sum := o.Step(Input{Cancel: true}, 0)
	return sum
}

// View returns the live session's view.
func (o *Orchestrator) View() (View, bool) {
	if o == nil || o.session == nil {
		return View{}, false
	}
	return o.session.View(), true
}
