// Package session implements the typing session engine.
package session

import (
	"time"

	"github.com/verte-zerg/typetrial/internal/model"
)

// State is the lifecycle stage of a session.
type State int

const (
	NotStarted State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// KeyResult reports how a key code was classified.
type KeyResult int

const (
	KeyIgnored KeyResult = iota
	KeyEntered
	KeyErased
)

// Key codes treated as erase.
const (
	KeyBackspace rune = 8
	KeyDelete    rune = 127
)

// CharState is the correctness of one target position.
type CharState int

const (
	CharUntyped CharState = iota
	CharCorrect
	CharIncorrect
)

// Char pairs a target rune with what was typed over it.
type Char struct {
	Target rune
	Typed  rune
	State  CharState
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the engine clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMistakePolicy sets how erased mistakes are scored.
func WithMistakePolicy(p model.MistakePolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// Engine owns the state of one typing session. It is not safe for
// concurrent use.
type Engine struct {
	now    func() time.Time
	policy model.MistakePolicy

	target []rune
	typed  []rune

	state    State
	start    time.Time
	counters model.Counters
}

// New returns an engine for target.
func New(target string, opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		policy: model.ChargeOnCommission,
		target: []rune(target),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleKey classifies code and applies it. Unknown codes are dropped.
func (e *Engine) HandleKey(code rune) KeyResult {
	if e.state == Completed {
		return KeyIgnored
	}
	switch {
	case code == KeyBackspace || code == KeyDelete:
		return e.erase()
	case isPrintable(code):
		return e.enter(code)
	default:
		return KeyIgnored
	}
}

func (e *Engine) erase() KeyResult {
	pos := len(e.typed)
	if pos == 0 {
		return KeyIgnored
	}
	last := e.typed[pos-1]
	e.typed = e.typed[:pos-1]
	if e.policy == model.RefundOnCorrection && last != e.target[pos-1] && e.counters.Incorrect > 0 {
		e.counters.Incorrect--
	}
	return KeyErased
}

func (e *Engine) enter(code rune) KeyResult {
	if len(e.typed) >= len(e.target) {
		return KeyIgnored
	}
	now := e.now()
	if e.state == NotStarted {
		e.state = Running
		e.start = now
	}
	e.typed = append(e.typed, code)
	e.counters.Typed++
	e.counters.Timestamps = append(e.counters.Timestamps, now.Sub(e.start).Seconds())
	if code != e.target[len(e.typed)-1] {
		e.counters.Incorrect++
	}
	return KeyEntered
}

// Reset swaps in a new target and clears the buffer. Counters and the clock
// carry over.
func (e *Engine) Reset(target string) {
	e.target = []rune(target)
	e.typed = nil
}

// Complete marks the session finished. It has no effect before the first
// accepted keystroke.
func (e *Engine) Complete() {
	if e.state == Running {
		e.state = Completed
	}
}

// State returns the lifecycle stage.
func (e *Engine) State() State {
	return e.state
}

// Started reports whether the clock is running or has run.
func (e *Engine) Started() bool {
	return e.state != NotStarted
}

// Position is the number of characters in the typed buffer.
func (e *Engine) Position() int {
	return len(e.typed)
}

// Target returns the current target text.
func (e *Engine) Target() string {
	return string(e.target)
}

// TargetLen returns the target length in runes.
func (e *Engine) TargetLen() int {
	return len(e.target)
}

// Typed returns the typed buffer.
func (e *Engine) Typed() string {
	return string(e.typed)
}

// Covered reports whether the buffer spans the whole target.
func (e *Engine) Covered() bool {
	return len(e.typed) >= len(e.target)
}

// Elapsed returns time since the first keystroke, or zero before it.
func (e *Engine) Elapsed(now time.Time) time.Duration {
	if e.state == NotStarted {
		return 0
	}
	return now.Sub(e.start)
}

// Now reads the engine clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Counters returns a copy of the session counters.
func (e *Engine) Counters() model.Counters {
	return e.counters.Clone()
}

// Chars describes every target position for rendering.
func (e *Engine) Chars() []Char {
	out := make([]Char, len(e.target))
	for i, r := range e.target {
		out[i] = Char{Target: r}
		if i >= len(e.typed) {
			continue
		}
		out[i].Typed = e.typed[i]
		if e.typed[i] == r {
			out[i].State = CharCorrect
		} else {
			out[i].State = CharIncorrect
		}
	}
	return out
}

func isPrintable(code rune) bool {
	return (code >= 'A' && code <= 'Z') || (code >= 'a' && code <= 'z') || code == ' '
}
