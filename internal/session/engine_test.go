package session

import (
	"testing"
	"time"

	"github.com/verte-zerg/typetrial/internal/model"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestEngine(target string, opts ...Option) (*Engine, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	opts = append([]Option{WithClock(clock.now)}, opts...)
	return New(target, opts...), clock
}

func typeString(e *Engine, s string) {
	for _, r := range s {
		e.HandleKey(r)
	}
}

func TestLazyClockStart(t *testing.T) {
	e, clock := newTestEngine("ab")
	if e.State() != NotStarted || e.Started() {
		t.Fatalf("expected not started, got %s", e.State())
	}
	clock.advance(5 * time.Second)
	if e.Elapsed(clock.now()) != 0 {
		t.Fatalf("expected zero elapsed before start")
	}
	e.HandleKey('a')
	if e.State() != Running {
		t.Fatalf("expected running, got %s", e.State())
	}
	clock.advance(1500 * time.Millisecond)
	if got := e.Elapsed(clock.now()); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s elapsed, got %v", got)
	}
}

func TestIgnoredKeysDoNotStartClock(t *testing.T) {
	e, _ := newTestEngine("ab")
	for _, code := range []rune{'1', '\t', '\n', '.', KeyBackspace, 0x1b} {
		if res := e.HandleKey(code); res != KeyIgnored {
			t.Fatalf("expected %q to be ignored, got %v", code, res)
		}
	}
	if e.Started() || e.Position() != 0 || e.Counters().Typed != 0 {
		t.Fatalf("ignored keys changed state")
	}
}

func TestEnterCountsMistakes(t *testing.T) {
	e, clock := newTestEngine("cat dog")
	e.HandleKey('c')
	clock.advance(200 * time.Millisecond)
	e.HandleKey('x')
	clock.advance(300 * time.Millisecond)
	e.HandleKey('t')

	c := e.Counters()
	if c.Typed != 3 || c.Incorrect != 1 {
		t.Fatalf("expected typed=3 incorrect=1, got %+v", c)
	}
	want := []float64{0, 0.2, 0.5}
	for i, ts := range want {
		if diff := c.Timestamps[i] - ts; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("timestamp %d: expected %v, got %v", i, ts, c.Timestamps[i])
		}
	}
	if e.Typed() != "cxt" || e.Position() != 3 {
		t.Fatalf("unexpected buffer %q at %d", e.Typed(), e.Position())
	}
}

func TestBackspaceKeepsCounters(t *testing.T) {
	e, _ := newTestEngine("abc")
	typeString(e, "ax")
	if res := e.HandleKey(KeyBackspace); res != KeyErased {
		t.Fatalf("expected erase, got %v", res)
	}
	typeString(e, "b")
	c := e.Counters()
	if c.Typed != 3 || c.Incorrect != 1 {
		t.Fatalf("expected typed=3 incorrect=1 after correction, got %+v", c)
	}
	if e.Typed() != "ab" {
		t.Fatalf("unexpected buffer %q", e.Typed())
	}
	for _, ch := range e.Chars()[:2] {
		if ch.State != CharCorrect {
			t.Fatalf("expected visible buffer to be correct, got %+v", ch)
		}
	}
}

func TestBackspaceAtZeroIgnored(t *testing.T) {
	e, _ := newTestEngine("abc")
	if res := e.HandleKey(KeyDelete); res != KeyIgnored {
		t.Fatalf("expected ignore at position 0, got %v", res)
	}
	typeString(e, "a")
	e.HandleKey(KeyDelete)
	e.HandleKey(KeyDelete)
	if e.Position() != 0 {
		t.Fatalf("position went below zero: %d", e.Position())
	}
}

func TestPositionBoundedByTarget(t *testing.T) {
	e, _ := newTestEngine("ab")
	typeString(e, "abcd")
	if e.Position() != 2 {
		t.Fatalf("expected position 2, got %d", e.Position())
	}
	if c := e.Counters(); c.Typed != 2 {
		t.Fatalf("keys past the target should not count, got %+v", c)
	}
	if !e.Covered() {
		t.Fatalf("expected covered buffer")
	}
}

func TestRefundPolicy(t *testing.T) {
	e, _ := newTestEngine("abc", WithMistakePolicy(model.RefundOnCorrection))
	typeString(e, "ax")
	e.HandleKey(KeyBackspace)
	typeString(e, "b")
	c := e.Counters()
	if c.Typed != 3 || c.Incorrect != 0 {
		t.Fatalf("expected refunded mistake, got %+v", c)
	}
	e.HandleKey(KeyBackspace)
	if c := e.Counters(); c.Incorrect != 0 {
		t.Fatalf("erasing a correct char must not refund, got %+v", c)
	}
}

func TestResetKeepsCountersAndClock(t *testing.T) {
	e, clock := newTestEngine("ab ")
	typeString(e, "ab ")
	clock.advance(time.Second)
	e.Reset("cd ")
	if e.Position() != 0 || e.Target() != "cd " {
		t.Fatalf("expected fresh segment, got %q at %d", e.Target(), e.Position())
	}
	if c := e.Counters(); c.Typed != 3 {
		t.Fatalf("counters reset on rotation: %+v", c)
	}
	if e.Elapsed(clock.now()) != time.Second {
		t.Fatalf("clock reset on rotation")
	}
}

func TestCompleteStopsInput(t *testing.T) {
	e, _ := newTestEngine("abc")
	e.Complete()
	if e.State() != NotStarted {
		t.Fatalf("complete before start should be ignored")
	}
	typeString(e, "a")
	e.Complete()
	if e.State() != Completed {
		t.Fatalf("expected completed, got %s", e.State())
	}
	if res := e.HandleKey('b'); res != KeyIgnored {
		t.Fatalf("expected keys to be ignored after completion")
	}
}

func TestCountersCopyIsIsolated(t *testing.T) {
	e, _ := newTestEngine("abc")
	typeString(e, "a")
	c := e.Counters()
	c.Timestamps[0] = 99
	if e.Counters().Timestamps[0] == 99 {
		t.Fatalf("counters copy shares timestamps")
	}
}

func TestChars(t *testing.T) {
	e, _ := newTestEngine("ab c")
	typeString(e, "ax")
	chars := e.Chars()
	if chars[0].State != CharCorrect || chars[1].State != CharIncorrect || chars[2].State != CharUntyped {
		t.Fatalf("unexpected states: %+v", chars)
	}
	if chars[1].Typed != 'x' || chars[1].Target != 'b' {
		t.Fatalf("unexpected incorrect char: %+v", chars[1])
	}
}
