// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how a session ends.
type Mode int

const (
	// ModeFinite ends once a fixed passage is fully typed.
	ModeFinite Mode = iota + 1
	// ModeContinuous ends once the time limit elapses.
	ModeContinuous
)

func (m Mode) String() string {
	switch m {
	case ModeFinite:
		return "finite"
	case ModeContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// ParseMode accepts a mode name or its menu number.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "finite":
		return ModeFinite, nil
	case "2", "continuous":
		return ModeContinuous, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want finite or continuous)", s)
}

// MistakePolicy controls whether erasing a mistake refunds its charge.
type MistakePolicy int

const (
	// ChargeOnCommission charges a mistake when it is typed and never reverses it.
	ChargeOnCommission MistakePolicy = iota
	// RefundOnCorrection refunds a charged mistake when it is erased.
	RefundOnCorrection
)

func (p MistakePolicy) String() string {
	if p == RefundOnCorrection {
		return "refund"
	}
	return "charge"
}

// ParseMistakePolicy parses "charge" or "refund".
func ParseMistakePolicy(s string) (MistakePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "charge":
		return ChargeOnCommission, nil
	case "refund":
		return RefundOnCorrection, nil
	}
	return 0, fmt.Errorf("unknown mistake policy %q (want charge or refund)", s)
}

// InputPolicy describes how the session loop waits for input.
type InputPolicy struct {
	// BlockUntilFirstKey suppresses ticks until the first accepted keystroke.
	BlockUntilFirstKey bool
	// PollInterval is the tick period once the session is running.
	PollInterval time.Duration
}

// Config defines practice settings.
type Config struct {
	Mode         Mode
	Words        int
	TimeLimit    time.Duration
	SegmentWords int
	CapsPct      float64
	WordListPath string
	Seed         int64
	Tolerance    float64
	Mistakes     MistakePolicy
	Input        InputPolicy
}

// Counters accumulate over a whole session.
type Counters struct {
	Typed      int
	Incorrect  int
	Timestamps []float64
}

// Clone returns a copy that does not share the timestamp slice.
func (c Counters) Clone() Counters {
	out := c
	out.Timestamps = append([]float64(nil), c.Timestamps...)
	return out
}

// Result holds the scores of a completed session.
type Result struct {
	Mode        Mode
	Elapsed     time.Duration
	RawWPM      int
	ActualWPM   int
	Accuracy    int
	Consistency float64
	Typed       int
	Incorrect   int
}
