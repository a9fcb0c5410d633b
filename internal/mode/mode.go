// Package mode drives typing sessions under finite and timed rules.
package mode

import (
	"fmt"
	"time"

	"github.com/verte-zerg/typetrial/internal/model"
)

// Defaults used when a count or limit is not configured.
const (
	DefaultWords        = 10
	DefaultTimeLimit    = 30 * time.Second
	DefaultSegmentWords = 10
)

// Session is the engine surface a controller needs.
type Session interface {
	Reset(target string)
	Complete()
	Started() bool
	Position() int
	TargetLen() int
	Covered() bool
	Elapsed(now time.Time) time.Duration
}

// TextSource produces target text of n words.
type TextSource interface {
	Text(n int) (string, error)
}

// Controller decides what is typed and when a session ends.
type Controller interface {
	// Mode identifies the controller.
	Mode() model.Mode
	// Start loads the first segment into s.
	Start(s Session) error
	// Advance runs after every key and every tick. It returns true once the
	// session has been completed.
	Advance(s Session, now time.Time) (bool, error)
	// Segments returns the text being typed and the upcoming text, if any.
	Segments() (current, next string)
	// Elapsed is the duration used for scoring once the session is done.
	Elapsed() time.Duration
	// Limit is the configured time limit, or zero when there is none.
	Limit() time.Duration
}

// New builds the controller for cfg.
func New(cfg model.Config, src TextSource) (Controller, error) {
	switch cfg.Mode {
	case model.ModeFinite:
		return NewFinite(src, cfg.Words), nil
	case model.ModeContinuous:
		return NewContinuous(src, cfg.TimeLimit, cfg.SegmentWords), nil
	default:
		return nil, fmt.Errorf("unsupported mode %d", cfg.Mode)
	}
}
