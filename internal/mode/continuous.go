package mode

import (
	"fmt"
	"time"

	"github.com/verte-zerg/typetrial/internal/model"
)

// Continuous feeds rolling segments until a time limit passes.
type Continuous struct {
	src          TextSource
	limit        time.Duration
	segmentWords int

	current string
	next    string
	done    bool
}

// NewContinuous returns a controller that runs for limit.
func NewContinuous(src TextSource, limit time.Duration, segmentWords int) *Continuous {
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	if segmentWords <= 0 {
		segmentWords = DefaultSegmentWords
	}
	return &Continuous{src: src, limit: limit, segmentWords: segmentWords}
}

// Mode implements Controller.
func (c *Continuous) Mode() model.Mode {
	return model.ModeContinuous
}

// Start implements Controller. Both the first segment and its successor are
// generated up front.
func (c *Continuous) Start(s Session) error {
	current, err := c.segment()
	if err != nil {
		return err
	}
	next, err := c.segment()
	if err != nil {
		return err
	}
	c.current, c.next = current, next
	s.Reset(current)
	return nil
}

// Advance implements Controller. The deadline is checked before rotation, so
// a session ends on time whether or not the segment is finished.
func (c *Continuous) Advance(s Session, now time.Time) (bool, error) {
	if c.done {
		return true, nil
	}
	if s.Started() && s.Elapsed(now) >= c.limit {
		c.done = true
		s.Complete()
		return true, nil
	}
	if !s.Covered() {
		return false, nil
	}
	next, err := c.segment()
	if err != nil {
		return false, err
	}
	c.current, c.next = c.next, next
	s.Reset(c.current)
	return false, nil
}

// Segments implements Controller.
func (c *Continuous) Segments() (string, string) {
	return c.current, c.next
}

// Elapsed implements Controller. Scoring uses the nominal limit rather than
// the measured overrun.
func (c *Continuous) Elapsed() time.Duration {
	return c.limit
}

// Limit implements Controller.
func (c *Continuous) Limit() time.Duration {
	return c.limit
}

// segment returns a fresh segment with a trailing space so consecutive
// segments read as one stream.
func (c *Continuous) segment() (string, error) {
	text, err := c.src.Text(c.segmentWords)
	if err != nil {
		return "", fmt.Errorf("failed to generate segment: %w", err)
	}
	return text + " ", nil
}
