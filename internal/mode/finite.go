package mode

import (
	"fmt"
	"time"

	"github.com/verte-zerg/typetrial/internal/model"
)

// Finite ends once a single passage is fully typed.
type Finite struct {
	src     TextSource
	words   int
	target  string
	elapsed time.Duration
	done    bool
}

// NewFinite returns a controller for a passage of words words.
func NewFinite(src TextSource, words int) *Finite {
	if words <= 0 {
		words = DefaultWords
	}
	return &Finite{src: src, words: words}
}

// Mode implements Controller.
func (f *Finite) Mode() model.Mode {
	return model.ModeFinite
}

// Start implements Controller.
func (f *Finite) Start(s Session) error {
	text, err := f.src.Text(f.words)
	if err != nil {
		return fmt.Errorf("failed to generate text: %w", err)
	}
	f.target = text
	s.Reset(text)
	return nil
}

// Advance implements Controller. The session ends exactly when the position
// reaches the end of the passage.
func (f *Finite) Advance(s Session, now time.Time) (bool, error) {
	if f.done {
		return true, nil
	}
	if s.Position() != s.TargetLen() {
		return false, nil
	}
	f.elapsed = s.Elapsed(now)
	f.done = true
	s.Complete()
	return true, nil
}

// Segments implements Controller.
func (f *Finite) Segments() (string, string) {
	return f.target, ""
}

// Elapsed implements Controller. It is the measured time at completion.
func (f *Finite) Elapsed() time.Duration {
	return f.elapsed
}

// Limit implements Controller.
func (f *Finite) Limit() time.Duration {
	return 0
}
