package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/typetrial/internal/model"
)

const modeMenu = `Welcome to the type trainer! Select your test type:
[1] Finite
[2] Continuous Timed
`

// ErrNoInput is returned when the input closes before a valid answer.
var ErrNoInput = errors.New("no input")

// Prompter asks configuration questions on a line-based stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading answers from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Mode asks for the test type until the answer is 1 or 2.
func (p *Prompter) Mode() (model.Mode, error) {
	for {
		answer, err := p.ask(modeMenu)
		if err != nil {
			return 0, err
		}
		switch answer {
		case "1":
			return model.ModeFinite, nil
		case "2":
			return model.ModeContinuous, nil
		}
	}
}

// Words asks for a word count, defaulting to def on a blank answer.
func (p *Prompter) Words(def int) (int, error) {
	return p.positiveInt(fmt.Sprintf("Enter the number of words to use, or hit enter for default (%d): ", def), def)
}

// TimeLimit asks for a time limit in seconds, defaulting to def on a blank answer.
func (p *Prompter) TimeLimit(def int) (int, error) {
	return p.positiveInt(fmt.Sprintf("Enter the time limit in seconds, or hit enter for default (%d): ", def), def)
}

// positiveInt reprompts on anything but a blank line or a positive integer.
func (p *Prompter) positiveInt(question string, def int) (int, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n <= 0 {
			continue
		}
		return n, nil
	}
}

func (p *Prompter) ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
