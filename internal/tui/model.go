// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetrial/internal/mode"
	"github.com/verte-zerg/typetrial/internal/model"
	"github.com/verte-zerg/typetrial/internal/session"
	"github.com/verte-zerg/typetrial/internal/stats"
)

// ErrAborted is returned when the user quits before the session completes.
var ErrAborted = errors.New("session aborted")

const (
	introMsg            = "Type the following as quickly as possible:"
	defaultPollInterval = 50 * time.Millisecond
)

var (
	introStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	timerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type tickMsg time.Time

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// Options configures the typing UI.
type Options struct {
	Palette   Palette
	Input     model.InputPolicy
	Tolerance float64
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	engine  *session.Engine
	ctrl    mode.Controller
	palette Palette
	input   model.InputPolicy
	tol     float64

	help help.Model
	bar  progress.Model

	width  int
	height int

	ticking bool
	done    bool
	aborted bool
	err     error
	result  model.Result
}

// NewModel starts ctrl on engine and returns the UI for it. Errors from
// generating the first text are returned before any terminal setup.
func NewModel(engine *session.Engine, ctrl mode.Controller, opts Options) (*Model, error) {
	if err := ctrl.Start(engine); err != nil {
		return nil, err
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}
	if opts.Input.PollInterval <= 0 {
		opts.Input.PollInterval = defaultPollInterval
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = stats.DefaultTolerance
	}
	return &Model{
		engine:  engine,
		ctrl:    ctrl,
		palette: opts.Palette,
		input:   opts.Input,
		tol:     opts.Tolerance,
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.input.BlockUntilFirstKey {
		return nil
	}
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = contentWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.aborted = true
			return m, tea.Quit
		}
		return m, m.handleKey(msg)
	case tickMsg:
		m.ticking = false
		if m.done {
			return m, nil
		}
		if cmd := m.advance(); cmd != nil {
			return m, cmd
		}
		return m, m.tick()
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.done || msg.Paste {
		return nil
	}
	for _, code := range keyCodes(msg) {
		m.engine.HandleKey(code)
		if cmd := m.advance(); cmd != nil {
			return cmd
		}
	}
	if m.engine.Started() && !m.ticking {
		return m.tick()
	}
	return nil
}

// advance lets the controller rotate or finish the session.
func (m *Model) advance() tea.Cmd {
	done, err := m.ctrl.Advance(m.engine, m.engine.Now())
	if err != nil {
		m.err = err
		return tea.Quit
	}
	if !done {
		return nil
	}
	m.done = true
	m.result = stats.Compute(m.ctrl.Mode(), m.engine.Counters(), m.ctrl.Elapsed(), m.tol)
	return tea.Quit
}

func (m *Model) tick() tea.Cmd {
	m.ticking = true
	return tea.Tick(m.input.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Result returns the scores once the program has exited.
func (m *Model) Result() (model.Result, error) {
	if m.err != nil {
		return model.Result{}, m.err
	}
	if m.aborted || !m.done {
		return model.Result{}, ErrAborted
	}
	return m.result, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	_, next := m.ctrl.Segments()
	width := contentWidth(m.width)

	lines := []string{introStyle.Render(introMsg), ""}
	lines = append(lines, wrapStyledRunes(buildStyledRunes(m.engine.Chars(), m.palette), width))
	if next != "" {
		lines = append(lines, wrapStyledRunes(plainStyledRunes(next, m.palette), width))
	}
	lines = append(lines, "", timerStyle.Render(m.renderTimer()))
	if limit := m.ctrl.Limit(); limit > 0 {
		lines = append(lines, m.bar.ViewAs(m.fraction(limit)))
	}
	lines = append(lines, "", m.help.View(keys))
	content := strings.Join(lines, "\n")

	if m.width == 0 || m.height == 0 {
		return content
	}
	content = lipgloss.NewStyle().Width(width).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderTimer never reports time before the first keystroke.
func (m *Model) renderTimer() string {
	elapsed := m.engine.Elapsed(m.engine.Now())
	return fmt.Sprintf("Time: %.2f s", elapsed.Seconds())
}

func (m *Model) fraction(limit time.Duration) float64 {
	f := float64(m.engine.Elapsed(m.engine.Now())) / float64(limit)
	if f > 1 {
		return 1
	}
	return f
}

// keyCodes maps a key event to engine key codes. Terminals send either ^H
// (BS) or DEL for the backspace key; Bubble Tea reports DEL as KeyBackspace.
// Meta-modified keys are not keystrokes.
func keyCodes(msg tea.KeyMsg) []rune {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyCtrlH:
		return []rune{session.KeyBackspace}
	case tea.KeyBackspace:
		return []rune{session.KeyDelete}
	case tea.KeySpace:
		return []rune{' '}
	case tea.KeyRunes:
		return msg.Runes
	default:
		return nil
	}
}

func contentWidth(total int) int {
	if total <= 0 {
		return 0
	}
	w := int(float64(total) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}
