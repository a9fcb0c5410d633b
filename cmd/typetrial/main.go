// Package main provides the CLI entrypoint for typetrial.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typetrial/internal/config"
	"github.com/verte-zerg/typetrial/internal/generator"
	"github.com/verte-zerg/typetrial/internal/mode"
	"github.com/verte-zerg/typetrial/internal/model"
	"github.com/verte-zerg/typetrial/internal/session"
	"github.com/verte-zerg/typetrial/internal/stats"
	"github.com/verte-zerg/typetrial/internal/tui"
	"github.com/verte-zerg/typetrial/internal/wordlist"
)

const (
	defaultMode         = "finite"
	defaultWords        = 10
	defaultTimeLimit    = 30
	defaultSegmentWords = 10
	defaultCaps         = 0.0
	defaultMistakes     = "charge"
	defaultPoll         = 50 * time.Millisecond
)

var (
	practiceMode         string
	practiceWords        int
	practiceTimeLimit    int
	practiceSegmentWords int
	practiceCaps         float64
	practiceWordList     string
	practiceSeed         int64
	practiceTolerance    float64
	practiceMistakes     string
	practiceBlock        bool
	practicePoll         time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typetrial",
		Short:         "Terminal typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "test type: finite or continuous")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words in a finite test")
	rootCmd.Flags().IntVar(&practiceTimeLimit, "time", defaultTimeLimit, "time limit in seconds for a continuous test")
	rootCmd.Flags().IntVar(&practiceSegmentWords, "segment-words", defaultSegmentWords, "words per segment in a continuous test")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file, one word per line")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.Flags().Float64Var(&practiceTolerance, "tolerance", stats.DefaultTolerance, "coefficient of variation that maps to zero consistency")
	rootCmd.Flags().StringVar(&practiceMistakes, "mistakes", defaultMistakes, "mistake policy: charge or refund")
	rootCmd.Flags().BoolVar(&practiceBlock, "block-first-key", true, "wait for the first keystroke before ticking the timer")
	rootCmd.Flags().DurationVar(&practicePoll, "poll-interval", defaultPoll, "timer refresh interval")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Session.Mode)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Session.Words)
	applyIntConfig(cmd, "time", &practiceTimeLimit, fileCfg.Session.TimeLimit)
	applyIntConfig(cmd, "segment-words", &practiceSegmentWords, fileCfg.Session.SegmentWords)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Session.CapsPct)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Session.WordList)
	applyFloatConfig(cmd, "tolerance", &practiceTolerance, fileCfg.Scoring.Tolerance)
	applyStringConfig(cmd, "mistakes", &practiceMistakes, fileCfg.Scoring.Mistakes)
	applyBoolConfig(cmd, "block-first-key", &practiceBlock, fileCfg.Input.BlockUntilFirstKey)
	applyMillisConfig(cmd, "poll-interval", &practicePoll, fileCfg.Input.PollIntervalMs)

	if !cmd.Flags().Changed("mode") && fileCfg.Session.Mode == nil && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := promptSession(cmd); err != nil {
			return err
		}
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, source, err := wordlist.Resolve(cfg.WordListPath, config.DefaultWordListPath())
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	words = wordlist.FilterTypable(words)

	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewSource(cfg.Seed))
	}
	gen := generator.New(words, rnd, generator.WithCaps(cfg.CapsPct))
	ctrl, err := mode.New(cfg, gen)
	if err != nil {
		return err
	}
	engine := session.New("", session.WithMistakePolicy(cfg.Mistakes))

	m, err := tui.NewModel(engine, ctrl, tui.Options{Input: cfg.Input, Tolerance: cfg.Tolerance})
	if err != nil {
		return corpusError(err, source, gen.Size())
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	finalModel, ok := final.(*tui.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	result, err := finalModel.Result()
	if errors.Is(err, tui.ErrAborted) {
		logErrln("Session aborted.")
		return nil
	}
	if err != nil {
		return corpusError(err, source, gen.Size())
	}
	return stats.RenderReport(cmd.OutOrStdout(), result)
}

// promptSession asks for the mode and its count on an interactive terminal.
// Counts given on the command line are not asked for.
func promptSession(cmd *cobra.Command) error {
	p := config.NewPrompter(os.Stdin, cmd.OutOrStdout())
	selected, err := p.Mode()
	if err != nil {
		return fmt.Errorf("failed to read mode: %w", err)
	}
	practiceMode = selected.String()
	switch selected {
	case model.ModeFinite:
		if cmd.Flags().Changed("words") {
			return nil
		}
		practiceWords, err = p.Words(practiceWords)
	case model.ModeContinuous:
		if cmd.Flags().Changed("time") {
			return nil
		}
		practiceTimeLimit, err = p.TimeLimit(practiceTimeLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to read answer: %w", err)
	}
	return nil
}

func buildConfig() (model.Config, error) {
	selected, err := model.ParseMode(practiceMode)
	if err != nil {
		return model.Config{}, fmt.Errorf("--mode: %w", err)
	}
	policy, err := model.ParseMistakePolicy(practiceMistakes)
	if err != nil {
		return model.Config{}, fmt.Errorf("--mistakes: %w", err)
	}
	return model.Config{
		Mode:         selected,
		Words:        practiceWords,
		TimeLimit:    time.Duration(practiceTimeLimit) * time.Second,
		SegmentWords: practiceSegmentWords,
		CapsPct:      practiceCaps,
		WordListPath: practiceWordList,
		Seed:         practiceSeed,
		Tolerance:    practiceTolerance,
		Mistakes:     policy,
		Input: model.InputPolicy{
			BlockUntilFirstKey: practiceBlock,
			PollInterval:       practicePoll,
		},
	}, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.TimeLimit <= 0 {
		return fmt.Errorf("--time must be > 0")
	}
	if cfg.SegmentWords <= 0 {
		return fmt.Errorf("--segment-words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("--tolerance must be > 0")
	}
	if cfg.Input.PollInterval <= 0 {
		return fmt.Errorf("--poll-interval must be > 0")
	}
	return nil
}

func corpusError(err error, source string, size int) error {
	if !errors.Is(err, generator.ErrInsufficientCorpus) {
		return err
	}
	lines := []string{
		err.Error(),
		fmt.Sprintf("word list %s has %d usable words", source, size),
		"Lower --words/--segment-words or pass a larger list with --wordlist",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyMillisConfig(cmd *cobra.Command, name string, target *time.Duration, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = time.Duration(*value) * time.Millisecond
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typetrial configuration
# Uncomment a value to enable it. CLI flags override config values.
# Setting mode skips the interactive prompts.

[session]
# mode = %q          # finite or continuous
# words = %d                # Words in a finite test
# time-limit = %d           # Seconds in a continuous test
# segment-words = %d        # Words per continuous segment
# caps = %.2f             # Probability of capitalized first letter (0-1)
# wordlist = ""             # Word list file, one word per line

[scoring]
# tolerance = %.1f          # Coefficient of variation that maps to zero consistency
# mistakes = %q        # charge: mistakes stay counted; refund: erasing refunds them

[input]
# block-until-first-key = true
# poll-interval-ms = %d
`,
		defaultMode,
		defaultWords,
		defaultTimeLimit,
		defaultSegmentWords,
		defaultCaps,
		stats.DefaultTolerance,
		defaultMistakes,
		defaultPoll.Milliseconds(),
	)
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
