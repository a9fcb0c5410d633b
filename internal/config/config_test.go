package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/typetrial/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Mode != nil || cfg.Scoring.Tolerance != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[session]
mode = "continuous"
time-limit = 45
segment-words = 8

[scoring]
tolerance = 0.5
mistakes = "refund"

[input]
block-until-first-key = false
poll-interval-ms = 20
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Mode == nil || *cfg.Session.Mode != "continuous" {
		t.Fatalf("unexpected mode: %v", cfg.Session.Mode)
	}
	if cfg.Session.TimeLimit == nil || *cfg.Session.TimeLimit != 45 {
		t.Fatalf("unexpected time limit: %v", cfg.Session.TimeLimit)
	}
	if cfg.Session.Words != nil {
		t.Fatalf("words should be unset")
	}
	if cfg.Scoring.Tolerance == nil || *cfg.Scoring.Tolerance != 0.5 {
		t.Fatalf("unexpected tolerance: %v", cfg.Scoring.Tolerance)
	}
	if cfg.Input.BlockUntilFirstKey == nil || *cfg.Input.BlockUntilFirstKey {
		t.Fatalf("unexpected block flag: %v", cfg.Input.BlockUntilFirstKey)
	}
	if cfg.Input.PollIntervalMs == nil || *cfg.Input.PollIntervalMs != 20 {
		t.Fatalf("unexpected poll interval: %v", cfg.Input.PollIntervalMs)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[session]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := DefaultConfigPath(); got != filepath.Join(dir, "typetrial", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultWordListPath(); got != filepath.Join(dir, "typetrial", "wordlist.txt") {
		t.Fatalf("unexpected word list path %q", got)
	}
}

func TestPromptModeReprompts(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("3\nfinite\n\n2\n"), &out)
	mode, err := p.Mode()
	if err != nil {
		t.Fatalf("mode: %v", err)
	}
	if mode != model.ModeContinuous {
		t.Fatalf("expected continuous, got %s", mode)
	}
	if n := strings.Count(out.String(), "[1] Finite"); n != 4 {
		t.Fatalf("expected 4 prompts, got %d", n)
	}
}

func TestPromptWordsDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out)
	n, err := p.Words(10)
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if n != 10 {
		t.Fatalf("expected default 10, got %d", n)
	}
	if !strings.Contains(out.String(), "default (10)") {
		t.Fatalf("prompt missing default: %q", out.String())
	}
}

func TestPromptTimeLimitRejectsInvalid(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("abc\n-5\n0\n1.5\n45\n"), &out)
	n, err := p.TimeLimit(30)
	if err != nil {
		t.Fatalf("time limit: %v", err)
	}
	if n != 45 {
		t.Fatalf("expected 45, got %d", n)
	}
	if c := strings.Count(out.String(), "time limit"); c != 5 {
		t.Fatalf("expected 5 prompts, got %d", c)
	}
}

func TestPromptLastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("1"), &bytes.Buffer{})
	if mode, err := p.Mode(); err != nil || mode != model.ModeFinite {
		t.Fatalf("expected finite, got %v (%v)", mode, err)
	}
}

func TestPromptClosedInput(t *testing.T) {
	p := NewPrompter(strings.NewReader("x\n"), &bytes.Buffer{})
	if _, err := p.Words(10); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}
