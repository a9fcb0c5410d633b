// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Session SessionConfig `toml:"session"`
	Scoring ScoringConfig `toml:"scoring"`
	Input   InputConfig   `toml:"input"`
}

// SessionConfig maps session-related settings.
type SessionConfig struct {
	Mode         *string  `toml:"mode"`
	Words        *int     `toml:"words"`
	TimeLimit    *int     `toml:"time-limit"`
	SegmentWords *int     `toml:"segment-words"`
	CapsPct      *float64 `toml:"caps"`
	WordList     *string  `toml:"wordlist"`
}

// ScoringConfig maps scoring settings.
type ScoringConfig struct {
	Tolerance *float64 `toml:"tolerance"`
	Mistakes  *string  `toml:"mistakes"`
}

// InputConfig maps input polling settings.
type InputConfig struct {
	BlockUntilFirstKey *bool `toml:"block-until-first-key"`
	PollIntervalMs     *int  `toml:"poll-interval-ms"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
