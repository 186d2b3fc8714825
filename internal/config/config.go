// Package config resolves tool settings from defaults, an optional TOML
// file and environment variables. Flags override on top, parsed by the
// caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds everything the CLI needs to run.
type Config struct {
	File    string `toml:"file"`    // storage file path
	Theme   string `toml:"theme"`   // classic, neon or mono
	Color   bool   `toml:"color"`   // colored output
	Verbose bool   `toml:"verbose"` // debug logging
}

// Default returns the built-in settings: a todos.json next to where the
// command runs, classic theme, color on.
func Default() Config {
	return Config{
		File:  "todos.json",
		Theme: "classic",
		Color: true,
	}
}

// Load resolves configuration in priority order: defaults, then the
// user config file when present, then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if p := userConfigFile(); p != "" {
		if _, err := toml.DecodeFile(p, &cfg); err != nil {
			return cfg, fmt.Errorf("load %s: %w", p, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// userConfigFile returns $XDG_CONFIG_HOME/todo/config.toml (or the
// ~/.config equivalent), empty when absent.
func userConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, "todo", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TODO_FILE")); v != "" {
		cfg.File = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_THEME")); v != "" {
		cfg.Theme = v
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = false
	}
}
