package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "GW_CONFIG"

// DiffConfig holds diff-related configuration
type DiffConfig struct {
	IgnoreWhitespace bool `toml:"ignore_whitespace" json:"ignore_whitespace"` // pass -w to git diff
	WordDiff         bool `toml:"word_diff" json:"word_diff"`                 // highlight changed words
}

// StatusConfig holds status-related configuration
type StatusConfig struct {
	FullPath bool `toml:"full_path" json:"full_path"` // prefix paths with the repository directory
}

// UIConfig holds rendering configuration
type UIConfig struct {
	Theme string `toml:"theme" json:"theme"` // "default", "dracula" or "nord"
}

// Hook is a shell command run after a gw command, see package hooks.
type Hook struct {
	Command     string   `toml:"command" json:"command"`
	Description string   `toml:"description" json:"description,omitempty"`
	On          []string `toml:"on" json:"on,omitempty"` // triggers; empty = only run by name
}

// Config holds the gw configuration
type Config struct {
	GitBinary     string          `toml:"git_binary" json:"git_binary"` // empty = git from PATH
	DefaultRemote string          `toml:"default_remote" json:"default_remote"`
	DefaultBase   string          `toml:"default_base" json:"default_base"`
	Diff          DiffConfig      `toml:"diff" json:"diff"`
	Status        StatusConfig    `toml:"status" json:"status"`
	UI            UIConfig        `toml:"ui" json:"ui"`
	Hooks         map[string]Hook `toml:"hooks" json:"hooks,omitempty"` // parsed from [hooks.NAME] tables
}

// Defaults for unset values.
const (
	DefaultRemote = "origin"
	DefaultBase   = "master"
	DefaultTheme  = "default"
)

// Default returns the default configuration
func Default() Config {
	return Config{
		DefaultRemote: DefaultRemote,
		DefaultBase:   DefaultBase,
		Diff: DiffConfig{
			IgnoreWhitespace: true,
		},
		UI: UIConfig{
			Theme: DefaultTheme,
		},
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location: $GW_CONFIG, or
// ~/.config/gw/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandPath(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gw", "config.toml"), nil
}

// Load reads the config from Path.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Keys missing from the file keep
// their defaults; unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}

	if cfg.GitBinary != "" {
		expanded, err := expandPath(cfg.GitBinary)
		if err != nil {
			return Default(), fmt.Errorf("expand git_binary: %w", err)
		}
		cfg.GitBinary = expanded
	}

	// Use defaults for empty values
	if cfg.DefaultRemote == "" {
		cfg.DefaultRemote = DefaultRemote
	}
	if cfg.DefaultBase == "" {
		cfg.DefaultBase = DefaultBase
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = DefaultTheme
	}

	return cfg, nil
}

const defaultConfig = `# gw configuration

# Git binary to drive. Empty uses "git" from PATH.
# Absolute path or ~/...
# git_binary = "/usr/local/bin/git"

# Remote used by "gw pull" and "gw push" when none is given
default_remote = "origin"

# Comparison target for "gw diff <from>" and "gw status --remote"
default_base = "master"

[diff]
# Ignore whitespace changes (git diff -w)
ignore_whitespace = true
# Highlight changed words inside modified lines
word_diff = false

[status]
# Prefix every path with the repository directory
full_path = false

[ui]
# Color theme: "default", "dracula" or "nord"
theme = "default"

# Hooks run shell commands after gw commands succeed.
# Hooks with "on" run automatically for the listed commands: "commit",
# "switch", "pull", "push" or "all". Hooks without "on" only run via
# "gw hook NAME". --no-hook skips them.
#
# Placeholders (shell-quoted): {root} {branch} {repo} {trigger}
# Custom values from "gw hook NAME --arg key=value": {key}, {key:-default},
# {key:raw} for the unquoted value.
#
# [hooks.test]
# command = "go test ./..."
# description = "Run the tests"
# on = ["pull"]

# Per-repository overrides live in .gw.toml at the repository root.
# Only default_remote, default_base, [diff], [status] and [hooks] can be
# overridden there.
`

// DefaultConfig returns the commented template written by Init.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path.
// If force is true, overwrites existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}
