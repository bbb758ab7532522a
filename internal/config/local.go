package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repository override file.
const LocalConfigFileName = ".gw.toml"

// LocalConfig holds per-repo configuration overrides from .gw.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	DefaultRemote string          `toml:"default_remote"`
	DefaultBase   string          `toml:"default_base"`
	Diff          LocalDiff       `toml:"diff"`
	Status        LocalStatus     `toml:"status"`
	Hooks         map[string]Hook `toml:"hooks"` // merged by name over the global hooks
}

// LocalDiff holds local diff overrides
type LocalDiff struct {
	IgnoreWhitespace *bool `toml:"ignore_whitespace"`
	WordDiff         *bool `toml:"word_diff"`
}

// LocalStatus holds local status overrides
type LocalStatus struct {
	FullPath *bool `toml:"full_path"`
}

// LoadLocal reads a per-repo .gw.toml config from the given repo path.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	md, err := toml.Decode(string(data), &local)
	if err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unsupported key %q in %s", undecoded[0].String(), configFile)
	}

	if strings.ContainsAny(local.DefaultRemote, " \t") {
		return nil, fmt.Errorf("invalid default_remote %q in %s", local.DefaultRemote, configFile)
	}
	if strings.ContainsAny(local.DefaultBase, " \t") {
		return nil, fmt.Errorf("invalid default_base %q in %s", local.DefaultBase, configFile)
	}
	if err := validateHooks(local.Hooks); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}

	return &local, nil
}

const defaultLocalConfig = `# gw per-repository overrides
# Unset keys inherit from the global config.

# default_remote = "origin"
# default_base = "main"

# [diff]
# ignore_whitespace = false
# word_diff = true

# [status]
# full_path = true

# [hooks.lint]
# command = "make lint"
# on = ["commit"]
`

// DefaultLocalConfig returns the commented template written by InitLocal.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// InitLocal writes a .gw.toml template into repoPath.
// If force is true, overwrites an existing file.
func InitLocal(repoPath string, force bool) (string, error) {
	path := filepath.Join(repoPath, LocalConfigFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("local config already exists: " + path)
		}
	}
	if err := os.WriteFile(path, []byte(defaultLocalConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}
