package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidThemes       = []string{"default", "dracula", "nord"}
	ValidHookTriggers = []string{"commit", "switch", "pull", "push", "all"}
)

// ValidateTheme validates a theme name against ValidThemes.
// Exported for use in CLI flag validation.
func ValidateTheme(theme string) error {
	return validateEnum(theme, "ui.theme", ValidThemes)
}

func (c *Config) validate() error {
	if err := ValidateTheme(c.UI.Theme); err != nil {
		return err
	}
	if err := validateGitBinary(c.GitBinary); err != nil {
		return err
	}
	if strings.ContainsAny(c.DefaultRemote, " \t") {
		return fmt.Errorf("invalid default_remote %q: must not contain whitespace", c.DefaultRemote)
	}
	if strings.ContainsAny(c.DefaultBase, " \t") {
		return fmt.Errorf("invalid default_base %q: must not contain whitespace", c.DefaultBase)
	}
	return validateHooks(c.Hooks)
}

// validateHooks requires a command per hook and known triggers.
func validateHooks(hooks map[string]Hook) error {
	names := make([]string, 0, len(hooks))
	for name := range hooks {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		h := hooks[name]
		if strings.TrimSpace(h.Command) == "" {
			return fmt.Errorf("hook %q: command must not be empty", name)
		}
		for _, on := range h.On {
			if err := validateEnum(on, "hooks."+name+".on", ValidHookTriggers); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateGitBinary accepts a bare command name, an absolute path or a
// path starting with ~.
func validateGitBinary(bin string) error {
	if bin == "" || bin[0] == '~' || filepath.IsAbs(bin) {
		return nil
	}
	if strings.ContainsRune(bin, filepath.Separator) {
		return fmt.Errorf("git_binary must be a command name, absolute or start with ~, got: %q", bin)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
