package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/log"
)

// Trigger identifies the command a hook runs after.
type Trigger string

const (
	TriggerCommit Trigger = "commit"
	TriggerSwitch Trigger = "switch"
	TriggerPull   Trigger = "pull"
	TriggerPush   Trigger = "push"
	TriggerManual Trigger = "hook"
)

// Context holds the values for placeholder substitution.
type Context struct {
	Root    string            // repository top-level directory
	Branch  string            // current branch, empty on a detached HEAD
	Trigger Trigger           // command that triggered the hook
	Env     map[string]string // custom values from --arg key=value
	DryRun  bool              // print the command instead of running it
}

// Repo returns the repository name used for {repo}.
func (c Context) Repo() string {
	if c.Root == "" {
		return ""
	}
	return filepath.Base(c.Root)
}

// Match is a hook selected to run.
type Match struct {
	Name string
	Hook config.Hook
}

// Select returns the hooks to run for trigger, sorted by name. With name
// set, only that hook is returned and its "on" list is ignored.
func Select(hooks map[string]config.Hook, name string, noHook bool, trigger Trigger) ([]Match, error) {
	if noHook {
		return nil, nil
	}

	if name != "" {
		hook, ok := hooks[name]
		if !ok {
			return nil, fmt.Errorf("unknown hook %q", name)
		}
		return []Match{{Name: name, Hook: hook}}, nil
	}

	var matches []Match
	for n, h := range hooks {
		if matchesTrigger(h, trigger) {
			matches = append(matches, Match{Name: n, Hook: h})
		}
	}
	slices.SortFunc(matches, func(a, b Match) int {
		return strings.Compare(a.Name, b.Name)
	})
	return matches, nil
}

// Names returns the configured hook names, sorted.
func Names(hooks map[string]config.Hook) []string {
	names := make([]string, 0, len(hooks))
	for n := range hooks {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// matchesTrigger reports whether trigger is in the hook's "on" list.
// "all" matches every trigger.
func matchesTrigger(h config.Hook, trigger Trigger) bool {
	for _, on := range h.On {
		if on == "all" || on == string(trigger) {
			return true
		}
	}
	return false
}

// Run runs matches in order and stops at the first failure. Hook output
// goes to out.
func Run(ctx context.Context, matches []Match, hc Context, out io.Writer) error {
	for _, m := range matches {
		if err := runHook(ctx, m, hc, out); err != nil {
			return fmt.Errorf("hook %q failed: %w", m.Name, err)
		}
	}
	return nil
}

// RunNonFatal runs all matches and only warns about failures.
func RunNonFatal(ctx context.Context, matches []Match, hc Context, out io.Writer) {
	for _, m := range matches {
		if err := runHook(ctx, m, hc, out); err != nil {
			log.FromContext(ctx).Warnf("hook %q failed: %v", m.Name, err)
		}
	}
}

func runHook(ctx context.Context, m Match, hc Context, out io.Writer) error {
	command := SubstitutePlaceholders(m.Hook.Command, hc)
	l := log.FromContext(ctx)

	if hc.DryRun {
		fmt.Fprintf(out, "[dry-run] %s: %s\n", m.Name, command)
		return nil
	}

	l.Printf("Running hook '%s'...\n", m.Name)
	l.Command("sh", "-c", command)

	c := exec.CommandContext(ctx, "sh", "-c", command)
	c.Dir = hc.Root
	c.Stdout = out
	c.Stderr = out
	c.Stdin = os.Stdin
	c.Env = append(os.Environ(),
		"GW_HOOK="+m.Name,
		"GW_TRIGGER="+string(hc.Trigger),
		"GW_ROOT="+hc.Root,
		"GW_BRANCH="+hc.Branch,
	)
	if err := c.Run(); err != nil {
		return err
	}

	if m.Hook.Description != "" {
		l.Printf("  ✓ %s\n", m.Hook.Description)
	}
	return nil
}

// ParseEnv parses "key=value" entries. Keys must not be empty.
func ParseEnv(entries []string) (map[string]string, error) {
	result := make(map[string]string, len(entries))
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid argument %q: key cannot be empty", e)
		}
		result[key] = value
	}
	return result, nil
}

// shellQuote wraps s in single quotes, e.g. it's becomes 'it'\''s'.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// envPlaceholderRegex matches {key}, {key:raw} and {key:-default}.
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_-]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders expands placeholders in command. Built-in names
// take precedence over --arg values of the same name.
func SubstitutePlaceholders(command string, hc Context) string {
	builtin := map[string]string{
		"root":    hc.Root,
		"branch":  hc.Branch,
		"repo":    hc.Repo(),
		"trigger": string(hc.Trigger),
	}

	return envPlaceholderRegex.ReplaceAllStringFunc(command, func(match string) string {
		sub := envPlaceholderRegex.FindStringSubmatch(match)
		key, raw, def := sub[1], sub[2] == ":raw", sub[3]

		value, ok := builtin[key]
		if !ok {
			value, ok = hc.Env[key]
		}
		if !ok {
			value = def
		}
		if raw {
			return value
		}
		return shellQuote(value)
	})
}
