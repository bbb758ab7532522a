package git

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrInvalidBranchName rejects names outside [a-z0-9._-].
	ErrInvalidBranchName = errors.New("invalid branch name")
	// ErrNoCurrentBranch means HEAD is detached or the repository has no
	// commits yet.
	ErrNoCurrentBranch = errors.New("no current branch")
)

var illegalBranchChars = regexp.MustCompile(`[^a-z0-9\-._]`)

// Branch is one line of "git branch".
type Branch struct {
	Name     string
	Current  bool
	Detached bool
}

// Branches manages the local branch list of a client. The parsed listing
// is cached until Refresh or Invalidate, or until a branch-changing
// command runs.
type Branches struct {
	client *Client

	mu     sync.Mutex
	cached []Branch
	loaded bool
}

// List returns the cached branch list, loading it on first use.
func (b *Branches) List(ctx context.Context) ([]Branch, error) {
	b.mu.Lock()
	if b.loaded {
		list := append([]Branch(nil), b.cached...)
		b.mu.Unlock()
		return list, nil
	}
	b.mu.Unlock()
	return b.Refresh(ctx)
}

// Refresh reloads the branch list from git.
func (b *Branches) Refresh(ctx context.Context) ([]Branch, error) {
	out, err := b.client.output(ctx, "branch", "--no-color")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	list := parseBranches(out)

	b.mu.Lock()
	b.cached, b.loaded = list, true
	b.mu.Unlock()
	return append([]Branch(nil), list...), nil
}

// Invalidate drops the cached list.
func (b *Branches) Invalidate() {
	b.mu.Lock()
	b.cached, b.loaded = nil, false
	b.mu.Unlock()
}

// Exists reports whether a local branch called name exists.
func (b *Branches) Exists(ctx context.Context, name string) (bool, error) {
	list, err := b.List(ctx)
	if err != nil {
		return false, err
	}
	for _, br := range list {
		if !br.Detached && br.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Current returns the checked-out branch. It always reloads the list.
func (b *Branches) Current(ctx context.Context) (Branch, error) {
	list, err := b.Refresh(ctx)
	if err != nil {
		return Branch{}, err
	}
	for _, br := range list {
		if br.Current {
			if br.Detached {
				return br, fmt.Errorf("%w: %s", ErrNoCurrentBranch, br.Name)
			}
			return br, nil
		}
	}
	return Branch{}, ErrNoCurrentBranch
}

// Create adds a branch at HEAD unless it already exists and optionally
// checks it out.
func (b *Branches) Create(ctx context.Context, name string, switchTo bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	exists, err := b.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		if err := b.client.run(ctx, "branch", name); err != nil {
			return fmt.Errorf("failed to create branch %s: %w", name, err)
		}
		b.Invalidate()
	}
	if switchTo {
		return b.Switch(ctx, name)
	}
	return nil
}

// Switch checks out name if it is not already current.
func (b *Branches) Switch(ctx context.Context, name string) error {
	current, err := b.Current(ctx)
	if err == nil && current.Name == name {
		return nil
	}
	if err != nil && !errors.Is(err, ErrNoCurrentBranch) {
		return err
	}
	if err := b.client.run(ctx, "checkout", name); err != nil {
		return fmt.Errorf("failed to switch to %s: %w", name, err)
	}
	b.Invalidate()
	return nil
}

// Rename renames from to to. An empty from renames the current branch.
func (b *Branches) Rename(ctx context.Context, to, from string) error {
	if err := ValidateName(to); err != nil {
		return err
	}
	if from == "" {
		current, err := b.Current(ctx)
		if err != nil {
			return err
		}
		from = current.Name
	}
	if err := b.client.run(ctx, "branch", "-m", from, to); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", from, to, err)
	}
	b.Invalidate()
	return nil
}

// Match fuzzy-matches query against the local branch names, best match
// first.
func (b *Branches) Match(ctx context.Context, query string) ([]Branch, error) {
	list, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	var named []Branch
	for _, br := range list {
		if !br.Detached {
			named = append(named, br)
		}
	}
	matches := fuzzy.FindFrom(query, branchSource(named))
	out := make([]Branch, 0, len(matches))
	for _, m := range matches {
		out = append(out, named[m.Index])
	}
	return out, nil
}

// branchSource implements fuzzy.Source over branch names.
type branchSource []Branch

func (s branchSource) String(i int) string { return s[i].Name }
func (s branchSource) Len() int            { return len(s) }

// ValidateName accepts only lowercase letters, digits, '-', '.' and '_'.
func ValidateName(name string) error {
	if name == "" || illegalBranchChars.MatchString(name) {
		return fmt.Errorf("%w %q: only a-z, 0-9, -, _ and . allowed", ErrInvalidBranchName, name)
	}
	return nil
}

// parseBranches parses "git branch" output. "* " marks the current
// branch, "+ " a branch checked out in another worktree.
func parseBranches(out string) []Branch {
	var list []Branch
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		var br Branch
		switch {
		case strings.HasPrefix(line, "* "):
			br.Current = true
			line = line[2:]
		case strings.HasPrefix(line, "+ "):
			line = line[2:]
		}
		br.Name = strings.TrimSpace(line)
		br.Detached = strings.HasPrefix(br.Name, "(") && strings.HasSuffix(br.Name, ")")
		list = append(list, br)
	}
	return list
}
