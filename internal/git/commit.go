package git

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Add stages paths. Paths are passed as separate arguments.
func (c *Client) Add(ctx context.Context, paths ...string) error {
	var list []string
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	if len(list) == 0 {
		return ErrNothingToAdd
	}
	if err := c.run(ctx, append([]string{"add", "--"}, list...)...); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}
	return nil
}

// Reset unstages everything ("git reset").
func (c *Client) Reset(ctx context.Context) error {
	if err := c.run(ctx, "reset"); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	return nil
}

// CommitOptions describes a commit.
type CommitOptions struct {
	// Message is added as -m unless Args already carry -m or --message.
	Message string
	// Args are extra git commit arguments, e.g. "--amend".
	Args []string
	// Files limits the commit to these paths.
	Files []string
}

// Commit records a commit and returns git's summary line.
func (c *Client) Commit(ctx context.Context, opts CommitOptions) (string, error) {
	if strings.TrimSpace(opts.Message) == "" && len(opts.Args) == 0 {
		return "", ErrEmptyCommit
	}

	args := []string{"commit"}
	if opts.Message != "" && !hasMessageArg(opts.Args) {
		args = append(args, "-m", opts.Message)
	}
	args = append(args, opts.Args...)
	if len(opts.Files) > 0 {
		args = append(args, "--")
		args = append(args, opts.Files...)
	}

	out, err := c.output(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	summary, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return summary, nil
}

func hasMessageArg(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-m" || a == "--message" || strings.HasPrefix(a, "--message=")
	})
}

// Pull fetches and merges branch from remote. branch defaults to the
// current branch.
func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	branch, err := c.branchOrCurrent(ctx, branch)
	if err != nil {
		return err
	}
	if err := c.run(ctx, "pull", remote, branch); err != nil {
		return fmt.Errorf("failed to pull %s/%s: %w", remote, branch, err)
	}
	c.branches.Invalidate()
	return nil
}

// Push pushes branch to remote. branch defaults to the current branch.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	branch, err := c.branchOrCurrent(ctx, branch)
	if err != nil {
		return err
	}
	if err := c.run(ctx, "push", remote, branch); err != nil {
		return fmt.Errorf("failed to push %s/%s: %w", remote, branch, err)
	}
	return nil
}

func (c *Client) branchOrCurrent(ctx context.Context, branch string) (string, error) {
	if branch != "" {
		return branch, nil
	}
	current, err := c.branches.Current(ctx)
	if err != nil {
		return "", err
	}
	return current.Name, nil
}
