package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/gw/internal/diff"
)

// DefaultBase is the comparison target when none is given.
const DefaultBase = "master"

// DiffOptions selects what Diff compares.
type DiffOptions struct {
	// From is the first revision. Empty compares the working tree
	// against the index and ignores To.
	From string
	// To is the second revision, DefaultBase when empty.
	To string
	// Path limits the comparison to one path.
	Path string
	// Cached compares the index against HEAD instead of the working
	// tree against the index. Only used when From is empty.
	Cached bool
	// IgnoreWhitespace passes -w.
	IgnoreWhitespace bool
}

func (o DiffOptions) args(extra ...string) []string {
	args := append([]string{"diff", "--no-color", "--no-ext-diff"}, extra...)
	if o.IgnoreWhitespace {
		args = append(args, "-w")
	}
	if o.Cached && o.From == "" {
		args = append(args, "--cached")
	}
	if o.From != "" {
		to := o.To
		if to == "" {
			to = DefaultBase
		}
		args = append(args, o.From, to)
	}
	if o.Path != "" {
		args = append(args, "--", o.Path)
	}
	return args
}

// Diff runs git diff and parses the result. A nil set with a nil error
// means the comparison ran and found no differences.
func (c *Client) Diff(ctx context.Context, opts DiffOptions) (*diff.Set, error) {
	out, err := c.output(ctx, opts.args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to diff: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, nil
	}
	set, err := diff.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}
	return set, nil
}

// DiffNameStatus returns the raw "--name-status" listing for opts.
func (c *Client) DiffNameStatus(ctx context.Context, opts DiffOptions) (string, error) {
	out, err := c.output(ctx, opts.args("--name-status")...)
	if err != nil {
		return "", fmt.Errorf("failed to diff: %w", err)
	}
	return strings.TrimSpace(out), nil
}
