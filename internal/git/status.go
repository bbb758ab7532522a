package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/gw/internal/status"
)

// StatusOptions selects the status source.
type StatusOptions struct {
	// Remote compares the current branch with Base instead of reading
	// the working tree.
	Remote bool
	// IncludeDirPath prefixes each path with the client's directory.
	IncludeDirPath bool
	// Base is the remote-mode comparison target, DefaultBase when empty.
	Base string
}

// Status lists changed paths grouped by kind.
func (c *Client) Status(ctx context.Context, opts StatusOptions) (*status.Status, error) {
	prefix := ""
	if opts.IncludeDirPath {
		prefix = strings.TrimSuffix(c.dir, "/") + "/"
	}

	if !opts.Remote {
		out, err := c.output(ctx, "status", "--porcelain")
		if err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
		return status.ParseShort(out, prefix), nil
	}

	current, err := c.branches.Current(ctx)
	if err != nil {
		return nil, err
	}
	base := opts.Base
	if base == "" {
		base = DefaultBase
	}
	out, err := c.output(ctx, "diff", "--no-color", "--name-status", "-w", current.Name, base)
	if err != nil {
		return nil, fmt.Errorf("failed to compare %s with %s: %w", current.Name, base, err)
	}
	return status.ParseShort(out, prefix), nil
}
