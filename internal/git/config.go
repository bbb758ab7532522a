package git

import (
	"context"
	"fmt"

	"github.com/raphi011/gw/internal/gitconfig"
)

// Config reads the effective configuration of the repository.
func (c *Client) Config(ctx context.Context) (*gitconfig.Tree, error) {
	out, err := c.output(ctx, "config", "--list")
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}
	return gitconfig.Parse(out), nil
}
