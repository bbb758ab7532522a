package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	// ErrDirNotReadable is returned by New when the working directory
	// cannot be opened.
	ErrDirNotReadable = errors.New("directory not readable")
	// ErrBadVersion means the binary did not answer "git version X.Y.Z".
	ErrBadVersion = errors.New("unexpected git version output")
	// ErrNothingToAdd is returned by Add without paths.
	ErrNothingToAdd = errors.New("no files to add")
	// ErrEmptyCommit is returned by Commit without a message or arguments.
	ErrEmptyCommit = errors.New("a message or commit arguments are required")
)

var versionPattern = regexp.MustCompile(`^git version ([0-9.]+)`)

// Option configures a Client.
type Option func(*Client)

// WithBinary uses the given git binary instead of the one found in PATH.
func WithBinary(path string) Option {
	return func(c *Client) {
		c.binary = path
	}
}

// WithRunner replaces the subprocess runner. The binary is not resolved
// when a runner is supplied.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// Client runs git commands against one working directory.
type Client struct {
	dir      string
	binary   string
	version  string
	runner   Runner
	response *Response
	branches *Branches
}

// New validates dir, resolves the git binary and probes its version.
func New(ctx context.Context, dir string, opts ...Option) (*Client, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirNotReadable, err)
	}
	info, err := f.Stat()
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirNotReadable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirNotReadable, dir)
	}

	c := &Client{dir: dir, response: &Response{}}
	for _, opt := range opts {
		opt(c)
	}

	if c.runner == nil {
		bin, err := lookBinary(c.binary)
		if err != nil {
			return nil, err
		}
		c.binary = bin
		c.runner = NewExecRunner(bin)
	}

	out, err := c.output(ctx, "--version")
	if err != nil {
		return nil, fmt.Errorf("failed to probe git version: %w", err)
	}
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(out))
	if m == nil {
		return nil, fmt.Errorf("%w: %q from %s", ErrBadVersion, strings.TrimSpace(out), c.binary)
	}
	c.version = m[1]
	c.branches = &Branches{client: c}
	return c, nil
}

// Dir returns the working directory.
func (c *Client) Dir() string {
	return c.dir
}

// Binary returns the resolved git binary path. Empty when a custom runner
// was supplied without WithBinary.
func (c *Client) Binary() string {
	return c.binary
}

// Version returns the probed version, e.g. "2.43.0".
func (c *Client) Version() string {
	return c.version
}

// Response returns the session's command record.
func (c *Client) Response() *Response {
	return c.response
}

// Branches returns the branch manager bound to this client.
func (c *Client) Branches() *Branches {
	return c.branches
}

// output runs git and returns stdout. Every invocation is recorded.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, c.dir, args...)
	c.response.record(Completed{
		Args:   append([]string(nil), args...),
		Stdout: res.Stdout,
		Stderr: res.Stderr,
		Err:    err,
	})
	if err != nil {
		return res.Stdout, err
	}
	return res.Stdout, nil
}

// run is output without stdout.
func (c *Client) run(ctx context.Context, args ...string) error {
	_, err := c.output(ctx, args...)
	return err
}

// Toplevel returns the root of the working tree containing the client's
// directory.
func (c *Client) Toplevel(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not inside a git working tree: %w", err)
	}
	return strings.TrimSpace(out), nil
}
