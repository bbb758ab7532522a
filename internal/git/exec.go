package git

import (
	"context"
	"strings"

	"github.com/raphi011/gw/internal/cmd"
)

// Runner executes git with the given arguments in dir.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (cmd.Result, error)
}

// ExecRunner runs the configured git binary as a subprocess.
type ExecRunner struct {
	GitBin string
}

// NewExecRunner returns a runner for gitBin, defaulting to "git".
func NewExecRunner(gitBin string) *ExecRunner {
	if strings.TrimSpace(gitBin) == "" {
		gitBin = "git"
	}
	return &ExecRunner{GitBin: gitBin}
}

// Run executes the binary with -C dir prepended.
func (e *ExecRunner) Run(ctx context.Context, dir string, args ...string) (cmd.Result, error) {
	return cmd.Capture(ctx, "", e.GitBin, gitArgs(dir, args)...)
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}
