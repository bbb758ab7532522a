package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/history"
	"github.com/raphi011/gw/internal/log"
)

type workDirKey struct{}

// withWorkDir stores the directory commands operate on.
func withWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// workDirFromContext returns the stored directory, or the process
// working directory.
func workDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	dir, _ := os.Getwd()
	return dir
}

// resolveDir applies -C relative to the working directory.
func resolveDir(ctx context.Context, dir string) string {
	if dir == "" {
		return workDirFromContext(ctx)
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(workDirFromContext(ctx), dir)
}

type historyPathKey struct{}

// withHistoryPath overrides where branch history is kept.
func withHistoryPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, historyPathKey{}, path)
}

func historyPathFromContext(ctx context.Context) string {
	if p, ok := ctx.Value(historyPathKey{}).(string); ok && p != "" {
		return p
	}
	return history.DefaultPath()
}

// recordSwitch notes a switch from one branch to another in the history.
// Failures only warn.
func recordSwitch(ctx context.Context, r *repo, from, to string) {
	if err := history.RecordSwitch(r.root, from, to, historyPathFromContext(ctx)); err != nil {
		log.FromContext(ctx).Warnf("failed to record branch history: %v", err)
	}
}

// repo bundles the git client and the effective config of the repository
// a command runs in.
type repo struct {
	client *git.Client
	cfg    *config.Config
	root   string
}

// resolverFromContext returns the stored resolver, or one backed by the
// default config.
func resolverFromContext(ctx context.Context) *config.ConfigResolver {
	if r := config.ResolverFromContext(ctx); r != nil {
		return r
	}
	def := config.Default()
	return config.NewResolver(&def)
}

// openRepo creates a client for the working directory and merges the
// repository's .gw.toml into the global config.
func openRepo(ctx context.Context) (*repo, error) {
	resolver := resolverFromContext(ctx)
	global := resolver.Global()

	var opts []git.Option
	if global.GitBinary != "" {
		opts = append(opts, git.WithBinary(global.GitBinary))
	}

	client, err := git.New(ctx, workDirFromContext(ctx), opts...)
	if err != nil {
		return nil, err
	}
	root, err := client.Toplevel(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := resolver.ConfigForRepo(root)
	if err != nil {
		log.FromContext(ctx).Warnf("failed to load local config: %v (using global config)", err)
		cfg = global
	}
	return &repo{client: client, cfg: cfg, root: root}, nil
}

// interactive reports whether both stdin and stderr are terminals, i.e.
// whether prompts can be shown.
func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
