//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGit runs git in dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// setupTestRepo creates a git repo on branch main with an initial commit
// and a fake origin. Returns the absolute path with symlinks resolved.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	repoPath := filepath.Join(resolvePath(t, t.TempDir()), "repo")
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGit(t, repoPath, "init", "-b", "main")
	runGit(t, repoPath, "config", "user.email", "test@test.com")
	runGit(t, repoPath, "config", "user.name", "Test User")
	runGit(t, repoPath, "config", "commit.gpgsign", "false")

	writeFile(t, filepath.Join(repoPath, "README.md"), "# repo\n")
	runGit(t, repoPath, "add", "README.md")
	runGit(t, repoPath, "commit", "-m", "Initial commit")
	runGit(t, repoPath, "remote", "add", "origin", "https://github.com/test/repo.git")

	return repoPath
}

// testContext returns a context rooted at dir with the default config
// (base branch main) and captured stdout.
func testContext(t *testing.T, dir string) (context.Context, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.DefaultBase = "main"

	var out bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(&bytes.Buffer{}, false, false))
	ctx = output.WithPrinter(ctx, &out)
	ctx = config.WithResolver(ctx, config.NewResolver(&cfg))
	ctx = withWorkDir(ctx, dir)
	ctx = withHistoryPath(ctx, filepath.Join(t.TempDir(), "history.json"))
	return ctx, &out
}
