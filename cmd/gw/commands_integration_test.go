//go:build integration

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return cmd.Execute()
}

// TestDiff_JSON tests the parsed diff of an unstaged change.
//
// Scenario: User edits README.md and runs `gw diff --json`
// Expected: One file with one hunk, one added and one removed line
func TestDiff_JSON(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	writeFile(t, filepath.Join(repo, "README.md"), "# renamed\n")

	ctx, out := testContext(t, repo)
	cmd := newDiffCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "--json"); err != nil {
		t.Fatalf("diff --json failed: %v", err)
	}

	var files []fileJSON
	if err := json.Unmarshal(out.Bytes(), &files); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(files) != 1 || files[0].NameA != "README.md" {
		t.Fatalf("unexpected files: %+v", files)
	}
	if files[0].Added != 1 || files[0].Removed != 1 || len(files[0].Hunks) != 1 {
		t.Errorf("unexpected stats: %+v", files[0])
	}
}

// TestDiff_PathWithSpaces tests a file name git prints without escaping.
//
// Scenario: User edits a committed "my file.txt" and runs `gw diff --json`
// Expected: The diff parses and names the file with its space
func TestDiff_PathWithSpaces(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	writeFile(t, filepath.Join(repo, "my file.txt"), "one\n")
	runGit(t, repo, "add", "my file.txt")
	runGit(t, repo, "commit", "-m", "Add my file")
	writeFile(t, filepath.Join(repo, "my file.txt"), "two\n")

	ctx, out := testContext(t, repo)
	cmd := newDiffCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "--json"); err != nil {
		t.Fatalf("diff --json failed: %v", err)
	}

	var files []fileJSON
	if err := json.Unmarshal(out.Bytes(), &files); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(files) != 1 || files[0].NameA != "my file.txt" || files[0].NameB != "my file.txt" {
		t.Fatalf("unexpected files: %+v", files)
	}
	if files[0].Added != 1 || files[0].Removed != 1 {
		t.Errorf("unexpected stats: %+v", files[0])
	}
}

// TestDiff_RenameAndEmptyFileNotBinary tests files git lists without hunks.
//
// Scenario: A commit renames a file and adds an empty one, user runs
// `gw diff --json HEAD~1 HEAD`
// Expected: Neither file is reported as binary
func TestDiff_RenameAndEmptyFileNotBinary(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	runGit(t, repo, "mv", "README.md", "INTRO.md")
	writeFile(t, filepath.Join(repo, "empty.txt"), "")
	runGit(t, repo, "add", "empty.txt")
	runGit(t, repo, "commit", "-m", "Rename and add empty file")

	ctx, out := testContext(t, repo)
	cmd := newDiffCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "--json", "HEAD~1", "HEAD"); err != nil {
		t.Fatalf("diff --json failed: %v", err)
	}

	var files []fileJSON
	if err := json.Unmarshal(out.Bytes(), &files); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(files) < 2 {
		t.Fatalf("expected at least 2 files, got %+v", files)
	}
	for _, f := range files {
		if f.Binary {
			t.Errorf("%s -> %s reported as binary", f.NameA, f.NameB)
		}
	}
}

// TestDiff_NoChanges tests a clean working tree.
//
// Scenario: User runs `gw diff` without changes
// Expected: Nothing on stdout
func TestDiff_NoChanges(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx, out := testContext(t, repo)

	cmd := newDiffCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd); err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

// TestDiff_BranchesNameStatus tests comparing two branches.
//
// Scenario: A branch adds a file, user runs `gw diff --name-status main feature`
// Expected: The new file is listed as added
func TestDiff_BranchesNameStatus(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	runGit(t, repo, "checkout", "-b", "feature")
	writeFile(t, filepath.Join(repo, "new.go"), "package x\n")
	runGit(t, repo, "add", "new.go")
	runGit(t, repo, "commit", "-m", "Add new.go")

	ctx, out := testContext(t, repo)
	cmd := newDiffCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "--name-status", "main", "feature"); err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "A\tnew.go" {
		t.Errorf("output = %q", got)
	}
}

// TestStatus_JSONWithDiff tests status grouping with merged diffs.
//
// Scenario: User modifies README.md, stages a new file and runs
// `gw status --diff --json`
// Expected: README.md is modified with counts, the staged new file is new
// and carries the counts of its staged diff
func TestStatus_JSONWithDiff(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	writeFile(t, filepath.Join(repo, "README.md"), "# repo\nmore\n")
	writeFile(t, filepath.Join(repo, "added.txt"), "x\n")
	runGit(t, repo, "add", "added.txt")

	ctx, out := testContext(t, repo)
	cmd := newStatusCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "--diff", "--json"); err != nil {
		t.Fatalf("status failed: %v", err)
	}

	var got map[string][]entryJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	mod := got["modified"]
	if len(mod) != 1 || mod[0].Path != "README.md" || mod[0].Added == nil || *mod[0].Added != 1 {
		t.Errorf("modified = %+v", mod)
	}
	added := got["new"]
	if len(added) != 1 || added[0].Path != "added.txt" {
		t.Fatalf("new = %+v", added)
	}
	if added[0].Added == nil || *added[0].Added != 1 || added[0].Removed == nil || *added[0].Removed != 0 {
		t.Errorf("staged new file counts = %+v", added[0])
	}
}

// TestStatus_KindFilterAndFullPath tests filtering and path prefixing.
//
// Scenario: User runs `gw status -k modified --full-path`
// Expected: Only the modified file, prefixed with the repo directory
func TestStatus_KindFilterAndFullPath(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	writeFile(t, filepath.Join(repo, "README.md"), "changed\n")
	writeFile(t, filepath.Join(repo, "added.txt"), "x\n")
	runGit(t, repo, "add", "added.txt")

	ctx, out := testContext(t, repo)
	cmd := newStatusCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "-k", "modified", "--full-path", "--json"); err != nil {
		t.Fatalf("status failed: %v", err)
	}

	var got map[string][]entryJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || len(got["modified"]) != 1 {
		t.Fatalf("unexpected kinds: %v", got)
	}
	if want := repo + "/README.md"; got["modified"][0].Path != want {
		t.Errorf("path = %q, want %q", got["modified"][0].Path, want)
	}
}

// TestAddCommit tests staging and committing.
//
// Scenario: User runs `gw add` then `gw commit -m ...`
// Expected: The commit summary is printed and the tree is clean
func TestAddCommit(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	writeFile(t, filepath.Join(repo, "a.txt"), "a\n")

	ctx, out := testContext(t, repo)
	add := newAddCmd()
	add.SetContext(ctx)
	if err := execute(t, add); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	commit := newCommitCmd()
	commit.SetContext(ctx)
	if err := execute(t, commit, "-m", "Add a.txt"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !strings.Contains(out.String(), "Add a.txt") {
		t.Errorf("summary = %q", out.String())
	}

	status := exec.Command("git", "status", "--porcelain")
	status.Dir = repo
	porcelain, err := status.Output()
	if err != nil {
		t.Fatal(err)
	}
	if len(strings.TrimSpace(string(porcelain))) != 0 {
		t.Errorf("tree not clean: %s", porcelain)
	}
}

// TestCommit_RequiresMessage tests committing without a message outside a
// terminal.
//
// Scenario: User runs `gw commit` in a pipe
// Expected: Error, no prompt
func TestCommit_RequiresMessage(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx, _ := testContext(t, repo)

	cmd := newCommitCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd); err == nil {
		t.Error("expected an error without a message")
	}
}

// TestBranch_CreateSwitchRename tests the branch lifecycle.
//
// Scenario: User creates "feature-x", switches back with a fuzzy query,
// then renames main
// Expected: Each step changes the current branch as requested
func TestBranch_CreateSwitchRename(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx, out := testContext(t, repo)

	steps := [][]string{
		{"create", "feature-x"},
		{"switch", "mai"},
		{"rename", "trunk"},
		{"current"},
	}
	for _, args := range steps {
		cmd := newBranchCmd()
		cmd.SetContext(ctx)
		if err := execute(t, cmd, args...); err != nil {
			t.Fatalf("branch %v failed: %v", args, err)
		}
	}
	if got := strings.TrimSpace(out.String()); got != "trunk" {
		t.Errorf("current = %q, want trunk", got)
	}

	cmd := newBranchCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "create", "Bad Name"); err == nil {
		t.Error("expected an invalid name to be rejected")
	}
}

// TestBranch_SwitchPreviousAndRecent tests the branch history.
//
// Scenario: User creates a branch, runs `gw branch switch -` twice, then
// `gw branch recent`
// Expected: Each switch goes back to the other branch and both branches
// are listed as recently used
func TestBranch_SwitchPreviousAndRecent(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx, out := testContext(t, repo)

	run := func(args ...string) {
		t.Helper()
		cmd := newBranchCmd()
		cmd.SetContext(ctx)
		if err := execute(t, cmd, args...); err != nil {
			t.Fatalf("branch %v failed: %v", args, err)
		}
	}
	current := func() string {
		t.Helper()
		out.Reset()
		run("current")
		return strings.TrimSpace(out.String())
	}

	run("create", "feature-x")
	run("switch", "-")
	if got := current(); got != "main" {
		t.Fatalf("after first switch - on %q, want main", got)
	}
	run("switch", "-")
	if got := current(); got != "feature-x" {
		t.Fatalf("after second switch - on %q, want feature-x", got)
	}

	out.Reset()
	run("recent")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("recent printed %d lines, want header and 2 rows:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "feature-x") || !strings.HasPrefix(lines[2], "main") {
		t.Errorf("recent not ordered by last use:\n%s", out.String())
	}
}

// TestBranch_SwitchPreviousWithoutHistory tests `gw branch switch -` in a
// fresh repository.
//
// Scenario: No branch was switched to yet
// Expected: An error explains that there is no previous branch
func TestBranch_SwitchPreviousWithoutHistory(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx, _ := testContext(t, repo)

	cmd := newBranchCmd()
	cmd.SetContext(ctx)
	err := execute(t, cmd, "switch", "-")
	if err == nil || !strings.Contains(err.Error(), "no previous branch") {
		t.Errorf("error = %v, want no previous branch", err)
	}
}

// TestBranch_List tests the branch table.
//
// Scenario: User runs `gw branch` with two branches
// Expected: Both branch names appear
func TestBranch_List(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	runGit(t, repo, "branch", "other")
	ctx, out := testContext(t, repo)

	cmd := newBranchCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd); err != nil {
		t.Fatalf("branch failed: %v", err)
	}
	for _, name := range []string{"main", "other"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("output lacks %s:\n%s", name, out.String())
		}
	}
}

// TestConfigGit tests reading git config through gw.
//
// Scenario: User runs `gw config git user.name`, `gw config git`,
// `gw config remote-url` and `gw config user`
// Expected: Values, a YAML tree, the origin URL and the author
func TestConfigGit(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)

	ctx, out := testContext(t, repo)
	cmd := newConfigCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "git", "user.name"); err != nil {
		t.Fatalf("config git failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "Test User" {
		t.Errorf("user.name = %q", got)
	}

	ctx, out = testContext(t, repo)
	cmd = newConfigCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "git"); err != nil {
		t.Fatalf("config git failed: %v", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &tree); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out.String())
	}
	if _, ok := tree["user"]; !ok {
		t.Errorf("YAML lacks user section: %v", tree)
	}

	ctx, out = testContext(t, repo)
	cmd = newConfigCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "remote-url"); err != nil {
		t.Fatalf("config remote-url failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "https://github.com/test/repo.git" {
		t.Errorf("remote-url = %q", got)
	}

	ctx, out = testContext(t, repo)
	cmd = newConfigCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "user"); err != nil {
		t.Fatalf("config user failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "Test User <test@test.com>" {
		t.Errorf("user = %q", got)
	}
}

// TestConfigShow_LocalOverride tests that .gw.toml is merged.
//
// Scenario: Repo has .gw.toml with default_base = "develop"
// Expected: `gw config show --json` reports develop
func TestConfigShow_LocalOverride(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	writeFile(t, filepath.Join(repo, ".gw.toml"), "default_base = \"develop\"\n")

	ctx, out := testContext(t, repo)
	cmd := newConfigCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "show", "--json"); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var got struct {
		DefaultBase string `json:"default_base"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.DefaultBase != "develop" {
		t.Errorf("default_base = %q, want develop", got.DefaultBase)
	}
}

// TestConfigInit_Stdout tests printing the default config.
//
// Scenario: User runs `gw config init --stdout`
// Expected: The commented template is printed, no file is written
func TestConfigInit_Stdout(t *testing.T) {
	t.Parallel()

	ctx, out := testContext(t, t.TempDir())
	cmd := newConfigCmd()
	cmd.SetContext(ctx)
	if err := execute(t, cmd, "init", "--stdout"); err != nil {
		t.Fatalf("config init --stdout failed: %v", err)
	}
	if !strings.Contains(out.String(), "# gw configuration") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

// TestHooks_CommitAndManual tests hooks from .gw.toml.
//
// Scenario: .gw.toml defines a commit hook and a manual hook; user commits,
// then runs `gw hook`, `gw hook note -d -a msg=hi` and `gw commit --no-hook`
// Expected: The commit hook runs after the commit, the list shows both
// hooks, the dry run prints the expanded command and --no-hook skips it
func TestHooks_CommitAndManual(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	writeFile(t, filepath.Join(repo, ".gw.toml"), `[hooks.mark]
command = "echo {trigger:raw} {branch:raw} >> hook.out"
on = ["commit"]

[hooks.note]
command = "echo {msg}"
description = "Echo a message"
`)
	writeFile(t, filepath.Join(repo, "a.txt"), "a\n")

	ctx, out := testContext(t, repo)
	runGit(t, repo, "add", "a.txt")

	commit := newCommitCmd()
	commit.SetContext(ctx)
	if err := execute(t, commit, "-m", "Add a.txt", "a.txt"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(repo, "hook.out"))
	if err != nil {
		t.Fatalf("commit hook did not run: %v", err)
	}
	if strings.TrimSpace(string(data)) != "commit main" {
		t.Errorf("hook.out = %q", data)
	}

	out.Reset()
	list := newHookCmd()
	list.SetContext(ctx)
	if err := execute(t, list); err != nil {
		t.Fatalf("hook list failed: %v", err)
	}
	for _, want := range []string{"mark", "note", "Echo a message"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("hook list lacks %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	dry := newHookCmd()
	dry.SetContext(ctx)
	if err := execute(t, dry, "note", "-d", "-a", "msg=hi"); err != nil {
		t.Fatalf("hook dry run failed: %v", err)
	}
	if got := out.String(); got != "[dry-run] note: echo 'hi'\n" {
		t.Errorf("dry run output = %q", got)
	}

	writeFile(t, filepath.Join(repo, "b.txt"), "b\n")
	runGit(t, repo, "add", "b.txt")
	skip := newCommitCmd()
	skip.SetContext(ctx)
	if err := execute(t, skip, "-m", "Add b.txt", "--no-hook", "b.txt"); err != nil {
		t.Fatalf("commit --no-hook failed: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(repo, "hook.out"))
	if strings.Count(string(data), "\n") != 1 {
		t.Errorf("--no-hook still ran the hook: %q", data)
	}

	unknown := newHookCmd()
	unknown.SetContext(ctx)
	if err := execute(t, unknown, "missing"); err == nil || !strings.Contains(err.Error(), "available: mark, note") {
		t.Errorf("unknown hook error = %v", err)
	}
}
