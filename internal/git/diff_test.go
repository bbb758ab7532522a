package git

import (
	"context"
	"errors"
	"testing"

	"github.com/raphi011/gw/internal/diff"
)

const twoFileDiff = `diff --git a/x.txt b/x.txt
index 111..222 100644
--- a/x.txt
+++ b/x.txt
@@ -1,1 +1,2 @@
-old
+new
+line2
diff --git a/y.txt b/y.txt
new file mode 100644
index 0000000..333
--- /dev/null
+++ b/y.txt
@@ -0,0 +1 @@
+hello
`

func TestDiffOptionsArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts DiffOptions
		want string
	}{
		{"working tree", DiffOptions{}, "diff --no-color --no-ext-diff"},
		{"default base", DiffOptions{From: "feature"}, "diff --no-color --no-ext-diff feature master"},
		{"explicit", DiffOptions{From: "a", To: "b", IgnoreWhitespace: true}, "diff --no-color --no-ext-diff -w a b"},
		{"path", DiffOptions{From: "a", To: "b", Path: "dir/x.go"}, "diff --no-color --no-ext-diff a b -- dir/x.go"},
		{"to without from", DiffOptions{To: "b"}, "diff --no-color --no-ext-diff"},
		{"cached", DiffOptions{Cached: true, IgnoreWhitespace: true}, "diff --no-color --no-ext-diff -w --cached"},
		{"cached path", DiffOptions{Cached: true, Path: "n.txt"}, "diff --no-color --no-ext-diff --cached -- n.txt"},
		{"cached ignored with revisions", DiffOptions{Cached: true, From: "a", To: "b"}, "diff --no-color --no-ext-diff a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := joinArgs(tt.opts.args()); got != tt.want {
				t.Errorf("args() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientDiff(t *testing.T) {
	t.Parallel()

	c, _ := newFakeClient(t, map[string]fakeResult{
		"diff --no-color --no-ext-diff -w a b": {stdout: twoFileDiff},
	})

	set, err := c.Diff(context.Background(), DiffOptions{From: "a", To: "b", IgnoreWhitespace: true})
	if err != nil {
		t.Fatalf("Diff() = %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	x, _ := set.File("x.txt")
	if body, _ := x.Hunk("-1,1 +1,2"); body != "-old\n+new\n+line2" {
		t.Errorf("x.txt hunk body = %q", body)
	}
	y, _ := set.File("y.txt")
	if mode, ok := y.FileMode(); !ok || mode != 100644 {
		t.Errorf("y.txt FileMode() = %d, %v", mode, ok)
	}
}

func TestClientDiff_NoDifferences(t *testing.T) {
	t.Parallel()

	c, _ := newFakeClient(t, map[string]fakeResult{
		"diff --no-color --no-ext-diff a b": {stdout: "\n"},
	})
	set, err := c.Diff(context.Background(), DiffOptions{From: "a", To: "b"})
	if err != nil || set != nil {
		t.Errorf("Diff() = %v, %v; want nil, nil", set, err)
	}
}

func TestClientDiff_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("fatal: bad revision 'nope'")
	c, _ := newFakeClient(t, map[string]fakeResult{
		"diff --no-color --no-ext-diff nope master": {err: boom},
		"diff --no-color --no-ext-diff a b":         {stdout: "diff --git onlyonetoken\n"},
	})

	if _, err := c.Diff(context.Background(), DiffOptions{From: "nope"}); !errors.Is(err, boom) {
		t.Errorf("Diff(bad revision) = %v, want %v", err, boom)
	}
	if _, err := c.Diff(context.Background(), DiffOptions{From: "a", To: "b"}); !errors.Is(err, diff.ErrMalformedHeader) {
		t.Errorf("Diff(malformed) = %v, want ErrMalformedHeader", err)
	}
}

func TestClientDiffNameStatus(t *testing.T) {
	t.Parallel()

	c, _ := newFakeClient(t, map[string]fakeResult{
		"diff --no-color --no-ext-diff --name-status a b": {stdout: "M\tx.txt\nA\ty.txt\n"},
	})
	got, err := c.DiffNameStatus(context.Background(), DiffOptions{From: "a", To: "b"})
	if err != nil {
		t.Fatalf("DiffNameStatus() = %v", err)
	}
	if got != "M\tx.txt\nA\ty.txt" {
		t.Errorf("DiffNameStatus() = %q", got)
	}
}
