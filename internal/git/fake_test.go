package git

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/raphi011/gw/internal/cmd"
)

type fakeResult struct {
	stdout string
	stderr string
	err    error
}

// fakeRunner answers git invocations from a table keyed by the
// space-joined arguments.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResult
	calls     []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) (cmd.Result, error) {
	key := strings.Join(args, " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	r, ok := f.responses[key]
	if !ok {
		return cmd.Result{}, fmt.Errorf("unexpected git %s", key)
	}
	return cmd.Result{Stdout: r.stdout, Stderr: r.stderr}, r.err
}

func (f *fakeRunner) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == key {
			n++
		}
	}
	return n
}

func newFakeClient(t *testing.T, responses map[string]fakeResult) (*Client, *fakeRunner) {
	t.Helper()
	if _, ok := responses["--version"]; !ok {
		responses["--version"] = fakeResult{stdout: "git version 2.43.0\n"}
	}
	r := &fakeRunner{responses: responses}
	c, err := New(context.Background(), t.TempDir(), WithRunner(r))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return c, r
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
