package status

import (
	"errors"
	"reflect"
	"testing"

	"github.com/raphi011/gw/internal/diff"
)

func paths(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestKindFromCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code byte
		want Kind
		ok   bool
	}{
		{'A', New, true},
		{'M', Modified, true},
		{'D', Deleted, true},
		{'R', Renamed, true},
		{'C', Copied, true},
		{'U', Unmerged, true},
		{'?', 0, false},
		{'!', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		got, ok := KindFromCode(tt.code)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("KindFromCode(%q) = (%v, %v), want (%v, %v)", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v", k, got)
		}
	}

	if _, err := ParseKind("untracked"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParseShort_StatusFormat(t *testing.T) {
	t.Parallel()

	text := "M  staged.go\n" +
		" M unstaged.go\n" +
		"A  added.go\n" +
		" D removed.go\n" +
		"R  old.go -> new.go\n" +
		"UU conflict.go\n" +
		"?? untracked.go\n" +
		"!! ignored.go\n"

	st := ParseShort(text, "")

	tests := []struct {
		kind Kind
		want []string
	}{
		{Modified, []string{"staged.go", "unstaged.go"}},
		{New, []string{"added.go"}},
		{Deleted, []string{"removed.go"}},
		{Renamed, []string{"new.go"}},
		{Unmerged, []string{"conflict.go"}},
		{Copied, nil},
	}
	for _, tt := range tests {
		if got := paths(st.Get(tt.kind)); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Get(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}

	if st.Len() != 6 {
		t.Errorf("Len() = %d, want 6", st.Len())
	}
}

func TestParseShort_NameStatusFormat(t *testing.T) {
	t.Parallel()

	text := "M\tsrc/main.go\nA\tdocs/new.md\nR087\told.txt\tnew.txt\nC100\ta.txt\tb.txt\n"

	st := ParseShort(text, "/repo/")

	if got := paths(st.Get(Modified)); !reflect.DeepEqual(got, []string{"/repo/src/main.go"}) {
		t.Errorf("Modified = %v", got)
	}
	if got := paths(st.Get(Renamed)); !reflect.DeepEqual(got, []string{"/repo/new.txt"}) {
		t.Errorf("Renamed = %v", got)
	}
	if got := paths(st.Get(Copied)); !reflect.DeepEqual(got, []string{"/repo/b.txt"}) {
		t.Errorf("Copied = %v", got)
	}
}

func TestParseShort_Empty(t *testing.T) {
	t.Parallel()

	st := ParseShort("", "")
	if !st.Empty() {
		t.Errorf("expected empty status, got %d entries", st.Len())
	}
}

func TestByKindIsCopy(t *testing.T) {
	t.Parallel()

	st := NewStatus()
	st.Add(New, "a", nil)
	m := st.ByKind()
	m[New][0].Path = "changed"
	if st.Get(New)[0].Path != "a" {
		t.Error("ByKind() must return a copy")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	set, err := diff.Parse("diff --git a/x.go b/x.go\n+++ b/x.go\n@@ -1 +1 @@\n+x\n" +
		"diff --git a/old.go b/new.go\n+++ b/new.go\n@@ -1 +1 @@\n+y\n")
	if err != nil {
		t.Fatalf("diff.Parse failed: %v", err)
	}

	st := ParseShort("M\tx.go\nR100\told.go\tnew.go\nD\tother.go\n", "")
	Merge(st, set)

	if d := st.Get(Modified)[0].Diff; d == nil || d.NameA() != "x.go" {
		t.Errorf("expected x.go diff on modified entry, got %v", d)
	}
	if d := st.Get(Renamed)[0].Diff; d == nil || d.NameB() != "new.go" {
		t.Errorf("expected renamed entry to join on the new path, got %v", d)
	}
	if d := st.Get(Deleted)[0].Diff; d != nil {
		t.Errorf("expected no diff for other.go, got %v", d)
	}

	// nil set is a no-op
	Merge(st, nil)
}

func TestWithPrefix(t *testing.T) {
	t.Parallel()

	f, err := diff.ParseFile("a/a.go b/a.go\n+++ b/a.go\n@@ -1 +1 @@\n+x\n")
	if err != nil {
		t.Fatal(err)
	}
	st := NewStatus()
	st.Add(Modified, "a.go", f)
	st.Add(New, "b.go", nil)

	got := st.WithPrefix("/repo/")
	if p := paths(got.Get(Modified)); !reflect.DeepEqual(p, []string{"/repo/a.go"}) {
		t.Errorf("modified = %v", p)
	}
	if got.Get(Modified)[0].Diff != f {
		t.Error("diff was not carried over")
	}
	if p := paths(got.Get(New)); !reflect.DeepEqual(p, []string{"/repo/b.go"}) {
		t.Errorf("new = %v", p)
	}
	if p := paths(st.Get(New)); !reflect.DeepEqual(p, []string{"b.go"}) {
		t.Errorf("original changed: %v", p)
	}
}
