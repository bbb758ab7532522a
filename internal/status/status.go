// Package status groups changed paths by change kind and joins them with
// parsed diffs.
package status

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/gw/internal/diff"
)

// ErrUnknownKind is returned for a kind name outside [Kinds].
var ErrUnknownKind = errors.New("unknown change kind")

// Kind is the type of change recorded for a path.
type Kind int

const (
	New Kind = iota
	Modified
	Deleted
	Renamed
	Copied
	Unmerged
)

var kindNames = [...]string{"new", "modified", "deleted", "renamed", "copied", "unmerged"}

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{New, Modified, Deleted, Renamed, Copied, Unmerged}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind by name ("new", "modified", ...).
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
}

// KindFromCode maps a single-letter git status code.
// Untracked (?), ignored (!) and blank codes report false.
func KindFromCode(code byte) (Kind, bool) {
	switch code {
	case 'A':
		return New, true
	case 'M':
		return Modified, true
	case 'D':
		return Deleted, true
	case 'R':
		return Renamed, true
	case 'C':
		return Copied, true
	case 'U':
		return Unmerged, true
	default:
		return 0, false
	}
}

// Entry is one changed path. Diff is nil until [Merge] finds a match.
type Entry struct {
	Path string     `json:"path"`
	Diff *diff.File `json:"-"`
}

// Status holds entries bucketed by kind.
type Status struct {
	byKind map[Kind][]Entry
}

// NewStatus creates an empty Status.
func NewStatus() *Status {
	return &Status{byKind: make(map[Kind][]Entry)}
}

// Add records a path under kind.
func (s *Status) Add(kind Kind, path string, d *diff.File) {
	s.byKind[kind] = append(s.byKind[kind], Entry{Path: path, Diff: d})
}

// Get returns the entries for kind, or nil.
func (s *Status) Get(kind Kind) []Entry {
	return s.byKind[kind]
}

// ByKind returns a copy of the kind -> entries index.
func (s *Status) ByKind() map[Kind][]Entry {
	m := make(map[Kind][]Entry, len(s.byKind))
	for k, v := range s.byKind {
		m[k] = append([]Entry(nil), v...)
	}
	return m
}

// Len returns the total number of entries.
func (s *Status) Len() int {
	n := 0
	for _, v := range s.byKind {
		n += len(v)
	}
	return n
}

// Empty reports whether no change was recorded.
func (s *Status) Empty() bool {
	return s.Len() == 0
}

// WithPrefix returns a copy with prefix prepended to every path. Attached
// diffs are kept.
func (s *Status) WithPrefix(prefix string) *Status {
	out := NewStatus()
	for k, entries := range s.byKind {
		for _, e := range entries {
			out.Add(k, prefix+e.Path, e.Diff)
		}
	}
	return out
}

// ParseShort parses "git status -s" or "git diff --name-status" output.
// prefix is prepended to every path. Untracked and ignored entries are
// skipped.
func ParseShort(text, prefix string) *Status {
	st := NewStatus()
	for _, line := range strings.Split(text, "\n") {
		kind, path, ok := parseLine(strings.TrimRight(line, "\r"))
		if !ok {
			continue
		}
		st.Add(kind, prefix+path, nil)
	}
	return st
}

// parseLine handles both line shapes:
//
//	"M\tfile.go"             --name-status
//	"R100\told.go\tnew.go"    --name-status rename with score
//	"MM file.go"             status -s, index and worktree columns
//	"R  old.go -> new.go"    status -s rename
func parseLine(line string) (Kind, string, bool) {
	if line == "" {
		return 0, "", false
	}

	if i := strings.IndexByte(line, '\t'); i >= 0 {
		kind, ok := KindFromCode(line[0])
		fields := strings.Split(line[i+1:], "\t")
		path := strings.TrimSpace(fields[len(fields)-1])
		return kind, path, ok && path != ""
	}

	if len(line) < 4 {
		return 0, "", false
	}
	kind, ok := KindFromCode(line[0])
	if !ok {
		kind, ok = KindFromCode(line[1])
	}
	path := strings.TrimSpace(line[3:])
	if i := strings.LastIndex(path, " -> "); i >= 0 {
		path = path[i+len(" -> "):]
	}
	return kind, path, ok && path != ""
}

// Merge attaches the matching file diff to every entry. Entries are joined
// on the diff's pre-change path, falling back to the post-change path so
// renamed entries still find their diff.
func Merge(st *Status, set *diff.Set) {
	if set == nil {
		return
	}
	byNewName := make(map[string]*diff.File, set.Len())
	for _, f := range set.Files() {
		byNewName[f.NameB()] = f
	}
	for _, entries := range st.byKind {
		for i := range entries {
			if f, ok := set.File(entries[i].Path); ok {
				entries[i].Diff = f
			} else if f, ok := byNewName[entries[i].Path]; ok {
				entries[i].Diff = f
			}
		}
	}
}
