package diff

import (
	"fmt"
	"strings"
)

// Delimiter starts every per-file section of "git diff" output.
const Delimiter = "diff --git "

// Set is a parsed multi-file diff, indexed by pre-change path.
type Set struct {
	names []string
	files map[string]*File
}

// Parse splits raw on [Delimiter] and parses every non-empty segment.
//
// Text before the first delimiter is discarded. Parsing stops at the first
// malformed segment; the returned error names its 1-based position. When two
// segments share a pre-change path the later one wins, keeping the position
// of the first.
func Parse(raw string) (*Set, error) {
	if raw == "" {
		return nil, ErrEmptyInput
	}

	segments := strings.Split(raw, Delimiter)
	s := &Set{files: make(map[string]*File, len(segments)-1)}

	for i, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		f, err := ParseFile(seg)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		if _, ok := s.files[f.nameA]; !ok {
			s.names = append(s.names, f.nameA)
		}
		s.files[f.nameA] = f
	}

	return s, nil
}

// Len returns the number of files.
func (s *Set) Len() int {
	return len(s.names)
}

// Names returns the pre-change paths in order of appearance.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// File looks up a file by pre-change path.
func (s *Set) File(name string) (*File, bool) {
	f, ok := s.files[name]
	return f, ok
}

// Files returns the files in order of appearance.
func (s *Set) Files() []*File {
	out := make([]*File, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.files[n])
	}
	return out
}

// Map returns a copy of the path -> file index.
func (s *Set) Map() map[string]*File {
	m := make(map[string]*File, len(s.files))
	for k, v := range s.files {
		m[k] = v
	}
	return m
}

// String concatenates the rendering of every file.
func (s *Set) String() string {
	var b strings.Builder
	for _, f := range s.Files() {
		b.WriteString(f.String())
	}
	return b.String()
}
