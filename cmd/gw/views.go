package main

import (
	"github.com/raphi011/gw/internal/diff"
	"github.com/raphi011/gw/internal/status"
)

// Machine-readable shapes for --json output.

type hunkJSON struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

type fileJSON struct {
	NameA             string     `json:"name_a"`
	NameB             string     `json:"name_b"`
	FileMode          *int       `json:"file_mode,omitempty"`
	Index             string     `json:"index,omitempty"`
	Binary            bool       `json:"binary"`
	NoTrailingNewline bool       `json:"no_trailing_newline"`
	Added             int        `json:"added"`
	Removed           int        `json:"removed"`
	Hunks             []hunkJSON `json:"hunks"`
}

func newFileJSON(f *diff.File) fileJSON {
	added, removed := f.Stats()
	out := fileJSON{
		NameA:             f.NameA(),
		NameB:             f.NameB(),
		Binary:            f.IsBinary(),
		NoTrailingNewline: f.HasNoTrailingNewline(),
		Added:             added,
		Removed:           removed,
		Hunks:             []hunkJSON{},
	}
	if mode, ok := f.FileMode(); ok {
		out.FileMode = &mode
	}
	if index, ok := f.IndexDescriptor(); ok {
		out.Index = index
	}
	for _, h := range f.Hunks() {
		out.Hunks = append(out.Hunks, hunkJSON{Header: h.Header, Body: h.Body})
	}
	return out
}

func newDiffJSON(set *diff.Set) []fileJSON {
	out := []fileJSON{}
	if set == nil {
		return out
	}
	for _, f := range set.Files() {
		out = append(out, newFileJSON(f))
	}
	return out
}

type entryJSON struct {
	Path    string `json:"path"`
	Added   *int   `json:"added,omitempty"`
	Removed *int   `json:"removed,omitempty"`
}

// newStatusJSON maps kind names to entries. Kinds without entries are
// omitted.
func newStatusJSON(st *status.Status) map[string][]entryJSON {
	out := make(map[string][]entryJSON)
	for _, k := range status.Kinds() {
		for _, e := range st.Get(k) {
			ej := entryJSON{Path: e.Path}
			if e.Diff != nil {
				added, removed := e.Diff.Stats()
				ej.Added, ej.Removed = &added, &removed
			}
			out[k.String()] = append(out[k.String()], ej)
		}
	}
	return out
}
