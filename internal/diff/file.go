package diff

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	newFileModePrefix = "new file mode "
	indexPrefix       = "index "
	headerEndPrefix   = "+++"
	hunkMarker        = "@@"
	noNewlineMarker   = `\ No newline at end of file`
	binaryPrefix      = "Binary files "
	binaryPatchMarker = "GIT binary patch"
)

// Hunk is one "@@ ... @@" block of a file diff.
type Hunk struct {
	// Header is the range descriptor between the @@ markers, e.g. "-1,1 +1,2".
	Header string
	// Body holds the hunk's lines joined by "\n", without the header line.
	Body string
}

// File is the parsed diff of a single file.
type File struct {
	nameA string
	nameB string

	mode    int
	hasMode bool

	index    string
	hasIndex bool

	noTrailingNewline bool
	binary            bool

	hunks    []Hunk
	byHeader map[string]int
}

// headerLine is the kind of a line seen before the "+++" marker.
type headerLine int

const (
	headerIgnored headerLine = iota
	headerEnd
	headerNames
	headerNewFileMode
	headerIndex
	headerBinary
)

// bodyLine is the kind of a line seen after the "+++" marker.
type bodyLine int

const (
	bodyOrphan bodyLine = iota
	bodyNoNewline
	bodyHunkHeader
	bodyContent
)

func classifyHeader(line string, haveNames bool) headerLine {
	switch {
	case strings.HasPrefix(line, headerEndPrefix):
		return headerEnd
	case !haveNames:
		return headerNames
	case strings.HasPrefix(line, newFileModePrefix):
		return headerNewFileMode
	case strings.HasPrefix(line, indexPrefix):
		return headerIndex
	case strings.HasPrefix(line, binaryPrefix), line == binaryPatchMarker:
		return headerBinary
	default:
		return headerIgnored
	}
}

func classifyBody(line string, hunkOpen bool) bodyLine {
	switch {
	case line == noNewlineMarker:
		return bodyNoNewline
	case strings.HasPrefix(line, hunkMarker):
		return bodyHunkHeader
	case hunkOpen:
		return bodyContent
	default:
		return bodyOrphan
	}
}

// ParseFile parses the text of one segment, i.e. everything following a
// "diff --git " token up to the next one.
func ParseFile(segment string) (*File, error) {
	if segment == "" {
		return nil, ErrMissingFileData
	}

	f := &File{byHeader: make(map[string]int)}
	lines := strings.Split(strings.TrimSuffix(segment, "\n"), "\n")

	var (
		haveNames bool
		inBody    bool
		current   = -1
		bodies    [][]string
	)

	for _, line := range lines {
		if !inBody {
			switch classifyHeader(line, haveNames) {
			case headerEnd:
				inBody = true
			case headerNames:
				a, b, err := splitNames(line)
				if err != nil {
					return nil, err
				}
				f.nameA, f.nameB = a, b
				haveNames = true
			case headerNewFileMode:
				raw := strings.TrimPrefix(line, newFileModePrefix)
				mode, err := strconv.Atoi(strings.TrimSpace(raw))
				if err != nil {
					return nil, fmt.Errorf("%w: file mode %q", ErrMalformedHeader, raw)
				}
				f.mode, f.hasMode = mode, true
			case headerIndex:
				f.index, f.hasIndex = strings.TrimPrefix(line, indexPrefix), true
			case headerBinary:
				f.binary = true
			case headerIgnored:
			}
			continue
		}

		switch classifyBody(line, current >= 0) {
		case bodyNoNewline:
			f.noTrailingNewline = true
		case bodyHunkHeader:
			key := hunkKey(line)
			if i, ok := f.byHeader[key]; ok {
				// A repeated range replaces the earlier body.
				bodies[i] = nil
				current = i
				continue
			}
			f.byHeader[key] = len(f.hunks)
			f.hunks = append(f.hunks, Hunk{Header: key})
			bodies = append(bodies, nil)
			current = len(f.hunks) - 1
		case bodyContent:
			bodies[current] = append(bodies[current], line)
		case bodyOrphan:
		}
	}

	if !haveNames {
		return nil, fmt.Errorf("%w: no path line in segment", ErrMalformedHeader)
	}

	for i := range f.hunks {
		f.hunks[i].Body = strings.Join(bodies[i], "\n")
	}
	return f, nil
}

// splitNames splits the "a/<path> b/<path>" line. git leaves spaces in
// paths unescaped, so an unchanged path is split at the midpoint first.
// Otherwise the split falls on the first unescaped " b/", then on the
// first unescaped space. A backslash-escaped space belongs to the path.
func splitNames(line string) (string, string, error) {
	line = strings.TrimSpace(line)

	if a, b, ok := splitSymmetric(line); ok {
		return a, b, nil
	}

	at := unescapedIndex(line, " b/")
	if at < 0 {
		at = unescapedIndex(line, " ")
	}
	if at < 0 {
		return "", "", fmt.Errorf("%w: expected two paths in %q", ErrMalformedHeader, line)
	}

	a := strings.TrimSpace(line[:at])
	b := strings.TrimSpace(line[at+1:])
	if a == "" || b == "" {
		return "", "", fmt.Errorf("%w: expected two paths in %q", ErrMalformedHeader, line)
	}
	return strings.TrimPrefix(a, "a/"), strings.TrimPrefix(b, "b/"), nil
}

// splitSymmetric handles "a/X b/X", the form git prints for every path
// that was not renamed.
func splitSymmetric(line string) (string, string, bool) {
	if len(line)%2 == 0 || !strings.HasPrefix(line, "a/") {
		return "", "", false
	}
	mid := len(line) / 2
	if !strings.HasPrefix(line[mid:], " b/") {
		return "", "", false
	}
	a, b := line[2:mid], line[mid+3:]
	if a == "" || a != b {
		return "", "", false
	}
	return a, b, true
}

// unescapedIndex is strings.Index skipping matches preceded by a backslash.
func unescapedIndex(s, sep string) int {
	for off := 0; off < len(s); {
		i := strings.Index(s[off:], sep)
		if i < 0 {
			return -1
		}
		i += off
		if i == 0 || s[i-1] != '\\' {
			return i
		}
		off = i + 1
	}
	return -1
}

// hunkKey extracts "-1,1 +1,2" from "@@ -1,1 +1,2 @@ func main() {".
func hunkKey(line string) string {
	rest := strings.TrimPrefix(line, hunkMarker)
	if i := strings.Index(rest, hunkMarker); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

// Filename returns the pre-change name when useA is true, the post-change
// name otherwise.
func (f *File) Filename(useA bool) string {
	if useA {
		return f.nameA
	}
	return f.nameB
}

// NameA returns the pre-change path.
func (f *File) NameA() string { return f.nameA }

// NameB returns the post-change path.
func (f *File) NameB() string { return f.nameB }

// Renamed reports whether the two paths differ (rename or copy).
func (f *File) Renamed() bool { return f.nameA != f.nameB }

// FileMode returns the "new file mode" value read as a decimal number, so
// "100644" yields 100644. ok is false when the header line was absent.
func (f *File) FileMode() (mode int, ok bool) {
	return f.mode, f.hasMode
}

// IndexDescriptor returns the text following "index ", e.g.
// "111..222 100644".
func (f *File) IndexDescriptor() (string, bool) {
	return f.index, f.hasIndex
}

// HasNoTrailingNewline reports whether the diff carried the
// "\ No newline at end of file" marker.
func (f *File) HasNoTrailingNewline() bool {
	return f.noTrailingNewline
}

// IsBinary reports whether git marked the file as binary, either with
// "Binary files ... differ" or a "GIT binary patch" block. A rename or an
// empty file without hunks is not binary.
func (f *File) IsBinary() bool {
	return f.binary
}

// Hunks returns the hunks in order of appearance.
func (f *File) Hunks() []Hunk {
	out := make([]Hunk, len(f.hunks))
	copy(out, f.hunks)
	return out
}

// Hunk returns the body recorded for a range header.
func (f *File) Hunk(header string) (string, bool) {
	i, ok := f.byHeader[header]
	if !ok {
		return "", false
	}
	return f.hunks[i].Body, true
}

// HunksByHeader returns header -> body. Use Hunks for ordered access.
func (f *File) HunksByHeader() map[string]string {
	m := make(map[string]string, len(f.hunks))
	for _, h := range f.hunks {
		m[h.Header] = h.Body
	}
	return m
}

// String renders each hunk as "<header>\n<body>\n\n". The result is meant
// for display and cannot be applied as a patch.
func (f *File) String() string {
	var b strings.Builder
	for _, h := range f.hunks {
		b.WriteString(h.Header)
		b.WriteString("\n")
		b.WriteString(h.Body)
		b.WriteString("\n\n")
	}
	return b.String()
}
