package diff

import "strings"

// LineType classifies a hunk body line.
type LineType int

const (
	LineContext LineType = iota
	LineAdded
	LineRemoved
)

// Line is one line of a hunk body.
type Line struct {
	Type LineType
	// Content is the line without its leading +, - or space.
	Content string
}

// Lines splits the hunk body into typed lines.
func (h Hunk) Lines() []Line {
	if h.Body == "" {
		return nil
	}
	raw := strings.Split(h.Body, "\n")
	lines := make([]Line, 0, len(raw))
	for _, s := range raw {
		lines = append(lines, newLine(s))
	}
	return lines
}

func newLine(s string) Line {
	if s == "" {
		return Line{Type: LineContext}
	}
	switch s[0] {
	case '+':
		return Line{Type: LineAdded, Content: s[1:]}
	case '-':
		return Line{Type: LineRemoved, Content: s[1:]}
	case ' ':
		return Line{Type: LineContext, Content: s[1:]}
	default:
		return Line{Type: LineContext, Content: s}
	}
}

// Stats counts added and removed lines across all hunks.
func (f *File) Stats() (added, removed int) {
	for _, h := range f.hunks {
		for _, l := range h.Lines() {
			switch l.Type {
			case LineAdded:
				added++
			case LineRemoved:
				removed++
			case LineContext:
			}
		}
	}
	return added, removed
}
