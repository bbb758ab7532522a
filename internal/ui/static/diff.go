package static

import (
	"fmt"
	"strings"

	"github.com/raphi011/gw/internal/diff"
	"github.com/raphi011/gw/internal/ui/styles"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOptions controls RenderDiff.
type DiffOptions struct {
	// WordDiff highlights the changed words of each removed/added line pair.
	WordDiff bool
}

// RenderDiff renders every file of set in order.
func RenderDiff(set *diff.Set, opts DiffOptions) string {
	if set == nil {
		return ""
	}
	var b strings.Builder
	for i, f := range set.Files() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderFile(f, opts))
	}
	return b.String()
}

// RenderFile renders one file: a header, its metadata and the hunks.
func RenderFile(f *diff.File, opts DiffOptions) string {
	var b strings.Builder

	name := f.NameA()
	if f.Renamed() {
		name = f.NameA() + " → " + f.NameB()
	}
	b.WriteString(styles.HeaderStyle.Render(name))
	b.WriteString("\n")

	if mode, ok := f.FileMode(); ok {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("new file mode %d", mode)))
		b.WriteString("\n")
	}
	if index, ok := f.IndexDescriptor(); ok {
		b.WriteString(styles.MutedStyle.Render("index " + index))
		b.WriteString("\n")
	}
	if f.IsBinary() {
		b.WriteString(styles.MutedStyle.Render("(no textual changes)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, h := range f.Hunks() {
		b.WriteString(styles.HunkStyle.Render("@@ " + h.Header + " @@"))
		b.WriteString("\n")
		for _, line := range renderLines(h.Lines(), opts.WordDiff) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if f.HasNoTrailingNewline() {
		b.WriteString(styles.MutedStyle.Render(`\ No newline at end of file`))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLines styles a hunk body. With wordDiff, a run of removed lines
// directly followed by a run of added lines is paired up line by line.
func renderLines(lines []diff.Line, wordDiff bool) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if !wordDiff || lines[i].Type != diff.LineRemoved {
			out = append(out, renderLine(lines[i]))
			i++
			continue
		}

		removed := runOf(lines[i:], diff.LineRemoved)
		added := runOf(lines[i+len(removed):], diff.LineAdded)
		pairs := min(len(removed), len(added))

		rendered := make([]string, len(removed)+len(added))
		for j, l := range removed {
			rendered[j] = renderLine(l)
		}
		for j, l := range added {
			rendered[len(removed)+j] = renderLine(l)
		}
		for j := range pairs {
			rendered[j], rendered[len(removed)+j] = renderWordPair(removed[j].Content, added[j].Content)
		}
		out = append(out, rendered...)
		i += len(removed) + len(added)
	}
	return out
}

func runOf(lines []diff.Line, typ diff.LineType) []diff.Line {
	n := 0
	for n < len(lines) && lines[n].Type == typ {
		n++
	}
	return lines[:n]
}

func renderLine(l diff.Line) string {
	switch l.Type {
	case diff.LineAdded:
		return styles.AddedStyle.Render("+" + l.Content)
	case diff.LineRemoved:
		return styles.RemovedStyle.Render("-" + l.Content)
	case diff.LineContext:
		return " " + l.Content
	}
	return l.Content
}

// renderWordPair highlights the words that differ between a removed line
// and the added line replacing it.
func renderWordPair(oldLine, newLine string) (string, string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var removed, added strings.Builder
	removed.WriteString(styles.RemovedStyle.Render("-"))
	added.WriteString(styles.AddedStyle.Render("+"))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			removed.WriteString(styles.RemovedStyle.Render(d.Text))
			added.WriteString(styles.AddedStyle.Render(d.Text))
		case diffmatchpatch.DiffDelete:
			removed.WriteString(styles.WordRemovedStyle.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			added.WriteString(styles.WordAddedStyle.Render(d.Text))
		}
	}
	return removed.String(), added.String()
}
