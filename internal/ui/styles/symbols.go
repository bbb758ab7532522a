package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/raphi011/gw/internal/status"
)

var kindSymbols = map[status.Kind]string{
	status.New:      "+",
	status.Modified: "~",
	status.Deleted:  "-",
	status.Renamed:  "→",
	status.Copied:   "⇉",
	status.Unmerged: "!",
}

// KindSymbol returns the one-character marker for a change kind
func KindSymbol(k status.Kind) string {
	if s, ok := kindSymbols[k]; ok {
		return s
	}
	return "?"
}

// KindStyle returns the style used for a change kind
func KindStyle(k status.Kind) lipgloss.Style {
	switch k {
	case status.New:
		return AddedStyle
	case status.Deleted:
		return RemovedStyle
	case status.Unmerged:
		return WarningStyle
	default:
		return AccentStyle
	}
}

// FormatKind returns a colored "<symbol> <kind>" label
func FormatKind(k status.Kind) string {
	return KindStyle(k).Render(KindSymbol(k) + " " + k.String())
}

// FormatLink wraps text in an OSC 8 hyperlink to url.
// Returns text unchanged if url is empty.
func FormatLink(text, url string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}
