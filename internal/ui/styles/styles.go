// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling so the diff
// renderer, tables and prompts agree on one palette. Styles always emit
// full ANSI sequences; the CLI downsamples them on output.
package styles

import "charm.land/lipgloss/v2"

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle applies the primary color
	PrimaryStyle lipgloss.Style

	// AccentStyle applies the accent color with bold
	AccentStyle lipgloss.Style

	// MutedStyle applies the muted color
	MutedStyle lipgloss.Style

	// WarningStyle applies the warning color
	WarningStyle lipgloss.Style
)

// Diff styles
var (
	// HeaderStyle renders per-file headers
	HeaderStyle lipgloss.Style

	// HunkStyle renders hunk range headers
	HunkStyle lipgloss.Style

	// AddedStyle and RemovedStyle render whole changed lines
	AddedStyle   lipgloss.Style
	RemovedStyle lipgloss.Style

	// WordAddedStyle and WordRemovedStyle mark changed words inside a line
	WordAddedStyle   lipgloss.Style
	WordRemovedStyle lipgloss.Style
)

func init() {
	applyTheme(currentTheme)
}
