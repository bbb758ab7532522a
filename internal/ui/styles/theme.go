package styles

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/raphi011/gw/internal/config"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // headers, file names
	Accent  color.Color // highlighted items (current branch)
	Added   color.Color // added lines and new files
	Removed color.Color // removed lines and deleted files
	Hunk    color.Color // hunk range headers
	Muted   color.Color // context lines, secondary text
	Warning color.Color // warnings and unmerged files
}

// Preset themes
var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Added:   lipgloss.Color("82"),  // green
		Removed: lipgloss.Color("196"), // red
		Hunk:    lipgloss.Color("75"),  // blue
		Muted:   lipgloss.Color("240"), // dark gray
		Warning: lipgloss.Color("214"), // orange
	}

	// DraculaTheme is based on the Dracula color scheme
	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"), // purple
		Accent:  lipgloss.Color("#ff79c6"), // pink
		Added:   lipgloss.Color("#50fa7b"), // green
		Removed: lipgloss.Color("#ff5555"), // red
		Hunk:    lipgloss.Color("#8be9fd"), // cyan
		Muted:   lipgloss.Color("#6272a4"), // comment
		Warning: lipgloss.Color("#ffb86c"), // orange
	}

	// NordTheme is based on the Nord color scheme
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8 (frost cyan)
		Accent:  lipgloss.Color("#b48ead"), // nord15 (aurora purple)
		Added:   lipgloss.Color("#a3be8c"), // nord14 (aurora green)
		Removed: lipgloss.Color("#bf616a"), // nord11 (aurora red)
		Hunk:    lipgloss.Color("#81a1c1"), // nord9 (frost blue)
		Muted:   lipgloss.Color("#4c566a"), // nord3 (polar night)
		Warning: lipgloss.Color("#ebcb8b"), // nord13 (aurora yellow)
	}
)

var presets = map[string]*Theme{
	"default": &DefaultTheme,
	"dracula": &DraculaTheme,
	"nord":    &NordTheme,
}

// currentTheme holds the active theme
var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init activates the named preset.
// Call this after loading config and before rendering anything.
func Init(name string) {
	theme, ok := presets[name]
	if !ok {
		if name != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default (available: %s)\n",
				name, strings.Join(PresetNames(), ", "))
		}
		theme = &DefaultTheme
	}
	currentTheme = *theme
	applyTheme(currentTheme)
}

// GetPreset returns a theme preset by name, or nil if not found
func GetPreset(name string) *Theme {
	return presets[name]
}

// PresetNames returns the available preset names
func PresetNames() []string {
	return config.ValidThemes
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)

	// Diff content keeps its tabs.
	line := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	HeaderStyle = line.Foreground(t.Primary).Bold(true)
	HunkStyle = line.Foreground(t.Hunk)
	AddedStyle = line.Foreground(t.Added)
	RemovedStyle = line.Foreground(t.Removed)
	WordAddedStyle = line.Foreground(t.Added).Bold(true).Reverse(true)
	WordRemovedStyle = line.Foreground(t.Removed).Bold(true).Reverse(true)
}
