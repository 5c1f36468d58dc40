package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - titles
	ColorSecondary Color = "86" // Cyan - column headers
)

// Process state colors
const (
	ColorAlive  Color = "2" // Green - running
	ColorExited Color = "8" // Gray - no longer running
)

// Config line colors
const (
	ColorActive    Color = "2" // Green
	ColorAbsent    Color = "1" // Red
	ColorCommented Color = "3" // Yellow
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
)
