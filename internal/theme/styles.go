package theme

import "github.com/charmbracelet/lipgloss"

// Output styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 0, 1, 0)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)
)

// Process state styles
var (
	AliveStyle = lipgloss.NewStyle().
			Foreground(ColorAlive)

	ExitedStyle = lipgloss.NewStyle().
			Foreground(ColorExited)
)

// Config line state styles
var (
	ActiveStyle = lipgloss.NewStyle().
			Foreground(ColorActive)

	AbsentStyle = lipgloss.NewStyle().
			Foreground(ColorAbsent)

	CommentedStyle = lipgloss.NewStyle().
			Foreground(ColorCommented)
)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// ProcessState renders a liveness marker
func ProcessState(alive bool) string {
	if alive {
		return AliveStyle.Render("● running")
	}
	return ExitedStyle.Render("○ exited")
}

// LineState renders a config line state by name
func LineState(state string) string {
	switch state {
	case "active":
		return ActiveStyle.Render(state)
	case "commented":
		return CommentedStyle.Render(state)
	default:
		return AbsentStyle.Render(state)
	}
}
